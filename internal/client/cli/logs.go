package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Logs(ctx context.Context) error {

	events, err := a.api.SecurityLogs(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(events) == 0 {
		fmt.Println("No security events yet.")
		return nil
	}

	for _, e := range events {
		fmt.Printf("%s  %s  %s\n", e.Timestamp, e.EventType, e.SourceIP)
		for k, v := range e.Details {
			fmt.Printf("    %s=%v\n", k, v)
		}
	}
	return nil
}
