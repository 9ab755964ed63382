package main

import (
	"context"
	"log"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
