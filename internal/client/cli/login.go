package cli

import (
	"context"
	"log"
)

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.api.Login(ctx, userName, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = userName
	a.loggedIn = true
	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	// Tokens cannot be revoked server-side; dropping the local copy
	// ends the session as far as this client is concerned.
	a.api.SetToken("")
	a.userName = ""
	a.loggedIn = false
	log.Printf("Logged out")
	return nil
}
