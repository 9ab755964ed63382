package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/client/api"
)

func (a *App) CreateProtocol(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter protocol name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// Empty answers keep the server-side defaults.
	algorithm, err := GetSimpleText(a.reader, "Encryption algorithm (empty for default)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	keyLengthText, err := GetSimpleText(a.reader, "Key length in bits (empty for default)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	keyLength := 0
	if keyLengthText != "" {
		keyLength, err = strconv.Atoi(keyLengthText)
		if err != nil {
			log.Printf("invalid key length: %v", err)
			return err
		}
	}

	authMethod, err := GetSimpleText(a.reader, "Authentication method (empty for default)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	bypassText, err := GetSimpleText(a.reader, "Bypass security? (y/N)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	bypass := strings.EqualFold(bypassText, "y") || strings.EqualFold(bypassText, "yes")

	id, err := a.api.CreateProtocol(ctx, api.CreateProtocolParams{
		Name:                 name,
		EncryptionAlgorithm:  algorithm,
		KeyLength:            keyLength,
		AuthenticationMethod: authMethod,
		BypassSecurity:       bypass,
	})
	if err != nil {
		log.Printf("Protocol creation unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Protocol created:", id)
	return nil
}

func (a *App) ApplyProtocol(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter protocol id", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data, err := GetSimpleText(a.reader, "Enter data to secure", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	secured, err := a.api.ApplyProtocol(ctx, id, data)
	if err != nil {
		log.Printf("Protocol application unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println(secured)
	return nil
}

func (a *App) ListProtocols(ctx context.Context) error {

	protocols, err := a.api.ListProtocols(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(protocols) == 0 {
		fmt.Println("No protocols yet.")
		return nil
	}

	for _, p := range protocols {
		fmt.Printf("%s  %s (%s, %d-bit, %s)\n",
			p.ID, p.Name, p.EncryptionAlgorithm, p.KeyLength, p.AuthenticationMethod)
	}
	return nil
}
