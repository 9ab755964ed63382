package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Encrypt(ctx context.Context) error {

	data, err := GetMultiline(a.reader, "Enter data to encrypt", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	encrypted, err := a.api.Encrypt(ctx, data)
	if err != nil {
		log.Printf("Encryption unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Encrypted data:")
	fmt.Println(encrypted)
	return nil
}

func (a *App) Decrypt(ctx context.Context) error {

	data, err := GetSimpleText(a.reader, "Enter encrypted data", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	decrypted, err := a.api.Decrypt(ctx, data)
	if err != nil {
		log.Printf("Decryption unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Decrypted data:")
	fmt.Println(decrypted)
	return nil
}
