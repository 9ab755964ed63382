package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Encrypt(ctx context.Context) error
	Decrypt(ctx context.Context) error
	CreateProtocol(ctx context.Context) error
	ApplyProtocol(ctx context.Context) error
	ListProtocols(ctx context.Context) error
	Logs(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the security service CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - encrypt        — encrypt a payload on the server
//	  - decrypt        — decrypt a previously encrypted payload
//	  - newprotocol    — register a custom security protocol
//	  - apply          — apply one of your protocols to a payload
//	  - protocols | l  — list your protocols
//	  - logs           — show your security event log
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sec> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: encrypt, decrypt, newprotocol, apply, protocols, logs, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "encrypt":
			_ = a.Encrypt(ctx)

		case "decrypt":
			_ = a.Decrypt(ctx)

		case "newprotocol":
			_ = a.CreateProtocol(ctx)

		case "apply":
			_ = a.ApplyProtocol(ctx)

		case "l", "protocols":
			_ = a.ListProtocols(ctx)

		case "logs":
			_ = a.Logs(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
