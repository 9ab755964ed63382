// Package cli implements the interactive command-line client for the
// security service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/client/api"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/client/config"
)

// App holds the session state of the CLI: the API client, the username of
// the authenticated user, and a login flag. The bearer token itself lives
// inside the API client and never touches disk.
type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	loggedIn bool
	reader   *bufio.Reader
	out      *os.File
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if a.loggedIn {
		return a.userName
	}
	return "not logged in"
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Security service CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
