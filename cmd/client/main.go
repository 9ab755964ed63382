package main

import (
	"context"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/client/cli"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(ctx)
}
