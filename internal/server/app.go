// Package server initializes and runs the security service: it wires the
// storage backend, the credential store, the token signing secret, the
// encryption envelope, the audit trail and the HTTP boundary, and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/cryptox"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/logging"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/config"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/httpapi"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/storage"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/users"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	httpServer    *httpapi.Server
	auditArchiver *audit.Archiver
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewDefault()

	var m storage.Manager
	if c.DatabaseDSN != "" {
		pm, err := storage.NewPostgresManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m = pm
	} else {
		m = storage.NewMemoryManager()
	}

	key, err := cryptox.ParseKey(c.EncryptionKeyHex)
	if err != nil {
		return nil, fmt.Errorf("encryption key error: %w", err)
	}
	envelope, err := cryptox.NewEnvelope(key)
	if err != nil {
		return nil, fmt.Errorf("envelope init error: %w", err)
	}

	us := users.NewService(m.Users(), c.HashCost, c.MaxConcurrentHashes)
	ps := protocols.NewService(m.Protocols())
	as := audit.NewService(m.Audit(), logger)

	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, us, ps, as, envelope,
		c.SecretKey, c.TokenValidityDuration)

	app := &App{config: c, logger: logger, httpServer: srv}

	if c.S3Bucket != "" {
		app.auditArchiver = audit.NewArchiver(audit.ArchiverConfig{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Interval:     c.AuditArchiveInterval,
		}, m.Audit(), logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	if app.auditArchiver != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.auditArchiver.Run(ctx)
		}()
	}

	wg.Wait()
}
