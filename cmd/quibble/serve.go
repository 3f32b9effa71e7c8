// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quibble/quibble/internal/auth"
	authpg "github.com/quibble/quibble/internal/auth/postgres"
	"github.com/quibble/quibble/internal/config"
	"github.com/quibble/quibble/internal/content"
	contentpg "github.com/quibble/quibble/internal/content/postgres"
	"github.com/quibble/quibble/internal/httpapi"
	"github.com/quibble/quibble/internal/logging"
	"github.com/quibble/quibble/internal/mail"
	"github.com/quibble/quibble/internal/media"
	"github.com/quibble/quibble/internal/observability"
	"github.com/quibble/quibble/internal/store"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the Quibble API server, the observability endpoint, and the
database pool. Configuration comes from defaults, the config file, and
flags, in that order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd)
		},
	}

	// Flags override config file values; names mirror the config keys.
	cmd.Flags().String("server.addr", "", "API listen address")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("observability.addr", "", "metrics/health listen address")
	cmd.Flags().String("log.level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("log.format", "", "log format (json or text)")

	return cmd
}

// runServe wires the application together and blocks until shutdown.
func runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetDefault("quibble", version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))

	slog.Info("starting quibble",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Observability.Addr,
	)

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	slog.Info("database connected")

	accounts := authpg.NewAccountRepository(pool)
	communities := contentpg.NewCommunityRepository(pool)
	posts := contentpg.NewPostRepository(pool)
	follows := contentpg.NewFollowRepository(pool)

	verifier, err := auth.NewVerificationCodec([]byte(cfg.Auth.VerificationSecret))
	if err != nil {
		return fmt.Errorf("failed to create verification codec: %w", err)
	}
	sessions, err := auth.NewSessionCodec([]byte(cfg.Auth.SessionSecret), cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create session codec: %w", err)
	}

	hasher := auth.NewArgon2idHasher()

	mailer, err := mail.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From, cfg.Mail.AppURL)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	registrar, err := auth.NewRegistrar(accounts, hasher, verifier, mailer)
	if err != nil {
		return fmt.Errorf("failed to create registrar: %w", err)
	}
	sessionSvc, err := auth.NewService(accounts, hasher, sessions)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	cookies := auth.NewCookieManager(sessions.AccessTTL(), sessions.RefreshTTL())

	contentSvc, err := content.NewService(communities, posts, follows)
	if err != nil {
		return fmt.Errorf("failed to create content service: %w", err)
	}

	storage, err := media.New(ctx, media.Config{
		Endpoint:  cfg.Media.Endpoint,
		Region:    cfg.Media.Region,
		Bucket:    cfg.Media.Bucket,
		AccessKey: cfg.Media.AccessKey,
		SecretKey: cfg.Media.SecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create media storage: %w", err)
	}

	// Readiness follows the database: if the pool cannot ping, the instance
	// should be rotated out.
	obsServer := observability.NewServer(cfg.Observability.Addr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	obsErrCh, err := obsServer.Start()
	if err != nil {
		return fmt.Errorf("failed to start observability server: %w", err)
	}
	slog.Info("observability server started", "addr", obsServer.Addr())

	api, err := httpapi.NewAPI(registrar, sessionSvc, cookies, accounts, contentSvc, storage, obsServer.Metrics(), slog.Default())
	if err != nil {
		stopServer(obsServer.Stop)
		return fmt.Errorf("failed to create API: %w", err)
	}

	apiServer := httpapi.NewServer(cfg.Server.Addr, api.Handler(cfg.Server.AllowedOrigins))
	apiErrCh, err := apiServer.Start()
	if err != nil {
		stopServer(obsServer.Stop)
		return fmt.Errorf("failed to start API server: %w", err)
	}

	cmd.Println("Quibble started on " + apiServer.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr := <-apiErrCh:
		if serveErr != nil {
			slog.Error("api server failed", "error", serveErr)
		}
	case serveErr := <-obsErrCh:
		if serveErr != nil {
			slog.Error("observability server failed", "error", serveErr)
		}
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")
	stopServer(apiServer.Stop)
	stopServer(obsServer.Stop)
	slog.Info("shutdown complete")
	return nil
}

// stopServer shuts a server down with the standard timeout, logging failures
// instead of propagating them so shutdown always runs to completion.
func stopServer(stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		slog.Warn("error stopping server", "error", err)
	}
}
