// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/authorization"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/cache"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/config"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/db"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/kratos"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring/prometheus"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/storage"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/authentication"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/invitation"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/organization"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/session"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/user"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/web"
	"github.com/KonektivaDev/alfaplus-base-saas/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("organization-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var tagCache cache.CacheInterface
	redisCache, err := cache.NewRedisCache(specs.RedisURL, tracer, monitor, logger)
	if err != nil {
		logger.Errorf("redis unavailable, cache invalidation disabled: %v", err)
		tagCache = cache.NewNoopCache()
	} else {
		tagCache = redisCache
		defer redisCache.Close()
	}

	authorizer := authorization.NewAuthorizer(s, tracer, monitor, logger)

	kratosClient := kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)

	organizationService := organization.NewService(s, tagCache, dbClient, tracer, monitor, logger)
	sessionService := session.NewService(s, organizationService, specs.SessionLifetime, tracer, monitor, logger)
	invitationService := invitation.NewService(s, kratosClient, tagCache, dbClient, specs.InvitationLifetime, tracer, monitor, logger)
	userService := user.NewService(s, sessionService, tagCache, tracer, monitor, logger)
	webhookService := webhooks.NewService(s, sessionService, organizationService, tagCache, tracer, monitor, logger)

	var verifier authentication.TokenVerifierInterface
	if specs.AuthenticationEnabled {
		verifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OIDCIssuer,
			specs.OIDCJWKSUrl,
			specs.AllowedSubjects,
			specs.RequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up authentication: %v", err)
		}
	} else {
		verifier = authentication.NewNoopVerifier()
		logger.Info("Machine authentication is disabled")
	}

	router := web.NewRouter(
		web.RouterConfig{
			Organizations:     organization.NewAPI(organizationService, tracer, monitor, logger),
			Invitations:       invitation.NewAPI(invitationService, tracer, monitor, logger),
			Users:             user.NewAPI(userService, tracer, monitor, logger),
			Sessions:          session.NewAPI(sessionService, tracer, monitor, logger),
			Webhooks:          webhooks.NewAPI(webhookService),
			Guards:            web.NewGuards(authorizer, tracer, monitor, logger),
			SessionMiddleware: authentication.NewSessionMiddleware(sessionService, specs.SessionCookieName, tracer, monitor, logger),
			BearerMiddleware:  authentication.NewMiddleware(verifier, specs.AuthenticationEnabled, tracer, monitor, logger),
		},
		dbClient,
		tracer,
		monitor,
		logger,
	)

	// Expired sessions are invisible to resolution; this reclaims the rows.
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if _, err := sessionService.PurgeExpired(purgeCtx); err != nil {
					logger.Errorf("failed to purge expired sessions: %v", err)
				}
			}
		}
	}()

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	if err := tracer.Shutdown(ctx); err != nil {
		logger.Errorf("failed to shut down tracer: %v", err)
	}

	return serverError
}
