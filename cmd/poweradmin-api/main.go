package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/adfinis/poweradmin-api/internal/api"
	"github.com/adfinis/poweradmin-api/internal/config"
	"github.com/adfinis/poweradmin-api/internal/core"
	"github.com/adfinis/poweradmin-api/internal/db"
	"github.com/adfinis/poweradmin-api/internal/logging"
	"github.com/adfinis/poweradmin-api/internal/metrics"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "issue-token" {
		issueToken(os.Args[2:])
		return
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "", "Migration files directory (default: embedded migrations)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	metrics.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool)

	srv := api.NewServer(logger, pool, cfg)

	servers := []*http.Server{{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}}
	if cfg.MetricsListenAddr != "" {
		servers = append(servers, metrics.NewServer(cfg.MetricsListenAddr))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		hs := hs
		g.Go(func() error {
			logger.Info().Str("addr", hs.Addr).Msg("starting HTTP server")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", hs.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var errs []error
		for _, hs := range servers {
			errs = append(errs, hs.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// issueToken mints a bearer token for an existing PowerAdmin user id. There
// is no login flow; operators hand tokens out.
func issueToken(args []string) {
	fs := flag.NewFlagSet("issue-token", flag.ExitOnError)
	userID := fs.Int64("user-id", 0, "PowerAdmin user id (required)")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime")
	fs.Parse(args)

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "error: --user-id is required")
		fmt.Fprintln(os.Stderr, "usage: poweradmin-api issue-token --user-id <id> [--ttl 24h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.JWTSecret) < 32 {
		fmt.Fprintln(os.Stderr, "error: JWT_SECRET must be set and at least 32 bytes")
		os.Exit(1)
	}

	token, err := core.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer).IssueToken(*userID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
