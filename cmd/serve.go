package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db/bunx"
	"github.com/folioworks/folio/internal/directory"
	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/server"
	"github.com/folioworks/folio/internal/services/portfolio"
	"github.com/folioworks/folio/internal/services/position"
	"github.com/folioworks/folio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the folio API server",
	Long:  `Starts the HTTP server exposing the portfolio and position REST endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := loadSeed(cfg)
		if err != nil {
			return err
		}

		dir, cleanup, err := buildDirectory(cmd.Context(), cfg, seed)
		if err != nil {
			return err
		}
		defer cleanup()

		if cfg.CredCacheSize > 0 {
			dir = directory.NewCachingDirectory(dir, cfg.CredCacheSize, cfg.CredCacheTTL)
		}

		roles := directory.NewRoleMapper(seed.GroupRoles)

		authz, err := auth.NewAuthorizer()
		if err != nil {
			return fmt.Errorf("configure authorizer: %w", err)
		}

		var tokens *auth.TokenIssuer
		if cfg.TokenSecret != "" {
			tokens, err = auth.NewTokenIssuer([]byte(cfg.TokenSecret), cfg.TokenIssuer, cfg.TokenTTL)
			if err != nil {
				return fmt.Errorf("configure token issuer: %w", err)
			}
		} else {
			log.Warn().Msg("TOKEN_SECRET not set, /auth/login disabled")
		}

		portfolioSvc := portfolio.NewService(store.New[models.Portfolio](), authz)
		positionSvc := position.NewService(store.New[models.Position](), authz)

		r := server.NewRouter(server.RouterOptions{
			Portfolios: portfolioSvc,
			Positions:  positionSvc,
			Directory:  dir,
			Roles:      roles,
			Tokens:     tokens,
			Logger:     log.Logger,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.ServerAddr).Msg("starting server")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Info().Msg("server stopped")
			return nil
		}
	},
}

// loadSeed returns the directory seed: the configured file when set,
// otherwise the bundled default users.
func loadSeed(cfg *config.Config) (directory.Seed, error) {
	if cfg.DirectorySeedFile != "" {
		seed, err := directory.LoadSeed(cfg.DirectorySeedFile)
		if err != nil {
			return directory.Seed{}, fmt.Errorf("load directory seed: %w", err)
		}
		return seed, nil
	}
	return directory.DefaultSeed(), nil
}

// buildDirectory picks the credential backend: database backed when a
// DSN is configured, otherwise the in-memory seed directory. The group
// to role mapping always comes from the seed.
func buildDirectory(ctx context.Context, cfg *config.Config, seed directory.Seed) (directory.Directory, func(), error) {
	if cfg.DirectoryDSN == "" {
		dir, err := directory.NewStaticDirectory(seed)
		if err != nil {
			return nil, nil, fmt.Errorf("build static directory: %w", err)
		}
		return dir, func() {}, nil
	}

	db, err := bunx.NewDB(cfg.DirectoryDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect directory database: %w", err)
	}

	dir := directory.NewDBDirectory(db)
	if err := dir.Init(ctx); err != nil {
		bunx.Close(db)
		return nil, nil, fmt.Errorf("initialize directory schema: %w", err)
	}

	log.Info().Msg("using database-backed directory")
	return dir, func() { bunx.Close(db) }, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
