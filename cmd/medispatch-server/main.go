package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medispatch/medispatch/internal/config"
	"github.com/medispatch/medispatch/internal/domain/delivery"
	"github.com/medispatch/medispatch/internal/domain/patient"
	"github.com/medispatch/medispatch/internal/platform/auth"
	"github.com/medispatch/medispatch/internal/platform/db"
	"github.com/medispatch/medispatch/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medispatch-server",
		Short: "Medicine delivery tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StorageBackend != config.BackendPostgres {
				return fmt.Errorf("migrate requires STORAGE_BACKEND=postgres, got %q", cfg.StorageBackend)
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			gdb, err := db.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			if err := gdb.AutoMigrate(&patient.Patient{}, &delivery.Delivery{}); err != nil {
				return fmt.Errorf("auto-migrate failed: %w", err)
			}

			// AutoMigrate does not create the patient FK because the models
			// reference each other by plain int, not gorm associations.
			if !gdb.Migrator().HasConstraint(&delivery.Delivery{}, "fk_deliveries_patient") {
				err := gdb.Exec(
					`ALTER TABLE deliveries ADD CONSTRAINT fk_deliveries_patient
					 FOREIGN KEY (patient_id) REFERENCES patients(id)`,
				).Error
				if err != nil {
					return fmt.Errorf("add patient fk failed: %w", err)
				}
			}

			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Storage backend
	var patientRepo patient.Repository
	var deliveryRepo delivery.Repository
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		gdb, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		patientRepo = patient.NewPGRepo(gdb)
		deliveryRepo = delivery.NewPGRepo(gdb)
		logger.Info().Msg("using postgres storage")
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data directory")
		}
		patientRepo, err = patient.NewJSONRepo(cfg.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open patient store")
		}
		deliveryRepo, err = delivery.NewJSONRepo(cfg.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open delivery store")
		}
		logger.Info().Str("dir", cfg.DataDir).Msg("using json file storage")
	}

	// Credentials and token issuer
	users := auth.NewStaticUserStore()
	if err := users.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin user")
	}
	issuer := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL())

	e := newRouter(cfg, logger, issuer, users, patientRepo, deliveryRepo)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}

// newRouter assembles the echo instance: global middleware, auth routes and
// both domain route groups.
func newRouter(cfg *config.Config, logger zerolog.Logger, issuer *auth.TokenIssuer, users auth.UserStore, patientRepo patient.Repository, deliveryRepo delivery.Repository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	e.Use(middleware.RateLimit(rateLimitCfg))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Medicine delivery tracking API",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	requireAuth := auth.RequireToken(issuer, users)

	auth.NewHandler(issuer, users).RegisterRoutes(e)
	patient.NewHandler(patient.NewService(patientRepo)).RegisterRoutes(e, requireAuth)
	delivery.NewHandler(delivery.NewService(deliveryRepo)).RegisterRoutes(e, requireAuth)

	return e
}
