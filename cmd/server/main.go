package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/api"
	"github.com/listingkit/listingkit-backend/internal/clients/googlemaps"
	"github.com/listingkit/listingkit-backend/internal/clients/schooldigger"
	"github.com/listingkit/listingkit-backend/internal/config"
	"github.com/listingkit/listingkit-backend/internal/database"
	"github.com/listingkit/listingkit-backend/internal/logging"
	"github.com/listingkit/listingkit-backend/internal/middleware"
	"github.com/listingkit/listingkit-backend/internal/places"
	"github.com/listingkit/listingkit-backend/internal/repository"
	"github.com/listingkit/listingkit-backend/internal/service"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "listingkit",
	Short:         "Real-estate marketing backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var (
	placesRadius int
	placesTypes  string
	placesLimit  int
)

var placesCmd = &cobra.Command{
	Use:   "places <location>",
	Short: "Search nearby places once and print the JSON result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := googlemaps.NewClient(cfg.GoogleMapsAPIKey, cfg.GoogleMapsBaseURL, logger)
		svc := service.NewPlacesService(client, cfg.PlacesPerType, cfg.UpstreamTimeout, logger)

		q := places.Query{
			Location:         strings.Join(args, " "),
			RadiusMeters:     placesRadius,
			PerCategoryQuota: placesLimit,
		}
		if placesTypes != "" {
			q.Categories = strings.Split(placesTypes, ",")
		}

		result, err := svc.Search(cmd.Context(), q)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	placesCmd.Flags().IntVar(&placesRadius, "radius", places.DefaultRadiusMeters, "search radius in meters (100-50000)")
	placesCmd.Flags().StringVar(&placesTypes, "types", "", "comma-separated place types")
	placesCmd.Flags().IntVar(&placesLimit, "limit", 0, "results per type (default from config)")

	rootCmd.AddCommand(serveCmd, placesCmd)
}

func runServer(ctx context.Context) error {
	db, err := database.Open(database.Config{Path: cfg.DBPath}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	mapsClient := googlemaps.NewClient(cfg.GoogleMapsAPIKey, cfg.GoogleMapsBaseURL, logger)
	if !mapsClient.Configured() {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, places routes will fail")
	}
	schoolClient := schooldigger.NewClient(cfg.SchoolDiggerAppID, cfg.SchoolDiggerAPIKey, cfg.SchoolDiggerBaseURL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	go limiter.Run(ctx)

	svc := api.Services{
		Places:  service.NewPlacesService(mapsClient, cfg.PlacesPerType, cfg.UpstreamTimeout, logger),
		Schools: service.NewSchoolService(schoolClient),
		Auth:    service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL),
		Limiter: limiter,
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           api.SetupRouter(cfg, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
