package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"communitydelivery/cmd"
	httpadapter "communitydelivery/internal/adapters/in/http"
	"communitydelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(cfg, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	server := httpadapter.NewServer(
		root.CreateCreateDeliveryCommandHandler(),
		root.CreateClaimDeliveryCommandHandler(),
		root.CreateMarkPickedUpCommandHandler(),
		root.CreateCompleteDeliveryCommandHandler(),
		root.CreateReleaseClaimCommandHandler(),
		root.CreateCancelByRecipientCommandHandler(),
		root.CreateCancelByAdminCommandHandler(),
		root.CreateRevealContactCommandHandler(),
		root.CreateSubmitRatingCommandHandler(),
		root.CreateCreateVolunteerCommandHandler(),
		root.CreateReviewVolunteerCommandHandler(),
		root.CreateCreateRecipientCommandHandler(),
		root.CreateDeleteRecipientCommandHandler(),
		root.CreateSendMessageCommandHandler(),
		root.CreateMarkMessagesReadCommandHandler(),
		root.CreateGetAvailableDeliveriesQueryHandler(),
		root.CreateGetVolunteerBoardQueryHandler(),
		root.CreateGetDeliveryAuditQueryHandler(),
		root.CreateGetPartyAuditQueryHandler(),
		root.CreateGetDeliveryMessagesQueryHandler(),
		root.CreateGetUnreadMessageCountQueryHandler(),
		httpadapter.NewMetrics(),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	server.RegisterRoutes(e)

	jobManager := jobs.NewJobManager(
		root.CreatePurgeInactiveRecipientsCommandHandler(),
		cfg.Retention,
		cfg.PurgeSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func loadConfig() (cmd.Config, error) {
	// A missing .env is fine in deployed environments where real env vars
	// are set.
	_ = godotenv.Load(".env")

	piiKey, err := hex.DecodeString(envOr("PII_KEY_HEX", ""))
	if err != nil {
		return cmd.Config{}, fmt.Errorf("PII_KEY_HEX: %w", err)
	}

	lat, err := envFloat("SERVICE_AREA_LAT", 38.5816)
	if err != nil {
		return cmd.Config{}, err
	}
	lng, err := envFloat("SERVICE_AREA_LNG", -121.4944)
	if err != nil {
		return cmd.Config{}, err
	}
	radius, err := envFloat("SERVICE_AREA_RADIUS_MILES", 50)
	if err != nil {
		return cmd.Config{}, err
	}
	ceiling, err := envInt("CLAIM_CEILING", 2)
	if err != nil {
		return cmd.Config{}, err
	}
	cancelBoost, err := envInt("REQUEUE_CANCEL_BOOST", 10)
	if err != nil {
		return cmd.Config{}, err
	}
	releaseBoost, err := envInt("REQUEUE_RELEASE_BOOST", 5)
	if err != nil {
		return cmd.Config{}, err
	}
	retention, err := envDuration("PII_RETENTION", 180*24*time.Hour)
	if err != nil {
		return cmd.Config{}, err
	}

	return cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		DBHost:                 envOr("DB_HOST", "localhost"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 envOr("DB_USER", "postgres"),
		DBPassword:             envOr("DB_PASSWORD", ""),
		DBName:                 envOr("DB_NAME", "communitydelivery"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		GeocoderBaseURL:        envOr("GEOCODER_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
		GeocoderAPIKey:         envOr("GEOCODER_API_KEY", ""),
		PIIKey:                 piiKey,
		ServiceAreaLat:         lat,
		ServiceAreaLng:         lng,
		ServiceAreaRadiusMiles: radius,
		ClaimCeiling:           ceiling,
		CancelBoost:            cancelBoost,
		ReleaseBoost:           releaseBoost,
		Retention:              retention,
		PurgeSchedule:          envOr("PURGE_SCHEDULE", "0 3 * * *"),
	}, nil
}

func dsn(cfg cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
