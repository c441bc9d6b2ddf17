package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"courier/cmd"
	"courier/internal/adapters/out/location"
	"courier/internal/adapters/out/postgres"
	"courier/internal/adapters/out/postgres/courierrepo"
	"courier/internal/adapters/out/postgres/historyrepo"
	"courier/internal/core/application/session"
	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/jobs"
	"courier/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)
	mustMigrate(gormDB)

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	sess := mustRestoreSession(configs, uowFactory, logger)
	defer sess.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	defer redisClient.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, sess, redisClient, logger)

	jobManager := jobs.NewJobManager(
		mustLocationSource(configs, sess),
		app.CreateReportLocationCommandHandler(),
		app.CreateRolloverLedgerCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.CreateOfferSubscriber().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("offer subscriber stopped", "error", err)
		}
	}()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		OfferChannel:  goDotEnvVariable("OFFER_CHANNEL"),
		JobServiceURL: goDotEnvVariable("JOB_SERVICE_URL"),
		CourierID:     goDotEnvVariable("COURIER_ID"),
		AuthToken:     goDotEnvVariable("AUTH_TOKEN"),
		StartLat:      goDotEnvVariable("START_LAT"),
		StartLon:      goDotEnvVariable("START_LON"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	if err := gormDB.AutoMigrate(
		&courierrepo.CourierStateDTO{},
		&historyrepo.HistoryEntryDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// mustRestoreSession rebuilds the session store from persistence: the courier
// state row, the ledger buckets, and the hot history page. A courier that was
// never persisted starts fresh — offline, with empty buckets.
func mustRestoreSession(
	configs cmd.Config,
	uowFactory *postgres.GormUnitOfWorkFactory,
	logger *slog.Logger,
) *session.Session {
	ctx := context.Background()

	courierID, err := kernel.UUIDFromString(configs.CourierID)
	if err != nil {
		log.Fatalf("Invalid COURIER_ID: %v", err)
	}

	uow := uowFactory.Create()
	state, ledger, err := uow.CourierStateRepository().Get(ctx, courierID)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrObjectNotFound):
		if state, err = courier.NewState(courierID); err != nil {
			log.Fatalf("Failed to create courier state: %v", err)
		}
		ledger = earnings.NewLedger()
	default:
		log.Fatalf("Failed to restore courier state: %v", err)
	}

	state.SetAuthToken(configs.AuthToken)

	history, err := uow.HistoryRepository().GetRecent(ctx, 50)
	if err != nil {
		log.Fatalf("Failed to restore order history: %v", err)
	}

	return session.NewSession(state, ledger, history, logger)
}

func mustLocationSource(configs cmd.Config, sess *session.Session) ports.LocationSource {
	start := sess.LastLocation()
	if start == nil {
		lat, latErr := strconv.ParseFloat(configs.StartLat, 64)
		lon, lonErr := strconv.ParseFloat(configs.StartLon, 64)
		if latErr != nil || lonErr != nil {
			log.Fatalf("Invalid START_LAT/START_LON")
		}
		point, err := kernel.NewGeoPoint(lat, lon)
		if err != nil {
			log.Fatalf("Invalid start position: %v", err)
		}
		start = &point
	}

	source, err := location.NewDriftingSource(*start)
	if err != nil {
		log.Fatalf("Failed to create location source: %v", err)
	}
	return source
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
