package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/config"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	appHTTP "github.com/cmlabs-hris/hris-analytics-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hris-analytics-go/internal/service/attendance"
	datasetService "github.com/cmlabs-hris/hris-analytics-go/internal/service/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/service/file"
	recruitmentService "github.com/cmlabs-hris/hris-analytics-go/internal/service/recruitment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := config.LoadPolicy(cfg.App.PolicyFile)
	if err != nil {
		log.Fatal("Failed to load analytics policy: ", err)
	}

	datasetRepo, closeStore, err := openDatasetStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open dataset store: ", err)
	}
	defer closeStore()

	fileStorage, err := storage.New(cfg.Storage.Type, cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	fileService := file.NewFileService(fileStorage)
	datasetSvc := datasetService.NewDatasetService(datasetRepo, fileService)
	analyticsSvc := attendanceService.NewAnalyticsService(policy, datasetSvc)
	recordSvc := attendanceService.NewRecordService(policy, datasetSvc)
	recruitmentSvc := recruitmentService.NewRecruitmentService(policy.RecruitmentPrecision, datasetSvc)

	scheduler := cron.NewScheduler(ctx)
	cron.NewDatasetJobs(datasetSvc, cfg.Dataset.Retention).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewDatasetHandler(datasetSvc),
		appHTTP.NewAnalyticsHandler(analyticsSvc),
		appHTTP.NewRecordHandler(recordSvc),
		appHTTP.NewRecruitmentHandler(recruitmentSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Dataset.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}

// openDatasetStore opens the backend named by DATASET_STORE and migrates it.
func openDatasetStore(ctx context.Context, cfg *config.Config) (dataset.DatasetRepository, func(), error) {
	switch cfg.Dataset.Store {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgresql.NewDatasetRepository(db), db.Close, nil

	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Dataset.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		store, err := sqlite.New(cfg.Dataset.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}
