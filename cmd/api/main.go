package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/farmtech/farmtech-api/internal/application"
	appinventory "github.com/farmtech/farmtech-api/internal/application/inventory"
	applistings "github.com/farmtech/farmtech-api/internal/application/listings"
	appsoil "github.com/farmtech/farmtech-api/internal/application/soil"
	apptransport "github.com/farmtech/farmtech-api/internal/application/transport"
	appusers "github.com/farmtech/farmtech-api/internal/application/users"
	appweather "github.com/farmtech/farmtech-api/internal/application/weather"
	"github.com/farmtech/farmtech-api/internal/config"
	domaininventory "github.com/farmtech/farmtech-api/internal/domain/inventory"
	domainlistings "github.com/farmtech/farmtech-api/internal/domain/listings"
	domainsoil "github.com/farmtech/farmtech-api/internal/domain/soil"
	domaintransport "github.com/farmtech/farmtech-api/internal/domain/transport"
	domainusers "github.com/farmtech/farmtech-api/internal/domain/users"
	aiclient "github.com/farmtech/farmtech-api/internal/infra/ai/openai"
	dbmigrate "github.com/farmtech/farmtech-api/internal/infra/db"
	mysqlp "github.com/farmtech/farmtech-api/internal/infra/db/mysql"
	postgresp "github.com/farmtech/farmtech-api/internal/infra/db/postgres"
	"github.com/farmtech/farmtech-api/internal/infra/evidence"
	"github.com/farmtech/farmtech-api/internal/infra/httpserver"
	minioStore "github.com/farmtech/farmtech-api/internal/infra/storage"
	weatherClient "github.com/farmtech/farmtech-api/internal/infra/weather"
	"github.com/farmtech/farmtech-api/internal/middleware"
)

// repos groups the driver-specific repository set.
type repos struct {
	soil      domainsoil.Repository
	users     domainusers.Repository
	otp       domainusers.OTPRepository
	manpower  domainlistings.ManpowerRepository
	equipment domainlistings.EquipmentRepository
	transport domaintransport.Repository
	inventory domaininventory.Repository
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// connect database (driver-selected) and apply migrations
	conn, rp, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Fatal("database init error", zap.Error(err))
	}
	defer conn.Close()

	// init minio image store (optional)
	var images *minioStore.Store
	if cfg.Minio.Endpoint != "" {
		images, err = minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
	}

	clock := application.SystemClock{}

	// init soil analysis pipeline
	soilSvc := &appsoil.Service{
		Repo:    rp.soil,
		Advisor: aiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model),
		Stager:  evidence.NewTempFileStager(),
		Clock:   clock,
		Log:     logger.Named("soil"),
	}
	if cfg.AI.TimeoutSeconds > 0 {
		soilSvc.AdvisorTimeout = time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	}
	if images != nil {
		soilSvc.Archive = images
	}

	deps := httpserver.Deps{
		Soil:      soilSvc,
		Users:     &appusers.Service{Repo: rp.users, OTP: rp.otp, Clock: clock, Log: logger.Named("users")},
		Listings:  &applistings.Service{Manpower: rp.manpower, Equipment: rp.equipment, Clock: clock},
		Transport: &apptransport.Service{Repo: rp.transport, Clock: clock},
		Inventory: &appinventory.Service{Repo: rp.inventory, Clock: clock},
		Weather:   &appweather.Service{Provider: weatherClient.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL), Log: logger.Named("weather")},
		Log:       logger.Named("http"),

		CORSOrigins:  cfg.CORS.AllowedOrigins,
		RateCapacity: cfg.RateLimit.Capacity,
		RateRefill:   cfg.RateLimit.RefillRate,
		HealthChecks: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: conn},
		},
	}
	if images != nil {
		deps.Images = images
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // advisory calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Logging.Format == "text" {
		zc = zap.NewDevelopmentConfig()
	}
	var level zap.AtomicLevel
	switch cfg.Logging.Level {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zc.Level = level
	return zc.Build()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, repos, error) {
	switch cfg.Database.Driver {
	case "postgres":
		conn, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, repos{}, fmt.Errorf("postgres connect: %w", err)
		}
		if err := dbmigrate.Migrate(conn, "postgres"); err != nil {
			conn.Close()
			return nil, repos{}, err
		}
		return conn, repos{
			soil:      postgresp.NewSoilAnalysisRepository(conn),
			users:     postgresp.NewUserRepository(conn),
			otp:       postgresp.NewOTPRepository(conn),
			manpower:  postgresp.NewManpowerRepository(conn),
			equipment: postgresp.NewEquipmentRepository(conn),
			transport: postgresp.NewTransportRepository(conn),
			inventory: postgresp.NewInventoryRepository(conn),
		}, nil
	default:
		conn, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, repos{}, fmt.Errorf("mysql connect: %w", err)
		}
		if err := dbmigrate.Migrate(conn, "mysql"); err != nil {
			conn.Close()
			return nil, repos{}, err
		}
		return conn, repos{
			soil:      mysqlp.NewSoilAnalysisRepository(conn),
			users:     mysqlp.NewUserRepository(conn),
			otp:       mysqlp.NewOTPRepository(conn),
			manpower:  mysqlp.NewManpowerRepository(conn),
			equipment: mysqlp.NewEquipmentRepository(conn),
			transport: mysqlp.NewTransportRepository(conn),
			inventory: mysqlp.NewInventoryRepository(conn),
		}, nil
	}
}
