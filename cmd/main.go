package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interior-catalog-service/internal/api"
	"interior-catalog-service/internal/config"
	"interior-catalog-service/internal/logging"
	"interior-catalog-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	defaultAppName = "InteriorCatalogService"
)

func main() {
	// .env is optional; variables may come from the environment directly.
	envErr := godotenv.Load()

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Error loading configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout).WithField("service", defaultAppName)
	if envErr != nil {
		logger.Info(".env file not found or error loading, relying on system environment variables")
	}
	logger.WithFields(logrus.Fields{
		"app_env":   cfg.AppEnv,
		"log_level": cfg.LogLevel,
		"db_driver": cfg.Postgres.Driver,
	}).Info("Configuration loaded")

	// --- Database Connection ---
	db, err := sqlx.Open(cfg.Postgres.Driver, cfg.Postgres.DSN())
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database connection")
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Postgres.ConnectTimeout)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		db.Close()
		logger.WithError(err).Fatal("Failed to ping database")
	}
	logger.WithFields(logrus.Fields{
		"host":           cfg.Postgres.Host,
		"database":       cfg.Postgres.DBName,
		"max_open_conns": cfg.Postgres.MaxOpenConns,
	}).Info("Database connection established")
	dbStore := store.NewPostgresStore(db, logger)

	// --- Initialize API Handlers ---
	httpAPIHandler := api.NewHTTPHandler(dbStore, dbStore, logger) // dbStore implements both interfaces
	grpcAPIHandler := api.NewGRPCHandler(dbStore, dbStore, logger)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger, cfg.HttpServer)
	registerHealthCheck(httpRouter, logger, dbStore)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.WithField("port", cfg.HttpServer.Port).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server ListenAndServe error")
		}
		logger.Info("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(logger, grpcAPIHandler)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		logger.WithError(err).WithField("port", cfg.GrpcServer.Port).Fatal("Failed to listen for gRPC")
	}

	go func() {
		logger.WithField("port", cfg.GrpcServer.Port).Info("gRPC server listening")
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.WithError(err).Fatal("gRPC server Serve error")
		}
		logger.Info("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, grpcServer, dbStore, shutdownComplete)

	<-shutdownComplete
	logger.Info("Service shutdown sequence finished")
}

func setupBaseMiddleware(router *chi.Mux, logger logrus.FieldLogger, cfg config.ServerConfig) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(middleware.Timeout(cfg.TimeoutRequest))
	logger.Info("Base HTTP middleware registered")
}

func registerHealthCheck(router *chi.Mux, logger logrus.FieldLogger, dbStore *store.PostgresStore) {
	healthPath := "/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbStatus := "healthy"
		if err := dbStore.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
			logger.WithError(err).Warn("Health check DB ping failed")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, the payload carries the database status
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"database":    dbStatus,
		})
	})
	logger.WithField("path", healthPath).Info("HTTP health check registered")
}

func setupGRPCServer(logger logrus.FieldLogger, grpcAPIHandler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(logging.UnaryServerInterceptor(logger)))

	api.RegisterCatalogServiceServer(s, grpcAPIHandler)
	logger.WithField("service", api.CatalogServiceName).Info("gRPC service registered")

	healthServer := health.NewServer()
	healthServer.SetServingStatus(api.CatalogServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	logger.Info("gRPC health check service registered")

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)
	logger.Info("gRPC reflection service registered")

	return s
}

func waitForShutdown(
	logger logrus.FieldLogger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	dbStore *store.PostgresStore,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.WithField("signal", receivedSignal.String()).Info("Starting graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	logger.Info("Attempting to gracefully shut down gRPC server")
	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	logger.Info("Attempting to gracefully shut down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP server graceful shutdown failed")
	} else {
		logger.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		logger.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		logger.WithError(shutdownCtx.Err()).Warn("gRPC server graceful shutdown timed out, forcing stop")
		grpcServer.Stop()
	}

	// Closes the underlying connection pool.
	if err := dbStore.Close(); err != nil {
		logger.WithError(err).Warn("Error closing database connection")
	}

	logger.Info("Graceful shutdown sequence completed")
}
