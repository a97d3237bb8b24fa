package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/az3l1t/analysis-platform/pkg/analysis"
	"github.com/az3l1t/analysis-platform/pkg/common/auth"
	"github.com/az3l1t/analysis-platform/pkg/common/config"
	"github.com/az3l1t/analysis-platform/pkg/common/database"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/middleware"
	"github.com/az3l1t/analysis-platform/pkg/common/queue"
	"github.com/az3l1t/analysis-platform/pkg/emias"
	"github.com/az3l1t/analysis-platform/pkg/messaging"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := analysis.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate analysis tables")
	}

	resultsProducer := queue.NewProducer(cfg.QueueSendName)
	defer resultsProducer.Close()

	notificationsProducer := queue.NewProducer(cfg.NotificationQueueName)
	defer notificationsProducer.Close()

	publisher := messaging.NewPublisher(resultsProducer, notificationsProducer)

	templates, err := messaging.LoadTemplates(cfg.NotificationTemplatesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to default notification templates")
	}

	messageService := messaging.NewService(repo, publisher, templates)
	emiasClient := emias.NewClient(cfg.EmiasURL, cfg.EmiasRequestTimeout)
	analysisService := analysis.NewService(repo, messageService, emiasClient)

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize jwt manager")
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Authenticate(jwtManager))
	analysis.NewHTTPHandler(analysisService).Register(api)
	messaging.NewHTTPHandler(messageService).Register(api)

	handler := middleware.Logging(
		middleware.Recovery(
			middleware.CORS(
				middleware.BodyLimit(cfg.MaxRequestBody)(router),
			),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Analysis Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Analysis Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	if err := database.ClosePostgres(); err != nil {
		logger.Log.WithError(err).Error("failed to close postgres")
	}

	logger.Log.Info("Analysis Service stopped")
}
