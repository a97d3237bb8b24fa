package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/az3l1t/analysis-platform/pkg/common/config"
	"github.com/az3l1t/analysis-platform/pkg/common/database"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/middleware"
	"github.com/az3l1t/analysis-platform/pkg/common/queue"
	"github.com/az3l1t/analysis-platform/pkg/emiascache"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	cache := emiascache.NewRepository(database.GetRedis(), cfg.CacheSavingMinutes)
	listener := emiascache.NewListener(cache)
	lookup := emiascache.NewService(cache)

	consumer := queue.NewConsumer(cfg.QueueSendName, cfg.KafkaGroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Consume(ctx, listener.HandleMessage); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Fatal("Consumer error")
		}
	}()

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
	emiascache.NewHTTPHandler(lookup).Register(api)

	handler := middleware.Logging(middleware.Recovery(router))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ConsumerPort),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ConsumerPort,
		}).Info("EMIAS Consumer started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down EMIAS Consumer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	if err := database.CloseRedis(); err != nil {
		logger.Log.WithError(err).Error("failed to close redis")
	}

	logger.Log.Info("EMIAS Consumer stopped")
}
