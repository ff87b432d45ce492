// @title Pet Service API
// @version 1.0
// @description CRUD API for pet documents.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/config"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	petEvents "github.com/Kilat-Pet-Delivery/service-pet/internal/events"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, handler.ServiceName, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-pet",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
		zap.Bool("debug", cfg.Debug),
	)

	// Connect to the pet store
	store, closeStore, err := repository.Open(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to open pet store", zap.Error(err))
	}

	// Initialize Kafka producer
	var publisher application.EventPublisher
	var kafkaProducer *petEvents.Producer
	if cfg.KafkaConfig.Enabled {
		kafkaProducer = petEvents.NewProducer(cfg.KafkaConfig.Brokers, log)
		publisher = kafkaProducer
	}

	// Initialize application service
	petService := application.NewPetService(
		store,
		petDomain.NewIDCodec(cfg.Debug, log),
		publisher,
		log,
	)

	// Initialize and start adoption event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var adoptionConsumer *petEvents.AdoptionEventConsumer
	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "pet-service"
		adoptionConsumer = petEvents.NewAdoptionEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			petService,
			log,
		)

		go func() {
			log.Info("starting adoption event consumer", zap.String("group_id", groupID))
			if err := adoptionConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("adoption event consumer error", zap.Error(err))
			}
		}()
	} else {
		log.Info("kafka disabled; pet events are not published")
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(petService, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-pet...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	if adoptionConsumer != nil {
		if err := adoptionConsumer.Close(); err != nil {
			log.Error("failed to close adoption consumer", zap.Error(err))
		}
	}
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Error("failed to close kafka producer", zap.Error(err))
		}
	}
	if err := closeStore(shutdownCtx); err != nil {
		log.Error("failed to close pet store", zap.Error(err))
	}

	log.Info("service-pet stopped")
}
