package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anhkiniem/memories-service/internal/api"
	"github.com/anhkiniem/memories-service/internal/api/handlers"
	"github.com/anhkiniem/memories-service/internal/configuration"
	"github.com/anhkiniem/memories-service/internal/services"
	"github.com/anhkiniem/memories-service/internal/storage"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {
	cfg := configuration.Load()

	store, err := storage.NewDiskStore(cfg.Storage.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Event publishing is optional; the service works fine without a broker.
	var events *services.Publisher
	if cfg.NATSURL != "" {
		events, err = services.ConnectPublisher(cfg.NATSURL)
		if err != nil {
			log.Printf("Warning: failed to connect to NATS: %v", err)
			log.Println("Continuing without event publishing...")
		}
	}

	setupGracefulShutdown(events)

	r := gin.Default()
	r.MaxMultipartMemory = handlers.MaxUploadBytes

	if cfg.Tracing.Enabled {
		tracer.Start(tracer.WithService("memories-service"))
		defer tracer.Stop()
		r.Use(gintrace.Middleware("memories-service"))
	}

	api.RegisterRoutes(r, handlers.NewMemoryHandler(store, events), cfg.Storage.PublicDir)

	log.Printf("Server starting on :%s (storage: %s)", cfg.Server.Port, cfg.Storage.Dir)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupGracefulShutdown(events *services.Publisher) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		// Every operation writes straight to disk, nothing needs flushing.
		events.Close()
		os.Exit(0)
	}()
}
