package handlers

import (
	"time"

	"github.com/anhkiniem/memories-service/internal/services"
	"github.com/anhkiniem/memories-service/internal/storage"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// MemoryHandler serves the gallery endpoints over a storage backend. The
// events publisher may be nil when NATS is not configured.
type MemoryHandler struct {
	store     storage.Store
	events    *services.Publisher
	startedAt time.Time
}

func NewMemoryHandler(store storage.Store, events *services.Publisher) *MemoryHandler {
	return &MemoryHandler{
		store:     store,
		events:    events,
		startedAt: time.Now(),
	}
}
