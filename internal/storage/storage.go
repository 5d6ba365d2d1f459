package storage

import (
	"errors"
	"io"

	"github.com/anhkiniem/memories-service/internal/models"
)

// ErrNotFound is returned when a named file does not exist in the store, or
// when the name is rejected as unsafe.
var ErrNotFound = errors.New("file not found")

// Store defines the contract for all storage implementations. The storage
// directory is the sole source of truth: List re-derives everything from disk
// on every call, so there is no index to go stale.
type Store interface {
	Save(name string, r io.Reader) (int64, error)
	List() ([]models.Memory, error)
	Delete(name string) error
	Resolve(name string) (string, error)
}
