package storage

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anhkiniem/memories-service/internal/models"
	"github.com/google/uuid"
)

// DiskStore implements Store on a single flat directory of media files.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the storage directory if it does not exist yet and
// returns a store rooted at it.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory this store is rooted at.
func (d *DiskStore) BaseDir() string {
	return d.baseDir
}

// Save streams r into the storage directory under name and returns the byte
// count written. The bytes go to a temporary part file first and are renamed
// into place, so a failed or aborted upload never leaves a partial file under
// the final name.
func (d *DiskStore) Save(name string, r io.Reader) (int64, error) {
	if unsafeName(name) {
		return 0, fmt.Errorf("invalid storage name %q", name)
	}

	// Recreate the directory if it vanished after startup.
	if err := os.MkdirAll(d.baseDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create storage directory: %w", err)
	}

	partPath := filepath.Join(d.baseDir, name+"."+uuid.New().String()+".part")
	dst, err := os.Create(partPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(partPath)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(partPath, filepath.Join(d.baseDir, name)); err != nil {
		os.Remove(partPath)
		return 0, fmt.Errorf("failed to finalize file: %w", err)
	}
	return written, nil
}

// List returns every stored memory, most recently created first. An absent or
// empty storage directory yields an empty slice. Entries whose metadata cannot
// be read are skipped so one bad file never fails the whole listing.
func (d *DiskStore) List() ([]models.Memory, error) {
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Memory{}, nil
		}
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	memories := make([]models.Memory, 0, len(entries))
	for _, entry := range entries {
		if memory, ok := memoryFromEntry(entry); ok {
			memories = append(memories, memory)
		}
	}

	sort.Slice(memories, func(i, j int) bool {
		return memories[i].Created.After(memories[j].Created)
	})
	return memories, nil
}

// memoryFromEntry derives one listing record from a directory entry. Part
// files and subdirectories are filtered out; entries whose metadata cannot be
// read (deleted mid-listing, broken mounts) are logged and skipped so a
// single bad entry never fails the whole listing.
func memoryFromEntry(entry fs.DirEntry) (models.Memory, bool) {
	if entry.IsDir() || strings.HasSuffix(entry.Name(), ".part") {
		return models.Memory{}, false
	}
	info, err := entry.Info()
	if err != nil {
		log.Printf("Warning: skipping %s: %v", entry.Name(), err)
		return models.Memory{}, false
	}
	return models.Memory{
		Filename: entry.Name(),
		Type:     TypeFromName(entry.Name()),
		Title:    TitleFromStorageName(entry.Name()),
		Date:     info.ModTime().Format("2/1/2006"),
		Size:     info.Size(),
		Created:  info.ModTime(),
	}, true
}

// Delete removes the named file. Missing files and unsafe names both report
// ErrNotFound; the loser of two racing deletes sees ErrNotFound as well.
func (d *DiskStore) Delete(name string) error {
	if unsafeName(name) {
		return ErrNotFound
	}
	if err := os.Remove(filepath.Join(d.baseDir, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Resolve maps a stored name to an absolute path for serving, confined to the
// storage directory.
func (d *DiskStore) Resolve(name string) (string, error) {
	if unsafeName(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(d.baseDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	return filepath.Abs(path)
}

// unsafeName rejects anything that could escape the storage directory. Stored
// names are opaque keys, never paths.
func unsafeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return true
	}
	return strings.ContainsAny(name, `/\`)
}
