package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anhkiniem/memories-service/internal/models"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func TestSaveThenList(t *testing.T) {
	store := newTestStore(t)

	content := []byte("fake png bytes")
	written, err := store.Save("1700000000000-1-photo.png", strings.NewReader(string(content)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("Save wrote %d bytes, want %d", written, len(content))
	}

	memories, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(memories) != 1 {
		t.Fatalf("expected 1 memory, got %d", len(memories))
	}
	m := memories[0]
	if m.Filename != "1700000000000-1-photo.png" {
		t.Errorf("unexpected filename %q", m.Filename)
	}
	if m.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", m.Size, len(content))
	}
	if m.Type != models.TypeImage {
		t.Errorf("type = %q, want image", m.Type)
	}
	if m.Title != "Kỷ niệm photo" {
		t.Errorf("title = %q", m.Title)
	}
}

func TestSave_NoPartFileLeftBehind(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save("a.png", strings.NewReader("ok")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save("b.png", failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}

	entries, err := os.ReadDir(store.BaseDir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".part") {
			t.Errorf("part file survived: %s", e.Name())
		}
		if strings.HasPrefix(e.Name(), "b.png") {
			t.Errorf("failed upload left %s behind", e.Name())
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream broke")
}

func TestSave_RejectsPathLikeNames(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"", "../escape.png", "a/b.png", `a\b.png`} {
		if _, err := store.Save(name, strings.NewReader("x")); err == nil {
			t.Errorf("Save(%q) accepted an unsafe name", name)
		}
	}
}

func TestList_OrderIsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"1-1-first.png", "2-2-second.png", "3-3-third.png"} {
		path := filepath.Join(store.BaseDir(), name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, ts, ts); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	memories, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"3-3-third.png", "2-2-second.png", "1-1-first.png"}
	if len(memories) != len(want) {
		t.Fatalf("got %d memories, want %d", len(memories), len(want))
	}
	for i, name := range want {
		if memories[i].Filename != name {
			t.Errorf("position %d: got %q, want %q", i, memories[i].Filename, name)
		}
	}
}

func TestList_EmptyAndAbsentDirectory(t *testing.T) {
	store := newTestStore(t)
	memories, err := store.List()
	if err != nil {
		t.Fatalf("List on empty dir: %v", err)
	}
	if len(memories) != 0 {
		t.Errorf("expected empty listing, got %d entries", len(memories))
	}

	gone := &DiskStore{baseDir: filepath.Join(t.TempDir(), "never-created")}
	memories, err = gone.List()
	if err != nil {
		t.Fatalf("List on absent dir: %v", err)
	}
	if len(memories) != 0 {
		t.Errorf("expected empty listing for absent dir, got %d entries", len(memories))
	}
}

func TestList_SkipsPartFilesAndSubdirectories(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(filepath.Join(store.BaseDir(), "keep.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.BaseDir(), "mid-upload.png.abc123.part"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(store.BaseDir(), "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	memories, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(memories) != 1 || memories[0].Filename != "keep.png" {
		t.Errorf("expected only keep.png, got %+v", memories)
	}
}

type brokenDirEntry struct {
	name string
}

func (e brokenDirEntry) Name() string               { return e.name }
func (e brokenDirEntry) IsDir() bool                { return false }
func (e brokenDirEntry) Type() fs.FileMode          { return 0 }
func (e brokenDirEntry) Info() (fs.FileInfo, error) { return nil, errors.New("stat failed") }

func TestMemoryFromEntry_SkipsUnreadableMetadata(t *testing.T) {
	// An entry whose metadata cannot be read (deleted between ReadDir and
	// stat, broken mount) is skipped, not surfaced as a listing failure.
	if _, ok := memoryFromEntry(brokenDirEntry{name: "racing.png"}); ok {
		t.Fatal("expected entry with unreadable metadata to be skipped")
	}

	store := newTestStore(t)
	if err := os.WriteFile(filepath.Join(store.BaseDir(), "fine.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(store.BaseDir())
	if err != nil {
		t.Fatal(err)
	}
	memory, ok := memoryFromEntry(entries[0])
	if !ok {
		t.Fatal("expected healthy entry to convert")
	}
	if memory.Filename != "fine.png" {
		t.Errorf("filename = %q", memory.Filename)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save("gone.png", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("gone.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("gone.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete("never-existed.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete of absent file = %v, want ErrNotFound", err)
	}
}

func TestDelete_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	outside := filepath.Join(filepath.Dir(store.BaseDir()), "victim.txt")
	if err := os.WriteFile(outside, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"..", "../victim.txt", "a/../../victim.txt", `..\victim.txt`} {
		if err := store.Delete(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) = %v, want ErrNotFound", name, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside storage directory was touched: %v", err)
	}
}

func TestResolve(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save("here.png", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	path, err := store.Resolve("here.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Resolve returned relative path %q", path)
	}

	if _, err := store.Resolve("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve of absent file = %v, want ErrNotFound", err)
	}
	if _, err := store.Resolve("../secret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve of traversal name = %v, want ErrNotFound", err)
	}
}
