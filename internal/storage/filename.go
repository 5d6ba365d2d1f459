package storage

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/anhkiniem/memories-service/internal/models"
)

// TitlePrefix is prepended to every derived display title.
const TitlePrefix = "Kỷ niệm "

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	pathSeparators = strings.NewReplacer("/", "_", `\`, "_")
)

// GenerateStorageName derives a collision-resistant storage name from the
// client-supplied filename: <unix-millis>-<random>-<sanitized-original>.
// The millisecond prefix keeps rough chronological order even when filesystem
// timestamps are unavailable; the random draw covers two uploads landing in
// the same millisecond. Path separators are neutralized along with
// whitespace: backslashes survive Go's multipart Base-cleaning on Linux, and
// the result must always be a plain storable name.
func GenerateStorageName(originalName string) string {
	sanitized := whitespaceRuns.ReplaceAllString(strings.TrimSpace(originalName), "_")
	sanitized = pathSeparators.Replace(sanitized)
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), sanitized)
}

// TitleFromStorageName recovers the display title from a generated storage
// name: drop the timestamp and random segments, strip the extension, prefix.
// Must stay the exact inverse of GenerateStorageName.
func TitleFromStorageName(name string) string {
	base := name
	if parts := strings.Split(name, "-"); len(parts) > 2 {
		base = strings.Join(parts[2:], "-")
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return TitlePrefix + base
}

// Extensions accepted for display. Broader than the upload allow-list so that
// files placed in the directory by older versions still classify.
var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".webp": true, ".svg": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
		".flv": true, ".webm": true, ".mkv": true,
	}
)

// TypeFromName classifies a stored file as image, video or unknown from its
// extension.
func TypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExtensions[ext]:
		return models.TypeImage
	case videoExtensions[ext]:
		return models.TypeVideo
	default:
		return models.TypeUnknown
	}
}
