package audiofile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cleaner удаляет забытые временные аудиофайлы синтеза по TTL.
type Cleaner struct {
	logger *zap.SugaredLogger
}

func NewCleaner(logger *zap.SugaredLogger) *Cleaner { return &Cleaner{logger: logger} }

// Clean удаляет файлы tts_*.mp3 / tts_*.wav старше ttl из dir. Возвращает число удалённых.
func (c *Cleaner) Clean(dir string, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	if dir == "" {
		dir = os.TempDir()
	}

	deadline := time.Now().Add(-ttl)
	exts := []string{".mp3", ".wav"}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0
		}
		c.warn("Failed to read audio temp dir", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, PrefixRemote) {
			continue
		}
		if slices.IndexFunc(exts, func(ext string) bool { return strings.HasSuffix(lower, ext) }) == -1 {
			continue
		}
		fi, statErr := e.Info()
		if statErr != nil {
			c.warn("Failed to stat audio file", "name", name, "error", statErr)
			continue
		}
		if fi.ModTime().Before(deadline) {
			full := filepath.Join(dir, name)
			if err := os.Remove(full); err != nil {
				c.warn("Failed to remove stale audio file", "path", full, "error", err)
				continue
			}
			removed++
		}
	}
	if removed > 0 && c.logger != nil {
		c.logger.Infow("Stale audio files removed", "dir", dir, "removed", removed, "before", deadline.Format(time.RFC3339))
	}
	return removed
}

func (c *Cleaner) warn(msg string, kv ...any) {
	if c.logger != nil {
		c.logger.Warnw(msg, kv...)
	}
}
