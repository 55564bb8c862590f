package audiofile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Префиксы временных файлов синтеза.
const (
	PrefixRemote  = "tts_"
	PrefixOffline = "tts_offline_"
)

// NewPath возвращает уникальный путь вида <dir>/<prefix><uuid без дефисов><ext>.
// Пустой dir: системная временная директория.
func NewPath(dir, prefix, ext string) string {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	name := prefix + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	return filepath.Join(dir, name)
}

// Remove удаляет файл; отсутствие файла ошибкой не считается.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Holder владеет файлом текущего аудио в рамках одной логической сессии (вкладка, REPL, HTTP-запрос).
// Новый файл вытесняет предыдущий, Close удаляет последний. Ошибки удаления только логируются.
type Holder struct {
	mu      sync.Mutex
	current string
	logger  *zap.SugaredLogger
}

func NewHolder(logger *zap.SugaredLogger) *Holder { return &Holder{logger: logger} }

// Current путь текущего файла или пустая строка.
func (h *Holder) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Replace принимает владение path и удаляет предыдущий файл, если он другой.
func (h *Holder) Replace(path string) {
	h.mu.Lock()
	prev := h.current
	h.current = path
	h.mu.Unlock()

	if prev != "" && prev != path {
		h.remove(prev)
	}
}

// Close удаляет текущий файл. Повторный вызов безопасен.
func (h *Holder) Close() error {
	h.mu.Lock()
	prev := h.current
	h.current = ""
	h.mu.Unlock()

	h.remove(prev)
	return nil
}

func (h *Holder) remove(path string) {
	if err := Remove(path); err != nil && h.logger != nil {
		h.logger.Warnw("Failed to remove superseded audio file", "path", path, "error", err)
	}
}
