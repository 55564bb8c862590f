package audiofile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestNewPath_Unique(t *testing.T) {
	dir := t.TempDir()
	a := NewPath(dir, PrefixRemote, ".mp3")
	b := NewPath(dir, PrefixRemote, ".mp3")
	if a == b {
		t.Fatalf("paths must differ: %s", a)
	}
	base := filepath.Base(a)
	if !strings.HasPrefix(base, PrefixRemote) || !strings.HasSuffix(base, ".mp3") || strings.Contains(base, "-") {
		t.Fatalf("unexpected name %q", base)
	}
	if filepath.Dir(a) != dir {
		t.Fatalf("unexpected dir %q", filepath.Dir(a))
	}
}

func TestHolder_ReplaceRemovesPrevious(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "tts_1.mp3")
	second := filepath.Join(dir, "tts_2.mp3")
	touch(t, first)
	touch(t, second)

	h := NewHolder(zap.NewNop().Sugar())
	h.Replace(first)
	h.Replace(second)

	if exists(first) {
		t.Fatalf("superseded file must be removed")
	}
	if !exists(second) || h.Current() != second {
		t.Fatalf("current file must be kept")
	}

	// повторная передача того же файла не удаляет его
	h.Replace(second)
	if !exists(second) {
		t.Fatalf("same path must not be removed")
	}

	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if exists(second) || h.Current() != "" {
		t.Fatalf("close must remove current file")
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestHolder_MissingFileIsNotFatal(t *testing.T) {
	h := NewHolder(nil)
	h.Replace(filepath.Join(t.TempDir(), "gone.mp3"))
	h.Replace("")
	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCleaner_RemovesOnlyStaleSynthesisFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "tts_old.mp3")
	staleWav := filepath.Join(dir, "tts_offline_old.wav")
	fresh := filepath.Join(dir, "tts_new.mp3")
	foreign := filepath.Join(dir, "notes.mp3")
	for _, p := range []string{stale, staleWav, fresh, foreign} {
		touch(t, p)
	}
	old := time.Now().Add(-2 * time.Hour)
	for _, p := range []string{stale, staleWav, foreign} {
		if err := os.Chtimes(p, old, old); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	removed := NewCleaner(zap.NewNop().Sugar()).Clean(dir, time.Hour)
	if removed != 2 {
		t.Fatalf("removed=%d want 2", removed)
	}
	if exists(stale) || exists(staleWav) {
		t.Fatalf("stale files must be removed")
	}
	if !exists(fresh) || !exists(foreign) {
		t.Fatalf("fresh and foreign files must stay")
	}
}

func TestCleaner_DisabledWithoutTTL(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tts_x.mp3")
	touch(t, p)
	if n := NewCleaner(nil).Clean(dir, 0); n != 0 || !exists(p) {
		t.Fatalf("ttl=0 must disable cleaning")
	}
}
