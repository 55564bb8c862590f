package translate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"LocalLearn/internal/service/tts"

	"go.uber.org/zap"
)

func TestSplitText_RespectsLimit(t *testing.T) {
	text := strings.Repeat("photosynthesis makes food for plants ", 10) + "End. Next sentence here!"
	chunks := splitText(text, MaxChunk)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if n := len([]rune(c)); n == 0 || n > MaxChunk {
			t.Fatalf("chunk length %d out of range: %q", n, c)
		}
	}
	if got := strings.Join(chunks, " "); got != strings.Join(strings.Fields(text), " ") {
		t.Fatalf("chunks lost words:\n%s", got)
	}
}

func TestSplitText_SentenceBoundaryAndLongWords(t *testing.T) {
	chunks := splitText("पानी गरम है। चाय पियो।", MaxChunk)
	if len(chunks) != 2 || chunks[0] != "पानी गरम है।" {
		t.Fatalf("unexpected chunks %q", chunks)
	}
	long := strings.Repeat("a", 250)
	chunks = splitText(long, MaxChunk)
	if len(chunks) != 3 || len(chunks[2]) != 50 {
		t.Fatalf("unexpected long-word chunks: %d", len(chunks))
	}
	if len(splitText("   ", MaxChunk)) != 0 {
		t.Fatalf("blank text must give no chunks")
	}
}

func TestSave_ConcatenatesChunks(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tl") != "hi" || r.URL.Query().Get("client") != "tw-ob" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		queries = append(queries, r.URL.Query().Get("idx"))
		_, _ = w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "out.mp3")
	if err := c.Save(context.Background(), "One sentence. Two sentence.", "hi", false, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[0][1]" {
		t.Fatalf("unexpected body %q", data)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(queries))
	}
}

func TestSave_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	err := c.Save(context.Background(), "hello", "en", false, filepath.Join(t.TempDir(), "x.mp3"))
	if !errors.Is(err, tts.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if tts.Classify(err) != tts.FailureRateLimited {
		t.Fatalf("classifier must see rate limit")
	}
}

func TestSave_ServerErrorIsOther(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	err := c.Save(context.Background(), "hello", "xx", false, filepath.Join(t.TempDir(), "x.mp3"))
	if err == nil || tts.Classify(err) != tts.FailureOther {
		t.Fatalf("expected other failure, got %v", err)
	}
}

func TestSave_ConnectionRefusedIsNetwork(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c := New("http://"+addr+"/translate_tts", 2*time.Second, nil)
	err = c.Save(context.Background(), "network topics", "en", false, filepath.Join(t.TempDir(), "x.mp3"))
	if !errors.Is(err, tts.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if strings.Contains(err.Error(), "network+topics") {
		t.Fatalf("error must not carry the request URL: %v", err)
	}
}
