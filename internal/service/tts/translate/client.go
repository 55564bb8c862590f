package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"LocalLearn/internal/service/tts"

	"go.uber.org/zap"
)

// DefaultEndpoint публичный эндпоинт озвучки Google Translate (без ключа).
const DefaultEndpoint = "https://translate.google.com/translate_tts"

// MaxChunk лимит символов на один запрос к сервису.
const MaxChunk = 100

// Client синтезирует речь через Google Translate TTS и пишет MP3 в файл.
type Client struct {
	http     *http.Client
	endpoint string
	logger   *zap.SugaredLogger
}

// New создаёт клиента. Таймаут целиком на стороне http.Client.
func New(endpoint string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: endpoint,
		logger:   logger,
	}
}

// Save озвучивает text кусками не длиннее MaxChunk и склеивает MP3 в path.
func (c *Client) Save(ctx context.Context, text string, locale string, slow bool, path string) error {
	chunks := splitText(text, MaxChunk)
	if len(chunks) == 0 {
		return errors.New("translate tts: no text to speak")
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	started := time.Now()
	for i, chunk := range chunks {
		if err := c.fetch(ctx, out, chunk, locale, slow, i, len(chunks)); err != nil {
			return err
		}
	}
	if c.logger != nil {
		c.logger.Infow("Translate TTS completed", "locale", locale, "chunks", len(chunks), "took", time.Since(started).String())
	}
	return out.Close()
}

func (c *Client) fetch(ctx context.Context, w io.Writer, chunk, locale string, slow bool, idx, total int) error {
	speed := "1"
	if slow {
		speed = "0.3"
	}
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", locale)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(len([]rune(chunk))))
	q.Set("ttsspeed", speed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error содержит весь URL вместе с озвучиваемым текстом: оставляем только причину.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return fmt.Errorf("translate tts: %w: %v", tts.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("translate tts: %w", tts.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("translate tts error: status=%d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("translate tts: %w: read body: %v", tts.ErrNetwork, err)
	}
	return nil
}

// splitText режет текст по словам на куски не длиннее max рун.
// Конец предложения всегда закрывает кусок. Слова длиннее max режутся как есть.
func splitText(text string, max int) []string {
	var chunks []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= max:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
		if endsSentence(w) {
			flush()
		}
	}
	flush()
	return chunks
}

func endsSentence(w []rune) bool {
	if len(w) == 0 {
		return false
	}
	last := w[len(w)-1]
	switch last {
	case '.', '!', '?', '।', '॥', '؟', '۔':
		return true
	}
	return unicode.Is(unicode.Sentence_Terminal, last)
}
