package google

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"LocalLearn/internal/config"
	"LocalLearn/internal/service/tts"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// slowRate множитель скорости для замедленной речи.
const slowRate = 0.75

// Client реализует синтез речи через Google Cloud Text-to-Speech и сохраняет MP3 в файл.
type Client struct {
	cfg    config.GoogleTTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.GoogleTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Save выполняет запрос к Google TTS и пишет аудио в path.
func (c *Client) Save(ctx context.Context, text string, locale string, slow bool, path string) error {
	// Создаём клиента SDK
	ttsClient, err := gctts.NewClient(ctx)
	if err != nil {
		return mapError(err)
	}
	defer ttsClient.Close()

	voice := &ttspb.VoiceSelectionParams{
		LanguageCode: languageCode(locale),
		Name:         strings.TrimSpace(c.cfg.Voice),
	}

	rate := c.cfg.SpeakingRate
	if rate <= 0 {
		rate = 1.0
	}
	if slow {
		rate *= slowRate
	}
	// Только MP3
	audio := &ttspb.AudioConfig{
		AudioEncoding: ttspb.AudioEncoding_MP3,
		SpeakingRate:  rate,
		Pitch:         c.cfg.Pitch,
		VolumeGainDb:  c.cfg.VolumeGainDb,
	}
	if ep := strings.TrimSpace(c.cfg.EffectsProfileID); ep != "" {
		audio.EffectsProfileId = []string{ep}
	}

	req := &ttspb.SynthesizeSpeechRequest{
		Input:       &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}},
		Voice:       voice,
		AudioConfig: audio,
	}
	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, req)
	if err != nil {
		return mapError(err)
	}
	if c.logger != nil {
		c.logger.Infow("Google TTS synthesize completed", "language", voice.LanguageCode, "took", time.Since(started).String())
	}

	return os.WriteFile(path, resp.GetAudioContent(), 0o600)
}

// languageCode дополняет короткий код регионом Индии: hi → hi-IN, en → en-IN.
func languageCode(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "en-IN"
	}
	if strings.Contains(locale, "-") {
		return locale
	}
	return locale + "-IN"
}

// mapError переводит gRPC-коды в ошибки, которые понимает tts.Classify.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return fmt.Errorf("google tts: %w: %v", tts.ErrRateLimited, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("google tts: %w: %v", tts.ErrNetwork, err)
	default:
		return fmt.Errorf("google tts: %w", err)
	}
}
