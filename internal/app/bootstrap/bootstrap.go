// Package bootstrap собирает зависимости приложения из конфигурации: логгер, генератор объяснений, синтез речи.
package bootstrap

import (
	"strings"

	"LocalLearn/internal/ai"
	"LocalLearn/internal/config"
	"LocalLearn/internal/service/tts"
	"LocalLearn/internal/service/tts/google"
	"LocalLearn/internal/service/tts/offline"
	"LocalLearn/internal/service/tts/player"
	"LocalLearn/internal/service/tts/translate"
	"LocalLearn/internal/service/tutor"

	"go.uber.org/zap"
)

// Сервисы онлайн-озвучки.
const (
	TTSTranslate = "translate"
	TTSGoogle    = "google"
)

// NewLogger dev-логгер в режиме дебага, иначе production.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func NewTutor(cfg *config.Config, logger *zap.SugaredLogger) *tutor.Tutor {
	return tutor.New(cfg.TextProvider, cfg.APIKey(), cfg.TextModel, ai.NewClient, logger)
}

// NewRemote выбирает онлайн-сервис по TTS_SERVICE; неизвестное значение: translate.
func NewRemote(cfg *config.Config, logger *zap.SugaredLogger) (tts.Remote, string) {
	service := strings.ToLower(strings.TrimSpace(cfg.TTSService))
	switch service {
	case TTSGoogle, "gcp", "cloud":
		return google.New(cfg.GoogleTTS, logger), TTSGoogle
	default:
		return translate.New(cfg.TranslateTTS.Endpoint, cfg.TranslateTTS.Timeout, logger), TTSTranslate
	}
}

// NewOffline офлайн-движок или nil, если он выключен в конфиге.
func NewOffline(cfg *config.Config) tts.Offline {
	if !cfg.OfflineTTS.Enabled {
		return nil
	}
	return offline.New(cfg.OfflineTTS.Binary, cfg.OfflineTTS.Speed)
}

func NewSpeaker(cfg *config.Config, logger *zap.SugaredLogger) *tts.Speaker {
	remote, service := NewRemote(cfg, logger)
	off := NewOffline(cfg)
	if logger != nil {
		logger.Infow("TTS selected", "service", service, "offline", off != nil)
	}
	return tts.NewSpeaker(remote, off, cfg.AudioTempDir, logger)
}

func NewPlayer(cfg *config.Config) *player.Default {
	return player.NewWithVolume(cfg.PlayerVolumeDB)
}
