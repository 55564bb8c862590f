package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"LocalLearn/internal/config"
	"LocalLearn/internal/service/audiofile"

	"go.uber.org/zap"
)

// minInterval нижняя граница периода чистки.
const minInterval = 10 * time.Second

// Scheduler периодически удаляет забытые временные аудиофайлы старше TTL.
// Выключен, если AUDIO_TTL_SECONDS <= 0.
type Scheduler struct {
	cleaner  *audiofile.Cleaner
	dir      string
	ttl      time.Duration
	interval time.Duration
	logger   *zap.SugaredLogger

	running atomic.Bool
}

func New(cfg *config.Config, logger *zap.SugaredLogger) *Scheduler {
	ttl := time.Duration(cfg.AudioTTLSeconds) * time.Second
	// Проверяем в несколько раз чаще TTL, но не чаще minInterval
	interval := max(ttl/4, minInterval)
	return &Scheduler{
		cleaner:  audiofile.NewCleaner(logger),
		dir:      cfg.AudioTempDir,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Enabled() bool { return s.ttl > 0 }

// Run блокируется до отмены контекста. Первая чистка сразу при старте.
// Повторный параллельный Run ничего не делает.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	defer s.running.Store(false)

	if s.logger != nil {
		s.logger.Infow("Audio cleanup started", "dir", s.dir, "ttl", s.ttl.String(), "interval", s.interval.String())
	}
	s.cleaner.Clean(s.dir, s.ttl)

	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.cleaner.Clean(s.dir, s.ttl)
		}
	}
}
