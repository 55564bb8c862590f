package tts

import (
	"context"
	"errors"
)

// Remote абстракция онлайн-сервиса синтеза. Результат пишется в path собственной процедурой сохранения.
// locale: короткий код языка (hi, ta, en...), slow: замедленная речь.
type Remote interface {
	Save(ctx context.Context, text string, locale string, slow bool, path string) error
}

// Voice голос офлайн-движка.
type Voice struct {
	ID   string // то, что передаётся движку при выборе голоса
	Name string // человекочитаемое имя, по нему ищем язык
}

// Offline абстракция локального движка синтеза (WAV).
type Offline interface {
	// Available сообщает, установлен ли движок на хосте.
	Available() bool
	Voices(ctx context.Context) ([]Voice, error)
	// Save синтезирует text голосом voiceID (пустой: голос по умолчанию) в path.
	Save(ctx context.Context, text string, voiceID string, path string) error
}

// Ошибки, которые бэкенды оборачивают, чтобы классификатор не зависел от текста сообщения.
var (
	ErrRateLimited = errors.New("429 too many requests")
	ErrNetwork     = errors.New("network error")
	ErrEmptyAudio  = errors.New("audio file is empty")
)
