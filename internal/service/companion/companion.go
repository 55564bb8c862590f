package companion

import (
	"context"
	"errors"
	"strings"

	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/audiofile"
	"LocalLearn/internal/service/tts"
	"LocalLearn/internal/service/tutor"

	"go.uber.org/zap"
)

// ErrNoTopic: «объяснить проще» без предыдущей темы.
var ErrNoTopic = errors.New("no topic to simplify; explain a topic first")

type Explainer interface {
	Explain(ctx context.Context, req tutor.Request) (string, error)
}

type Speaker interface {
	Speak(ctx context.Context, text string, language lang.Language) (*tts.Audio, tts.Outcome)
}

// Companion одна логическая сессия пользователя: текущая тема, язык и последний аудиоклип.
// Новый клип вытесняет и удаляет файл предыдущего. Вызовы последовательные.
type Companion struct {
	tutor          Explainer
	speaker        Speaker
	holder         *audiofile.Holder
	speechMaxChars int
	logger         *zap.SugaredLogger

	language   lang.Language
	topic      string
	simplified bool
	audio      *tts.Audio
}

// NewCompanion создаёт сессию. После использования нужен Close.
func NewCompanion(t Explainer, s Speaker, speechMaxChars int, language lang.Language, logger *zap.SugaredLogger) *Companion {
	if language == "" {
		language = lang.Hindi
	}
	return &Companion{
		tutor:          t,
		speaker:        s,
		holder:         audiofile.NewHolder(logger),
		speechMaxChars: speechMaxChars,
		logger:         logger,
		language:       language,
	}
}

func (c *Companion) Language() lang.Language { return c.language }

func (c *Companion) Topic() string { return c.topic }

func (c *Companion) Simplified() bool { return c.simplified }

// SetLanguage меняет язык для следующих запросов.
func (c *Companion) SetLanguage(l lang.Language) { c.language = l }

// Explain объясняет новую тему подробно и запоминает её.
func (c *Companion) Explain(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	text, err := c.tutor.Explain(ctx, tutor.Request{Topic: topic, Language: c.language})
	if err != nil {
		return "", err
	}
	c.topic = topic
	c.simplified = false
	return text, nil
}

// Simpler объясняет текущую тему проще.
func (c *Companion) Simpler(ctx context.Context) (string, error) {
	if c.topic == "" {
		return "", ErrNoTopic
	}
	text, err := c.tutor.Explain(ctx, tutor.Request{Topic: c.topic, Language: c.language, Simplify: true})
	if err != nil {
		return "", err
	}
	c.simplified = true
	return text, nil
}

// Speak озвучивает текст. Удачный результат вытесняет предыдущий клип сессии.
func (c *Companion) Speak(ctx context.Context, text string) (*tts.Audio, tts.Outcome) {
	audio, out := c.speaker.Speak(ctx, tts.Truncate(text, c.speechMaxChars), c.language)
	if audio != nil {
		c.holder.Replace(audio.Path)
		c.audio = audio
	}
	return audio, out
}

// Audio последний удачный клип сессии или nil.
func (c *Companion) Audio() *tts.Audio { return c.audio }

// Clear сбрасывает тему и удаляет текущий клип.
func (c *Companion) Clear() {
	c.topic = ""
	c.simplified = false
	c.audio = nil
	_ = c.holder.Close()
}

// Close освобождает временные файлы сессии.
func (c *Companion) Close() error {
	c.audio = nil
	return c.holder.Close()
}
