package ai

import (
	"context"
	"fmt"
	"strings"
)

// Поддерживаемые провайдеры генерации текста.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

// Client интерфейс для генерации текста. Все реализации должны быть взаимозаменяемыми.
// instructions уходят системной инструкцией, text: сообщением пользователя.
type Client interface {
	Complete(ctx context.Context, instructions string, text string) (string, error)
}

// ImageReader дополнительно умеет отвечать на вопрос по изображению.
type ImageReader interface {
	ReadImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// NewClient создаёт клиента выбранного провайдера. model может быть пустым: тогда берётся дефолт провайдера.
func NewClient(ctx context.Context, provider, apiKey, model string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, apiKey, model)
	case ProviderOpenAI:
		return NewTextClient(apiKey, model), nil
	case ProviderStub:
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unknown text provider %q", provider)
	}
}
