package tutor

import (
	"context"
	"strings"
	"time"

	"LocalLearn/internal/ai"
	"LocalLearn/internal/lang"
	imgproc "LocalLearn/internal/service/image"

	"go.uber.org/zap"
)

// PlaceholderExplanation возвращается, если модель ответила пустым текстом.
const PlaceholderExplanation = "No explanation generated. Please try again."

const imageTopicPrompt = "This is a photo of a school textbook page. Reply with only the name of the main science topic on the page, in English, without any other words."

// Request запрос объяснения от UI.
type Request struct {
	Topic    string
	Language lang.Language
	Simplify bool
}

// ClientFactory создаёт клиента генерации текста под конкретный ключ.
type ClientFactory func(ctx context.Context, provider, apiKey, model string) (ai.Client, error)

// Tutor генерирует объяснения. Между вызовами состояния не держит:
// ключ проверяется и клиент создаётся на каждый запрос.
type Tutor struct {
	provider  string
	apiKey    string
	model     string
	newClient ClientFactory
	images    *imgproc.Processor
	logger    *zap.SugaredLogger
}

// New создаёт Tutor. newClient == nil: используется ai.NewClient.
func New(provider, apiKey, model string, newClient ClientFactory, logger *zap.SugaredLogger) *Tutor {
	if newClient == nil {
		newClient = ai.NewClient
	}
	return &Tutor{
		provider:  normalizeProvider(provider),
		apiKey:    strings.TrimSpace(apiKey),
		model:     model,
		newClient: newClient,
		images:    imgproc.NewProcessor(),
		logger:    logger,
	}
}

// Explain возвращает объяснение темы. Ошибки: *ConfigurationError, *CredentialFormatError, *UpstreamError.
func (t *Tutor) Explain(ctx context.Context, req Request) (string, error) {
	client, err := t.client(ctx)
	if err != nil {
		return "", err
	}

	instructions := Compose(req.Topic, req.Language, req.Simplify)
	started := time.Now()
	out, err := client.Complete(ctx, instructions, req.Topic)
	if err != nil {
		if t.logger != nil {
			t.logger.Errorw("Text generation failed", "provider", t.provider, "language", req.Language, "error", err)
		}
		return "", &UpstreamError{Err: err}
	}
	if t.logger != nil {
		t.logger.Infow("Explanation generated", "provider", t.provider, "language", req.Language,
			"simplify", req.Simplify, "chars", len(out), "took", time.Since(started).String())
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return PlaceholderExplanation, nil
	}
	return out, nil
}

// TopicFromImage просит модель назвать тему по фото страницы учебника.
// Провайдер должен уметь работать с изображениями (ai.ImageReader).
func (t *Tutor) TopicFromImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	client, err := t.client(ctx)
	if err != nil {
		return "", err
	}
	reader, ok := client.(ai.ImageReader)
	if !ok {
		return "", &UpstreamError{Err: errUnsupportedImages(t.provider)}
	}
	// Уменьшаем фото перед отправкой; не получилось: шлём оригинал
	if p, err := t.images.Process(image); err == nil {
		image, mimeType = p.Data, p.MimeType
	} else if t.logger != nil {
		t.logger.Warnw("Failed to downscale textbook image", "mime", mimeType, "error", err)
	}
	out, err := reader.ReadImage(ctx, imageTopicPrompt, image, mimeType)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	return strings.TrimSpace(out), nil
}

func (t *Tutor) client(ctx context.Context) (ai.Client, error) {
	if err := ValidateCredential(t.provider, t.apiKey); err != nil {
		if t.logger != nil {
			t.logger.Warnw("Text generation credential rejected", "provider", t.provider, "error", err)
		}
		return nil, err
	}
	client, err := t.newClient(ctx, t.provider, t.apiKey, t.model)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return client, nil
}
