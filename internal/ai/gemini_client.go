package ai

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel модель по умолчанию для объяснений.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient генерирует текст через Gemini API (ключ API, без Vertex).
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// generateContent вынесен в переменную, чтобы тесты могли подменить сетевой вызов.
var generateContent = func(c *genai.Client, ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.Models.GenerateContent(ctx, model, contents, cfg)
}

func (c *GeminiClient) Complete(ctx context.Context, instructions string, text string) (string, error) {
	if c.client == nil {
		return "", errors.New("nil gemini client")
	}
	var cfg *genai.GenerateContentConfig
	if strings.TrimSpace(instructions) != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions}}},
		}
	}
	resp, err := generateContent(c.client, ctx, c.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: text}},
		},
	}, cfg)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// ReadImage отправляет изображение (inline) вместе с вопросом.
func (c *GeminiClient) ReadImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if c.client == nil {
		return "", errors.New("nil gemini client")
	}
	resp, err := generateContent(c.client, ctx, c.model, []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			},
		},
	}, nil)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// responseText склеивает текстовые части первого кандидата с текстом.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}
