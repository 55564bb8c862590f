package tutor

import "fmt"

// ConfigurationError: ключ API не задан. Повтор без изменения окружения бессмыслен.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable not set. Please set your API key in a .env file", e.Variable)
}

// CredentialFormatError: ключ задан, но не проходит проверку префикса провайдера.
// Preview содержит только начало ключа.
type CredentialFormatError struct {
	Provider string
	Prefix   string
	Preview  string
}

func (e *CredentialFormatError) Error() string {
	return fmt.Sprintf("invalid API key format: %s keys should start with %q, your key starts with: %s", e.Provider, e.Prefix, e.Preview)
}

// UpstreamError оборачивает любую ошибку удалённой генерации текста.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("text generation failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func errUnsupportedImages(provider string) error {
	return fmt.Errorf("provider %s cannot read images", provider)
}
