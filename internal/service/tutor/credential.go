package tutor

import (
	"strings"

	"LocalLearn/internal/ai"
)

// Префиксы ключей по провайдерам. У stub ключ не нужен.
var credentialPrefixes = map[string]string{
	ai.ProviderGemini: "AIza",
	ai.ProviderOpenAI: "sk-",
}

var credentialVariables = map[string]string{
	ai.ProviderGemini: "GOOGLE_API_KEY",
	ai.ProviderOpenAI: "OPENAI_API_KEY",
}

const maxPreview = 10

// ValidateCredential проверяет наличие и структурную корректность ключа провайдера.
// Длина ключа не проверяется, только префикс.
func ValidateCredential(provider, key string) error {
	provider = normalizeProvider(provider)
	if provider == ai.ProviderStub {
		return nil
	}
	if strings.TrimSpace(key) == "" {
		return &ConfigurationError{Variable: credentialVariables[provider]}
	}
	prefix := credentialPrefixes[provider]
	if !strings.HasPrefix(key, prefix) {
		return &CredentialFormatError{Provider: provider, Prefix: prefix, Preview: credentialPreview(key)}
	}
	return nil
}

// credentialPreview показывает не больше maxPreview символов и не больше половины ключа.
func credentialPreview(key string) string {
	r := []rune(key)
	n := min(maxPreview, len(r)/2)
	return string(r[:n]) + "..."
}

func normalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return ai.ProviderGemini
	}
	return p
}
