package web

import (
	"encoding/base64"
	"html/template"

	"LocalLearn/internal/service/tts"
)

// AudioMIME MIME-тип клипа для тега <audio>.
func AudioMIME(a *tts.Audio) string {
	if a != nil && a.Format == "wav" {
		return "audio/wav"
	}
	return "audio/mpeg"
}

// AudioDataURL встраивает аудио в страницу как data URL. nil: пустая строка.
func AudioDataURL(a *tts.Audio) template.URL {
	if a == nil || len(a.Data) == 0 {
		return ""
	}
	return template.URL("data:" + AudioMIME(a) + ";base64," + base64.StdEncoding.EncodeToString(a.Data))
}
