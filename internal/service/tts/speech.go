package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/audiofile"

	"go.uber.org/zap"
)

// Source откуда получено аудио.
type Source string

const (
	SourceNone    Source = ""
	SourceRemote  Source = "remote"
	SourceOffline Source = "offline"
)

// Audio результат синтеза. Владение файлом Path переходит вызывающему.
type Audio struct {
	Data   []byte
	Path   string
	Format string // mp3|wav
	Source Source
}

// Remove удаляет файл аудио. Отсутствие файла не ошибка.
func (a *Audio) Remove() error {
	if a == nil {
		return nil
	}
	return audiofile.Remove(a.Path)
}

// Outcome подробности попытки синтеза для предупреждений в UI.
type Outcome struct {
	Source        Source
	RemoteFailure Failure
	// OfflineTried: офлайн-движок действительно вызывался.
	OfflineTried bool
	Err          error
}

// Speaker синтезирует речь: онлайн-сервис, при лимите или сетевой ошибке: офлайн-движок.
// Ошибки синтеза вызывающему не возвращаются: nil *Audio означает «аудио нет».
type Speaker struct {
	remote  Remote
	offline Offline
	tempDir string
	logger  *zap.SugaredLogger
}

// NewSpeaker создаёт синтезатор. offline может быть nil: тогда фолбэка нет.
func NewSpeaker(remote Remote, offline Offline, tempDir string, logger *zap.SugaredLogger) *Speaker {
	return &Speaker{remote: remote, offline: offline, tempDir: tempDir, logger: logger}
}

// Speak озвучивает text на языке language.
func (s *Speaker) Speak(ctx context.Context, text string, language lang.Language) (*Audio, Outcome) {
	if strings.TrimSpace(text) == "" {
		s.debug("No text provided for audio generation")
		return nil, Outcome{}
	}

	audio, err := s.speakRemote(ctx, text, language)
	if err == nil {
		return audio, Outcome{Source: SourceRemote}
	}

	failure := Classify(err)
	out := Outcome{RemoteFailure: failure, Err: err}
	s.warn("Remote speech synthesis failed", "language", language, "failure", failure.String(), "error", err)

	if !failure.Recoverable() {
		return nil, out
	}
	if s.offline == nil || !s.offline.Available() {
		s.warn("Offline speech engine not available", "failure", failure.String())
		return nil, out
	}

	out.OfflineTried = true
	audio, err = s.speakOffline(ctx, text, language)
	if err != nil {
		out.Err = err
		s.warn("Offline speech synthesis failed", "language", language, "error", err)
		return nil, out
	}
	out.Source = SourceOffline
	out.Err = nil
	if s.logger != nil {
		s.logger.Infow("Using offline speech synthesis", "language", language, "bytes", len(audio.Data))
	}
	return audio, out
}

// Warning текст предупреждения для пользователя по исходу синтеза.
func Warning(a *Audio, out Outcome) string {
	switch {
	case a != nil && out.Source == SourceOffline && out.RemoteFailure == FailureRateLimited:
		return "Online speech service is rate-limited. Using offline speech (limited language support)."
	case a != nil && out.Source == SourceOffline:
		return "Network error. Using offline speech (limited language support)."
	case a != nil:
		return ""
	case out.RemoteFailure == FailureRateLimited:
		return "Online speech service is rate-limited and offline speech failed. Try again in 5-10 minutes or use shorter text."
	case out.RemoteFailure == FailureNetwork:
		return "No internet connection and offline speech is not available."
	case out.RemoteFailure == FailureOther:
		return "Failed to generate audio."
	default:
		return "No text to read aloud."
	}
}

func (s *Speaker) speakRemote(ctx context.Context, text string, language lang.Language) (*Audio, error) {
	if s.remote == nil {
		return nil, fmt.Errorf("no remote speech service configured")
	}
	locale := lang.LocaleCode(language)
	path := audiofile.NewPath(s.tempDir, audiofile.PrefixRemote, ".mp3")

	started := time.Now()
	if err := s.remote.Save(ctx, text, locale, false, path); err != nil {
		_ = audiofile.Remove(path)
		return nil, err
	}
	data, err := readAudio(path)
	if err != nil {
		_ = audiofile.Remove(path)
		return nil, err
	}
	if s.logger != nil {
		s.logger.Infow("Remote speech synthesis completed", "language", language, "locale", locale,
			"chars", len([]rune(text)), "bytes", len(data), "took", time.Since(started).String())
	}
	return &Audio{Data: data, Path: path, Format: "mp3", Source: SourceRemote}, nil
}

func (s *Speaker) speakOffline(ctx context.Context, text string, language lang.Language) (*Audio, error) {
	voice := ""
	if language == lang.English {
		voice = s.englishVoice(ctx)
	}
	path := audiofile.NewPath(s.tempDir, audiofile.PrefixOffline, ".wav")
	if err := s.offline.Save(ctx, text, voice, path); err != nil {
		_ = audiofile.Remove(path)
		return nil, err
	}
	data, err := readAudio(path)
	if err != nil {
		_ = audiofile.Remove(path)
		return nil, err
	}
	return &Audio{Data: data, Path: path, Format: "wav", Source: SourceOffline}, nil
}

// englishVoice первый голос, в имени которого есть "english" или "en". Не нашли: голос по умолчанию.
func (s *Speaker) englishVoice(ctx context.Context) string {
	voices, err := s.offline.Voices(ctx)
	if err != nil {
		s.warn("Failed to list offline voices", "error", err)
		return ""
	}
	for _, v := range voices {
		name := strings.ToLower(v.Name)
		if strings.Contains(name, "english") || strings.Contains(name, "en") {
			return v.ID
		}
	}
	return ""
}

// readAudio читает файл и проверяет, что он не пустой. Путь в ошибки не попадает:
// имя файла случайное и могло бы сбить классификатор.
func readAudio(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("audio file was not created: %w", withoutPath(err))
	}
	if fi.Size() == 0 {
		return nil, ErrEmptyAudio
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", withoutPath(err))
	}
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	return data, nil
}

func withoutPath(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Truncate обрезает текст до n рун (n <= 0: без ограничения).
func Truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

func (s *Speaker) warn(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Warnw(msg, kv...)
	}
}

func (s *Speaker) debug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debugw(msg, kv...)
	}
}
