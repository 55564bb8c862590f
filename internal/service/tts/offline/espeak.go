package offline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"LocalLearn/internal/service/tts"
)

// DefaultBinary имя бинаря eSpeak NG.
const DefaultBinary = "espeak-ng"

// ESpeak офлайн-синтез через eSpeak NG. Качество ниже онлайн-сервиса, зато без сети.
type ESpeak struct {
	binary string
	speed  int // слов в минуту, 0: значение движка по умолчанию
}

func New(binary string, speed int) *ESpeak {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &ESpeak{binary: binary, speed: speed}
}

// Available проверяет, что бинарь есть в PATH.
func (e *ESpeak) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Voices возвращает список голосов движка.
func (e *ESpeak) Voices(ctx context.Context) ([]tts.Voice, error) {
	out, err := e.run(ctx, "--voices")
	if err != nil {
		return nil, err
	}
	return parseVoices(out), nil
}

// Save пишет WAV в path. Пустой voiceID: голос по умолчанию.
func (e *ESpeak) Save(ctx context.Context, text string, voiceID string, path string) error {
	args := []string{"-w", path}
	if v := strings.TrimSpace(voiceID); v != "" {
		args = append(args, "-v", v)
	}
	if e.speed > 0 {
		args = append(args, "-s", strconv.Itoa(e.speed))
	}
	// текст идёт через stdin, чтобы не упираться в лимиты argv и не начинаться с "-"
	args = append(args, "--stdin")

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %s - %w", e.binary, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

func (e *ESpeak) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %s - %w", e.binary, strings.TrimSpace(stderr.String()), err)
	}
	return out.Bytes(), nil
}

// parseVoices разбирает таблицу `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en
func parseVoices(out []byte) []tts.Voice {
	var voices []tts.Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if header {
			header = false
			if strings.HasPrefix(line, "Pty") {
				continue
			}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, tts.Voice{ID: fields[1], Name: fields[3]})
	}
	return voices
}
