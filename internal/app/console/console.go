// Package console интерактивный режим в терминале: тема → объяснение → озвучка через локальный плеер.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/companion"
	"LocalLearn/internal/service/tts"
	"LocalLearn/internal/service/tts/player"
	"LocalLearn/internal/service/tutor"

	"go.uber.org/zap"
)

const help = `Type a topic to get an explanation. Commands:
  :simple        explain the last topic in simpler words
  :lang <name>   switch language (Hindi, Tamil, English, ...)
  :langs         list languages
  :say           read the last explanation aloud again
  :clear         forget the topic and the audio
  :help          this help
  :quit          exit`

// Console читает команды построчно и пишет ответы в out.
type Console struct {
	session *companion.Companion
	player  player.Player // nil: без воспроизведения
	out     io.Writer
	logger  *zap.SugaredLogger

	lastText string
}

func New(session *companion.Companion, p player.Player, out io.Writer, logger *zap.SugaredLogger) *Console {
	return &Console{session: session, player: p, out: out, logger: logger}
}

// Run обрабатывает строки из in до EOF, :quit или отмены контекста.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.printf("LocalLearn (%s). :help for commands.\n", c.session.Language())
	sc := bufio.NewScanner(in)
	for {
		c.printf("> ")
		if !sc.Scan() {
			c.printf("\n")
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := c.Handle(ctx, sc.Text()); quit {
			return nil
		}
	}
}

// Handle выполняет одну строку ввода. true: пользователь попросил выйти.
func (c *Console) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		c.explain(ctx, func() (string, error) { return c.session.Explain(ctx, line) })
		return false
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return true
	case "simple", "simpler":
		c.explain(ctx, func() (string, error) { return c.session.Simpler(ctx) })
	case "lang", "language":
		l, ok := lang.Parse(arg)
		if !ok {
			c.printf("Unknown language %q. :langs lists the supported ones.\n", arg)
			return false
		}
		c.session.SetLanguage(l)
		c.printf("Language: %s\n", l)
	case "langs", "languages":
		for _, l := range lang.All() {
			c.printf("  %-10s %s\n", l, lang.LocaleCode(l))
		}
	case "say", "speak":
		if c.lastText == "" {
			c.printf("Nothing to read aloud yet.\n")
			return false
		}
		c.speak(ctx, c.lastText)
	case "clear":
		c.session.Clear()
		c.lastText = ""
		c.printf("Cleared.\n")
	case "help", "h", "?":
		c.printf("%s\n", help)
	default:
		c.printf("Unknown command %q. :help for commands.\n", cmd)
	}
	return false
}

func (c *Console) explain(ctx context.Context, run func() (string, error)) {
	text, err := run()
	if err != nil {
		c.printf("%s\n", c.errorText(err))
		return
	}
	c.lastText = text
	c.printf("\n%s\n\n", text)
	if text == tutor.PlaceholderExplanation {
		return
	}
	c.speak(ctx, text)
}

func (c *Console) speak(ctx context.Context, text string) {
	audio, out := c.session.Speak(ctx, text)
	if w := tts.Warning(audio, out); w != "" {
		c.printf("[audio] %s\n", w)
	}
	if audio == nil || c.player == nil {
		return
	}
	if err := player.PlayAudio(c.player, audio); err != nil {
		c.printf("[audio] Playback failed.\n")
		if c.logger != nil {
			c.logger.Warnw("Playback failed", "format", audio.Format, "error", err)
		}
	}
}

// errorText сообщение для пользователя. Детали ошибок провайдера только в лог.
func (c *Console) errorText(err error) string {
	var (
		cfgErr *tutor.ConfigurationError
		fmtErr *tutor.CredentialFormatError
		upErr  *tutor.UpstreamError
	)
	switch {
	case errors.Is(err, companion.ErrNoTopic):
		return "Explain a topic first."
	case errors.As(err, &cfgErr), errors.As(err, &fmtErr):
		return err.Error()
	case errors.As(err, &upErr):
		if c.logger != nil {
			c.logger.Errorw("Explanation failed", "error", err)
		}
		return "Failed to generate an explanation. Please try again."
	default:
		return "Error: " + err.Error()
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
