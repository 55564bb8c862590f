package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"LocalLearn/internal/app/bootstrap"
	"LocalLearn/internal/app/console"
	"LocalLearn/internal/config"
	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/companion"
	"LocalLearn/internal/service/tts/player"
)

// Терминальный режим: объяснение печатается, озвучка проигрывается локальным плеером.
func main() {
	language := flag.String("lang", string(lang.Hindi), "язык объяснений")
	mute := flag.Bool("mute", false, "не проигрывать аудио")
	cfg := config.NewConfig()

	l, ok := lang.Parse(*language)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown language %q\n", *language)
		os.Exit(2)
	}

	logger, err := bootstrap.NewLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := companion.NewCompanion(bootstrap.NewTutor(cfg, sugar), bootstrap.NewSpeaker(cfg, sugar), cfg.SpeechMaxChars, l, sugar)
	defer session.Close()

	var p player.Player
	if !*mute {
		p = bootstrap.NewPlayer(cfg)
	}

	if err := console.New(session, p, os.Stdout, sugar).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		sugar.Errorw("Console stopped", "error", err)
	}
}
