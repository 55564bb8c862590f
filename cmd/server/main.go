package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LocalLearn/internal/app/bootstrap"
	"LocalLearn/internal/app/scheduler"
	"LocalLearn/internal/app/web"
	"LocalLearn/internal/config"

	"github.com/gin-gonic/gin"
)

// Веб-интерфейс LocalLearn: тема → объяснение на родном языке + озвучка.
func main() {
	cfg := config.NewConfig()

	logger, err := bootstrap.NewLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"TextProvider", cfg.TextProvider,
		"TTSService", cfg.TTSService,
		"Addr", cfg.Server.BindAddr,
	)

	ctrl := web.NewController(bootstrap.NewTutor(cfg, sugar), bootstrap.NewSpeaker(cfg, sugar), cfg.SpeechMaxChars, sugar)
	router := web.NewRouter(ctrl, cfg.Server.AllowOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.BindAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// генерация и синтез могут идти десятки секунд
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup := scheduler.New(cfg, sugar)
	go func() {
		if err := cleanup.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			sugar.Warnw("Audio cleanup stopped", "error", err)
		}
	}()

	go func() {
		sugar.Infow("Server listening", "url", "http://"+srv.Addr+"/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server error", "error", err)
			stop()
		}
	}()

	// Graceful shutdown on Ctrl+C / SIGTERM
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeoutCause(context.Background(), 5*time.Second, errors.New("shutdown timeout"))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("Graceful shutdown error", "error", err)
		_ = srv.Close()
	}
	sugar.Infow("Server stopped")
}
