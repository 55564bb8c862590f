package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"LocalLearn/internal/config"
	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/tts/offline"

	"golang.org/x/oauth2/google"
)

const voicesURL = "https://texttospeech.googleapis.com/v1/voices"

// Утилита: печатает голоса офлайн-движка, с флагом -google: голоса Google Cloud TTS для языка.
func main() {
	useGoogle := flag.Bool("google", false, "запросить голоса Google Cloud TTS (нужен service-account.json)")
	language := flag.String("lang", string(lang.Hindi), "язык для голосов Google Cloud TTS")
	cfg := config.NewConfig()

	ctx, cancel := context.WithTimeoutCause(context.Background(), 15*time.Second, errors.New("voices request timeout"))
	defer cancel()

	if *useGoogle {
		l, ok := lang.Parse(*language)
		if !ok {
			fmt.Printf("неизвестный язык %q\n", *language)
			os.Exit(2)
		}
		if err := printGoogleVoices(ctx, cfg, lang.LocaleCode(l)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		return
	}

	engine := offline.New(cfg.OfflineTTS.Binary, cfg.OfflineTTS.Speed)
	if !engine.Available() {
		fmt.Printf("офлайн-движок %q не найден в PATH\n", cfg.OfflineTTS.Binary)
		os.Exit(1)
	}
	voices, err := engine.Voices(ctx)
	if err != nil {
		fmt.Println("не удалось получить список голосов:", err)
		os.Exit(1)
	}
	for _, v := range voices {
		fmt.Printf("%-12s %s\n", v.ID, v.Name)
	}
}

// printGoogleVoices делает GET к Google TTS Voices с токеном ADC и печатает ответ.
func printGoogleVoices(ctx context.Context, cfg *config.Config, languageCode string) error {
	// Установим GOOGLE_APPLICATION_CREDENTIALS из конфига, если не задано в окружении.
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" && cfg.GoogleTTS.CredentialsPath != "" {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cfg.GoogleTTS.CredentialsPath)
	}

	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return fmt.Errorf("не удалось найти учётные данные Google (ADC): %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return fmt.Errorf("не удалось получить токен доступа Google: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, voicesURL+"?languageCode="+languageCode, nil)
	if err != nil {
		return fmt.Errorf("не удалось создать запрос: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	hc := &http.Client{Timeout: 20 * time.Second}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка при выполнении запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var raw any
		_ = json.NewDecoder(resp.Body).Decode(&raw)
		b, _ := json.MarshalIndent(raw, "", "  ")
		return fmt.Errorf("Google TTS Voices: status=%d, body=%s", resp.StatusCode, string(b))
	}

	var payload struct {
		Voices []struct {
			Name                   string   `json:"name"`
			LanguageCodes          []string `json:"languageCodes"`
			SSMLGender             string   `json:"ssmlGender"`
			NaturalSampleRateHertz int      `json:"naturalSampleRateHertz"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("не удалось распарсить ответ Google TTS Voices: %w", err)
	}
	if len(payload.Voices) == 0 {
		fmt.Printf("для %s голосов нет\n", languageCode)
		return nil
	}
	for _, v := range payload.Voices {
		fmt.Printf("%-28s %-8s %6d Hz  %s\n", v.Name, v.SSMLGender, v.NaturalSampleRateHertz, strings.Join(v.LanguageCodes, ","))
	}
	return nil
}
