package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага: подробные логи, dev-логгер

	// Генерация текста
	TextProvider string `env:"TEXT_PROVIDER"`  // gemini|openai|stub, по умолчанию gemini
	GoogleAPIKey string `env:"GOOGLE_API_KEY"` // Ключ Gemini API (начинается с AIza). Проверяется при запросе, не здесь
	OpenAIAPIKey string `env:"OPENAI_API_KEY"` // Ключ OpenAI (sk-...), если TEXT_PROVIDER=openai
	TextModel    string `env:"TEXT_MODEL"`     // Модель; пусто: дефолт провайдера

	// Синтез речи
	TTSService     string `env:"TTS_SERVICE"`      // translate|google, по умолчанию translate (без ключа)
	SpeechMaxChars int    `env:"SPEECH_MAX_CHARS"` // Сколько символов объяснения озвучивать
	TranslateTTS   TranslateTTSConfig
	GoogleTTS      GoogleTTSConfig
	OfflineTTS     OfflineTTSConfig

	// Временные аудиофайлы
	AudioTempDir    string `env:"AUDIO_TEMP_DIR"`    // Пусто: системная временная директория
	AudioTTLSeconds int    `env:"AUDIO_TTL_SECONDS"` // >0: фоновая чистка забытых файлов старше TTL; 0: выключено

	PlayerVolumeDB float64 `env:"PLAYER_VOLUME_DB"` // Громкость локального плеера (терминальный режим)

	Server ServerConfig
}

// TranslateTTSConfig онлайн-озвучка Google Translate (ключ не нужен).
type TranslateTTSConfig struct {
	Endpoint string        `env:"TRANSLATE_TTS_ENDPOINT"`
	Timeout  time.Duration `env:"TRANSLATE_TTS_TIMEOUT"`
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически читается из ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath  string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Voice            string  `env:"GOOGLE_TTS_VOICE"` // Пусто: голос выбирает сервис по языку
	SpeakingRate     float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch            float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb     float64 `env:"GOOGLE_TTS_VOLUME_DB"`
	EffectsProfileID string  `env:"GOOGLE_TTS_EFFECTS_PROFILE_ID"`
}

// OfflineTTSConfig локальный движок (eSpeak NG) на случай лимитов и отсутствия сети.
type OfflineTTSConfig struct {
	Enabled bool   `env:"OFFLINE_TTS_ENABLED"`
	Binary  string `env:"OFFLINE_TTS_BINARY"`
	Speed   int    `env:"OFFLINE_TTS_SPEED"` // слов в минуту, 0: по умолчанию движка
}

// ServerConfig веб-интерфейс.
type ServerConfig struct {
	BindAddr     string   `env:"SERVER_BIND_ADDR"`
	AllowOrigins []string `env:"SERVER_ALLOW_ORIGINS" envSeparator:";"`
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		TextProvider:   "gemini",
		TTSService:     "translate",
		SpeechMaxChars: 2000,
		TranslateTTS: TranslateTTSConfig{
			Endpoint: "https://translate.google.com/translate_tts",
			Timeout:  30 * time.Second,
		},
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath:  "service-account.json",
			SpeakingRate:     1.0,
			EffectsProfileID: "",
		},
		OfflineTTS: OfflineTTSConfig{
			Enabled: true,
			Binary:  "espeak-ng",
			Speed:   150,
		},
		AudioTTLSeconds: 0,
		Server: ServerConfig{
			BindAddr:     "127.0.0.1:8501",
			AllowOrigins: []string{"http://localhost:8501", "http://127.0.0.1:8501"},
		},
	}
}

// NewConfig загружает конфигурацию приложения: дефолты → .env → ENV → флаги командной строки.
// Флаги самих утилит нужно объявить до вызова, flag.Parse выполняется здесь.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg, err := load(flag.CommandLine, os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

func load(fs *flag.FlagSet, args []string) (*Config, error) {
	// Стартуем с дефолтов, затем перекрываем окружением и флагами
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.StringVar(&cfg.TextProvider, "text-provider", cfg.TextProvider, "провайдер генерации текста: gemini|openai|stub")
	fs.StringVar(&cfg.TextModel, "text-model", cfg.TextModel, "модель генерации текста (пусто: дефолт провайдера)")
	fs.StringVar(&cfg.TTSService, "tts-service", cfg.TTSService, "выбор сервиса TTS: translate|google")
	fs.IntVar(&cfg.SpeechMaxChars, "speech-max-chars", cfg.SpeechMaxChars, "максимум символов для озвучки")
	fs.StringVar(&cfg.TranslateTTS.Endpoint, "translate-tts-endpoint", cfg.TranslateTTS.Endpoint, "эндпоинт Google Translate TTS")
	fs.DurationVar(&cfg.TranslateTTS.Timeout, "translate-tts-timeout", cfg.TranslateTTS.Timeout, "таймаут HTTP-клиента Translate TTS, напр. 30s")
	fs.StringVar(&cfg.GoogleTTS.CredentialsPath, "google-tts-credentials", cfg.GoogleTTS.CredentialsPath, "путь к service-account.json (также читается из ENV GOOGLE_APPLICATION_CREDENTIALS)")
	fs.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "имя голоса, напр. hi-IN-Wavenet-A")
	fs.Float64Var(&cfg.GoogleTTS.SpeakingRate, "google-tts-speaking-rate", cfg.GoogleTTS.SpeakingRate, "скорость речи (1.0 по умолчанию)")
	fs.BoolVar(&cfg.OfflineTTS.Enabled, "offline-tts", cfg.OfflineTTS.Enabled, "разрешить офлайн-синтез при лимитах и сетевых ошибках")
	fs.StringVar(&cfg.OfflineTTS.Binary, "offline-tts-binary", cfg.OfflineTTS.Binary, "бинарь офлайн-движка (espeak-ng)")
	fs.IntVar(&cfg.OfflineTTS.Speed, "offline-tts-speed", cfg.OfflineTTS.Speed, "скорость офлайн-речи, слов в минуту")
	fs.StringVar(&cfg.AudioTempDir, "audio-temp-dir", cfg.AudioTempDir, "директория временных аудиофайлов")
	fs.IntVar(&cfg.AudioTTLSeconds, "audio-ttl-seconds", cfg.AudioTTLSeconds, "чистить забытые аудиофайлы старше N секунд (0: выключено)")
	fs.Float64Var(&cfg.PlayerVolumeDB, "player-volume-db", cfg.PlayerVolumeDB, "громкость локального плеера в dB")
	fs.StringVar(&cfg.Server.BindAddr, "bind-addr", cfg.Server.BindAddr, "адрес веб-интерфейса")
	// Принимаем список origin одной строкой, разделённой ';'
	originsFlag := strings.Join(cfg.Server.AllowOrigins, ";")
	fs.StringVar(&originsFlag, "allow-origins", originsFlag, "разрешённые CORS origin, разделённые ';'")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Server.AllowOrigins = parseListFlag(originsFlag, nil)

	if err := cfg.prepareGoogleTTS(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey ключ выбранного провайдера генерации текста.
func (c *Config) APIKey() string {
	if strings.EqualFold(strings.TrimSpace(c.TextProvider), "openai") {
		return c.OpenAIAPIKey
	}
	return c.GoogleAPIKey
}

// prepareGoogleTTS: если выбран сервис google, убеждаемся, что задан путь к cred-файлу
// и он существует. Если ENV пуст, но в конфиге указан путь: устанавливаем ENV.
func (c *Config) prepareGoogleTTS() error {
	if !strings.EqualFold(c.TTSService, "google") {
		return nil
	}
	cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if cp := strings.TrimSpace(c.GoogleTTS.CredentialsPath); cp != "" && cp != cred {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
		cred = cp
	}
	if cred == "" {
		return fmt.Errorf("google tts: переменная окружения GOOGLE_APPLICATION_CREDENTIALS не задана; укажите ENV или флаг -google-tts-credentials")
	}
	if _, err := os.Stat(cred); err != nil {
		return fmt.Errorf("google tts: файл ключа не найден: %s", cred)
	}
	return nil
}

// parseListFlag разбирает значение флага со списком, разделённым ';'
func parseListFlag(v string, def []string) []string {
	// Пустая строка → дефолт
	if v == "" {
		return def
	}
	parts := strings.Split(v, ";")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return def
	}
	return cleaned
}
