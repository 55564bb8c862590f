package web

import (
	"context"
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"LocalLearn/internal/lang"
	"LocalLearn/internal/service/audiofile"
	"LocalLearn/internal/service/tts"
	"LocalLearn/internal/service/tutor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxImageBytes   = 8 << 20
	genericFailure  = "Failed to generate explanation. Please try again."
	missingTopicMsg = "Please enter a topic to explain."
)

// Explainer генерация объяснений (tutor.Tutor).
type Explainer interface {
	Explain(ctx context.Context, req tutor.Request) (string, error)
	TopicFromImage(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Speaker синтез речи (tts.Speaker).
type Speaker interface {
	Speak(ctx context.Context, text string, language lang.Language) (*tts.Audio, tts.Outcome)
}

type Controller struct {
	tutor          Explainer
	speaker        Speaker
	speechMaxChars int
	logger         *zap.SugaredLogger
}

func NewController(t Explainer, s Speaker, speechMaxChars int, logger *zap.SugaredLogger) *Controller {
	return &Controller{tutor: t, speaker: s, speechMaxChars: speechMaxChars, logger: logger}
}

type pageData struct {
	Languages    []lang.Language
	Language     lang.Language
	Topic        string
	CurrentTopic string
	Explanation  string
	Simplified   bool
	AudioURL     template.URL
	AudioMIME    string
	ImageURL     template.URL
	Warning      string
	Error        string
}

func (ctrl *Controller) newPage(language lang.Language) pageData {
	if language == "" {
		language = lang.Hindi
	}
	return pageData{Languages: lang.All(), Language: language}
}

// Page GET /: пустая форма.
func (ctrl *Controller) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "page", ctrl.newPage(lang.Hindi))
}

// Submit POST /: кнопки формы: explain, simpler, image, clear.
func (ctrl *Controller) Submit(c *gin.Context) {
	language := parseLanguage(c.PostForm("language"))
	data := ctrl.newPage(language)
	data.Topic = strings.TrimSpace(c.PostForm("topic"))
	data.CurrentTopic = strings.TrimSpace(c.PostForm("current_topic"))

	switch c.PostForm("action") {
	case "clear":
		c.HTML(http.StatusOK, "page", ctrl.newPage(language))
		return
	case "image":
		ctrl.submitImage(c, &data)
		c.HTML(http.StatusOK, "page", data)
		return
	case "simpler":
		if data.CurrentTopic == "" {
			data.CurrentTopic = data.Topic
		}
		data.Simplified = true
	default:
		data.CurrentTopic = data.Topic
	}

	if data.CurrentTopic == "" {
		data.Error = missingTopicMsg
		c.HTML(http.StatusBadRequest, "page", data)
		return
	}
	if data.Topic == "" {
		data.Topic = data.CurrentTopic
	}

	text, err := ctrl.tutor.Explain(c.Request.Context(), tutor.Request{
		Topic:    data.CurrentTopic,
		Language: data.Language,
		Simplify: data.Simplified,
	})
	if err != nil {
		status, msg := ctrl.explainError(err)
		data.Error = msg
		c.HTML(status, "page", data)
		return
	}
	data.Explanation = text

	// Файл живёт только до конца запроса: аудио уже встроено в страницу.
	holder := audiofile.NewHolder(ctrl.logger)
	defer holder.Close()

	audio, out := ctrl.speaker.Speak(c.Request.Context(), tts.Truncate(text, ctrl.speechMaxChars), data.Language)
	if audio != nil {
		holder.Replace(audio.Path)
		data.AudioURL = AudioDataURL(audio)
		data.AudioMIME = AudioMIME(audio)
	}
	data.Warning = tts.Warning(audio, out)
	c.HTML(http.StatusOK, "page", data)
}

func (ctrl *Controller) submitImage(c *gin.Context, data *pageData) {
	img, mimeType, err := readImage(c)
	if err != nil {
		data.Error = err.Error()
		return
	}
	data.ImageURL = template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img))

	topic, err := ctrl.tutor.TopicFromImage(c.Request.Context(), img, mimeType)
	if err != nil {
		ctrl.logError("Topic from image failed", err)
		data.Warning = "Could not read the topic from the image. Please type the topic name from the image above."
		return
	}
	if topic != "" {
		data.Topic = topic
	}
}

type explainRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language"`
	Simplify bool   `json:"simplify"`
}

// Explain POST /api/explain
func (ctrl *Controller) Explain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	language := parseLanguage(req.Language)

	text, err := ctrl.tutor.Explain(c.Request.Context(), tutor.Request{Topic: topic, Language: language, Simplify: req.Simplify})
	if err != nil {
		status, msg := ctrl.explainError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"explanation": text})
}

type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Speech POST /api/speech. Неудача синтеза: не ошибка: 200 с пустым audio и предупреждением.
func (ctrl *Controller) Speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	language := parseLanguage(req.Language)

	holder := audiofile.NewHolder(ctrl.logger)
	defer holder.Close()

	audio, out := ctrl.speaker.Speak(c.Request.Context(), tts.Truncate(req.Text, ctrl.speechMaxChars), language)
	resp := gin.H{"audio": "", "format": "", "source": string(out.Source), "warning": tts.Warning(audio, out)}
	if audio != nil {
		holder.Replace(audio.Path)
		resp["audio"] = base64.StdEncoding.EncodeToString(audio.Data)
		resp["format"] = audio.Format
	}
	c.JSON(http.StatusOK, resp)
}

// Languages GET /api/languages
func (ctrl *Controller) Languages(c *gin.Context) {
	all := lang.All()
	out := make([]gin.H, 0, len(all))
	for _, l := range all {
		out = append(out, gin.H{"name": string(l), "locale": lang.LocaleCode(l)})
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}

// TopicFromImage POST /api/topic-from-image (multipart, поле image)
func (ctrl *Controller) TopicFromImage(c *gin.Context) {
	img, mimeType, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	topic, err := ctrl.tutor.TopicFromImage(c.Request.Context(), img, mimeType)
	if err != nil {
		status, msg := ctrl.explainError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

// explainError: ошибки конфигурации показываем как есть, ошибки модели: общим сообщением.
func (ctrl *Controller) explainError(err error) (int, string) {
	var cfgErr *tutor.ConfigurationError
	var fmtErr *tutor.CredentialFormatError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &fmtErr):
		return http.StatusInternalServerError, err.Error()
	default:
		ctrl.logError("Explanation failed", err)
		return http.StatusBadGateway, genericFailure
	}
}

func (ctrl *Controller) logError(msg string, err error) {
	if ctrl.logger != nil {
		ctrl.logger.Errorw(msg, "error", err)
	}
}

// parseLanguage: пустое значение: хинди; неизвестный язык передаётся как есть,
// промпт для него строится с контекстом по умолчанию.
func parseLanguage(s string) lang.Language {
	l, _ := lang.Parse(s)
	if l == "" {
		return lang.Hindi
	}
	return l
}

func readImage(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", errors.New("image file is required")
	}
	if fh.Size > maxImageBytes {
		return nil, "", errors.New("image is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", errors.New("failed to open image")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return nil, "", errors.New("failed to read image")
	}
	mimeType := http.DetectContentType(data)
	switch mimeType {
	case "image/png", "image/jpeg":
	default:
		return nil, "", errors.New("only PNG and JPEG images are supported")
	}
	return data, mimeType, nil
}
