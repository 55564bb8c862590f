package lang

import "strings"

// Language идентификатор целевого языка объяснения (как он показан в UI).
type Language string

const (
	Hindi     Language = "Hindi"
	Tamil     Language = "Tamil"
	Telugu    Language = "Telugu"
	Bengali   Language = "Bengali"
	Marathi   Language = "Marathi"
	Gujarati  Language = "Gujarati"
	Kannada   Language = "Kannada"
	Malayalam Language = "Malayalam"
	Punjabi   Language = "Punjabi"
	Urdu      Language = "Urdu"
	English   Language = "English"
)

const (
	// DefaultRegionalContext подставляется для языка без регионального профиля.
	DefaultRegionalContext = "daily life, cricket, local transport"
	// DefaultLocale код синтеза речи для языка без сопоставления.
	DefaultLocale = "en"
)

// Порядок совпадает с выпадающим списком в UI.
var ordered = [...]Language{Hindi, Tamil, Telugu, Bengali, Marathi, Gujarati, Kannada, Malayalam, Punjabi, Urdu, English}

// Региональные профили: бытовые ориентиры, из которых модель берёт примеры.
var regionalContexts = map[Language]string{
	Hindi:     "cricket, bus travel, chai shops, farming, festivals like Diwali",
	Tamil:     "temple visits, filter coffee, bus/auto rides, rice farming, Pongal festival",
	Telugu:    "movies, biryani, local markets, farming, Sankranti festival",
	Bengali:   "fish markets, tram rides, Durga Puja, sweet shops, cricket",
	Marathi:   "local trains, vada pav, Ganesh Chaturthi, farming, cricket",
	Gujarati:  "dhokla, garba, business, farming, kite flying",
	Kannada:   "coffee estates, BMTC buses, tech parks, cricket, Dasara",
	Malayalam: "coconut trees, boat rides, Onam festival, fish curry, football",
	Punjabi:   "wheat farming, bhangra, tractors, cricket, Lohri festival",
	Urdu:      "biryani, cricket, qawwali, markets, festivals",
	English:   "daily life in India, cricket, local transport, festivals",
}

var localeCodes = map[Language]string{
	Kannada:   "kn",
	Hindi:     "hi",
	Tamil:     "ta",
	Telugu:    "te",
	Malayalam: "ml",
	Marathi:   "mr",
	Gujarati:  "gu",
	Bengali:   "bn",
	Punjabi:   "pa",
	Urdu:      "ur",
	English:   "en",
}

// RegionalContext возвращает региональный профиль языка или DefaultRegionalContext.
func RegionalContext(l Language) string {
	if ctx, ok := regionalContexts[l]; ok {
		return ctx
	}
	return DefaultRegionalContext
}

// LocaleCode возвращает код языка для сервиса синтеза речи, по умолчанию "en".
func LocaleCode(l Language) string {
	if code, ok := localeCodes[l]; ok {
		return code
	}
	return DefaultLocale
}

// All возвращает копию списка поддерживаемых языков.
func All() []Language {
	out := make([]Language, len(ordered))
	copy(out, ordered[:])
	return out
}

// Parse ищет язык без учёта регистра и пробелов по краям.
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range ordered {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return Language(s), false
}
