package tts

import (
	"errors"
	"strings"
)

// Failure класс ошибки онлайн-синтеза.
type Failure int

const (
	FailureNone Failure = iota
	FailureRateLimited
	FailureNetwork
	FailureOther
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureRateLimited:
		return "rate_limited"
	case FailureNetwork:
		return "network_error"
	default:
		return "other_error"
	}
}

// Recoverable: после такой ошибки имеет смысл офлайн-синтез.
func (f Failure) Recoverable() bool {
	return f == FailureRateLimited || f == FailureNetwork
}

// Classify относит ошибку онлайн-синтеза к одному из классов.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrRateLimited):
		return FailureRateLimited
	case errors.Is(err, ErrNetwork):
		return FailureNetwork
	default:
		return ClassifyMessage(err.Error())
	}
}

// ClassifyMessage классифицирует по тексту ошибки: сначала признаки лимита, затем сети.
func ClassifyMessage(msg string) Failure {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "429"), strings.Contains(m, "too many requests"):
		return FailureRateLimited
	case strings.Contains(m, "network"), strings.Contains(m, "connection"):
		return FailureNetwork
	default:
		return FailureOther
	}
}
