package tutor

import (
	"strings"
	"testing"

	"LocalLearn/internal/lang"
)

const sentenceCeiling = "maximum 5-6 sentences"

func TestCompose_ContainsRegionalProfileForEveryLanguage(t *testing.T) {
	for _, l := range lang.All() {
		for _, simplify := range []bool{true, false} {
			got := Compose("photosynthesis", l, simplify)
			if strings.TrimSpace(got) == "" {
				t.Fatalf("%s simplify=%v: empty instruction", l, simplify)
			}
			if !strings.Contains(got, lang.RegionalContext(l)) {
				t.Fatalf("%s simplify=%v: regional profile missing", l, simplify)
			}
			if !strings.Contains(got, "TARGET LANGUAGE: "+string(l)) {
				t.Fatalf("%s simplify=%v: language missing", l, simplify)
			}
		}
	}
}

func TestCompose_UnknownLanguageUsesDefault(t *testing.T) {
	got := Compose("gravity", "Klingon", false)
	if !strings.Contains(got, "REGIONAL CONTEXT: "+lang.DefaultRegionalContext) {
		t.Fatalf("expected default regional context, got:\n%s", got)
	}
}

func TestCompose_SentenceCeilingOnlyWhenSimple(t *testing.T) {
	simple := Compose("gravity", lang.Hindi, true)
	detailed := Compose("gravity", lang.Hindi, false)

	if !strings.Contains(simple, sentenceCeiling) {
		t.Fatalf("simple instruction must cap sentences")
	}
	if strings.Contains(detailed, sentenceCeiling) {
		t.Fatalf("detailed instruction must not cap sentences")
	}
	if !strings.Contains(simple, "neighbor's child") || !strings.Contains(simple, "Avoid technical terms completely") {
		t.Fatalf("simple register missing")
	}
	if !strings.Contains(detailed, "2-3 real-life situations") || !strings.Contains(detailed, "local teacher") {
		t.Fatalf("detailed register missing")
	}
}

func TestCompose_EmptyTopicStillBuildsInstruction(t *testing.T) {
	if got := Compose("", lang.Tamil, true); len(got) < 100 {
		t.Fatalf("expected full instruction for empty topic, got %q", got)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	if Compose("x", lang.Urdu, false) != Compose("x", lang.Urdu, false) {
		t.Fatalf("Compose must be deterministic")
	}
}
