package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LocalLearn/internal/lang"

	"go.uber.org/zap"
)

type fakeRemote struct {
	calls   int
	locales []string
	err     error
	payload []byte
}

func (f *fakeRemote) Save(_ context.Context, _ string, locale string, _ bool, path string) error {
	f.calls++
	f.locales = append(f.locales, locale)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, f.payload, 0o644)
}

type fakeOffline struct {
	available bool
	voices    []Voice
	calls     int
	voiceIDs  []string
	paths     []string
	err       error
}

func (f *fakeOffline) Available() bool { return f.available }

func (f *fakeOffline) Voices(context.Context) ([]Voice, error) { return f.voices, nil }

func (f *fakeOffline) Save(_ context.Context, _ string, voiceID string, path string) error {
	f.calls++
	f.voiceIDs = append(f.voiceIDs, voiceID)
	f.paths = append(f.paths, path)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, []byte("RIFFwav"), 0o644)
}

func newTestSpeaker(t *testing.T, r Remote, o Offline) (*Speaker, string) {
	t.Helper()
	dir := t.TempDir()
	return NewSpeaker(r, o, dir, zap.NewNop().Sugar()), dir
}

func TestSpeak_EmptyTextSkipsEverything(t *testing.T) {
	r := &fakeRemote{payload: []byte("mp3")}
	o := &fakeOffline{available: true}
	s, _ := newTestSpeaker(t, r, o)

	for _, text := range []string{"", "   \n\t"} {
		audio, out := s.Speak(context.Background(), text, lang.Hindi)
		if audio != nil {
			t.Fatalf("expected nil audio for %q", text)
		}
		if out.Source != SourceNone {
			t.Fatalf("unexpected source %q", out.Source)
		}
	}
	if r.calls != 0 || o.calls != 0 {
		t.Fatalf("no collaborator may be called: remote=%d offline=%d", r.calls, o.calls)
	}
}

func TestSpeak_RemoteSuccess(t *testing.T) {
	r := &fakeRemote{payload: []byte("ID3mp3-bytes")}
	o := &fakeOffline{available: true}
	s, dir := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Namaste", lang.Kannada)
	if audio == nil {
		t.Fatalf("expected audio, outcome %+v", out)
	}
	if string(audio.Data) != "ID3mp3-bytes" || audio.Format != "mp3" || audio.Source != SourceRemote {
		t.Fatalf("unexpected audio %+v", audio)
	}
	if filepath.Dir(audio.Path) != dir || !strings.HasPrefix(filepath.Base(audio.Path), "tts_") || !strings.HasSuffix(audio.Path, ".mp3") {
		t.Fatalf("unexpected path %q", audio.Path)
	}
	if r.locales[0] != "kn" {
		t.Fatalf("locale=%q", r.locales[0])
	}
	if o.calls != 0 {
		t.Fatalf("offline must not be called on success")
	}
	if err := audio.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(audio.Path); !os.IsNotExist(err) {
		t.Fatalf("file must be removed")
	}
}

func TestSpeak_UnknownLanguageUsesEnglishLocale(t *testing.T) {
	r := &fakeRemote{payload: []byte("x")}
	s, _ := newTestSpeaker(t, r, nil)
	if audio, _ := s.Speak(context.Background(), "hi", "Klingon"); audio == nil {
		t.Fatalf("expected audio")
	}
	if r.locales[0] != "en" {
		t.Fatalf("locale=%q", r.locales[0])
	}
}

func TestSpeak_TwoCallsGiveDistinctFiles(t *testing.T) {
	r := &fakeRemote{payload: []byte("mp3")}
	s, _ := newTestSpeaker(t, r, nil)

	a, _ := s.Speak(context.Background(), "same text", lang.Tamil)
	b, _ := s.Speak(context.Background(), "same text", lang.Tamil)
	if a == nil || b == nil {
		t.Fatalf("expected two results")
	}
	if a.Path == b.Path {
		t.Fatalf("paths must differ: %s", a.Path)
	}
}

func TestSpeak_RateLimitedFallsBackOffline(t *testing.T) {
	r := &fakeRemote{err: errors.New("429 (Too Many Requests) from TTS API. Probable cause: Unknown")}
	o := &fakeOffline{available: true}
	s, dir := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Photosynthesis", lang.Hindi)
	if o.calls != 1 {
		t.Fatalf("offline must be called exactly once, got %d", o.calls)
	}
	if audio == nil || audio.Source != SourceOffline || audio.Format != "wav" {
		t.Fatalf("expected offline audio, got %+v", audio)
	}
	if out.RemoteFailure != FailureRateLimited || !out.OfflineTried || out.Source != SourceOffline {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if o.voiceIDs[0] != "" {
		t.Fatalf("non-English must use the default voice, got %q", o.voiceIDs[0])
	}
	base := filepath.Base(audio.Path)
	if filepath.Dir(audio.Path) != dir || !strings.HasPrefix(base, "tts_offline_") || !strings.HasSuffix(base, ".wav") {
		t.Fatalf("unexpected offline path %q", audio.Path)
	}
	// файл неудачной онлайн-попытки не остаётся
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the offline file, got %d entries", len(entries))
	}
}

func TestSpeak_NetworkErrorFallsBackOffline(t *testing.T) {
	r := &fakeRemote{err: ErrNetwork}
	o := &fakeOffline{available: true}
	s, _ := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Gravity", lang.Bengali)
	if audio == nil || o.calls != 1 || out.RemoteFailure != FailureNetwork {
		t.Fatalf("expected offline fallback on network error: audio=%v calls=%d out=%+v", audio, o.calls, out)
	}
}

func TestSpeak_OtherErrorDoesNotFallBack(t *testing.T) {
	r := &fakeRemote{err: errors.New("some other error")}
	o := &fakeOffline{available: true}
	s, _ := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Gravity", lang.Hindi)
	if audio != nil {
		t.Fatalf("expected nil audio")
	}
	if o.calls != 0 {
		t.Fatalf("offline must not be invoked, got %d", o.calls)
	}
	if out.RemoteFailure != FailureOther || out.OfflineTried || out.Err == nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestSpeak_EmptyRemoteFileIsOtherError(t *testing.T) {
	r := &fakeRemote{payload: []byte{}}
	o := &fakeOffline{available: true}
	s, dir := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Gravity", lang.Hindi)
	if audio != nil || o.calls != 0 {
		t.Fatalf("empty audio must be a terminal failure")
	}
	if !errors.Is(out.Err, ErrEmptyAudio) || out.RemoteFailure != FailureOther {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("empty file must be removed")
	}
}

func TestSpeak_OfflineUnavailable(t *testing.T) {
	r := &fakeRemote{err: errors.New("Too Many Requests")}
	o := &fakeOffline{available: false}
	s, _ := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Gravity", lang.Hindi)
	if audio != nil || o.calls != 0 || out.OfflineTried {
		t.Fatalf("unavailable offline engine must not be called")
	}

	s2, _ := newTestSpeaker(t, r, nil)
	if audio, _ := s2.Speak(context.Background(), "Gravity", lang.Hindi); audio != nil {
		t.Fatalf("nil offline engine must give nil audio")
	}
}

func TestSpeak_OfflineFailure(t *testing.T) {
	r := &fakeRemote{err: ErrRateLimited}
	o := &fakeOffline{available: true, err: errors.New("espeak-ng: exit status 1")}
	s, _ := newTestSpeaker(t, r, o)

	audio, out := s.Speak(context.Background(), "Gravity", lang.Hindi)
	if audio != nil || o.calls != 1 || !out.OfflineTried || out.Err == nil {
		t.Fatalf("unexpected result audio=%v out=%+v", audio, out)
	}
}

func TestSpeak_EnglishPicksFirstMatchingVoice(t *testing.T) {
	r := &fakeRemote{err: ErrRateLimited}
	o := &fakeOffline{available: true, voices: []Voice{
		{ID: "hi", Name: "Hindi"},
		{ID: "en-gb", Name: "English_(Great_Britain)"},
		{ID: "en-us", Name: "English_(America)"},
	}}
	s, _ := newTestSpeaker(t, r, o)

	if audio, _ := s.Speak(context.Background(), "Gravity", lang.English); audio == nil {
		t.Fatalf("expected audio")
	}
	if o.voiceIDs[0] != "en-gb" {
		t.Fatalf("voice=%q want en-gb", o.voiceIDs[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("नमस्ते दुनिया", 3); got != string([]rune("नमस्ते दुनिया")[:3]) {
		t.Fatalf("rune-safe truncate failed: %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("n<=0 must not truncate, got %q", got)
	}
}

func TestWarning(t *testing.T) {
	clip := &Audio{Data: []byte{1}, Format: "wav", Source: SourceOffline}
	cases := []struct {
		name  string
		audio *Audio
		out   Outcome
		want  string
	}{
		{"remote ok", &Audio{Data: []byte{1}}, Outcome{Source: SourceRemote}, ""},
		{"offline after 429", clip, Outcome{Source: SourceOffline, RemoteFailure: FailureRateLimited}, "rate-limited. Using offline"},
		{"offline after network", clip, Outcome{Source: SourceOffline, RemoteFailure: FailureNetwork}, "Network error"},
		{"nothing after 429", nil, Outcome{RemoteFailure: FailureRateLimited, OfflineTried: true}, "Try again in 5-10 minutes"},
		{"nothing after network", nil, Outcome{RemoteFailure: FailureNetwork}, "No internet connection"},
		{"other", nil, Outcome{RemoteFailure: FailureOther}, "Failed to generate audio."},
		{"empty text", nil, Outcome{}, "No text"},
	}
	for _, tc := range cases {
		got := Warning(tc.audio, tc.out)
		if tc.want == "" && got != "" || !strings.Contains(got, tc.want) {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
