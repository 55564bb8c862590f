package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"LocalLearn/internal/ai"
)

type fakeClient struct {
	resp string
	err  error
}

func (f fakeClient) Complete(_ context.Context, _, _ string) (string, error) { return f.resp, f.err }

func factory(c fakeClient, calls *int) func(context.Context, string, string, string) (ai.Client, error) {
	return func(context.Context, string, string, string) (ai.Client, error) {
		*calls++
		return c, nil
	}
}

func TestCheck(t *testing.T) {
	const key = "AIzaSyD-1234567890abcdefXYZ"
	cases := []struct {
		name      string
		key       string
		client    fakeClient
		want      bool
		wantCalls int
		wantOut   string
	}{
		{"missing", "", fakeClient{}, false, 0, "GOOGLE_API_KEY not found"},
		{"bad format", "sk-1234567890abcdefghij", fakeClient{}, false, 0, "invalid API key format"},
		{"upstream error", key, fakeClient{err: errors.New("403 forbidden")}, false, 1, "403 forbidden"},
		{"empty response", key, fakeClient{resp: "  "}, false, 1, "empty response"},
		{"ok", key, fakeClient{resp: "API key works!"}, true, 1, "Response: API key works!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			calls := 0
			got := check(context.Background(), "gemini", tc.key, "", factory(tc.client, &calls), &out)
			if got != tc.want || calls != tc.wantCalls {
				t.Fatalf("got=%v calls=%d, output:\n%s", got, calls, out.String())
			}
			if !strings.Contains(out.String(), tc.wantOut) {
				t.Fatalf("output must contain %q:\n%s", tc.wantOut, out.String())
			}
		})
	}
}

func TestMask(t *testing.T) {
	if got := mask("AIzaSyD-1234567890abcdefXYZ"); got != "AIzaSyD-12...efXYZ" {
		t.Fatalf("mask=%q", got)
	}
	if got := mask("sk-abc"); got != "sk-..." {
		t.Fatalf("mask=%q", got)
	}
}
