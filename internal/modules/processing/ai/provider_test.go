package ai

import (
	"testing"

	"github.com/politiekmatcher/core/internal/config"
)

func TestUnmarshalAIJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"plain", `{"label": "agree", "confidence": 0.9}`},
		{"fenced", "```json\n{\"label\": \"agree\", \"confidence\": 0.9}\n```"},
		{"fenced upper", "```JSON\n{\"label\": \"agree\", \"confidence\": 0.9}\n```"},
		{"prose wrapped", `Hier is het resultaat: {"label": "agree", "confidence": 0.9} zoals gevraagd.`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out classifyResult
			if err := unmarshalAIJSON(tc.raw, &out); err != nil {
				t.Fatalf("unmarshalAIJSON: %v", err)
			}
			if string(out.Label) != "agree" || out.Confidence != 0.9 {
				t.Fatalf("got %+v", out)
			}
		})
	}

	var out classifyResult
	if err := unmarshalAIJSON("geen json hier", &out); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestSelectProvider(t *testing.T) {
	cfg := config.AIConfig{
		Providers: []config.AIProvider{
			{ID: "disabled", Type: "OpenAI", Enabled: false},
			{ID: "primary", Type: "OpenAI", DefaultModel: "gpt-4o-mini", Enabled: true},
			{ID: "claude", Type: "Anthropic", DefaultModel: "claude-haiku-4-5-20251001", Enabled: true},
		},
	}

	if got := selectProvider(cfg, nil); got == nil || got.ID != "primary" {
		t.Fatalf("default pick = %+v, want first enabled provider", got)
	}

	got := selectProvider(cfg, &config.AIModelAssignment{ProviderID: "claude", Model: "claude-sonnet-4-5"})
	if got == nil || got.ID != "claude" {
		t.Fatalf("assignment pick = %+v, want claude", got)
	}
	if got.DefaultModel != "claude-sonnet-4-5" {
		t.Fatalf("model override not applied, got %q", got.DefaultModel)
	}

	if got := selectProvider(cfg, &config.AIModelAssignment{ProviderID: "disabled"}); got == nil || got.ID != "primary" {
		t.Fatalf("disabled assignment must fall back to first enabled, got %+v", got)
	}

	if got := selectProvider(config.AIConfig{}, nil); got != nil {
		t.Fatalf("no providers must select nil, got %+v", got)
	}
}

func TestNormalizeOpenAICompatibleEndpoint(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", "https://api.openai.com"},
		{"https://api.example.com/v1", "https://api.example.com"},
		{"https://api.example.com/v1/", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
	}
	for _, tc := range cases {
		if got := normalizeOpenAICompatibleEndpoint(tc.raw); got != tc.want {
			t.Errorf("normalizeOpenAICompatibleEndpoint(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"https://api.example.com", "https://api.example.com/v1"},
		{"https://api.example.com/v1", "https://api.example.com/v1"},
	}
	for _, tc := range cases {
		if got := normalizeOpenAIBaseURL(tc.raw); got != tc.want {
			t.Errorf("normalizeOpenAIBaseURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDimensionResultClamps(t *testing.T) {
	v := dimensionResult{Economic: 2.5, Social: -3, Europe: 0.4}.vector()
	if v.Economic != 1 || v.Social != -1 || v.Europe != 0.4 {
		t.Fatalf("vector = %+v, want components clamped to [-1, 1]", v)
	}
}
