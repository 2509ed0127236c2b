package main

import (
	"testing"

	"github.com/jask/carousel/internal/config"
	"github.com/jask/carousel/internal/logging"
	"github.com/jask/carousel/internal/secrets"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
}

func TestResolveAPIKeyOrder(t *testing.T) {
	isolate(t)
	cfg := config.Config{LLM: config.LLMConfig{Provider: "gemini", APIKeyEnv: "GEMINI_API_KEY", APIKey: " from-config "}}

	if got := resolveAPIKey(cfg); got != "from-config" {
		t.Fatalf("config fallback = %q", got)
	}

	if err := secrets.StoreProviderKey("gemini", "from-store"); err != nil {
		t.Fatalf("store key: %v", err)
	}
	if got := resolveAPIKey(cfg); got != "from-store" {
		t.Fatalf("store key = %q", got)
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	if got := resolveAPIKey(cfg); got != "from-env" {
		t.Fatalf("env key = %q", got)
	}
}

func TestResolveAPIKeyOpenAIDefaultsEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "wrong")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := config.Config{LLM: config.LLMConfig{Provider: "openai", APIKeyEnv: "GEMINI_API_KEY"}}
	if got := resolveAPIKey(cfg); got != "sk-test" {
		t.Fatalf("openai key = %q", got)
	}
}

func TestLLMProviderSelection(t *testing.T) {
	log := logging.Discard()
	cases := []struct {
		provider string
		key      string
		want     string
	}{
		{"gemini", "k", "gemini"},
		{"", "k", "gemini"},
		{"OpenAI", "k", "openai"},
		{"offline", "", "offline"},
		{"gemini", "", "offline"},
		{"openai", "", "offline"},
	}
	for _, c := range cases {
		p := llmProvider(config.LLMConfig{Provider: c.provider, TextModel: "gemini-3-flash-preview", ImageModel: "gemini-2.5-flash-image"}, c.key, log)
		if p.Name() != c.want {
			t.Fatalf("provider %q key %q = %s, want %s", c.provider, c.key, p.Name(), c.want)
		}
	}
}
