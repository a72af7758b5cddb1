package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Y3454R/vsp-mvp/internal/config"
)

func TestLoadFromReader_AppliesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != ":8000" {
		t.Errorf("listen_addr = %q, want %q", cfg.Server.ListenAddr, ":8000")
	}
	if cfg.Server.LogLevel != config.LogInfo {
		t.Errorf("log_level = %q, want info", cfg.Server.LogLevel)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
	if cfg.Cases.Dir != "data/cases" {
		t.Errorf("cases.dir = %q, want data/cases", cfg.Cases.Dir)
	}
}

func TestLoadFromReader_ExplicitValues(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: ":9000"
  log_level: debug
llm:
  provider: anthropic
  model: claude-3-5-sonnet-latest
  temperature: 0.2
  max_tokens: 512
cases:
  dir: /srv/cases
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("listen_addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.LLM.MaxTokens != 512 {
		t.Errorf("max_tokens = %d, want 512", cfg.LLM.MaxTokens)
	}
	if cfg.Cases.Dir != "/srv/cases" {
		t.Errorf("cases.dir = %q", cfg.Cases.Dir)
	}
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listem_addr: ":9000"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for misspelled field, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	t.Parallel()
	yaml := `
llm:
  provider: skynet
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
	if !strings.Contains(err.Error(), "provider") {
		t.Errorf("error should mention the provider, got: %v", err)
	}
}

func TestValidate_TemperatureOutOfRange(t *testing.T) {
	t.Parallel()
	for _, temp := range []string{"-0.1", "2.5"} {
		yaml := "llm:\n  temperature: " + temp + "\n"
		_, err := config.LoadFromReader(strings.NewReader(yaml))
		if err == nil {
			t.Errorf("temperature %s: expected error, got nil", temp)
		}
	}
}

func TestValidate_NegativeMaxTokens(t *testing.T) {
	t.Parallel()
	yaml := `
llm:
  max_tokens: -5
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for negative max_tokens, got nil")
	}
}

func TestValidate_ReportsAllFailuresAtOnce(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
llm:
  provider: skynet
  temperature: 3
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"log_level", "provider", "temperature"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %v", want, err)
		}
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  listen_addr: \":7777\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":7777" {
		t.Errorf("listen_addr = %q, want :7777", cfg.Server.ListenAddr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
