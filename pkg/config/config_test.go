package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir string, cfg Config) (path string) {
	t.Helper()

	path = filepath.Join(dir, "config.json")
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func writeTemplate(t *testing.T, dir string) (path string) {
	t.Helper()

	path = filepath.Join(dir, "template.tex")
	err := os.WriteFile(path, []byte(`\documentclass{article}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)
	path := writeConfigFile(t, dir, Config{
		AnthropicAPIKey: "sk-test",
		TemplatePath:    tmpl,
		Defaults: DefaultConfig{
			OutputDir:  filepath.Join(dir, "out"),
			SessionDir: filepath.Join(dir, "sessions"),
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AnthropicAPIKey != "sk-test" {
		t.Errorf("Expected API key sk-test, got %q", cfg.AnthropicAPIKey)
	}
	if cfg.TemplatePath != tmpl {
		t.Errorf("Expected template path %s, got %s", tmpl, cfg.TemplatePath)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)
	path := writeConfigFile(t, dir, Config{
		AnthropicAPIKey: "sk-from-file",
		TemplatePath:    tmpl,
	})

	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AnthropicAPIKey != "sk-from-env" {
		t.Errorf("Expected env override, got %q", cfg.AnthropicAPIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("Expected error for missing config")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := os.WriteFile(path, []byte("{broken"), 0600)
	if err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)
	path := writeConfigFile(t, dir, Config{TemplatePath: tmpl})

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestValidateRequiresTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, Config{
		AnthropicAPIKey: "sk-test",
		TemplatePath:    filepath.Join(dir, "missing.tex"),
	})

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for missing template file")
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)

	cfg := Config{
		AnthropicAPIKey: "sk-test",
		TemplatePath:    tmpl,
	}
	err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Defaults.OutputDir == "" {
		t.Error("Expected default output dir")
	}
	if cfg.Defaults.SessionDir == "" {
		t.Error("Expected default session dir")
	}
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Config file is not valid JSON: %v", err)
	}
	if cfg.TemplatePath == "" {
		t.Error("Expected default template path in generated config")
	}

	// Second run must refuse to overwrite.
	err = InitConfig(path)
	if err == nil {
		t.Error("Expected error when config already exists")
	}
}

func TestModelSelection(t *testing.T) {
	cfg := Config{Models: ModelsConfig{Extraction: "claude-a", Tailoring: "claude-b"}}

	if cfg.GetExtractionModel() != "claude-a" {
		t.Errorf("Expected extraction model claude-a, got %s", cfg.GetExtractionModel())
	}
	if cfg.GetTailoringModel() != "claude-b" {
		t.Errorf("Expected tailoring model claude-b, got %s", cfg.GetTailoringModel())
	}

	empty := Config{}
	if empty.GetExtractionModel() != "" || empty.GetTailoringModel() != "" {
		t.Error("Expected empty model selection to defer to client default")
	}
}
