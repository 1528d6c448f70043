package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string        `json:"anthropic_api_key"`
	Models          ModelsConfig  `json:"models,omitempty"`
	TemplatePath    string        `json:"template_path"`
	Interview       Interview     `json:"interview,omitempty"`
	Defaults        DefaultConfig `json:"defaults"`
}

// ModelsConfig holds model selection for extraction and tailoring.
type ModelsConfig struct {
	Extraction string `json:"extraction,omitempty"`
	Tailoring  string `json:"tailoring,omitempty"`
}

// Interview holds interview-related configuration.
type Interview struct {
	// MaxQuestions caps how many questions one interview may ask. 0 keeps
	// the engine default.
	MaxQuestions int `json:"max_questions,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir  string `json:"output_dir"`
	SessionDir string `json:"session_dir"`
}

// GetExtractionModel returns the extraction model or empty for the client default.
func (c *Config) GetExtractionModel() (model string) {
	model = c.Models.Extraction
	return model
}

// GetTailoringModel returns the tailoring model or empty for the client default.
func (c *Config) GetTailoringModel() (model string) {
	model = c.Models.Tailoring
	return model
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'resume-builder init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.AnthropicAPIKey = apiKey
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present and fills in
// defaults for optional paths.
func (c *Config) Validate() (err error) {
	if c.AnthropicAPIKey == "" {
		err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
		return err
	}

	if c.TemplatePath == "" {
		err = errors.New("template_path is required in config")
		return err
	}

	// Check template file exists
	_, err = os.Stat(c.TemplatePath)
	if os.IsNotExist(err) {
		err = errors.Errorf("template file not found: %s", c.TemplatePath)
		return err
	}
	err = nil

	// Set defaults if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./applications"
	}
	if c.Defaults.SessionDir == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		c.Defaults.SessionDir = filepath.Join(homeDir, ".resume-builder", "sessions")
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = defaultConfigPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	// Create default config
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		AnthropicAPIKey: "sk-ant-api03-...",
		TemplatePath:    filepath.Join(homeDir, ".resume-builder", "template.tex"),
		Defaults: DefaultConfig{
			OutputDir:  filepath.Join(homeDir, "Documents", "Applications"),
			SessionDir: filepath.Join(homeDir, ".resume-builder", "sessions"),
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}

// defaultConfigPath resolves ~/.resume-builder/config.json.
func defaultConfigPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-builder", "config.json")
	return path, err
}
