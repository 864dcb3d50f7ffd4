package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds PhishGuard configuration.
type Config struct {
	Models    ModelsConfig    `yaml:"models"`
	Bundle    BundleConfig    `yaml:"bundle"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ModelsConfig locates the classifier assets on disk.
type ModelsConfig struct {
	Dir            string `yaml:"dir"`             // where model files live / archives extract to
	TextModel      string `yaml:"text_model"`      // e.g. "email_model.onnx"
	TextVectorizer string `yaml:"text_vectorizer"` // e.g. "email_vectorizer.json"
	URLModel       string `yaml:"url_model"`       // e.g. "url_model.onnx"
}

// BundleConfig controls the one-time model download on startup.
type BundleConfig struct {
	Download       bool              `yaml:"download"`
	Archives       map[string]string `yaml:"archives"` // zip filename -> download URL
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

type ScannerConfig struct {
	HistorySize int `yaml:"history_size"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Models.Dir == "" {
		cfg.Models.Dir = "trained_models"
	}
	if cfg.Models.TextModel == "" {
		cfg.Models.TextModel = "email_model.onnx"
	}
	if cfg.Models.TextVectorizer == "" {
		cfg.Models.TextVectorizer = "email_vectorizer.json"
	}
	if cfg.Models.URLModel == "" {
		cfg.Models.URLModel = "url_model.onnx"
	}

	if cfg.Bundle.TimeoutSeconds <= 0 {
		cfg.Bundle.TimeoutSeconds = 60
	}

	if cfg.Scanner.HistorySize <= 0 {
		cfg.Scanner.HistorySize = 100
	}

	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
}
