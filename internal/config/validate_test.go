package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestValidateDefaultsPass(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"empty models dir",
			func(c *Config) { c.Models.Dir = "  " },
			"models.dir",
		},
		{
			"empty text model",
			func(c *Config) { c.Models.TextModel = "" },
			"models.text_model",
		},
		{
			"empty vectorizer",
			func(c *Config) { c.Models.TextVectorizer = "" },
			"models.text_vectorizer",
		},
		{
			"empty url model",
			func(c *Config) { c.Models.URLModel = "" },
			"models.url_model",
		},
		{
			"download without archives",
			func(c *Config) { c.Bundle.Download = true },
			"bundle.archives",
		},
		{
			"bad archive url",
			func(c *Config) {
				c.Bundle.Download = true
				c.Bundle.Archives = map[string]string{"m.zip": "ftp://example.com/m.zip"}
			},
			"invalid download URL",
		},
		{
			"zero timeout",
			func(c *Config) { c.Bundle.TimeoutSeconds = 0 },
			"timeout_seconds",
		},
		{
			"zero history size",
			func(c *Config) { c.Scanner.HistorySize = 0 },
			"history_size",
		},
		{
			"bad telemetry protocol",
			func(c *Config) { c.Telemetry.Protocol = "udp" },
			"telemetry.protocol",
		},
		{
			"telemetry without endpoint",
			func(c *Config) { c.Telemetry.Enabled = true },
			"telemetry.endpoint",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateAcceptsDownloadConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Bundle.Download = true
	cfg.Bundle.Archives = map[string]string{
		"email_model.onnx.zip": "https://models.example.com/email_model.onnx.zip",
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("valid download config rejected: %v", err)
	}
}
