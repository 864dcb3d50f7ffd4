package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks a loaded config for mistakes that would only surface later
// as confusing runtime failures.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if strings.TrimSpace(cfg.Models.Dir) == "" {
		return fmt.Errorf("models.dir must not be empty")
	}
	if strings.TrimSpace(cfg.Models.TextModel) == "" {
		return fmt.Errorf("models.text_model must not be empty")
	}
	if strings.TrimSpace(cfg.Models.TextVectorizer) == "" {
		return fmt.Errorf("models.text_vectorizer must not be empty")
	}
	if strings.TrimSpace(cfg.Models.URLModel) == "" {
		return fmt.Errorf("models.url_model must not be empty")
	}

	if cfg.Bundle.Download {
		if len(cfg.Bundle.Archives) == 0 {
			return fmt.Errorf("bundle.download is enabled but bundle.archives is empty")
		}
		for name, raw := range cfg.Bundle.Archives {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("bundle.archives contains an empty archive name")
			}
			u, err := url.Parse(raw)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("bundle.archives[%q]: invalid download URL %q", name, raw)
			}
		}
	}
	if cfg.Bundle.TimeoutSeconds <= 0 {
		return fmt.Errorf("bundle.timeout_seconds must be positive, got %d", cfg.Bundle.TimeoutSeconds)
	}

	if cfg.Scanner.HistorySize <= 0 {
		return fmt.Errorf("scanner.history_size must be positive, got %d", cfg.Scanner.HistorySize)
	}

	switch strings.ToLower(cfg.Telemetry.Protocol) {
	case "grpc", "http":
	default:
		return fmt.Errorf("telemetry.protocol must be grpc or http, got %q", cfg.Telemetry.Protocol)
	}
	if cfg.Telemetry.Enabled && strings.TrimSpace(cfg.Telemetry.Endpoint) == "" {
		return fmt.Errorf("telemetry.enabled is true but telemetry.endpoint is empty")
	}

	return nil
}
