package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration. path names an optional YAML file; envFile
// an optional dotenv file. Missing optional files are not an error unless
// they were asked for explicitly.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// loadDotenv loads envFile, or ./.env when envFile is empty and the file
// exists. Variables already set in the process win.
func loadDotenv(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	setters := []struct {
		name string
		set  func(string) error
	}{
		{"PORT", func(v string) error { cfg.Server.Addr = ":" + v; return nil }},
		{"PORTFOLIO_ADDR", func(v string) error { cfg.Server.Addr = v; return nil }},
		{"PORTFOLIO_MODE", func(v string) error { cfg.Server.Mode = v; return nil }},
		{"PORTFOLIO_ASSETS_DIR", func(v string) error { cfg.Server.AssetsDir = v; return nil }},
		{"PORTFOLIO_CONTENT", func(v string) error { cfg.Server.ContentPath = v; return nil }},
		{"PORTFOLIO_WATCH", func(v string) error { return parseBool(v, &cfg.Server.Watch) }},
		{"PORTFOLIO_SESSION_TTL", func(v string) error { return parseDuration(v, &cfg.Server.SessionTTL) }},
		{"PORTFOLIO_TRACK_VISITORS", func(v string) error { return parseBool(v, &cfg.Server.TrackVisitors) }},

		{"PORTFOLIO_LOADING_DELAY", func(v string) error { return parseDuration(v, &cfg.Page.LoadingDelay) }},
		{"PORTFOLIO_TYPING_INTERVAL", func(v string) error { return parseDuration(v, &cfg.Page.TypingInterval) }},
		{"PORTFOLIO_REVEAL_THRESHOLD", func(v string) error { return parseFloat(v, &cfg.Page.RevealThreshold) }},
		{"PORTFOLIO_NAV_THRESHOLD", func(v string) error { return parseFloat(v, &cfg.Page.NavThreshold) }},
		{"PORTFOLIO_NAV_MODE", func(v string) error { cfg.Page.NavMode = v; return nil }},
		{"PORTFOLIO_SKILLS_PAGE_SIZE", func(v string) error { return parseInt(v, &cfg.Page.SkillsPageSize) }},

		{"PORTFOLIO_DB", func(v string) error { cfg.Storage.DBPath = v; return nil }},

		{"PORTFOLIO_CONTACT_RELAY", func(v string) error { cfg.Contact.Relay = v; return nil }},
		{"PORTFOLIO_CONTACT_ENDPOINT", func(v string) error { cfg.Contact.Endpoint = v; return nil }},
		{"PORTFOLIO_CONTACT_TIMEOUT", func(v string) error { return parseDuration(v, &cfg.Contact.Timeout) }},
		{"WEB3FORMS_ACCESS_KEY", func(v string) error { cfg.Contact.AccessKey = v; return nil }},
		{"SMTP_HOST", func(v string) error { cfg.Contact.SMTP.Host = v; return nil }},
		{"SMTP_PORT", func(v string) error { cfg.Contact.SMTP.Port = v; return nil }},
		{"SMTP_USER", func(v string) error { cfg.Contact.SMTP.User = v; return nil }},
		{"SMTP_PASS", func(v string) error { cfg.Contact.SMTP.Pass = v; return nil }},
		{"TO_EMAIL", func(v string) error { cfg.Contact.SMTP.To = v; return nil }},

		{"PORTFOLIO_ADMIN", func(v string) error { return parseBool(v, &cfg.Admin.Enabled) }},
		{"ADMIN_USERNAME", func(v string) error { cfg.Admin.Username = v; return nil }},
		{"ADMIN_PASSWORD", func(v string) error { cfg.Admin.Password = v; return nil }},

		{"PORTFOLIO_LOG_LEVEL", func(v string) error { cfg.Log.Level = v; return nil }},
		{"PORTFOLIO_LOG_FORMAT", func(v string) error { cfg.Log.Format = v; return nil }},
	}

	for _, s := range setters {
		v, ok := lookup(s.name)
		if !ok || v == "" {
			continue
		}
		if err := s.set(v); err != nil {
			return fmt.Errorf("invalid value for %s: %w", s.name, err)
		}
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
