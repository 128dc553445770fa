// Package config loads the portfolio's settings.
//
// Sources, lowest priority first: built-in defaults, a YAML file, a .env
// file, then process environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MontecalvoAm/portfolio/internal/view"
	"github.com/MontecalvoAm/portfolio/internal/visibility"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Relay names accepted by ContactConfig.Relay.
const (
	RelayNone      = "none"
	RelayWeb3Forms = "web3forms"
	RelaySMTP      = "smtp"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Page    PageConfig    `yaml:"page"`
	Storage StorageConfig `yaml:"storage"`
	Contact ContactConfig `yaml:"contact"`
	Admin   AdminConfig   `yaml:"admin"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode        string        `yaml:"mode"`
	AssetsDir   string        `yaml:"assets_dir"`
	ContentPath string        `yaml:"content_path"`
	Watch       bool          `yaml:"watch"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	// TrackVisitors enables hashed-IP visitor tracking.
	TrackVisitors bool `yaml:"track_visitors"`
}

type PageConfig struct {
	LoadingDelay    time.Duration `yaml:"loading_delay"`
	TypingInterval  time.Duration `yaml:"typing_interval"`
	RevealThreshold float64       `yaml:"reveal_threshold"`
	NavThreshold    float64       `yaml:"nav_threshold"`
	NavMode         string        `yaml:"nav_mode"`
	SkillsPageSize  int           `yaml:"skills_page_size"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

type ContactConfig struct {
	Relay     string        `yaml:"relay"`
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	Timeout   time.Duration `yaml:"timeout"`
	SMTP      SMTPConfig    `yaml:"smtp"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	To   string `yaml:"to"`
}

type AdminConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := view.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Addr:          ":8080",
			Mode:          "release",
			AssetsDir:     "./public",
			SessionTTL:    30 * time.Minute,
			TrackVisitors: true,
		},
		Page: PageConfig{
			LoadingDelay:    opts.LoadingDelay,
			TypingInterval:  opts.TypingInterval,
			RevealThreshold: opts.RevealThreshold,
			NavThreshold:    opts.NavThreshold,
			NavMode:         opts.NavMode.String(),
			SkillsPageSize:  opts.SkillsPageSize,
		},
		Storage: StorageConfig{DBPath: "./data/portfolio.db"},
		Contact: ContactConfig{
			Relay:    RelayWeb3Forms,
			Endpoint: "https://api.web3forms.com/submit",
			Timeout:  10 * time.Second,
			SMTP:     SMTPConfig{Host: "smtp.gmail.com", Port: "587"},
		},
		Admin: AdminConfig{Enabled: true},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q is not debug, release or test", c.Server.Mode))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, errors.New("server.session_ttl must be positive"))
	}
	if c.Page.LoadingDelay < 0 {
		errs = append(errs, errors.New("page.loading_delay must not be negative"))
	}
	if c.Page.TypingInterval <= 0 {
		errs = append(errs, errors.New("page.typing_interval must be positive"))
	}
	if !validRatio(c.Page.RevealThreshold) {
		errs = append(errs, fmt.Errorf("page.reveal_threshold %v is outside (0, 1]", c.Page.RevealThreshold))
	}
	if !validRatio(c.Page.NavThreshold) {
		errs = append(errs, fmt.Errorf("page.nav_threshold %v is outside (0, 1]", c.Page.NavThreshold))
	}
	if _, err := visibility.ParseNavMode(c.Page.NavMode); err != nil {
		errs = append(errs, fmt.Errorf("page.nav_mode: %w", err))
	}
	if c.Page.SkillsPageSize < 1 {
		errs = append(errs, errors.New("page.skills_page_size must be at least 1"))
	}
	switch c.Contact.Relay {
	case RelayNone, RelayWeb3Forms, RelaySMTP:
	default:
		errs = append(errs, fmt.Errorf("contact.relay %q is not none, web3forms or smtp", c.Contact.Relay))
	}
	if c.Contact.Relay == RelayWeb3Forms && c.Contact.Endpoint == "" {
		errs = append(errs, errors.New("contact.endpoint is required for the web3forms relay"))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func validRatio(r float64) bool { return r > 0 && r <= 1 }

// PageOptions converts the page settings for view.Mount.
func (c *Config) PageOptions() view.Options {
	mode, _ := visibility.ParseNavMode(c.Page.NavMode)
	return view.Options{
		LoadingDelay:    c.Page.LoadingDelay,
		TypingInterval:  c.Page.TypingInterval,
		RevealThreshold: c.Page.RevealThreshold,
		NavThreshold:    c.Page.NavThreshold,
		NavMode:         mode,
		SkillsPageSize:  c.Page.SkillsPageSize,
	}
}

// Logger builds the process logger writing to w.
func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
