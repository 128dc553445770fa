package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MontecalvoAm/portfolio/internal/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.Page.LoadingDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.Page.TypingInterval)
	assert.Equal(t, "sticky", cfg.Page.NavMode)
	assert.Equal(t, 6, cfg.Page.SkillsPageSize)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
page:
  loading_delay: 250ms
  nav_mode: exclusive
  nav_threshold: 0.3
`), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Page.LoadingDelay)
	assert.Equal(t, 0.3, cfg.Page.NavThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Page.TypingInterval, "untouched fields keep defaults")

	opts := cfg.PageOptions()
	assert.Equal(t, visibility.NavExclusive, opts.NavMode)
	assert.Equal(t, 250*time.Millisecond, opts.LoadingDelay)
}

func TestLoad_MissingExplicitFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)

	_, err = Load("", filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoad_DotenvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORTFOLIO_SKILLS_PAGE_SIZE=4\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PORTFOLIO_SKILLS_PAGE_SIZE") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Page.SkillsPageSize)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(cfg, fakeEnv(map[string]string{
		"PORT":                      "3000",
		"PORTFOLIO_TYPING_INTERVAL": "50ms",
		"PORTFOLIO_NAV_THRESHOLD":   "0.4",
		"PORTFOLIO_WATCH":           "true",
		"WEB3FORMS_ACCESS_KEY":      "secret",
		"SMTP_USER":                 "me@example.com",
		"ADMIN_PASSWORD":            "hunter2",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 50*time.Millisecond, cfg.Page.TypingInterval)
	assert.Equal(t, 0.4, cfg.Page.NavThreshold)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, "secret", cfg.Contact.AccessKey)
	assert.Equal(t, "me@example.com", cfg.Contact.SMTP.User)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestApplyEnv_AddrWinsOverPort(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyEnv(cfg, fakeEnv(map[string]string{"PORT": "3000", "PORTFOLIO_ADDR": "127.0.0.1:4000"})))
	assert.Equal(t, "127.0.0.1:4000", cfg.Server.Addr)
}

func TestApplyEnv_BadValue(t *testing.T) {
	err := applyEnv(Default(), fakeEnv(map[string]string{"PORTFOLIO_LOADING_DELAY": "soon"}))
	assert.ErrorContains(t, err, "PORTFOLIO_LOADING_DELAY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"zero ttl", func(c *Config) { c.Server.SessionTTL = 0 }},
		{"zero typing interval", func(c *Config) { c.Page.TypingInterval = 0 }},
		{"reveal threshold zero", func(c *Config) { c.Page.RevealThreshold = 0 }},
		{"nav threshold above one", func(c *Config) { c.Page.NavThreshold = 1.5 }},
		{"nav mode", func(c *Config) { c.Page.NavMode = "fade" }},
		{"page size", func(c *Config) { c.Page.SkillsPageSize = 0 }},
		{"relay", func(c *Config) { c.Contact.Relay = "carrier-pigeon" }},
		{"web3forms endpoint", func(c *Config) { c.Contact.Endpoint = "" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
