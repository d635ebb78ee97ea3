// Package config loads whipcheck settings from ini files: embedded defaults, the global
// config dir, a local .whipcheck dir and an optional explicit file, later sources winning.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/umputun/whipcheck/pkg/notify"
	"github.com/umputun/whipcheck/pkg/poll"
)

//go:embed defaults/config
var defaultsFS embed.FS

// localDirName is the per-project config directory looked up in the working directory.
const localDirName = ".whipcheck"

// Config is the merged configuration.
type Config struct {
	Values

	configDir string
	localDir  string
}

// DefaultConfigDir returns ~/.config/whipcheck, or a relative .config/whipcheck if home is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "whipcheck")
	}
	return filepath.Join(home, ".config", "whipcheck")
}

// Load reads config from configDir (DefaultConfigDir if empty) and from .whipcheck in the
// working directory when present. the default config file is installed into configDir on first run.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	localDir := ""
	if st, err := os.Stat(localDirName); err == nil && st.IsDir() {
		if abs, absErr := filepath.Abs(localDirName); absErr == nil {
			localDir = abs
		}
	}
	return loadWithLocal(configDir, localDir)
}

func loadWithLocal(globalDir, localDir string) (*Config, error) {
	if err := newDefaultsInstaller(defaultsFS).Install(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	localConfig := ""
	if localDir != "" {
		localConfig = filepath.Join(localDir, "config")
	}
	values, err := newValuesLoader(defaultsFS).Load(localConfig, filepath.Join(globalDir, "config"))
	if err != nil {
		return nil, fmt.Errorf("load config values: %w", err)
	}
	return &Config{Values: values, configDir: globalDir, localDir: localDir}, nil
}

// ApplyFile merges the file at path over the loaded values. unlike the global and local
// config files, an explicitly given file must exist.
func (c *Config) ApplyFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	vl := newValuesLoader(defaultsFS)
	extra, err := vl.parseValuesFromFile(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	c.mergeFrom(&extra)
	return nil
}

// ConfigDir returns the global config directory in use.
func (c *Config) ConfigDir() string { return c.configDir }

// LocalDir returns the local .whipcheck directory, empty if none was found.
func (c *Config) LocalDir() string { return c.localDir }

// Validate checks the values needed to start a run.
func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct{ key, val string }{
		{"start_url", c.StartURL}, {"email", c.Email}, {"password", c.Password}, {"display_name", c.DisplayName},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	return nil
}

// Poller returns the wait timing shared by all assertions of a run.
func (c *Config) Poller() poll.Poller {
	return poll.New(time.Duration(c.TimeoutMs)*time.Millisecond, time.Duration(c.PollIntervalMs)*time.Millisecond)
}

// NotifyParams maps notify_* values to notification service params.
func (c *Config) NotifyParams() notify.Params {
	return notify.Params{
		Channels:      c.NotifyChannels,
		OnError:       c.NotifyOnError,
		OnComplete:    c.NotifyOnComplete,
		TimeoutMs:     c.NotifyTimeoutMs,
		TelegramToken: c.NotifyTelegramToken,
		TelegramChat:  c.NotifyTelegramChat,
		SlackToken:    c.NotifySlackToken,
		SlackChannel:  c.NotifySlackChannel,
		SMTPHost:      c.NotifySMTPHost,
		SMTPPort:      c.NotifySMTPPort,
		SMTPUsername:  c.NotifySMTPUsername,
		SMTPPassword:  c.NotifySMTPPassword,
		SMTPStartTLS:  c.NotifySMTPStartTLS,
		EmailFrom:     c.NotifyEmailFrom,
		EmailTo:       c.NotifyEmailTo,
		WebhookURLs:   c.NotifyWebhookURLs,
	}
}
