package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/whipcheck/pkg/poll"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o700))
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_defaultsFS(t *testing.T) {
	data, err := defaultsFS.ReadFile("defaults/config")
	require.NoError(t, err)
	for _, key := range []string{"start_url", "engine", "timeout_ms", "poll_interval_ms", "notify_channels"} {
		assert.Contains(t, string(data), key)
	}
}

func TestLoad_WithCustomDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "custom-config")

	cfg, err := Load(configDir)
	require.NoError(t, err)

	assert.Equal(t, configDir, cfg.ConfigDir())
	assert.FileExists(t, filepath.Join(configDir, "config"))
	assert.Equal(t, "http://localhost:8080/", cfg.StartURL)
	assert.Equal(t, "playwright", cfg.Engine)
	assert.Equal(t, 5000, cfg.TimeoutMs)
}

func TestLoad_InstalledTemplateKeepsDefaults(t *testing.T) {
	configDir := t.TempDir()
	_, err := Load(configDir)
	require.NoError(t, err)

	// edit the installed file to a commented-only template
	writeConfig(t, configDir, "# start_url = http://example.com/\n")
	cfg, err := Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", cfg.StartURL)
}

func TestLoad_UserConfigNotOverwritten(t *testing.T) {
	configDir := t.TempDir()
	path := writeConfig(t, configDir, "start_url = http://staging.example.com/\ntimeout_ms = 8000\n")

	cfg, err := Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, "http://staging.example.com/", cfg.StartURL)
	assert.Equal(t, 8000, cfg.TimeoutMs)

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "start_url = http://staging.example.com/\ntimeout_ms = 8000\n", string(data))
}

func TestLoad_InvalidConfig(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "timeout_ms = soon\n")
	_, err := Load(configDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout_ms")
}

func TestLoad_LocalDirFromWorkingDir(t *testing.T) {
	work := t.TempDir()
	writeConfig(t, filepath.Join(work, ".whipcheck"), "display_name = Local User\n")
	t.Chdir(work)

	cfg, err := Load(filepath.Join(work, "global"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, ".whipcheck"), cfg.LocalDir())
	assert.Equal(t, "Local User", cfg.DisplayName)
}

func TestDefaultConfigDir(t *testing.T) {
	dir := DefaultConfigDir()
	assert.Equal(t, "whipcheck", filepath.Base(dir))
	assert.Equal(t, ".config", filepath.Base(filepath.Dir(dir)))
}

func TestLocalConfig_NoLocalDir(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global")
	cfg, err := loadWithLocal(globalDir, "")
	require.NoError(t, err)
	assert.Equal(t, globalDir, cfg.ConfigDir())
	assert.Empty(t, cfg.LocalDir())
}

func TestLocalConfig_LocalOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalDir := filepath.Join(tmpDir, "global")
	localDir := filepath.Join(tmpDir, ".whipcheck")

	writeConfig(t, globalDir, `
start_url = http://global/
email = global@example.com
headless = true
timeout_ms = 7000
`)
	writeConfig(t, localDir, `
start_url = http://local/
headless = false
`)

	cfg, err := loadWithLocal(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, "http://local/", cfg.StartURL)
	assert.False(t, cfg.Headless, "explicit false in local config wins")
	assert.True(t, cfg.HeadlessSet)
	assert.Equal(t, "global@example.com", cfg.Email)
	assert.Equal(t, 7000, cfg.TimeoutMs)
}

func TestConfig_ApplyFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := loadWithLocal(filepath.Join(tmpDir, "global"), "")
	require.NoError(t, err)

	extra := writeConfig(t, filepath.Join(tmpDir, "ci"), "engine = chromedp\nslow_mo_ms = 0\npassword = p#ss\n")
	require.NoError(t, cfg.ApplyFile(extra))
	assert.Equal(t, "chromedp", cfg.Engine)
	assert.Equal(t, "p#ss", cfg.Password, "# inside values is not a comment")
	assert.Equal(t, "http://localhost:8080/", cfg.StartURL)

	err = cfg.ApplyFile(filepath.Join(tmpDir, "missing.ini"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ini")
}

func TestConfig_Validate(t *testing.T) {
	valid := Values{StartURL: "http://app/", Email: "a@b.c", Password: "x", DisplayName: "A", TimeoutMs: 5000}

	cfg := &Config{Values: valid}
	require.NoError(t, cfg.Validate())

	cfg = &Config{Values: Values{StartURL: "http://app/", TimeoutMs: 5000}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing required settings: email, password, display_name", err.Error())

	noTimeout := valid
	noTimeout.TimeoutMs = 0
	cfg = &Config{Values: noTimeout}
	require.ErrorContains(t, cfg.Validate(), "timeout_ms must be positive")
}

func TestConfig_Poller(t *testing.T) {
	cfg := &Config{Values: Values{TimeoutMs: 3000, PollIntervalMs: 50}}
	assert.Equal(t, poll.Poller{Timeout: 3 * time.Second, Interval: 50 * time.Millisecond}, cfg.Poller())

	cfg = &Config{Values: Values{TimeoutMs: 3000}}
	assert.Equal(t, poll.DefaultInterval, cfg.Poller().Interval)
}

func TestConfig_NotifyParams(t *testing.T) {
	cfg := &Config{Values: Values{
		NotifyChannels:     []string{"slack", "webhook"},
		NotifyOnError:      true,
		NotifyTimeoutMs:    3000,
		NotifySlackToken:   "xoxb",
		NotifySlackChannel: "qa",
		NotifyWebhookURLs:  []string{"https://hooks.example.com/a"},
		NotifySMTPPort:     587,
		NotifyEmailTo:      []string{"qa@example.com"},
	}}
	p := cfg.NotifyParams()
	assert.Equal(t, []string{"slack", "webhook"}, p.Channels)
	assert.True(t, p.OnError)
	assert.False(t, p.OnComplete)
	assert.Equal(t, 3000, p.TimeoutMs)
	assert.Equal(t, "xoxb", p.SlackToken)
	assert.Equal(t, "qa", p.SlackChannel)
	assert.Equal(t, []string{"https://hooks.example.com/a"}, p.WebhookURLs)
	assert.Equal(t, 587, p.SMTPPort)
	assert.Equal(t, []string{"qa@example.com"}, p.EmailTo)
}

func TestDefaultsInstaller_Install(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, newDefaultsInstaller(defaultsFS).Install(dir))
	data, err := os.ReadFile(filepath.Join(dir, "config")) //nolint:gosec // test file
	require.NoError(t, err)
	embedded, err := defaultsFS.ReadFile("defaults/config")
	require.NoError(t, err)
	assert.Equal(t, embedded, data)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	require.Error(t, newDefaultsInstaller(defaultsFS).Install(filepath.Join(blocker, "dir")))
}
