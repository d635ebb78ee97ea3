package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesLoader_Load_EmbeddedOnly(t *testing.T) {
	values, err := newValuesLoader(defaultsFS).Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", values.StartURL)
	assert.Empty(t, values.Email)
	assert.Empty(t, values.Password)
	assert.Equal(t, "playwright", values.Engine)
	assert.True(t, values.Headless)
	assert.True(t, values.HeadlessSet)
	assert.Equal(t, 0, values.SlowMoMs)
	assert.True(t, values.SlowMoMsSet)
	assert.Equal(t, 5000, values.TimeoutMs)
	assert.Equal(t, 100, values.PollIntervalMs)
	assert.Empty(t, values.ProgressFile)
	assert.Empty(t, values.ReportFile)
	assert.Empty(t, values.NotifyChannels)
	assert.True(t, values.NotifyOnError)
	assert.False(t, values.NotifyOnComplete)
	assert.True(t, values.NotifyOnCompleteSet)
	assert.Equal(t, 10000, values.NotifyTimeoutMs)
	assert.False(t, values.NotifySMTPPortSet, "commented keys stay unset")
}

func TestValuesLoader_Load_GlobalOnly(t *testing.T) {
	globalConfig := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(globalConfig, []byte(`
start_url = https://whipbird.example.com/
email = qa@example.com
password = secret
display_name = QA Bot
timeout_ms = 9000
`), 0o600))

	values, err := newValuesLoader(defaultsFS).Load("", globalConfig)
	require.NoError(t, err)

	assert.Equal(t, "https://whipbird.example.com/", values.StartURL)
	assert.Equal(t, "qa@example.com", values.Email)
	assert.Equal(t, "secret", values.Password)
	assert.Equal(t, "QA Bot", values.DisplayName)
	assert.Equal(t, 9000, values.TimeoutMs)
	assert.Equal(t, 100, values.PollIntervalMs, "untouched keys keep embedded defaults")
}

func TestValuesLoader_Load_ExplicitZeroOverrides(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global")
	local := filepath.Join(dir, "local")
	require.NoError(t, os.WriteFile(global, []byte("slow_mo_ms = 250\nnotify_on_error = true\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("slow_mo_ms = 0\nnotify_on_error = false\n"), 0o600))

	values, err := newValuesLoader(defaultsFS).Load(local, global)
	require.NoError(t, err)
	assert.Equal(t, 0, values.SlowMoMs)
	assert.False(t, values.NotifyOnError)
}

func TestValuesLoader_parseValuesFromBytes(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, v Values)
		wantErr string
	}{
		{
			name: "lists are trimmed and blanks skipped",
			data: "notify_channels = slack, , webhook\nnotify_webhook_urls = https://a/ ,https://b/\nnotify_email_to = a@x.com,b@x.com",
			check: func(t *testing.T, v Values) {
				assert.Equal(t, []string{"slack", "webhook"}, v.NotifyChannels)
				assert.Equal(t, []string{"https://a/", "https://b/"}, v.NotifyWebhookURLs)
				assert.Equal(t, []string{"a@x.com", "b@x.com"}, v.NotifyEmailTo)
			},
		},
		{
			name: "smtp settings",
			data: "notify_smtp_host = smtp.example.com\nnotify_smtp_port = 465\nnotify_smtp_starttls = false\n" +
				"notify_smtp_username = u\nnotify_smtp_password = p\nnotify_email_from = qa@example.com",
			check: func(t *testing.T, v Values) {
				assert.Equal(t, "smtp.example.com", v.NotifySMTPHost)
				assert.Equal(t, 465, v.NotifySMTPPort)
				assert.False(t, v.NotifySMTPStartTLS)
				assert.True(t, v.NotifySMTPStartTLSSet)
				assert.Equal(t, "u", v.NotifySMTPUsername)
				assert.Equal(t, "p", v.NotifySMTPPassword)
				assert.Equal(t, "qa@example.com", v.NotifyEmailFrom)
			},
		},
		{
			name: "chat settings",
			data: "notify_slack_token = xoxb\nnotify_slack_channel = qa\nnotify_telegram_token = 1:abc\nnotify_telegram_chat = -100",
			check: func(t *testing.T, v Values) {
				assert.Equal(t, "xoxb", v.NotifySlackToken)
				assert.Equal(t, "qa", v.NotifySlackChannel)
				assert.Equal(t, "1:abc", v.NotifyTelegramToken)
				assert.Equal(t, "-100", v.NotifyTelegramChat)
			},
		},
		{
			name: "empty values are unset",
			data: "engine =\nheadless =\ntimeout_ms =",
			check: func(t *testing.T, v Values) {
				assert.Empty(t, v.Engine)
				assert.False(t, v.HeadlessSet)
				assert.False(t, v.TimeoutMsSet)
			},
		},
		{name: "bad bool", data: "headless = maybe", wantErr: "invalid headless"},
		{name: "bad int", data: "poll_interval_ms = fast", wantErr: "invalid poll_interval_ms"},
		{name: "negative int", data: "timeout_ms = -1", wantErr: "must be non-negative, got -1"},
		{name: "first error wins", data: "timeout_ms = x\nheadless = y", wantErr: "invalid headless"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := newValuesLoader(defaultsFS).parseValuesFromBytes([]byte(tc.data))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, v)
		})
	}
}

func TestValues_mergeFrom(t *testing.T) {
	dst := Values{StartURL: "http://a/", Engine: "playwright", TimeoutMs: 5000, TimeoutMsSet: true,
		NotifyChannels: []string{"slack"}}
	src := Values{Engine: "chromedp", TimeoutMs: 0, NotifyChannels: nil, Headless: false, HeadlessSet: true}
	dst.mergeFrom(&src)

	assert.Equal(t, "http://a/", dst.StartURL)
	assert.Equal(t, "chromedp", dst.Engine)
	assert.Equal(t, 5000, dst.TimeoutMs, "unset int does not override")
	assert.Equal(t, []string{"slack"}, dst.NotifyChannels)
	assert.True(t, dst.HeadlessSet)
	assert.False(t, dst.Headless)
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "a = 1\n\nb = 2", stripComments("# header\na = 1\r\n\n  # indented\nb = 2"))
	assert.Empty(t, stripComments("# only\n# comments"))
}
