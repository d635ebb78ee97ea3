package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// fields ending in *Set track whether that field was explicitly set in config, so an explicit
// false/0 in a later file overrides an earlier non-zero value.
type Values struct {
	StartURL    string
	Email       string
	Password    string
	DisplayName string

	Engine      string
	Headless    bool
	HeadlessSet bool
	SlowMoMs    int
	SlowMoMsSet bool

	TimeoutMs         int
	TimeoutMsSet      bool
	PollIntervalMs    int
	PollIntervalMsSet bool

	ProgressFile string
	ReportFile   string

	NotifyChannels        []string
	NotifyOnError         bool
	NotifyOnErrorSet      bool
	NotifyOnComplete      bool
	NotifyOnCompleteSet   bool
	NotifyTimeoutMs       int
	NotifyTimeoutMsSet    bool
	NotifySlackToken      string
	NotifySlackChannel    string
	NotifyTelegramToken   string
	NotifyTelegramChat    string
	NotifyWebhookURLs     []string
	NotifySMTPHost        string
	NotifySMTPPort        int
	NotifySMTPPortSet     bool
	NotifySMTPUsername    string
	NotifySMTPPassword    string
	NotifySMTPStartTLS    bool
	NotifySMTPStartTLSSet bool
	NotifyEmailFrom       string
	NotifyEmailTo         []string
}

// valuesLoader reads Values with the embedded defaults as the base layer.
type valuesLoader struct {
	embedFS embed.FS
}

func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values with fallback chain: local -> global -> embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)
	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if file doesn't exist or contains only comments/whitespace,
// so the installed commented template falls back to embedded defaults.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path from config dir or command line
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}
	return vl.parseValuesFromBytes(data)
}

func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses the default (unnamed) ini section into Values.
// keys with empty values are treated as unset.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true keeps # inside values (passwords, tokens)
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}
	p := iniParser{section: cfg.Section("")}
	var v Values

	p.str("start_url", &v.StartURL)
	p.str("email", &v.Email)
	p.str("password", &v.Password)
	p.str("display_name", &v.DisplayName)

	p.str("engine", &v.Engine)
	p.boolean("headless", &v.Headless, &v.HeadlessSet)
	p.nonNegInt("slow_mo_ms", &v.SlowMoMs, &v.SlowMoMsSet)
	p.nonNegInt("timeout_ms", &v.TimeoutMs, &v.TimeoutMsSet)
	p.nonNegInt("poll_interval_ms", &v.PollIntervalMs, &v.PollIntervalMsSet)

	p.str("progress_file", &v.ProgressFile)
	p.str("report_file", &v.ReportFile)

	p.list("notify_channels", &v.NotifyChannels)
	p.boolean("notify_on_error", &v.NotifyOnError, &v.NotifyOnErrorSet)
	p.boolean("notify_on_complete", &v.NotifyOnComplete, &v.NotifyOnCompleteSet)
	p.nonNegInt("notify_timeout_ms", &v.NotifyTimeoutMs, &v.NotifyTimeoutMsSet)
	p.str("notify_slack_token", &v.NotifySlackToken)
	p.str("notify_slack_channel", &v.NotifySlackChannel)
	p.str("notify_telegram_token", &v.NotifyTelegramToken)
	p.str("notify_telegram_chat", &v.NotifyTelegramChat)
	p.list("notify_webhook_urls", &v.NotifyWebhookURLs)
	p.str("notify_smtp_host", &v.NotifySMTPHost)
	p.nonNegInt("notify_smtp_port", &v.NotifySMTPPort, &v.NotifySMTPPortSet)
	p.str("notify_smtp_username", &v.NotifySMTPUsername)
	p.str("notify_smtp_password", &v.NotifySMTPPassword)
	p.boolean("notify_smtp_starttls", &v.NotifySMTPStartTLS, &v.NotifySMTPStartTLSSet)
	p.str("notify_email_from", &v.NotifyEmailFrom)
	p.list("notify_email_to", &v.NotifyEmailTo)

	if p.err != nil {
		return Values{}, p.err
	}
	return v, nil
}

// iniParser reads typed keys from one section, keeping the first error.
type iniParser struct {
	section *ini.Section
	err     error
}

func (p *iniParser) value(name string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	key, err := p.section.GetKey(name)
	if err != nil {
		return "", false
	}
	val := strings.TrimSpace(key.String())
	return val, val != ""
}

func (p *iniParser) str(name string, dst *string) {
	if val, ok := p.value(name); ok {
		*dst = val
	}
}

func (p *iniParser) boolean(name string, dst, set *bool) {
	if _, ok := p.value(name); !ok {
		return
	}
	val, err := p.section.Key(name).Bool()
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	*dst, *set = val, true
}

func (p *iniParser) nonNegInt(name string, dst *int, set *bool) {
	if _, ok := p.value(name); !ok {
		return
	}
	val, err := p.section.Key(name).Int()
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	if val < 0 {
		p.err = fmt.Errorf("invalid %s: must be non-negative, got %d", name, val)
		return
	}
	*dst, *set = val, true
}

// list parses a comma-separated value, skipping blanks.
func (p *iniParser) list(name string, dst *[]string) {
	val, ok := p.value(name)
	if !ok {
		return
	}
	var res []string
	for s := range strings.SplitSeq(val, ",") {
		if t := strings.TrimSpace(s); t != "" {
			res = append(res, t)
		}
	}
	if len(res) > 0 {
		*dst = res
	}
}

// mergeFrom merges set values from src into dst.
func (dst *Values) mergeFrom(src *Values) {
	mergeStr(&dst.StartURL, src.StartURL)
	mergeStr(&dst.Email, src.Email)
	mergeStr(&dst.Password, src.Password)
	mergeStr(&dst.DisplayName, src.DisplayName)
	mergeStr(&dst.Engine, src.Engine)
	mergeSet(&dst.Headless, &dst.HeadlessSet, src.Headless, src.HeadlessSet)
	mergeSet(&dst.SlowMoMs, &dst.SlowMoMsSet, src.SlowMoMs, src.SlowMoMsSet)
	mergeSet(&dst.TimeoutMs, &dst.TimeoutMsSet, src.TimeoutMs, src.TimeoutMsSet)
	mergeSet(&dst.PollIntervalMs, &dst.PollIntervalMsSet, src.PollIntervalMs, src.PollIntervalMsSet)
	mergeStr(&dst.ProgressFile, src.ProgressFile)
	mergeStr(&dst.ReportFile, src.ReportFile)

	mergeList(&dst.NotifyChannels, src.NotifyChannels)
	mergeSet(&dst.NotifyOnError, &dst.NotifyOnErrorSet, src.NotifyOnError, src.NotifyOnErrorSet)
	mergeSet(&dst.NotifyOnComplete, &dst.NotifyOnCompleteSet, src.NotifyOnComplete, src.NotifyOnCompleteSet)
	mergeSet(&dst.NotifyTimeoutMs, &dst.NotifyTimeoutMsSet, src.NotifyTimeoutMs, src.NotifyTimeoutMsSet)
	mergeStr(&dst.NotifySlackToken, src.NotifySlackToken)
	mergeStr(&dst.NotifySlackChannel, src.NotifySlackChannel)
	mergeStr(&dst.NotifyTelegramToken, src.NotifyTelegramToken)
	mergeStr(&dst.NotifyTelegramChat, src.NotifyTelegramChat)
	mergeList(&dst.NotifyWebhookURLs, src.NotifyWebhookURLs)
	mergeStr(&dst.NotifySMTPHost, src.NotifySMTPHost)
	mergeSet(&dst.NotifySMTPPort, &dst.NotifySMTPPortSet, src.NotifySMTPPort, src.NotifySMTPPortSet)
	mergeStr(&dst.NotifySMTPUsername, src.NotifySMTPUsername)
	mergeStr(&dst.NotifySMTPPassword, src.NotifySMTPPassword)
	mergeSet(&dst.NotifySMTPStartTLS, &dst.NotifySMTPStartTLSSet, src.NotifySMTPStartTLS, src.NotifySMTPStartTLSSet)
	mergeStr(&dst.NotifyEmailFrom, src.NotifyEmailFrom)
	mergeList(&dst.NotifyEmailTo, src.NotifyEmailTo)
}

func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

func mergeSet[T any](dst *T, dstSet *bool, src T, srcSet bool) {
	if srcSet {
		*dst, *dstSet = src, true
	}
}

// stripComments removes lines starting with # from content, handling CRLF line endings.
func stripComments(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
