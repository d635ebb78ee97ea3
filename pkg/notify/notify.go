// Package notify sends a run summary to chat, email and webhook channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	ntfy "github.com/go-pkgz/notify"

	"github.com/umputun/whipcheck/pkg/expect"
	"github.com/umputun/whipcheck/pkg/scenario"
)

// maxDetail caps one failure's detail, chat channels reject long messages.
const maxDetail = 300

// Params holds configuration for creating a notification Service, filled from config values.
type Params struct {
	Channels      []string
	OnError       bool
	OnComplete    bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	SlackToken    string
	SlackChannel  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPStartTLS  bool
	EmailFrom     string
	EmailTo       []string
	WebhookURLs   []string
}

// Failure is one failed scenario and what went wrong in it.
type Failure struct {
	Scenario string
	Detail   string // "subject: expected X, observed Y" for mismatches, the error text otherwise
}

// Summary is what gets reported about a run.
type Summary struct {
	URL      string
	Engine   string
	Duration time.Duration
	Counts   scenario.Counts
	Failures []Failure
	Skipped  []string // names of scenarios that never ran
	Abort    string   // why the run stopped early or could not start, empty for complete runs
}

// OK is true for complete runs where every scenario passed.
func (s Summary) OK() bool {
	return s.Abort == "" && s.Counts.Failed == 0 && s.Counts.Skipped == 0
}

// Summarize extracts failures, skips and the abort reason from a finished run.
func Summarize(rep *scenario.Report, url, engine string) Summary {
	sum := Summary{URL: url, Engine: engine, Duration: rep.Duration(), Counts: rep.Counts()}
	for _, res := range rep.Results {
		switch res.Status {
		case scenario.StatusFailed:
			sum.Failures = append(sum.Failures, Failure{Scenario: res.Name, Detail: failureDetail(res)})
		case scenario.StatusSkipped:
			sum.Skipped = append(sum.Skipped, res.Name)
			if sum.Abort == "" {
				sum.Abort = res.Error
			}
		}
	}
	return sum
}

// StartupFailure reports a run that never got to its first scenario.
func StartupFailure(url, engine string, err error) Summary {
	return Summary{URL: url, Engine: engine, Abort: err.Error()}
}

// failureDetail prefers the expected/observed pair over the full wrapped error chain.
func failureDetail(res scenario.Result) string {
	detail := res.Error
	var me *expect.MismatchError
	if errors.As(res.Err(), &me) {
		detail = fmt.Sprintf("%s: expected %s, observed %s", me.Subject, me.Expected, me.Observed)
	}
	if r := []rune(detail); len(r) > maxDetail {
		detail = string(r[:maxDetail]) + "..."
	}
	return detail
}

// Service delivers summaries to the configured channels.
type Service struct {
	channels  []channel
	onFailure bool
	onSuccess bool
	timeout   time.Duration
	host      string
	log       lgr.L
}

// channel pairs a notifier with its destination URI.
type channel struct {
	notifier   ntfy.Notifier
	dest       string
	htmlEscape bool // telegram uses HTML parse mode
}

// errUnavailable marks a channel that is configured correctly but can't be reached right now.
var errUnavailable = errors.New("channel unavailable")

// channelMakers builds channels by name, tests replace entries to avoid live calls.
var channelMakers = map[string]func(p Params) ([]channel, error){
	"telegram": telegramChannel,
	"email":    emailChannel,
	"slack":    slackChannel,
	"webhook":  webhookChannels,
}

// New creates a Service for the given Params.
// returns nil, nil if no channels are configured, Send is nil-safe.
func New(p Params, log lgr.L) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil service means notifications are off
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	svc := &Service{onFailure: p.OnError, onSuccess: p.OnComplete, host: host, log: log,
		timeout: time.Duration(p.TimeoutMs) * time.Millisecond}
	if svc.timeout <= 0 {
		svc.timeout = 10 * time.Second
	}

	for _, name := range p.Channels {
		name = strings.TrimSpace(strings.ToLower(name))
		mk, ok := channelMakers[name]
		if !ok {
			return nil, fmt.Errorf("unknown notification channel %q, expected one of %s", name, knownChannels())
		}
		chs, err := mk(p)
		if errors.Is(err, errUnavailable) {
			log.Logf("[WARN] %s notifications disabled: %v", name, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", name, err)
		}
		svc.channels = append(svc.channels, chs...)
	}
	if len(svc.channels) == 0 {
		log.Logf("[WARN] no notification channel is available")
	}
	return svc, nil
}

// Send delivers the summary if the on-error/on-complete policy asks for it.
// delivery errors are logged, never returned.
func (s *Service) Send(ctx context.Context, sum Summary) {
	if s == nil {
		return
	}
	if (sum.OK() && !s.onSuccess) || (!sum.OK() && !s.onFailure) {
		return
	}

	msg := s.Message(sum)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(ctx, ch.dest, text); err != nil {
			s.log.Logf("[WARN] notification to %s failed: %v", ch.notifier, err)
		}
	}
}

// Message renders the plain text body sent to every channel.
func (s *Service) Message(sum Summary) string {
	var b strings.Builder
	c := sum.Counts
	switch {
	case sum.OK():
		fmt.Fprintf(&b, "whipcheck passed on %s: %d scenarios\n", s.host, c.Passed)
	case c.Passed+c.Failed+c.Skipped == 0:
		fmt.Fprintf(&b, "whipcheck could not run on %s\n", s.host)
	default:
		fmt.Fprintf(&b, "whipcheck failed on %s: %d passed, %d failed, %d skipped\n", s.host, c.Passed, c.Failed, c.Skipped)
	}

	b.WriteString("\n")
	if sum.URL != "" {
		fmt.Fprintf(&b, "target: %s (%s)\n", sum.URL, sum.Engine)
	}
	if sum.Duration > 0 {
		fmt.Fprintf(&b, "took:   %s\n", sum.Duration.Round(time.Second))
	}
	if sum.Abort != "" {
		fmt.Fprintf(&b, "abort:  %s\n", sum.Abort)
	}
	for _, f := range sum.Failures {
		fmt.Fprintf(&b, "\nFAIL %s\n  %s\n", f.Scenario, f.Detail)
	}
	if len(sum.Skipped) > 0 {
		fmt.Fprintf(&b, "\nskipped: %s\n", strings.Join(sum.Skipped, ", "))
	}
	return b.String()
}

func knownChannels() string {
	names := make([]string, 0, len(channelMakers))
	for name := range channelMakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// telegramChannel verifies the bot token with a live call; failures there disable the channel
// with the token redacted rather than failing the run.
func telegramChannel(p Params) ([]channel, error) {
	if p.TelegramToken == "" || p.TelegramChat == "" {
		return nil, errors.New("notify_telegram_token and notify_telegram_chat are required")
	}
	tg, err := ntfy.NewTelegram(ntfy.TelegramParams{Token: p.TelegramToken})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errUnavailable, strings.ReplaceAll(err.Error(), p.TelegramToken, "[REDACTED]"))
	}
	return []channel{{notifier: tg, dest: "telegram:" + p.TelegramChat + "?parseMode=HTML", htmlEscape: true}}, nil
}

func emailChannel(p Params) ([]channel, error) {
	switch {
	case p.SMTPHost == "":
		return nil, errors.New("notify_smtp_host is required")
	case p.EmailFrom == "":
		return nil, errors.New("notify_email_from is required")
	case len(p.EmailTo) == 0:
		return nil, errors.New("notify_email_to is required")
	}
	em := ntfy.NewEmail(ntfy.SMTPParams{Host: p.SMTPHost, Port: p.SMTPPort, Username: p.SMTPUsername,
		Password: p.SMTPPassword, StartTLS: p.SMTPStartTLS})
	dest := fmt.Sprintf("mailto:%s?from=%s&subject=%s", strings.Join(p.EmailTo, ","),
		url.QueryEscape(p.EmailFrom), url.QueryEscape("whipcheck results"))
	return []channel{{notifier: em, dest: dest}}, nil
}

func slackChannel(p Params) ([]channel, error) {
	if p.SlackToken == "" || p.SlackChannel == "" {
		return nil, errors.New("notify_slack_token and notify_slack_channel are required")
	}
	return []channel{{notifier: ntfy.NewSlack(p.SlackToken), dest: "slack:" + p.SlackChannel}}, nil
}

func webhookChannels(p Params) ([]channel, error) {
	if len(p.WebhookURLs) == 0 {
		return nil, errors.New("notify_webhook_urls is required")
	}
	wh := ntfy.NewWebhook(ntfy.WebhookParams{})
	chs := make([]channel, 0, len(p.WebhookURLs))
	for _, u := range p.WebhookURLs {
		chs = append(chs, channel{notifier: wh, dest: u})
	}
	return chs, nil
}
