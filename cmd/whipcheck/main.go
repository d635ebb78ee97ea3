// Package main provides whipcheck, the browser acceptance suite for the whipbird app.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/whipcheck/pkg/auth"
	"github.com/umputun/whipcheck/pkg/config"
	"github.com/umputun/whipcheck/pkg/driver"
	"github.com/umputun/whipcheck/pkg/notify"
	"github.com/umputun/whipcheck/pkg/progress"
	"github.com/umputun/whipcheck/pkg/render"
	"github.com/umputun/whipcheck/pkg/scenario"
)

// opts holds all command-line options. non-empty values override config.
type opts struct {
	URL         string        `short:"u" long:"url" env:"WHIPCHECK_URL" description:"start URL of the application under test"`
	Email       string        `long:"email" env:"WHIPCHECK_EMAIL" description:"email of the test account"`
	Password    string        `long:"password" env:"WHIPCHECK_PASSWORD" description:"password of the test account"`
	DisplayName string        `long:"display-name" env:"WHIPCHECK_DISPLAY_NAME" description:"display name of the test account"`
	Engine      string        `short:"e" long:"engine" description:"browser engine: playwright or chromedp"`
	Timeout     time.Duration `short:"t" long:"timeout" description:"wait timeout for every assertion, e.g. 5s"`
	Headed      bool          `long:"headed" description:"show the browser window"`
	Run         string        `short:"r" long:"run" description:"run only scenarios whose name matches this regexp"`
	Report      string        `long:"report" description:"write a YAML report to this file"`
	Config      string        `short:"c" long:"config" description:"config file applied over global and local config"`
	List        bool          `short:"l" long:"list" description:"list scenarios and exit"`
	NoColor     bool          `long:"no-color" description:"disable color output"`
	Debug       bool          `short:"d" long:"debug" description:"enable debug logging"`
	Version     bool          `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("whipcheck %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}
	setupLog(o.Debug)

	if o.List {
		if err := listScenarios(os.Stdout, o.Run); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	restore := quietInterrupt()

	failed, err := run(ctx, o)
	restore()
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}

func setupLog(debug bool) {
	if debug {
		lgr.Setup(lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.CallerFunc)
		return
	}
	lgr.Setup(lgr.Msec, lgr.LevelBraces)
}

// run executes the selected scenarios and reports whether any of them did not pass.
func run(ctx context.Context, o opts) (bool, error) {
	cfg, err := loadConfig(o)
	if err != nil {
		return true, err
	}
	engine, err := driver.ParseEngine(cfg.Engine)
	if err != nil {
		return true, err
	}
	scenarios, err := scenario.Filter(scenario.Catalogue(), o.Run)
	if err != nil {
		return true, err
	}
	if len(scenarios) == 0 {
		return true, fmt.Errorf("no scenarios match %q", o.Run)
	}

	log, err := progress.NewLogger(progress.Config{File: cfg.ProgressFile, StartURL: cfg.StartURL,
		Engine: string(engine), NoColor: o.NoColor})
	if err != nil {
		return true, fmt.Errorf("create progress logger: %w", err)
	}
	defer log.Close()

	notifier, err := notify.New(cfg.NotifyParams(), lgr.Func(lgr.Printf))
	if err != nil {
		return true, fmt.Errorf("setup notifications: %w", err)
	}

	log.Print("checking %s with %s, %d scenarios, timeout %dms", cfg.StartURL, engine, len(scenarios), cfg.TimeoutMs)
	if path := log.Path(); path != "" {
		log.Print("progress log: %s", path)
	}

	drv, err := driver.New(ctx, engine, driverOptions(cfg))
	if err != nil {
		err = fmt.Errorf("start %s: %w", engine, err)
		notifier.Send(context.WithoutCancel(ctx), notify.StartupFailure(cfg.StartURL, string(engine), err))
		return true, err
	}
	defer func() {
		if cerr := drv.Close(); cerr != nil {
			log.Warn("close browser: %v", cerr)
		}
	}()

	creds := auth.Credentials{Email: cfg.Email, Password: cfg.Password}
	runner := scenario.Runner{
		Session:   scenario.NewSession(drv, cfg.StartURL, creds, cfg.DisplayName, cfg.Poller()),
		Log:       log,
		Scenarios: scenarios,
	}
	rep := runner.Run(ctx)

	md, err := render.Markdown(rep.Markdown(), render.Options{NoColor: o.NoColor})
	if err != nil {
		log.Warn("render report: %v", err)
		md = rep.Markdown()
	}
	log.PrintRaw("\n%s\n", md)

	if cfg.ReportFile != "" {
		if err := rep.WriteYAML(cfg.ReportFile); err != nil {
			log.Error("%v", err)
		} else {
			log.Print("report written to %s", cfg.ReportFile)
		}
	}

	notifier.Send(context.WithoutCancel(ctx), notify.Summarize(rep, cfg.StartURL, string(engine)))
	log.Print("completed in %s", log.Elapsed())
	return rep.Failed(), nil
}

// driverOptions bounds every single browser call by the assertion timeout.
func driverOptions(cfg *config.Config) driver.Options {
	return driver.Options{
		Headless:      cfg.Headless,
		SlowMo:        time.Duration(cfg.SlowMoMs) * time.Millisecond,
		ActionTimeout: cfg.Poller().Timeout,
		Log:           lgr.Func(lgr.Printf),
	}
}

// loadConfig merges config files and command-line overrides and validates the result.
func loadConfig(o opts) (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.Config != "" {
		if err := cfg.ApplyFile(o.Config); err != nil {
			return nil, err
		}
	}
	applyOverrides(cfg, o)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	lgr.Printf("[DEBUG] config dir %s, local dir %q", cfg.ConfigDir(), cfg.LocalDir())
	return cfg, nil
}

func applyOverrides(cfg *config.Config, o opts) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StartURL, o.URL)
	set(&cfg.Email, o.Email)
	set(&cfg.Password, o.Password)
	set(&cfg.DisplayName, o.DisplayName)
	set(&cfg.Engine, o.Engine)
	set(&cfg.ReportFile, o.Report)
	if o.Timeout > 0 {
		cfg.TimeoutMs = int(o.Timeout.Milliseconds())
	}
	if o.Headed {
		cfg.Headless = false
	}
}

func listScenarios(w io.Writer, pattern string) error {
	scenarios, err := scenario.Filter(scenario.Catalogue(), pattern)
	if err != nil {
		return err
	}
	for i, sc := range scenarios {
		fmt.Fprintf(w, "%2d. %-50s %s\n", i+1, sc.Name, sc.Description)
	}
	return nil
}
