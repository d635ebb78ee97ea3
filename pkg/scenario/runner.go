package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umputun/whipcheck/pkg/driver"
)

//go:generate moq -out mocks/logger.go -pkg mocks -skip-ensure -fmt goimports . Logger

// Logger receives suite progress. progress.Logger implements it.
type Logger interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Pass(name string, elapsed time.Duration)
	Fail(name string, elapsed time.Duration, err error)
	Skip(name, reason string)
}

// Runner executes scenarios one at a time on a single session.
type Runner struct {
	Session   *Session
	Log       Logger
	Scenarios []Scenario
}

// Run executes all scenarios in order and returns the report. each scenario starts by loading
// the start URL and ends with a best-effort logout. a driver fault or a cancelled ctx stops the
// run; the scenarios not yet executed are reported as skipped.
func (r *Runner) Run(ctx context.Context) *Report {
	rep := &Report{Started: time.Now()}
	var abort error

	for _, sc := range r.Scenarios {
		if abort == nil && ctx.Err() != nil {
			abort = fmt.Errorf("run interrupted: %w", ctx.Err())
		}
		if abort != nil {
			r.Log.Skip(sc.Name, abort.Error())
			rep.Results = append(rep.Results, Result{Name: sc.Name, Description: sc.Description,
				Status: StatusSkipped, Error: abort.Error()})
			continue
		}

		res := r.runOne(ctx, sc)
		rep.Results = append(rep.Results, res)
		if res.err != nil && errors.Is(res.err, driver.ErrFault) {
			r.Log.Error("browser session is gone, skipping remaining scenarios")
			abort = fmt.Errorf("aborted after driver fault in %s", sc.Name)
		}
	}

	rep.Finished = time.Now()
	return rep
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) Result {
	r.Log.Print("running %s", sc.Name)
	start := time.Now()

	err := r.setup(ctx)
	if err == nil {
		err = sc.Run(ctx, r.Session)
	}
	if !errors.Is(err, driver.ErrFault) {
		r.Session.Auth.ForceLogOut(ctx, r.Log)
	}

	res := Result{Name: sc.Name, Description: sc.Description, Duration: time.Since(start), err: err}
	if err != nil {
		res.Status, res.Error = StatusFailed, err.Error()
		r.Log.Fail(sc.Name, res.Duration, err)
		return res
	}
	res.Status = StatusPassed
	r.Log.Pass(sc.Name, res.Duration)
	return res
}

func (r *Runner) setup(ctx context.Context) error {
	if err := r.Session.Driver.Navigate(ctx, r.Session.StartURL); err != nil {
		return fmt.Errorf("setup: load %s: %w", r.Session.StartURL, err)
	}
	return nil
}
