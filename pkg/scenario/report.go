package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Status of one scenario in a run.
type Status string

// statuses
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one scenario.
type Result struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Status      Status        `yaml:"status"`
	Duration    time.Duration `yaml:"duration"`
	Error       string        `yaml:"error,omitempty"`

	err error
}

// Err returns the error the scenario failed with, nil for passed and skipped ones.
func (r Result) Err() error { return r.err }

// Counts tallies results by status.
type Counts struct {
	Passed  int `yaml:"passed"`
	Failed  int `yaml:"failed"`
	Skipped int `yaml:"skipped"`
}

// Report is the outcome of a whole run.
type Report struct {
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`
	Results  []Result  `yaml:"results"`
}

// Counts tallies the results.
func (r *Report) Counts() Counts {
	var c Counts
	for _, res := range r.Results {
		switch res.Status {
		case StatusPassed:
			c.Passed++
		case StatusFailed:
			c.Failed++
		case StatusSkipped:
			c.Skipped++
		}
	}
	return c
}

// Failed is true unless every scenario passed. an empty run is not a failure.
func (r *Report) Failed() bool {
	c := r.Counts()
	return c.Failed > 0 || c.Skipped > 0
}

// Duration of the whole run.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Markdown renders the report as a markdown document with a summary table and failure details.
func (r *Report) Markdown() string {
	c := r.Counts()
	var sb strings.Builder
	sb.WriteString("# whipcheck report\n\n")
	fmt.Fprintf(&sb, "**%d passed, %d failed, %d skipped** in %s\n\n", c.Passed, c.Failed, c.Skipped,
		r.Duration().Round(time.Millisecond))

	if len(r.Results) == 0 {
		sb.WriteString("no scenarios selected\n")
		return sb.String()
	}

	sb.WriteString("| # | scenario | status | time |\n|---|---|---|---|\n")
	for i, res := range r.Results {
		fmt.Fprintf(&sb, "| %d | `%s` | %s | %s |\n", i+1, res.Name, res.Status, res.Duration.Round(time.Millisecond))
	}

	first := true
	for _, res := range r.Results {
		if res.Status != StatusFailed {
			continue
		}
		if first {
			sb.WriteString("\n## failures\n")
			first = false
		}
		fmt.Fprintf(&sb, "\n### %s\n\n```\n%s\n```\n", res.Name, res.Error)
	}
	return sb.String()
}

type yamlReport struct {
	Started  time.Time     `yaml:"started"`
	Finished time.Time     `yaml:"finished"`
	Duration time.Duration `yaml:"duration"`
	Counts   Counts        `yaml:"counts"`
	Results  []Result      `yaml:"results"`
}

// YAML serializes the report with its counts and total duration.
func (r *Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(yamlReport{Started: r.Started, Finished: r.Finished, Duration: r.Duration(),
		Counts: r.Counts(), Results: r.Results})
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// WriteYAML saves the YAML report to path.
func (r *Report) WriteYAML(path string) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
