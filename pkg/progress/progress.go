// Package progress provides timestamped suite logging to stdout with color support and,
// optionally, to a plain progress file.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// colors using fatih/color.
var (
	infoColor      = color.New(color.FgCyan)
	passColor      = color.New(color.FgGreen)
	failColor      = color.New(color.FgRed, color.Bold)
	skipColor      = color.New(color.FgMagenta)
	warnColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	timestampColor = color.New(color.FgWhite)
)

// Logger writes timestamped output to stdout and, if configured, to a progress file.
type Logger struct {
	file      *os.File
	stdout    io.Writer
	startTime time.Time
}

// Config holds logger configuration.
type Config struct {
	File     string // progress file path, empty disables the file
	StartURL string // application under test, written to the file header
	Engine   string // browser engine, written to the file header
	NoColor  bool   // disable color output (sets color.NoColor globally)
}

// NewLogger creates a logger writing to stdout and the optional progress file.
func NewLogger(cfg Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}

	l := &Logger{stdout: os.Stdout, startTime: time.Now()}
	if cfg.File == "" {
		return l, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create progress dir: %w", err)
		}
	}

	f, err := os.Create(cfg.File) //nolint:gosec // path from user config
	if err != nil {
		return nil, fmt.Errorf("create progress file: %w", err)
	}
	l.file = f

	l.writeFile("# whipcheck progress log\n")
	l.writeFile("URL: %s\n", cfg.StartURL)
	l.writeFile("Engine: %s\n", cfg.Engine)
	l.writeFile("Started: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	l.writeFile("%s\n\n", strings.Repeat("-", 60))

	return l, nil
}

// Path returns the progress file path, empty when there is no file.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// timestampFormat is the format for timestamps: YY-MM-DD HH:MM:SS
const timestampFormat = "06-01-02 15:04:05"

// Print writes a timestamped message to both file and stdout.
func (l *Logger) Print(format string, args ...any) {
	l.line(infoColor, "", fmt.Sprintf(format, args...))
}

// PrintRaw writes without timestamp, used for the rendered report.
func (l *Logger) PrintRaw(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.writeFile("%s", msg)
	l.writeStdout("%s", msg)
}

// Pass reports a passed scenario.
func (l *Logger) Pass(name string, elapsed time.Duration) {
	l.line(passColor, "PASS: ", fmt.Sprintf("%s (%s)", name, elapsed.Round(time.Millisecond)))
}

// Fail reports a failed scenario; the error goes on indented continuation lines.
func (l *Logger) Fail(name string, elapsed time.Duration, err error) {
	l.line(failColor, "FAIL: ", fmt.Sprintf("%s (%s)", name, elapsed.Round(time.Millisecond)))
	if err != nil {
		l.indented(failColor, err.Error())
	}
}

// Skip reports a scenario that was not run.
func (l *Logger) Skip(name, reason string) {
	l.line(skipColor, "SKIP: ", fmt.Sprintf("%s, %s", name, reason))
}

// Error writes an error message in red.
func (l *Logger) Error(format string, args ...any) {
	l.line(errorColor, "ERROR: ", fmt.Sprintf(format, args...))
}

// Warn writes a warning message in yellow.
func (l *Logger) Warn(format string, args ...any) {
	l.line(warnColor, "WARN: ", fmt.Sprintf(format, args...))
}

// Elapsed returns formatted elapsed time since start.
func (l *Logger) Elapsed() string {
	return humanize.RelTime(l.startTime, time.Now(), "", "")
}

// Close writes footer and closes the progress file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	l.writeFile("\n%s\n", strings.Repeat("-", 60))
	l.writeFile("Completed: %s (%s)\n", time.Now().Format("2006-01-02 15:04:05"), l.Elapsed())

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close progress file: %w", err)
	}
	return nil
}

func (l *Logger) line(c *color.Color, prefix, msg string) {
	timestamp := time.Now().Format(timestampFormat)
	l.writeFile("[%s] %s%s\n", timestamp, prefix, msg)
	l.writeStdout("%s %s\n", timestampColor.Sprintf("[%s]", timestamp), c.Sprintf("%s%s", prefix, msg))
}

// indent aligns continuation lines with the text after "[YY-MM-DD HH:MM:SS] "
const indent = "                    "

// indented writes text under the previous line, wrapped to the terminal width.
func (l *Logger) indented(c *color.Color, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	width := terminalWidth()
	for line := range strings.SplitSeq(text, "\n") {
		for wrapped := range strings.SplitSeq(wrapText(line, width), "\n") {
			l.writeFile("%s%s\n", indent, wrapped)
			l.writeStdout("%s%s\n", indent, c.Sprint(wrapped))
		}
	}
}

// terminalWidth returns terminal width, using COLUMNS env var or syscall.
// defaults to 80 if detection fails. returns content width (total - 20 for timestamp).
func terminalWidth() int {
	const minWidth = 40

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return max(w-20, minWidth)
		}
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return max(w-20, minWidth)
	}

	return 80 - 20
}

// wrapText wraps text to specified width, breaking on word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		if i == 0 {
			result.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) <= width {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + len(word)
			continue
		}
		result.WriteString("\n")
		result.WriteString(word)
		lineLen = len(word)
	}
	return result.String()
}

func (l *Logger) writeFile(format string, args ...any) {
	if l.file != nil {
		fmt.Fprintf(l.file, format, args...)
	}
}

func (l *Logger) writeStdout(format string, args ...any) {
	fmt.Fprintf(l.stdout, format, args...)
}
