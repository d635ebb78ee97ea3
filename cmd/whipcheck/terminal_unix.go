//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// quietInterrupt turns off ECHOCTL so Ctrl+C does not print "^C" into the progress output.
// the returned func restores the terminal.
func quietInterrupt() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return func() {}
	}

	saved := *termios
	termios.Lflag &^= unix.ECHOCTL
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, termios); err != nil {
		return func() {}
	}
	return func() {
		unix.IoctlSetTermios(fd, ioctlWriteTermios, &saved) //nolint:errcheck // best-effort restore
	}
}
