package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another server process owns the panel.
var ErrAlreadyRunning = errors.New("another stopwatch-server is already running")

// maxCommLength is how much of an executable name Linux reports per process.
const maxCommLength = 15

// ensureSingleInstance fails when another process runs the same executable.
func ensureSingleInstance() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("detect executable: %w", err)
	}

	pid, err := findOtherProcess(filepath.Base(executable), os.Getpid())
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if pid != 0 {
		return fmt.Errorf("pid %d: %w", pid, ErrAlreadyRunning)
	}

	return nil
}

// findOtherProcess returns the pid of a process named processName other than
// thisProcessID, or 0 when there is none.
func findOtherProcess(processName string, thisProcessID int) (int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !sameExecutable(process.Executable(), processName) {
			continue
		}

		return process.Pid(), nil
	}

	return 0, nil
}

// sameExecutable compares a reported process name with an executable name,
// allowing for the kernel's truncated form.
func sameExecutable(reported, name string) bool {
	if reported == name {
		return true
	}

	return len(reported) == maxCommLength && strings.HasPrefix(name, reported)
}
