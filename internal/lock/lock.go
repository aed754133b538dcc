package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/logger"
)

// findProcess is swapped out in tests
var findProcess = ps.FindProcess

// Lock is a pid lockfile guarding the store against concurrent writers. The
// store mutation model assumes exactly one process mutates at a time, so every
// command that writes takes the lock first.
type Lock struct {
	path string
}

// Acquire takes the lock for the given config directory. A lockfile naming a
// process that no longer exists is treated as stale and reclaimed.
func Acquire(configDir string) (*Lock, error) {
	path := filepath.Join(configDir, constants.LockFileName)

	if pid, err := readPID(path); err == nil {
		proc, procErr := findProcess(pid)
		if procErr == nil && proc != nil && pid != os.Getpid() {
			return nil, fmt.Errorf("another timetabled process (pid %d) holds the store lock", pid)
		}
		logger.Debug("Reclaiming stale lockfile", "path", path, "pid", pid)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return &Lock{path: path}, nil
}

// Release removes the lockfile. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Holder reports the pid recorded in the lockfile, whether that process is
// alive, and whether a lockfile exists at all. Used by doctor.
func Holder(configDir string) (pid int, alive bool, exists bool) {
	path := filepath.Join(configDir, constants.LockFileName)
	pid, err := readPID(path)
	if err != nil {
		return 0, false, false
	}
	proc, err := findProcess(pid)
	return pid, err == nil && proc != nil, true
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed lockfile %s: %w", path, err)
	}
	return pid, nil
}
