// Package lockfile holds an exclusive flock on a state directory so that only
// one NeuroSoma process writes the SQLite plan database in it. The kernel drops
// the lock when the process exits, so a crashed instance never blocks a restart.
package lockfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockFileName is the name of the lock file created in the state directory
const LockFileName = "neurosoma.lock"

// Lock is a held directory lock.
type Lock struct {
	file *os.File
	path string
}

// LockError reports that another process holds the lock.
type LockError struct {
	LockPath string
	Holder   string
	Cause    error
}

func (e *LockError) Error() string {
	msg := fmt.Sprintf("state directory is in use by another NeuroSoma instance (lock file %s", e.LockPath)
	if e.Holder != "" {
		msg += ", held by " + e.Holder
	}
	return msg + ")"
}

func (e *LockError) Unwrap() error {
	return e.Cause
}

// AcquireLock takes the lock on dir, creating the directory if needed. It
// fails immediately with a *LockError when the lock is held.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, LockFileName)

	// O_TRUNC would wipe the holder's pid before we know whether we win the lock.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		holder := describeHolder(path)
		slog.Error("lockfile.AcquireLock: state directory already locked", "lock_path", path, "holder", holder)
		return nil, &LockError{LockPath: path, Holder: holder, Cause: err}
	}

	if err := writePID(file); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return nil, fmt.Errorf("failed to write lock file %s: %w", path, err)
	}

	slog.Debug("lockfile.AcquireLock: lock acquired", "lock_path", path, "pid", os.Getpid())
	return &Lock{file: file, path: path}, nil
}

// Release unlocks and removes the lock file. Calling it more than once is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		slog.Warn("Lock.Release: failed to unlock", "lock_path", l.path, "error", err)
	}
	closeErr := l.file.Close()
	l.file = nil
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Lock.Release: failed to remove lock file", "lock_path", l.path, "error", err)
	}
	return closeErr
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt([]byte(fmt.Sprintf("pid=%d\n", os.Getpid())), 0); err != nil {
		return err
	}
	return f.Sync()
}

// describeHolder reads the pid recorded by the current holder, if any.
func describeHolder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	pid := parsePID(string(data))
	if pid <= 0 {
		return ""
	}
	return "pid " + strconv.Itoa(pid)
}

// parsePID extracts N from a "pid=N" line.
func parsePID(content string) int {
	for _, line := range strings.Split(content, "\n") {
		v, ok := strings.CutPrefix(strings.TrimSpace(line), "pid=")
		if !ok {
			continue
		}
		if pid, err := strconv.Atoi(v); err == nil {
			return pid
		}
	}
	return 0
}
