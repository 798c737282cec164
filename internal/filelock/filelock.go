// Package filelock provides advisory mutual exclusion over the shared data
// file via a sentinel lock file. Any process that writes the data file must
// hold the lock; readers do not take it. The lock is advisory only: a
// process that bypasses it can still corrupt the file.
package filelock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrBusy is returned when the sentinel could not be claimed before the
// acquisition timeout. Callers may retry; the lock itself never does.
var ErrBusy = errors.New("data file is busy/locked")

const (
	// DefaultTimeout bounds how long Acquire polls for the sentinel to clear.
	DefaultTimeout = 10 * time.Second
	// DefaultPoll is the sleep between sentinel checks.
	DefaultPoll = 200 * time.Millisecond
	// DefaultBreakAfter is the age past which an orphaned sentinel (holder
	// crashed before releasing) is broken by the next acquirer.
	DefaultBreakAfter = time.Minute
)

// Lock is a sentinel-file lock guarding a data file. The sentinel lives at
// <data file path>.lock so independent processes agree on its location.
type Lock struct {
	path       string
	timeout    time.Duration
	poll       time.Duration
	breakAfter time.Duration // 0 = never break orphaned sentinels
	log        *logrus.Logger
}

// Option configures a Lock.
type Option func(*Lock)

// WithTimeout overrides the acquisition timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Lock) { l.timeout = d }
}

// WithPoll overrides the polling interval.
func WithPoll(d time.Duration) Option {
	return func(l *Lock) { l.poll = d }
}

// WithBreakAfter overrides the orphaned-sentinel age. Zero disables breaking.
func WithBreakAfter(d time.Duration) Option {
	return func(l *Lock) { l.breakAfter = d }
}

// WithLogger overrides the logger used for lock-wait diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(l *Lock) { l.log = log }
}

// New creates a Lock for the data file at dataPath.
func New(dataPath string, opts ...Option) *Lock {
	l := &Lock{
		path:       dataPath + ".lock",
		timeout:    DefaultTimeout,
		poll:       DefaultPoll,
		breakAfter: DefaultBreakAfter,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the sentinel file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire claims the sentinel, polling until it succeeds or the timeout
// elapses, in which case it returns ErrBusy.
func (l *Lock) Acquire() error {
	deadline := time.Now().Add(l.timeout)
	waited := false

	for {
		ok, err := l.tryClaim()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if !waited {
			l.log.WithField("lock", l.path).Debug("waiting for data file lock")
			waited = true
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: lock %s not released within %s", ErrBusy, l.path, l.timeout)
		}
		time.Sleep(l.poll)
	}
}

// tryClaim attempts a single exclusive creation of the sentinel, breaking it
// first if it is older than breakAfter.
func (l *Lock) tryClaim() (bool, error) {
	l.breakIfOrphaned()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating lock sentinel: %w", err)
	}
	defer f.Close()

	// Holder identity, for manual diagnosis of stuck locks.
	fmt.Fprintf(f, "pid=%d time=%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	return true, nil
}

func (l *Lock) breakIfOrphaned() {
	if l.breakAfter <= 0 {
		return
	}
	info, err := os.Stat(l.path)
	if err != nil {
		return
	}
	if time.Since(info.ModTime()) < l.breakAfter {
		return
	}
	if err := os.Remove(l.path); err == nil {
		l.log.WithField("lock", l.path).Warn("broke orphaned data file lock")
	}
}

// Release clears the sentinel. Releasing an already-released lock is not an
// error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing lock sentinel: %w", err)
	}
	return nil
}

// With runs fn while holding the lock, releasing on every exit path.
func (l *Lock) With(fn func() error) error {
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck // release failure must not mask fn's error

	return fn()
}
