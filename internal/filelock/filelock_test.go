package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts(opts ...Option) []Option {
	base := []Option{
		WithTimeout(500 * time.Millisecond),
		WithPoll(10 * time.Millisecond),
		WithBreakAfter(0),
	}
	return append(base, opts...)
}

func TestAcquireRelease(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "bank.tab")
	l := New(dataPath, fastOpts()...)

	require.NoError(t, l.Acquire())

	// Sentinel exists while held.
	_, err := os.Stat(l.Path())
	require.NoError(t, err)
	assert.Equal(t, dataPath+".lock", l.Path())

	require.NoError(t, l.Release())

	_, err = os.Stat(l.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReleaseIdempotent(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "bank.tab"), fastOpts()...)

	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
	require.NoError(t, l.Release(), "double release must not fail")
}

func TestAcquireBusyTimeout(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "bank.tab")
	holder := New(dataPath, fastOpts()...)
	require.NoError(t, holder.Acquire())
	defer holder.Release() //nolint:errcheck

	contender := New(dataPath, fastOpts(WithTimeout(100*time.Millisecond))...)

	start := time.Now()
	err := contender.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBusy))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestAcquireWaitsForRelease(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "bank.tab")
	holder := New(dataPath, fastOpts(WithTimeout(2*time.Second))...)
	require.NoError(t, holder.Acquire())

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = holder.Release()
	}()

	contender := New(dataPath, fastOpts(WithTimeout(2*time.Second))...)
	require.NoError(t, contender.Acquire())
	require.NoError(t, contender.Release())
}

func TestBreakOrphanedSentinel(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "bank.tab")
	l := New(dataPath, fastOpts(WithBreakAfter(50*time.Millisecond))...)

	// Simulate a crashed holder: sentinel exists but nobody will release it.
	require.NoError(t, os.WriteFile(l.Path(), []byte("pid=0\n"), 0o644))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(l.Path(), old, old))

	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestFreshSentinelNotBroken(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "bank.tab")
	l := New(dataPath, fastOpts(WithBreakAfter(time.Hour), WithTimeout(100*time.Millisecond))...)

	require.NoError(t, os.WriteFile(l.Path(), []byte("pid=0\n"), 0o644))

	err := l.Acquire()
	assert.True(t, errors.Is(err, ErrBusy))
}

func TestWithReleasesOnError(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "bank.tab"), fastOpts()...)

	wantErr := errors.New("boom")
	err := l.With(func() error { return wantErr })
	assert.True(t, errors.Is(err, wantErr))

	// Lock must be free again.
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestWithSerializesWriters(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "bank.tab"), fastOpts(WithTimeout(5*time.Second))...)

	const writers = 8
	counter := 0
	done := make(chan error, writers)

	for i := 0; i < writers; i++ {
		go func() {
			done <- l.With(func() error {
				v := counter
				time.Sleep(time.Millisecond)
				counter = v + 1
				return nil
			})
		}()
	}

	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}
	assert.Equal(t, writers, counter, "lost update means the lock did not serialize writers")
}
