package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("State Bank of Go")

	assert.Equal(t, "State Bank of Go", cfg.Bank.Name)
	assert.Equal(t, "data/bank.tab", cfg.Data.File)
	assert.Equal(t, 10*time.Second, cfg.Lock.Timeout())
	assert.Equal(t, 200*time.Millisecond, cfg.Lock.Poll())
	assert.Equal(t, time.Minute, cfg.Lock.BreakAfter())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	orig := Default("Test Bank")
	orig.Bank.Currency = "$"
	orig.Lock.TimeoutSeconds = 3
	require.NoError(t, Save(path, orig))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("bank: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestZeroBreakAfterDisablesBreaking(t *testing.T) {
	cfg := Default("Test Bank")
	cfg.Lock.BreakAfterSeconds = 0
	assert.Equal(t, time.Duration(0), cfg.Lock.BreakAfter())
}
