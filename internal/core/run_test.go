package core

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/25smoking/bamparse/internal/config"
	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/25smoking/bamparse/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func filetime(ticks uint64) []byte {
	b := make([]byte, 24)
	binary.LittleEndian.PutUint64(b, ticks)
	return b
}

type failingSource struct{ err error }

func (f failingSource) Subkeys(context.Context) ([]registry.Subkey, error) { return nil, f.err }

type panickingSource struct{}

func (panickingSource) Subkeys(context.Context) ([]registry.Subkey, error) { panic("boom") }

func TestRun(t *testing.T) {
	src := registry.StaticSource{
		{Name: "S-1-5-18", Values: []registry.Value{
			{Name: "Version", Data: []byte{1, 0, 0, 0}, Kind: registry.DWord},
			{Name: `\Device\HarddiskVolume3\Windows\System32\cmd.exe`, Data: filetime(116444736000000000), Kind: registry.Binary},
		}},
		{Name: "S-1-5-21-1-2-3-1001", Values: []registry.Value{
			{Name: `C:\Windows\system32\notepad.exe`, Data: filetime(133170048000000000), Kind: registry.Binary},
			{Name: "broken", Data: []byte{1, 2, 3}, Kind: registry.Binary},
		}},
	}

	obs, logs := observer.New(zapcore.WarnLevel)
	result, skipped, err := Run(context.Background(), src, RunConfig{Location: time.UTC, Workers: 2}, zap.New(obs))
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "S-1-5-18", result[0].SID)
	assert.Equal(t, []forensics.ExecutableRecord{
		{Path: `\Device\HarddiskVolume3\Windows\System32\cmd.exe`, Date: "1970-01-01 00:00:00"},
	}, result[0].Executable)
	assert.Equal(t, []forensics.ExecutableRecord{
		{Path: `C:\Windows\system32\notepad.exe`, Date: "2023-01-01 00:00:00"},
	}, result[1].Executable)

	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], forensics.ErrShortPayload)

	entries := logs.FilterField(zap.String("sid", "S-1-5-21-1-2-3-1001")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].ContextMap()["path"])
}

func TestRunNilLogger(t *testing.T) {
	result, skipped, err := Run(context.Background(), registry.StaticSource{}, RunConfig{}, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, skipped)
}

func TestRunSourceError(t *testing.T) {
	_, _, err := Run(context.Background(), failingSource{err: registry.ErrKeyNotFound}, RunConfig{}, nil)
	assert.ErrorIs(t, err, registry.ErrKeyNotFound)
}

func TestRunRecoversPanic(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	_, _, err := Run(context.Background(), panickingSource{}, RunConfig{}, zap.New(obs))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, logs.Len())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Run(ctx, registry.StaticSource{{Name: "S-1-5-18"}}, RunConfig{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSafeRun(t *testing.T) {
	sentinel := errors.New("plain")
	assert.NoError(t, SafeRun("ok", nil, func() error { return nil }))
	assert.ErrorIs(t, SafeRun("err", nil, func() error { return sentinel }), sentinel)

	err := SafeRun("panic", nil, func() error { panic("nil logger") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step panic panicked")
}

func TestNewRunConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("output:\n  path: out.csv\n  format: csv\n  timezone: local\nworkers: 4\n"))
	require.NoError(t, err)

	rc, err := NewRunConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "out.csv", rc.Output)
	assert.Equal(t, config.FormatCSV, rc.Format)
	assert.Equal(t, time.Local, rc.Location)
	assert.Equal(t, 4, rc.Workers)
	assert.Empty(t, rc.AgeRecipient)
}
