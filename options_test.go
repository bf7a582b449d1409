package reelcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayerConfig_DefaultsToNoOpCallback(t *testing.T) {
	cfg := newPlayerConfig()
	assert.False(t, cfg.withoutAudio)
	assert.NotPanics(t, func() { cfg.onPlayingChanged(true) })
}

func TestWithoutAudio_SetsFlag(t *testing.T) {
	cfg := newPlayerConfig(WithoutAudio())
	assert.True(t, cfg.withoutAudio)
}

func TestWithOnPlayingChanged_OverridesCallback(t *testing.T) {
	var got []bool
	cfg := newPlayerConfig(WithOnPlayingChanged(func(playing bool) { got = append(got, playing) }))
	cfg.onPlayingChanged(true)
	cfg.onPlayingChanged(false)
	assert.Equal(t, []bool{true, false}, got)
}

func TestWithOnPlayingChanged_NilIsIgnored(t *testing.T) {
	cfg := newPlayerConfig(WithOnPlayingChanged(nil))
	assert.NotPanics(t, func() { cfg.onPlayingChanged(true) })
}

func TestWithLogger_OverridesPackageLogger(t *testing.T) {
	custom := &stubLogger{}
	cfg := newPlayerConfig(WithLogger(custom))
	assert.Same(t, Logger(custom), cfg.log())
}

func TestPlayerConfig_LogFallsBackToPackageLogger(t *testing.T) {
	cfg := newPlayerConfig()
	assert.Same(t, pkgLogger, cfg.log())
}

type stubLogger struct{}

func (*stubLogger) Debugf(string, ...any)  {}
func (*stubLogger) Infof(string, ...any)   {}
func (*stubLogger) Warnf(string, ...any)   {}
func (*stubLogger) Errorf(string, ...any)  {}
func (*stubLogger) Info(string, ...any)    {}
func (*stubLogger) Warn(string, ...any)    {}
