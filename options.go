package reelcore

// Option configures a Player at construction time: the idiomatic Go
// functional-options generalization of a constructor/builder pair for
// each playback variant, applied to the push-playback surface.
type Option func(*playerConfig)

// defaultAudioChannels is the channel count this reference device wiring
// targets absent an explicit WithAudioChannels override.
const defaultAudioChannels = 2

type playerConfig struct {
	withoutAudio     bool
	audioChannels    int
	onPlayingChanged func(bool)
	logger           Logger
}

func newPlayerConfig(opts ...Option) *playerConfig {
	cfg := &playerConfig{
		audioChannels:    defaultAudioChannels,
		onPlayingChanged: func(bool) {},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithoutAudio disables audio decode/render entirely, even if the source
// has an audio stream.
func WithoutAudio() Option {
	return func(c *playerConfig) { c.withoutAudio = true }
}

// WithOnPlayingChanged registers the callback invoked whenever
// TogglePausePlay changes the playing state, including once at
// construction time with the initial value (true).
func WithOnPlayingChanged(fn func(playing bool)) Option {
	return func(c *playerConfig) {
		if fn != nil {
			c.onPlayingChanged = fn
		}
	}
}

// WithLogger overrides the package-level logger for this Player instance
// only, without affecting other Players or Decoders in the process.
func WithLogger(logger Logger) Option {
	return func(c *playerConfig) { c.logger = logger }
}

// WithAudioChannels overrides the channel count this reference device
// wiring targets (default 2, i.e. stereo). NewPlayer rejects a value above
// 2 with ErrTooManyChannels before opening the output stream.
func WithAudioChannels(n int) Option {
	return func(c *playerConfig) { c.audioChannels = n }
}

func (c *playerConfig) log() Logger {
	if c.logger != nil {
		return c.logger
	}
	return pkgLogger
}
