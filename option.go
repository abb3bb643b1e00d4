package strata

import "time"

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithLogger sets the primary logger. The default logs text lines to
// stderr with debug output disabled.
func WithLogger(l Logger) Option {
	return func(m *Machine) {
		m.log = l
	}
}

// WithNoisyLogger sets the secondary logger that debug lines about
// noisy-classified message types are routed to. Without it those lines go
// to the primary logger.
func WithNoisyLogger(l Logger) Option {
	return func(m *Machine) {
		m.noisy = l
	}
}

// WithNoisyMessages classifies message type names as noisy. Debug lines
// about a noisy type are emitted only through the noisy logger, and only
// while its debug flag is enabled. Names match the bare type name, the one
// keyName reports.
func WithNoisyMessages(names ...string) Option {
	return func(m *Machine) {
		for _, name := range names {
			m.noisyNames[name] = struct{}{}
		}
	}
}

// WithClock replaces the clock used to measure inter-tick elapsed time.
// Intended for tests driving reminders deterministically.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithQueueCapacity presizes the message buffer.
func WithQueueCapacity(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.pending = make([]Message, 0, n)
		}
	}
}

// WithConfig applies runtime tuning loaded from a file or the environment.
// Debug flags are applied to the loggers after all options have run, so the
// order of WithConfig relative to WithLogger does not matter.
func WithConfig(cfg Config) Option {
	return func(m *Machine) {
		m.cfg = cfg
		m.cfgSet = true
	}
}
