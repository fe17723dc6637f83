package runner

import loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"

// Option configures optional runtime dependencies for Loop.
type Option func(*loopDeps)

type loopDeps struct {
	logger loggerpkg.Logger
	sleep  SleepFunc
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *loopDeps) {
		d.logger = l
	}
}

// WithSleep replaces the pause between questions.
func WithSleep(fn SleepFunc) Option {
	return func(d *loopDeps) {
		if fn != nil {
			d.sleep = fn
		}
	}
}
