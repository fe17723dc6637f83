package menu

import (
	"context"

	loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"
)

// RunContextFunc derives the context a single run is executed under.
type RunContextFunc func(parent context.Context) (context.Context, context.CancelFunc)

// Option configures optional runtime dependencies for Controller.
type Option func(*controllerDeps)

type controllerDeps struct {
	logger     loggerpkg.Logger
	runContext RunContextFunc
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *controllerDeps) {
		d.logger = l
	}
}

// WithRunContext sets how the run context is derived, e.g. to cancel on SIGINT.
func WithRunContext(fn RunContextFunc) Option {
	return func(d *controllerDeps) {
		if fn != nil {
			d.runContext = fn
		}
	}
}

func defaultRunContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(parent)
}
