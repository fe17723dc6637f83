package runner

import (
	"context"
	"time"

	"github.com/minhyannv/gaia-botchat/pkg/config"
	"github.com/minhyannv/gaia-botchat/pkg/gaia"
	loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"
)

// Asker sends one question and classifies the reply.
type Asker interface {
	Ask(ctx context.Context, domain, apiKey, question string) gaia.Response
}

// Reporter renders the outcome of each question and the iteration banners.
type Reporter interface {
	Banner(iteration int)
	Report(question string, resp gaia.Response)
	Line(text string)
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Loop submits the question list round-robin at a fixed pace.
type Loop struct {
	asker    Asker
	reporter Reporter
	sleep    SleepFunc
	logger   loggerpkg.Logger
}

// New builds a Loop around asker and reporter.
func New(asker Asker, reporter Reporter, opts ...Option) *Loop {
	deps := loopDeps{
		logger: loggerpkg.NopLogger{},
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	return &Loop{
		asker:    asker,
		reporter: reporter,
		sleep:    deps.sleep,
		logger:   deps.logger,
	}
}

// Run visits every question once per iteration, pausing params.Interval
// after each one including the last. It returns nil once a bounded run
// completes and ctx.Err() when cancelled. Per-question failures are
// reported and never stop the loop. Settings are not validated here.
func (l *Loop) Run(ctx context.Context, settings *config.Settings, questions []string, params config.RunParams) error {
	if len(questions) == 0 {
		l.reporter.Line("No questions loaded, nothing to run.")
		return nil
	}
	loggerpkg.Info(l.logger, "run started", map[string]any{
		"domain":     settings.Domain,
		"questions":  len(questions),
		"interval":   params.Interval.String(),
		"iterations": params.Iterations.String(),
	})

	for completed := 0; !params.Iterations.Done(completed); completed++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.reporter.Banner(completed + 1)

		for _, question := range questions {
			resp := l.asker.Ask(ctx, settings.Domain, settings.APIKey, question)
			if err := ctx.Err(); err != nil {
				return err
			}
			l.reporter.Report(question, resp)
			if err := resp.Err(); err != nil {
				loggerpkg.Debug(l.logger, "question failed", map[string]any{
					"iteration": completed + 1,
					"question":  question,
					"error":     err.Error(),
				})
			}

			if err := l.sleep(ctx, params.Interval); err != nil {
				return err
			}
		}
	}

	loggerpkg.Info(l.logger, "run finished", map[string]any{
		"iterations": params.Iterations.Count(),
	})
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
