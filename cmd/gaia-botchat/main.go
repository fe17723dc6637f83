// Package main runs the Gaia question bot.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/gaia-botchat/pkg/config"
	"github.com/minhyannv/gaia-botchat/pkg/gaia"
	loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"
	"github.com/minhyannv/gaia-botchat/pkg/menu"
	"github.com/minhyannv/gaia-botchat/pkg/output"
	"github.com/minhyannv/gaia-botchat/pkg/questions"
	"github.com/minhyannv/gaia-botchat/pkg/runner"
)

// main is the program entry point.
func main() {
	if err := run(context.Background(), os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the application from its operating system inputs so it can be
// exercised without a real terminal.
func run(ctx context.Context, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := loadConfig(getenv)

	appLogger := loggerpkg.New(stderr, cfg.LogLevel)
	loggerpkg.Debug(appLogger, "config loaded", map[string]any{
		"env_file":       cfg.EnvFile,
		"questions_file": cfg.QuestionsFile,
		"log_level":      cfg.LogLevel,
	})

	questionList, err := questions.Load(cfg.QuestionsFile)
	if err != nil {
		return err
	}
	loggerpkg.Info(appLogger, "questions loaded", map[string]any{"count": len(questionList)})

	store := configpkg.NewStore(cfg.EnvFile)
	settings, err := configpkg.LoadSettings(store, getenv)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	printer := output.NewPrinter(stdout)
	client := gaia.NewClient(gaia.WithLogger(appLogger))
	loop := runner.New(client, printer, runner.WithLogger(appLogger))

	controller, err := menu.New(stdin, printer, store, settings, questionList, loop,
		menu.WithLogger(appLogger),
		menu.WithRunContext(func(parent context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		}),
	)
	if err != nil {
		return err
	}
	return controller.Run(ctx)
}

// loadConfig loads the env file into the process environment before
// reading the GAIA_* settings, so they may live in the file too. Values
// already exported win over the file here; LoadSettings gives the file
// precedence for the two managed keys.
func loadConfig(getenv func(string) string) configpkg.Config {
	envFile := strings.TrimSpace(getenv(configpkg.EnvEnvFile))
	if envFile == "" {
		envFile = configpkg.DefaultEnvFile
	}
	_ = godotenv.Load(envFile)

	cfg := configpkg.FromEnv(getenv)
	cfg.EnvFile = envFile
	return cfg
}
