// Package menu implements the interactive configuration menu.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/gaia-botchat/pkg/config"
	loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"
	"github.com/minhyannv/gaia-botchat/pkg/output"
)

// State is a node of the menu state machine.
type State int

const (
	StateShowMenu State = iota
	StateEditDomain
	StateEditAPIKey
	StateConfigureAndRun
	StateExit
)

func (s State) String() string {
	switch s {
	case StateShowMenu:
		return "show_menu"
	case StateEditDomain:
		return "edit_domain"
	case StateEditAPIKey:
		return "edit_api_key"
	case StateConfigureAndRun:
		return "configure_and_run"
	case StateExit:
		return "exit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Runner executes the question loop.
type Runner interface {
	Run(ctx context.Context, settings *config.Settings, questions []string, params config.RunParams) error
}

// Controller drives the menu over a line-oriented input stream.
type Controller struct {
	scanner    *bufio.Scanner
	printer    *output.Printer
	store      *config.Store
	settings   *config.Settings
	questions  []string
	runner     Runner
	runContext RunContextFunc
	logger     loggerpkg.Logger
}

// New builds a Controller. settings is edited in place and persisted through store.
func New(
	in io.Reader,
	printer *output.Printer,
	store *config.Store,
	settings *config.Settings,
	questions []string,
	runner Runner,
	opts ...Option,
) (*Controller, error) {
	if in == nil {
		return nil, errors.New("input reader is required")
	}
	if printer == nil || store == nil || settings == nil || runner == nil {
		return nil, errors.New("printer, store, settings and runner are required")
	}
	deps := controllerDeps{
		logger:     loggerpkg.NopLogger{},
		runContext: defaultRunContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	return &Controller{
		scanner:    bufio.NewScanner(in),
		printer:    printer,
		store:      store,
		settings:   settings,
		questions:  questions,
		runner:     runner,
		runContext: deps.runContext,
		logger:     deps.logger,
	}, nil
}

// Run loops through the state machine until the user exits, input ends
// or a run is interrupted.
func (c *Controller) Run(ctx context.Context) error {
	state := StateShowMenu
	for state != StateExit {
		next, err := c.step(ctx, state)
		if err != nil {
			return err
		}
		loggerpkg.Debug(c.logger, "menu transition", map[string]any{
			"from": state.String(),
			"to":   next.String(),
		})
		state = next
	}
	return nil
}

func (c *Controller) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateShowMenu:
		return c.showMenu()
	case StateEditDomain:
		return c.editDomain()
	case StateEditAPIKey:
		return c.editAPIKey()
	case StateConfigureAndRun:
		return c.configureAndRun(ctx)
	default:
		return StateExit, nil
	}
}

func (c *Controller) showMenu() (State, error) {
	domain := c.settings.Domain
	if domain == "" {
		domain = "Not Set"
	}
	keyStatus := c.printer.Bad("API Key Not Set")
	if c.settings.HasAPIKey() {
		keyStatus = c.printer.Good("API Key Set")
	}

	c.printer.Title("=== Gaia API BotChat ===")
	c.printer.Line(fmt.Sprintf("1. Set domain (current domain: %s)", c.printer.Good(domain)))
	c.printer.Line(fmt.Sprintf("2. Add GAIA API KEY (%s)", keyStatus))
	c.printer.Line("3. Run script")
	c.printer.Line("4. Exit")

	choice, ok, err := c.ask("Choose an option: ")
	if err != nil || !ok {
		return StateExit, err
	}

	switch choice {
	case "1":
		return StateEditDomain, nil
	case "2":
		return StateEditAPIKey, nil
	case "3":
		return StateConfigureAndRun, nil
	case "4":
		c.printer.Title("Exiting...")
		return StateExit, nil
	default:
		c.printer.Error("Invalid option. Please try again.")
		return StateShowMenu, nil
	}
}

func (c *Controller) editDomain() (State, error) {
	domain, ok, err := c.ask("Enter custom domain (leave empty to unset): ")
	if err != nil || !ok {
		return StateExit, err
	}
	if err := c.settings.SetDomain(c.store, domain); err != nil {
		loggerpkg.Error(c.logger, "save domain failed", err)
		c.printer.Error(fmt.Sprintf("Error: could not save domain: %v", err))
		return StateShowMenu, nil
	}
	if domain == "" {
		c.printer.Success("Domain unset.")
	} else {
		c.printer.Success(fmt.Sprintf("Domain set to %s.", domain))
	}
	return StateShowMenu, nil
}

func (c *Controller) editAPIKey() (State, error) {
	key, ok, err := c.ask("Enter GAIA API KEY: ")
	if err != nil || !ok {
		return StateExit, err
	}
	changed, err := c.settings.SetAPIKey(c.store, key)
	if err != nil {
		loggerpkg.Error(c.logger, "save api key failed", err)
		c.printer.Error(fmt.Sprintf("Error: could not save API key: %v", err))
		return StateShowMenu, nil
	}
	if changed {
		c.printer.Success("API Key set successfully!")
	}
	return StateShowMenu, nil
}

func (c *Controller) configureAndRun(ctx context.Context) (State, error) {
	if err := c.settings.Validate(); err != nil {
		c.printer.Error("Error: " + err.Error())
		return StateShowMenu, nil
	}

	intervalInput, ok, err := c.ask("Enter interval between questions in seconds (default: 3): ")
	if err != nil || !ok {
		return StateExit, err
	}
	iterationsInput, ok, err := c.ask("Enter number of iterations (default: infinite): ")
	if err != nil || !ok {
		return StateExit, err
	}

	params := config.RunParams{Interval: config.ParseInterval(intervalInput)}
	iterations, valid := config.ParseIterations(iterationsInput)
	if !valid {
		loggerpkg.Warn(c.logger, "iteration count fallback", map[string]any{
			"input":      iterationsInput,
			"iterations": iterations.String(),
		})
		c.printer.Line(fmt.Sprintf("%q is not a positive number, running until interrupted.", iterationsInput))
	}
	params.Iterations = iterations

	runCtx, cancel := c.runContext(ctx)
	defer cancel()

	err = c.runner.Run(runCtx, c.settings, c.questions, params)
	switch {
	case err == nil:
		return StateShowMenu, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.printer.Title("Stopped.")
		return StateExit, nil
	default:
		c.printer.Error("Error: " + err.Error())
		return StateShowMenu, nil
	}
}

// ask prints prompt and reads one trimmed line. ok is false at end of input.
func (c *Controller) ask(prompt string) (string, bool, error) {
	c.printer.Prompt(prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		return "", false, nil
	}
	return strings.TrimSpace(c.scanner.Text()), true, nil
}
