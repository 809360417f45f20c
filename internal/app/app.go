// Package app wires the bigcalc command tree: configuration, logging, the
// process-wide bigint policy and the eval, repl, tui, serve and selftest
// commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	In        io.Reader
	Out       io.Writer
	ErrWriter io.Writer
	// Metrics observes every evaluation; the serve command exposes it.
	Metrics *metrics.Collector

	logger logging.Logger
	root   *cobra.Command
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the repl command and by eval when no
// expression is given on the command line.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithCollector sets the metrics collector shared by all commands.
func WithCollector(c *metrics.Collector) AppOption {
	return func(a *Application) { a.Metrics = c }
}

// New creates an Application writing results to out and diagnostics to
// errWriter.
func New(out, errWriter io.Writer, opts ...AppOption) *Application {
	a := &Application{
		Config:    config.Default(),
		In:        os.Stdin,
		Out:       out,
		ErrWriter: errWriter,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Metrics == nil {
		a.Metrics = metrics.NewCollector()
	}
	a.root = a.newRootCommand()
	return a
}

// Run executes the command line args (without the program name) and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, args []string) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return apperrors.ExitSuccess
	}
	if mem := apperrors.NewMemoryError(err); mem != nil {
		err = mem
	}
	cli.DisplayError(a.ErrWriter, err)
	return apperrors.ExitCodeFor(err)
}

func (a *Application) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bigcalc",
		Short: "Arbitrary-precision integer calculator",
		Long: `bigcalc evaluates integer expressions of any size.

Expressions support + - * / % << >> & | ^ ~, comparisons, variables,
assignment and compound assignment (x += 1), and ++/-- on variables.`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.ErrWriter)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})
	root.SetVersionTemplate("bigcalc {{.Version}}\n")

	config.BindPersistentFlags(root.PersistentFlags(), &a.Config)

	root.AddCommand(
		a.newEvalCommand(),
		a.newREPLCommand(),
		a.newTUICommand(),
		a.newServeCommand(),
		a.newSelfTestCommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup resolves the configuration of the command about to run and
// initialises the process-wide state derived from it.
func (a *Application) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Resolve(cmd.Flags(), &a.Config); err != nil {
		return err
	}
	a.Config = a.Config.ForCommand(cmd.Name())
	if err := configurePolicy(a.Config.Policy()); err != nil {
		return err
	}

	var out *os.File
	if f, ok := a.Out.(*os.File); ok {
		out = f
	}
	ui.InitTheme(a.Config.NoColor, out)
	a.logger = logging.NewLevelLogger(a.ErrWriter, "bigcalc", a.Config.Verbose)
	a.logger.Debug("configuration resolved",
		logging.String("command", cmd.Name()),
		logging.Duration("timeout", a.Config.Timeout),
		logging.Int("max_words", a.Config.MaxWords),
		logging.String("alloc_policy", a.Config.AllocPolicy))
	return nil
}

// configurePolicy installs p. A policy can be installed only once per
// process; a second installation of the same policy is accepted.
func configurePolicy(p bigint.Policy) error {
	err := bigint.Configure(p)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bigint.ErrPolicyLocked) && bigint.ActivePolicy() == p:
		return nil
	default:
		return apperrors.NewConfigError("%v", err)
	}
}

// commandContext bounds ctx by the configured timeout.
func (a *Application) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Config.Timeout > 0 {
		return context.WithTimeout(ctx, a.Config.Timeout)
	}
	return context.WithCancel(ctx)
}

// timeoutError turns a deadline expiry into a TimeoutError naming op.
func (a *Application) timeoutError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: op, Limit: a.Config.Timeout}
	}
	return err
}

func (a *Application) newEvaluator() *expr.Evaluator {
	return expr.NewEvaluator(expr.WithLogger(a.logger), expr.WithObserver(a.Metrics))
}

// spinner returns a spinner on the error stream when it is a terminal.
func (a *Application) spinner() cli.Spinner {
	f, ok := a.ErrWriter.(*os.File)
	if !ok || a.Config.Quiet || !ui.IsTerminal(f) {
		return nil
	}
	return cli.NewSpinner(f)
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
		Dump:    a.Config.Dump,
		Locale:  localeFromEnv(),
	}
}

// localeFromEnv derives the digit grouping locale from the POSIX locale
// variables, falling back to English.
func localeFromEnv() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(v, "_", "-")); err == nil {
			return tag
		}
	}
	return language.English
}

// readExpr joins args, or reads the expression from the input when args is
// empty or "-".
func (a *Application) readExpr(args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(a.In)
	if err != nil {
		return "", apperrors.WrapError(err, "read expression")
	}
	src := strings.TrimSpace(string(data))
	if src == "" {
		return "", apperrors.NewConfigError("no expression given")
	}
	return src, nil
}

func (a *Application) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
