// Package cli provides the line-oriented front ends of bigcalc: result
// display and the interactive REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/session"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each evaluation; 0 disables it.
	Timeout time.Duration
	// Session is the file variables are loaded from at start and saved to
	// by the save command. Empty disables persistence.
	Session string
	Output  OutputConfig
}

// REPL is an interactive calculator session over an expr.Evaluator.
type REPL struct {
	config  REPLConfig
	eval    *expr.Evaluator
	in      io.Reader
	out     io.Writer
	spinner Spinner
}

// NewREPL creates a REPL reading stdin and writing stdout.
func NewREPL(eval *expr.Evaluator, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		eval:   eval,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetSpinner sets the spinner shown during slow evaluations.
func (r *REPL) SetSpinner(s Spinner) { r.spinner = s }

// Start loads the session, if any, and runs the read-eval-print loop until
// exit, EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) error {
	if err := r.loadSession(r.config.Session); err != nil {
		return err
	}
	r.printBanner()

	theme := ui.GetCurrentTheme()
	sc := bufio.NewScanner(r.in)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		theme.Success.Fprint(r.out, "big> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !r.processCommand(ctx, line) {
			return nil
		}
	}
}

func (r *REPL) printBanner() {
	theme := ui.GetCurrentTheme()
	theme.Primary.Fprintln(r.out, "bigcalc interactive mode")
	theme.Secondary.Fprintf(r.out, "%d-bit words. Type help for commands.\n", bigint.WordBits)
}

func (r *REPL) printHelp() {
	theme := ui.GetCurrentTheme()
	theme.Primary.Fprintln(r.out, "Enter an expression, e.g. x = 2 << 100; x * 3 - 1")
	cmds := []struct{ cmd, help string }{
		{"vars", "list variables"},
		{"dump <name>", "show the internal words of a variable"},
		{"del <name>", "delete a variable"},
		{"save [file]", "save variables (default: the session file)"},
		{"load [file]", "load variables, replacing existing ones"},
		{"help", "show this help"},
		{"exit / quit", "leave"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s %s\n", theme.Warning.Sprintf("%-12s", c.cmd), c.help)
	}
	theme.Secondary.Fprintln(r.out, "Wrap a variable named like a command in parentheses to read it: (vars)")
}

// processCommand runs one line. It returns false when the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		ui.GetCurrentTheme().Success.Fprintln(r.out, "Goodbye!")
		return false
	case "help", "?":
		r.printHelp()
	case "vars":
		r.cmdVars()
	case "dump":
		r.withName(args, "dump", r.cmdDump)
	case "del":
		r.withName(args, "del", func(name string) {
			r.eval.Delete(name)
		})
	case "save":
		r.cmdSave(args)
	case "load":
		r.cmdLoad(args)
	default:
		r.evaluate(ctx, line)
	}
	return true
}

func (r *REPL) withName(args []string, cmd string, fn func(string)) {
	if len(args) != 1 || !expr.IsIdent(args[0]) {
		DisplayError(r.out, fmt.Errorf("usage: %s <name>", cmd))
		return
	}
	fn(args[0])
}

func (r *REPL) evaluate(ctx context.Context, src string) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	var res *bigint.Int
	start := time.Now()
	err := RunWithSpinner(r.spinner, SpinnerDelay, "evaluating...", func() error {
		var err error
		res, err = r.eval.Eval(ctx, src)
		return err
	})
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	if err := DisplayResult(r.out, res, time.Since(start), r.config.Output); err != nil {
		DisplayError(r.out, err)
	}
}

func (r *REPL) cmdVars() {
	names := r.eval.Names()
	if len(names) == 0 {
		ui.GetCurrentTheme().Secondary.Fprintln(r.out, "no variables")
		return
	}
	theme := ui.GetCurrentTheme()
	for _, name := range names {
		v, _ := r.eval.Get(name)
		fmt.Fprintf(r.out, "  %s = %s\n", theme.Warning.Sprint(name), FormatResult(v, r.config.Output.Verbose))
	}
}

func (r *REPL) cmdDump(name string) {
	v, ok := r.eval.Get(name)
	if !ok {
		DisplayError(r.out, fmt.Errorf("%w %q", expr.ErrUnknownVariable, name))
		return
	}
	if err := DisplayDump(r.out, v); err != nil {
		DisplayError(r.out, err)
	}
}

func (r *REPL) sessionPath(args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case len(args) == 0 && r.config.Session != "":
		return r.config.Session, nil
	default:
		return "", errors.New("usage: save|load [file] (no session file configured)")
	}
}

func (r *REPL) cmdSave(args []string) {
	path, err := r.sessionPath(args)
	if err == nil {
		err = session.Save(path, r.eval.Snapshot())
	}
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	ui.GetCurrentTheme().Success.Fprintf(r.out, "saved %d variables to %s\n", len(r.eval.Names()), path)
}

func (r *REPL) cmdLoad(args []string) {
	path, err := r.sessionPath(args)
	if err == nil {
		err = r.loadSession(path)
	}
	if err != nil {
		DisplayError(r.out, err)
	}
}

func (r *REPL) loadSession(path string) error {
	if path == "" {
		return nil
	}
	vars, found, err := session.Load(path)
	if err != nil {
		return err
	}
	if found {
		r.eval.Load(vars)
		ui.GetCurrentTheme().Secondary.Fprintf(r.out, "loaded %d variables from %s\n", len(vars), path)
	}
	return nil
}
