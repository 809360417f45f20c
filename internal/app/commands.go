package app

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/oracle"
	"github.com/agbru/bigcalc/internal/selftest"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

func (a *Application) newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate an expression and print its value",
		Long: `Evaluate an expression and print its value. The arguments are joined
with spaces; with no arguments (or "-") the expression is read from stdin.`,
		Example: `  bigcalc eval '2 << 200'
  bigcalc eval --dump 'x = 18446744073709551615; x + 1'
  echo '12345678900 * 56789123400' | bigcalc eval -q`,
		RunE: a.runEval,
	}
	cmd.Flags().BoolVar(&a.Config.Dump, "dump", a.Config.Dump, "print the internal representation of the result")
	return cmd
}

func (a *Application) runEval(cmd *cobra.Command, args []string) error {
	src, err := a.readExpr(args)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(cmd.Context())
	defer cancel()

	ev := a.newEvaluator()
	var res *bigint.Int
	start := time.Now()
	err = cli.RunWithSpinner(a.spinner(), cli.SpinnerDelay, "evaluating...", func() error {
		var evalErr error
		res, evalErr = ev.Eval(ctx, src)
		return evalErr
	})
	if err != nil {
		return a.timeoutError("eval", err)
	}
	return cli.DisplayResult(a.Out, res, time.Since(start), a.outputConfig())
}

func (a *Application) newREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive line calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := cli.NewREPL(a.newEvaluator(), cli.REPLConfig{
				Timeout: a.Config.Timeout,
				Session: a.Config.Session,
				Output:  a.outputConfig(),
			})
			r.SetInput(a.In)
			r.SetOutput(a.Out)
			r.SetSpinner(a.spinner())
			return r.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.Config.Session, "session", a.Config.Session, "file variables are loaded from and saved to")
	return cmd
}

func (a *Application) newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), a.newEvaluator(), tui.Config{
				Timeout: a.Config.Timeout,
				Dump:    a.Config.Dump,
				Version: Version,
			})
		},
	}
	cmd.Flags().BoolVar(&a.Config.Dump, "dump", a.Config.Dump, "start with the internals dump enabled")
	return cmd
}

func (a *Application) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluator over HTTP",
		Long: `Serve the evaluator over HTTP.

  POST /eval     {"expr": "x * 2", "vars": {"x": "123"}}
  GET  /metrics  prometheus metrics
  GET  /health   liveness and heap usage`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.New(server.Config{
				Addr:     a.Config.Addr,
				Timeout:  a.Config.Timeout,
				Security: server.DefaultSecurityConfig(),
			}, a.logger, a.Metrics)
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.Config.Addr, "addr", a.Config.Addr, "listen address")
	return cmd
}

func (a *Application) newSelfTestCommand() *cobra.Command {
	var stopOnMismatch bool
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Cross-check the arithmetic against a reference implementation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSelfTest(cmd, stopOnMismatch)
		},
	}
	st := &a.Config.SelfTest
	cmd.Flags().IntVar(&st.Iterations, "iterations", st.Iterations, "random cases per operation")
	cmd.Flags().IntVar(&st.Workers, "workers", st.Workers, "concurrent workers (0 = from CPU count)")
	cmd.Flags().Uint64Var(&st.Seed, "seed", st.Seed, "random seed (0 = random)")
	cmd.Flags().IntVar(&st.MaxBits, "max-bits", st.MaxBits, "maximum operand size in bits (0 = from word size)")
	cmd.Flags().StringVar(&st.Oracle, "oracle", st.Oracle, "reference implementation: big or gmp")
	cmd.Flags().BoolVar(&stopOnMismatch, "stop-on-mismatch", false, "stop at the first mismatch")
	return cmd
}

func (a *Application) runSelfTest(cmd *cobra.Command, stopOnMismatch bool) error {
	st := a.Config.SelfTest
	o, err := oracle.ByName(st.Oracle)
	if err != nil {
		return apperrors.NewConfigError("oracle %q: %v", st.Oracle, err)
	}
	if st.Seed == 0 {
		st.Seed = rand.Uint64()
	}

	ctx, cancel := a.commandContext(cmd.Context())
	defer cancel()

	report, err := selftest.Run(ctx, selftest.Config{
		Iterations: st.Iterations,
		Workers:    st.Workers,
		Seed:       st.Seed,
		MaxBits:    st.MaxBits,
		FailFast:   stopOnMismatch,
	}, o, a.logger)
	if err != nil {
		return a.timeoutError("selftest", err)
	}
	a.printReport(report)
	return report.Err()
}

func (a *Application) printReport(r *selftest.Report) {
	theme := ui.GetCurrentTheme()
	if !a.Config.Quiet {
		a.printf("selftest: oracle %s, seed %d\n", r.Oracle, r.Seed)
		ops := make([]oracle.Op, 0, len(r.PerOp))
		for op := range r.PerOp {
			ops = append(ops, op)
		}
		slices.Sort(ops)
		for _, op := range ops {
			a.printf("  %-4s %d cases\n", op, r.PerOp[op])
		}
		for _, m := range r.Mismatches {
			theme.Error.Fprintln(a.Out, "  "+m.Error())
		}
	}
	summary := theme.Success
	if r.Failures > 0 {
		summary = theme.Error
	}
	summary.Fprintf(a.Out, "%d cases, %d failures in %s (%d GCs)\n",
		r.Cases, r.Failures, format.FormatExecutionDuration(r.Duration), r.GCs)
	a.logger.Debug("selftest report printed", logging.Int("mismatches_shown", len(r.Mismatches)))
}
