// Package selftest cross-checks the bigint package against an independent
// oracle on randomly generated operands.
//
// Operands are generated as decimal strings, so parsing, arithmetic and
// rendering of the code under test are all exercised by every case. Work is
// spread over a fixed number of workers with errgroup; each worker owns its
// random source and its operands.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/oracle"
)

// maxReported bounds the mismatches kept in a Report.
const maxReported = 16

// Config controls a run.
type Config struct {
	// Iterations is the number of cases per operation.
	Iterations int
	// Workers is the number of concurrent workers, at least 1.
	Workers int
	// Seed seeds every worker's generator.
	Seed uint64
	// MaxBits bounds the size of generated operands.
	MaxBits int
	// Ops restricts the run to the given operations; empty means all.
	Ops []oracle.Op
	// FailFast stops the run at the first mismatch.
	FailFast bool
}

// Report summarizes a run.
type Report struct {
	Oracle     string
	Seed       uint64
	Cases      int
	PerOp      map[oracle.Op]int
	Mismatches []apperrors.MismatchError
	// Failures counts every mismatch, including those not kept in Mismatches.
	Failures int
	Duration time.Duration
	GCs      uint32
}

// Err returns the first mismatch, or nil for a clean run.
func (r *Report) Err() error {
	if r.Failures == 0 {
		return nil
	}
	return r.Mismatches[0]
}

type collector struct {
	mu     sync.Mutex
	report *Report
}

func (c *collector) add(op oracle.Op, m *apperrors.MismatchError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Cases++
	c.report.PerOp[op]++
	if m == nil {
		return
	}
	c.report.Failures++
	if len(c.report.Mismatches) < maxReported {
		c.report.Mismatches = append(c.report.Mismatches, *m)
	}
}

// Run executes the cross-check. The returned error is non-nil only when the
// run itself fails (cancellation, oracle malfunction); mismatches are
// reported through Report.Err.
func Run(ctx context.Context, cfg Config, o oracle.Oracle, logger logging.Logger) (*Report, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxBits < 1 {
		cfg.MaxBits = 1
	}
	ops := cfg.Ops
	if len(ops) == 0 {
		ops = oracle.Ops
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	start := time.Now()
	col := &collector{report: &Report{
		Oracle: o.Name(),
		Seed:   cfg.Seed,
		PerOp:  make(map[oracle.Op]int, len(ops)),
	}}
	logger.Info("selftest starting",
		logging.String("oracle", o.Name()),
		logging.Uint64("seed", cfg.Seed),
		logging.Int("workers", cfg.Workers),
		logging.Int("iterations", cfg.Iterations),
		logging.Int("max_bits", cfg.MaxBits))

	total := cfg.Iterations * len(ops)
	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
			gen := generator{rng: rng, maxDigits: digitsFor(cfg.MaxBits)}
			for i := w; i < total; i += cfg.Workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				op := ops[i%len(ops)]
				a, b := gen.operands(op)
				m, err := check(o, op, a, b)
				if err != nil {
					return err
				}
				col.add(op, m)
				if m != nil {
					logger.Error("mismatch", m, logging.Int("worker", w), logging.Int("case", i))
					if cfg.FailFast {
						return *m
					}
				}
			}
			logger.Debug("worker done", logging.Int("worker", w))
			return nil
		})
	}
	err := g.Wait()

	report := col.report
	report.Duration = time.Since(start)
	report.GCs = mem.Snapshot().GCSince(before)

	var mm apperrors.MismatchError
	if errors.As(err, &mm) {
		err = nil
	}
	if err != nil {
		return report, err
	}
	logger.Info("selftest finished",
		logging.Int("cases", report.Cases),
		logging.Int("failures", report.Failures),
		logging.Duration("duration", report.Duration))
	return report, nil
}

// digitsFor converts a bit bound into a decimal digit bound.
func digitsFor(bits int) int {
	return max(1, bits*30103/100000)
}

type generator struct {
	rng       *rand.Rand
	maxDigits int
}

func (g generator) decimal(allowNegative bool) string {
	n := 1 + g.rng.IntN(g.maxDigits)
	var sb strings.Builder
	if allowNegative && g.rng.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	// Small values are over-represented: word boundaries and zero are
	// where carries and borrows go wrong.
	if g.rng.IntN(8) == 0 {
		n = 1 + g.rng.IntN(3)
	}
	sb.WriteByte(byte('1' + g.rng.IntN(9)))
	for range n - 1 {
		sb.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	if g.rng.IntN(32) == 0 {
		return "0"
	}
	return sb.String()
}

func (g generator) operands(op oracle.Op) (string, string) {
	switch op {
	case oracle.OpLsh, oracle.OpRsh:
		return g.decimal(true), fmt.Sprint(g.rng.IntN(3 * bigint.WordBits))
	case oracle.OpAnd, oracle.OpOr, oracle.OpXor:
		return g.decimal(false), g.decimal(false)
	default:
		return g.decimal(true), g.decimal(true)
	}
}
