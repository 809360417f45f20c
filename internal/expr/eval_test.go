package expr

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

func eval(t *testing.T, e *Evaluator, src string) string {
	t.Helper()
	v, err := e.Eval(context.Background(), src)
	require.NoError(t, err, src)
	return v.String()
}

func TestEvalScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want string
	}{
		{"7 - 3", "4"},
		{"3 - 7", "-4"},
		{"7 - 7", "0"},
		{"10 / 3", "3"},
		{"14 % 10", "4"},
		{"10 % 10", "0"},
		{"2 << 1", "4"},
		{"8 >> 1", "4"},
		{"54321", "54321"},
		{"4 * 18446744073709551615 - 10000 == -(10000 - 4 * 18446744073709551615)", "1"},
		{"8 & 1", "0"},
		{"8 & 31", "8"},
		{"8 | 1", "9"},
		{"8 ^ 31", "23"},
		{"12345678900 * 56789123400", "701100282508876260000"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"1 << 100 >> 99", "2"},
		{"~0 & 255", "255"},
		{"3 < 4", "1"},
		{"3 >= 4", "0"},
		{"+(-5)", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, eval(t, NewEvaluator(), tt.src))
		})
	}
}

func TestEvalVariables(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	assert.Equal(t, "5", eval(t, e, "x = 5"))
	assert.Equal(t, "25", eval(t, e, "x *= x"))
	assert.Equal(t, "25", eval(t, e, "x++"))
	assert.Equal(t, "26", eval(t, e, "x"))
	assert.Equal(t, "25", eval(t, e, "--x"))
	assert.Equal(t, "100", eval(t, e, "x <<= 2"))
	assert.Equal(t, "7", eval(t, e, "y = x % 31; y"))
	assert.Equal(t, "3", eval(t, e, "a = b = 3; a"))
	assert.Equal(t, []string{"a", "b", "x", "y"}, e.Names())

	v, ok := e.Get("x")
	require.True(t, ok)
	require.NoError(t, v.Inc())
	assert.Equal(t, "100", eval(t, e, "x"), "Get must return a copy")

	e.Set("z", bigint.New(-9))
	assert.Equal(t, "-18", eval(t, e, "z + z"))
	e.Delete("z")
	_, ok = e.Get("z")
	assert.False(t, ok)

	snap := e.Snapshot()
	other := NewEvaluator()
	other.Load(snap)
	assert.Equal(t, "107", eval(t, other, "x + y"))
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src     string
		checkIs error
	}{
		{"1 / 0", bigint.ErrDivisionByZero},
		{"5 % (2 - 2)", bigint.ErrDivisionByZero},
		{"1 << -1", bigint.ErrUnsupportedShift},
		{"1 << (1 << 70)", bigint.ErrUnsupportedShift},
		{"-1 & 3", bigint.ErrNegativeBitwiseOperand},
		{"~(0 - 1)", bigint.ErrNegativeBitwiseOperand},
		{"nope + 1", ErrUnknownVariable},
		{"nope += 1", ErrUnknownVariable},
		{"nope++", ErrUnknownVariable},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			_, err := NewEvaluator().Eval(context.Background(), tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.checkIs)
			var evalErr apperrors.EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.src, evalErr.Expr)
			assert.Equal(t, apperrors.ExitErrorEval, apperrors.ExitCodeFor(err))
		})
	}

	_, err := NewEvaluator().Eval(context.Background(), "1 +")
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
	_, err = NewEvaluator().Eval(context.Background(), " ; ")
	assert.ErrorAs(t, err, &se)
}

func TestFailedCompoundAssignmentKeepsValue(t *testing.T) {
	t.Parallel()
	e := NewEvaluator()
	eval(t, e, "x = 42")
	_, err := e.Eval(context.Background(), "x /= 0")
	require.ErrorIs(t, err, bigint.ErrDivisionByZero)
	assert.Equal(t, "42", eval(t, e, "x"))
}

func TestEvalLimits(t *testing.T) {
	t.Parallel()
	limits := Limits{MaxBits: 1 << 16, MaxWork: 1 << 20}
	rejected := []string{
		"1 << 2199023255552",
		"(1 << 40000) * (1 << 40000)",
		"(1 << 30000) * (1 << 30000)",
		"(1 << 6000) / ((1 << 3000) + 1)",
		"(1 << 6000) % ((1 << 3000) + 1)",
		"(1 << 65536) + 1",
	}
	for _, src := range rejected {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			_, err := NewEvaluator(WithLimits(limits)).Eval(context.Background(), src)
			require.ErrorIs(t, err, ErrLimitExceeded)
			var ee apperrors.EvalError
			assert.ErrorAs(t, err, &ee)
		})
	}

	allowed := []struct {
		src  string
		want string
	}{
		{"12345678900 * 56789123400", "701100282508876260000"},
		{"(1 << 3000) * (1 << 3000) >> 6000", "1"},
		{"(1 << 3000) % 7", "1"},
		{"0 << 2199023255552", "0"},
		{"1 << 65535 >> 65535", "1"},
	}
	for _, tt := range allowed {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, eval(t, NewEvaluator(WithLimits(limits)), tt.src))
		})
	}

	t.Run("shift amount too wide", func(t *testing.T) {
		t.Parallel()
		_, err := NewEvaluator(WithLimits(limits)).Eval(context.Background(), "1 << (1 << 70)")
		assert.ErrorIs(t, err, bigint.ErrUnsupportedShift)
	})

	t.Run("compound assignment keeps value", func(t *testing.T) {
		t.Parallel()
		e := NewEvaluator(WithLimits(limits))
		eval(t, e, "x = 1 << 60000")
		_, err := e.Eval(context.Background(), "x <<= 10000")
		require.ErrorIs(t, err, ErrLimitExceeded)
		assert.Equal(t, "1", eval(t, e, "x >> 60000"))
	})

	t.Run("zero limits are unbounded", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1", eval(t, NewEvaluator(WithLimits(Limits{})), "(1 << 3000) * (1 << 3000) >> 6000"))
	})
}

func TestEvalCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEvaluator().Eval(ctx, "1 + 1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apperrors.ExitErrorCanceled, apperrors.ExitCodeFor(err))
}

type cancelingObserver struct{ cancel context.CancelFunc }

func (c cancelingObserver) ObserveEval(string, error, *bigint.Int) { c.cancel() }

func TestEvalDiscardsResultAfterDeadline(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The only statement completes, then the context ends before Eval returns.
	e := NewEvaluator(WithObserver(cancelingObserver{cancel}))
	res, err := e.Eval(ctx, "x = 1 + 1")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	ops  []string
	errs int
}

func (r *recordingObserver) ObserveEval(op string, err error, _ *bigint.Int) {
	r.ops = append(r.ops, op)
	if err != nil {
		r.errs++
	}
}

func TestObserverAndLogger(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	var buf bytes.Buffer
	e := NewEvaluator(WithObserver(obs), WithLogger(logging.NewLevelLogger(&buf, "expr", true)))
	eval(t, e, "x = 2; x * 3; -x; x++; 7")
	_, err := e.Eval(context.Background(), "x / 0")
	require.Error(t, err)

	assert.Equal(t, []string{"=", "*", "unary-", "++", "literal", "/"}, obs.ops)
	assert.Equal(t, 1, obs.errs)
	assert.True(t, strings.Contains(buf.String(), "evaluation failed"), buf.String())
	assert.True(t, errors.Is(err, bigint.ErrDivisionByZero))
}
