package expr

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

// ErrUnknownVariable is returned when an expression reads or updates a
// variable that was never assigned.
var ErrUnknownVariable = errors.New("unknown variable")

// Observer receives one notification per evaluated statement.
type Observer interface {
	ObserveEval(op string, err error, result *bigint.Int)
}

// Evaluator evaluates expressions over a set of named variables. Each
// variable owns its value; assignments copy or update it in place through
// the compound-assignment operators of bigint.Int.
//
// An Evaluator is safe for concurrent use; statements are serialized.
type Evaluator struct {
	mu       sync.Mutex
	vars     map[string]*bigint.Int
	logger   logging.Logger
	tracer   trace.Tracer
	observer Observer
	limits   Limits
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger attaches a logger for debug traces of each statement.
func WithLogger(l logging.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithObserver attaches an Observer, typically the metrics collector.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) { e.observer = o }
}

// NewEvaluator returns an Evaluator with no variables.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		vars:   make(map[string]*bigint.Int),
		tracer: otel.Tracer("github.com/agbru/bigcalc/internal/expr"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval parses and evaluates src and returns the value of its last
// statement. Errors are wrapped in apperrors.EvalError. The context is
// checked between nodes and once more after the last statement, so a result
// finished past the deadline is discarded. A single operator always runs to
// completion; WithLimits bounds how long that can take.
func (e *Evaluator) Eval(ctx context.Context, src string) (*bigint.Int, error) {
	ctx, span := e.tracer.Start(ctx, "expr.Eval", trace.WithAttributes(attribute.Int("expr.length", len(src))))
	defer span.End()

	res, err := e.eval(ctx, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if e.logger != nil {
			e.logger.Debug("evaluation failed", logging.String("expr", src), logging.Err(err))
		}
		if !apperrors.IsContextError(err) {
			err = apperrors.EvalError{Expr: src, Cause: err}
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.bits", res.BitLen()))
	if e.logger != nil {
		e.logger.Debug("evaluated", logging.String("expr", src), logging.Int("bits", res.BitLen()))
	}
	return res, nil
}

func (e *Evaluator) eval(ctx context.Context, src string) (*bigint.Int, error) {
	stmts, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var res *bigint.Int
	for _, s := range stmts {
		res, err = e.node(ctx, s)
		if e.observer != nil {
			e.observer.ObserveEval(opName(s), err, res)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// opName labels a statement by its outermost operator.
func opName(n Node) string {
	switch n := n.(type) {
	case *BinaryExpr:
		return n.Op.String()
	case *UnaryExpr:
		return "unary" + n.Op.String()
	case *AssignExpr:
		return n.Op.String()
	case *IncDecExpr:
		return n.Op.String()
	case *NumberLit:
		return "literal"
	default:
		return "var"
	}
}

// node evaluates n into a fresh value owned by the caller.
func (e *Evaluator) node(ctx context.Context, n Node) (*bigint.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case *NumberLit:
		return n.Value.Clone(), nil
	case *VarRef:
		v, err := e.lookup(n.Name)
		if err != nil {
			return nil, err
		}
		return v.Clone(), nil
	case *UnaryExpr:
		return e.unary(ctx, n)
	case *BinaryExpr:
		x, err := e.node(ctx, n.X)
		if err != nil {
			return nil, err
		}
		y, err := e.node(ctx, n.Y)
		if err != nil {
			return nil, err
		}
		return e.apply(n.Op, x, y)
	case *AssignExpr:
		return e.assign(ctx, n)
	case *IncDecExpr:
		return e.incDec(n)
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func (e *Evaluator) unary(ctx context.Context, n *UnaryExpr) (*bigint.Int, error) {
	x, err := e.node(ctx, n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case Minus:
		return x.Negate(), nil
	case Tilde:
		return x, x.NotAssign()
	}
	return x, nil
}

// apply computes x op y, updating x in place, and returns x.
func (e *Evaluator) apply(op Kind, x, y *bigint.Int) (*bigint.Int, error) {
	if err := e.limits.check(op, x, y); err != nil {
		return nil, err
	}
	var err error
	switch op {
	case Plus:
		err = x.AddAssign(y)
	case Minus:
		err = x.SubAssign(y)
	case Star:
		err = x.MulAssign(y)
	case Slash:
		err = x.QuoAssign(y)
	case Percent:
		err = x.RemAssign(y)
	case Shl:
		err = x.LshBy(y)
	case Shr:
		err = x.RshBy(y)
	case Amp:
		err = x.AndAssign(y)
	case Pipe:
		err = x.OrAssign(y)
	case Caret:
		err = x.XorAssign(y)
	case EqEq:
		return truth(x.Equal(y)), nil
	case BangEq:
		return truth(x.NotEqual(y)), nil
	case Lt:
		return truth(x.Less(y)), nil
	case Gt:
		return truth(x.Greater(y)), nil
	case LtEq:
		return truth(x.LessEqual(y)), nil
	case GtEq:
		return truth(x.GreaterEqual(y)), nil
	default:
		return nil, fmt.Errorf("unsupported operator %s", op)
	}
	if err != nil {
		return nil, err
	}
	return x, nil
}

func truth(b bool) *bigint.Int {
	if b {
		return bigint.New(1)
	}
	return bigint.New(0)
}

func (e *Evaluator) assign(ctx context.Context, n *AssignExpr) (*bigint.Int, error) {
	val, err := e.node(ctx, n.Value)
	if err != nil {
		return nil, err
	}
	if n.Op == Assign {
		if cur, ok := e.vars[n.Name]; ok {
			if _, err := cur.Set(val); err != nil {
				return nil, err
			}
		} else {
			e.vars[n.Name] = new(bigint.Int).Move(val)
		}
		return e.vars[n.Name].Clone(), nil
	}
	cur, err := e.lookup(n.Name)
	if err != nil {
		return nil, err
	}
	// Operate on a copy so a failed operator leaves the variable unchanged.
	next, err := e.apply(compoundOps[n.Op], cur.Clone(), val)
	if err != nil {
		return nil, err
	}
	if _, err := cur.Set(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (e *Evaluator) incDec(n *IncDecExpr) (*bigint.Int, error) {
	cur, err := e.lookup(n.Name)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Postfix && n.Op == PlusPlus:
		return cur.PostInc()
	case n.Postfix:
		return cur.PostDec()
	case n.Op == PlusPlus:
		err = cur.Inc()
	default:
		err = cur.Dec()
	}
	if err != nil {
		return nil, err
	}
	return cur.Clone(), nil
}

func (e *Evaluator) lookup(name string) (*bigint.Int, error) {
	v, ok := e.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariable, name)
	}
	return v, nil
}

// Set assigns a copy of v to the variable name.
func (e *Evaluator) Set(name string, v *bigint.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[name] = v.Clone()
}

// Get returns a copy of the variable name.
func (e *Evaluator) Get(name string) (*bigint.Int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Delete removes the variable name.
func (e *Evaluator) Delete(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vars, name)
}

// Names returns the defined variable names in sorted order.
func (e *Evaluator) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Sorted(maps.Keys(e.vars))
}

// Snapshot returns copies of all variables.
func (e *Evaluator) Snapshot() map[string]*bigint.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]*bigint.Int, len(e.vars))
	for k, v := range e.vars {
		out[k] = v.Clone()
	}
	return out
}

// Load replaces all variables with copies of vars.
func (e *Evaluator) Load(vars map[string]*bigint.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars = make(map[string]*bigint.Int, len(vars))
	for k, v := range vars {
		e.vars[k] = v.Clone()
	}
}
