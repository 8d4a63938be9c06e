package stackable

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator evaluates parameter expressions.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, vars map[string]any) (any, error)
}

// IsExpression reports whether text is a #[...] expression.
func IsExpression(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "#[") && strings.HasSuffix(text, "]")
}

// StripExpression removes the #[...] markers around an expression.
func StripExpression(text string) string {
	text = strings.TrimSpace(text)
	if IsExpression(text) {
		return strings.TrimSpace(text[2 : len(text)-1])
	}
	return text
}

// ExprEvaluator evaluates expressions with expr-lang. Compiled programs are cached.
type ExprEvaluator struct {
	cache   map[string]*vm.Program
	cacheMu sync.RWMutex

	envOptions []expr.Option
}

// NewExprEvaluator creates an evaluator with the helper functions available to
// every expression.
func NewExprEvaluator() *ExprEvaluator {
	return &ExprEvaluator{
		cache: make(map[string]*vm.Program),
		envOptions: []expr.Option{
			expr.AllowUndefinedVariables(),
			expr.Function("lower", func(params ...any) (any, error) {
				if len(params) != 1 {
					return nil, fmt.Errorf("lower requires 1 argument")
				}
				return strings.ToLower(fmt.Sprint(params[0])), nil
			}),
			expr.Function("upper", func(params ...any) (any, error) {
				if len(params) != 1 {
					return nil, fmt.Errorf("upper requires 1 argument")
				}
				return strings.ToUpper(fmt.Sprint(params[0])), nil
			}),
			expr.Function("default", func(params ...any) (any, error) {
				if len(params) != 2 {
					return nil, fmt.Errorf("default requires 2 arguments (value, defaultValue)")
				}
				if params[0] == nil || params[0] == "" {
					return params[1], nil
				}
				return params[0], nil
			}),
		},
	}
}

// Evaluate implements Evaluator. The #[...] markers are optional.
func (e *ExprEvaluator) Evaluate(ctx context.Context, expression string, vars map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	program, err := e.getOrCompile(StripExpression(expression))
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	if vars == nil {
		vars = map[string]any{}
	}
	result, err := expr.Run(program, vars)
	if err != nil {
		return nil, fmt.Errorf("run expression: %w", err)
	}
	return result, nil
}

func (e *ExprEvaluator) getOrCompile(expression string) (*vm.Program, error) {
	e.cacheMu.RLock()
	program, ok := e.cache[expression]
	e.cacheMu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression, e.envOptions...)
	if err != nil {
		return nil, err
	}

	e.cacheMu.Lock()
	e.cache[expression] = program
	e.cacheMu.Unlock()

	return program, nil
}

// ValueResolver returns the resolver for a raw parameter value: an expression
// resolver for #[...] text, a static resolver otherwise.
func ValueResolver(b Builder, value any, ev Evaluator) Resolver {
	if s, ok := value.(string); ok && IsExpression(s) {
		return b.Expression(s, ev)
	}
	return b.Static(value)
}
