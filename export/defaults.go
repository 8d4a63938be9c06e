package export

import (
	"context"
	"log/slog"

	"github.com/c360studio/extmodel/parser"
	"github.com/c360studio/extmodel/stackable"
)

var defaultEvaluator = stackable.NewExprEvaluator()

// evaluateDefault resolves an expression default through the parameter's wrapper
// chain. Plain defaults, parameters that take no expressions and defaults that
// need runtime variables yield nil.
func evaluateDefault(p parser.Parameter) any {
	if !p.HasDefault || !stackable.IsExpression(p.DefaultValue) || p.ExpressionSupport == parser.ExpressionNotSupported {
		return nil
	}
	v, err := resolveDefault(context.Background(), p)
	if err != nil {
		slog.Debug("Default value not evaluated", "parameter", p.Name, "default", p.DefaultValue, "error", err)
		return nil
	}
	return v
}

func resolveDefault(ctx context.Context, p parser.Parameter) (any, error) {
	res, err := stackable.DefaultRegistry.ValueOf(p.Stackable, p.DefaultValue, defaultEvaluator)
	if err != nil {
		return nil, err
	}
	raw, err := res.Resolve(ctx, nil)
	if err != nil {
		return nil, err
	}
	return stackable.Flatten(ctx, raw, nil)
}
