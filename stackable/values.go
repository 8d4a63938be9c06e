package stackable

import (
	"context"
	"fmt"
)

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, vars map[string]any) (any, error)

func (f ResolverFunc) Resolve(ctx context.Context, vars map[string]any) (any, error) {
	return f(ctx, vars)
}

// Deferred is the value handed to a ParameterResolver parameter: resolution happens
// when the component asks for it, not when it is invoked.
type Deferred struct {
	expression string
	inner      Resolver
}

// Expression returns the expression behind the value, if any.
func (d Deferred) Expression() (string, bool) {
	return d.expression, d.expression != ""
}

// Resolve resolves the wrapped value.
func (d Deferred) Resolve(ctx context.Context, vars map[string]any) (any, error) {
	return d.inner.Resolve(ctx, vars)
}

// Typed is a value together with its media type.
type Typed struct {
	Value     any
	MediaType string
}

// Literal is the unresolved text of a parameter value.
type Literal struct {
	text string
	set  bool
}

// Text returns the literal text when a value was given.
func (l Literal) Text() (string, bool) {
	return l.text, l.set
}

func staticResolver(v any) Resolver {
	return ResolverFunc(func(context.Context, map[string]any) (any, error) { return v, nil })
}

func expressionResolver(expression string, ev Evaluator) Resolver {
	return ResolverFunc(func(ctx context.Context, vars map[string]any) (any, error) {
		if ev == nil {
			return nil, fmt.Errorf("no evaluator for expression %q", expression)
		}
		return ev.Evaluate(ctx, expression, vars)
	})
}

// Flatten peels resolved wrapper values down to the plain value they carry.
// Deferred values are resolved with vars.
func Flatten(ctx context.Context, v any, vars map[string]any) (any, error) {
	for {
		switch w := v.(type) {
		case Deferred:
			inner, err := w.Resolve(ctx, vars)
			if err != nil {
				return nil, err
			}
			v = inner
		case Typed:
			v = w.Value
		case Literal:
			text, ok := w.Text()
			if !ok {
				return nil, nil
			}
			return text, nil
		default:
			return v, nil
		}
	}
}

// plainBuilder resolves values of parameters declared without wrappers.
type plainBuilder struct{}

func (plainBuilder) Static(v any) Resolver { return staticResolver(v) }

func (plainBuilder) Expression(expression string, ev Evaluator) Resolver {
	return expressionResolver(expression, ev)
}

func (plainBuilder) Delegate(inner Resolver) Resolver { return inner }

type deferredBuilder struct{}

func (deferredBuilder) Static(v any) Resolver {
	return staticResolver(Deferred{inner: staticResolver(v)})
}

func (deferredBuilder) Expression(expression string, ev Evaluator) Resolver {
	return staticResolver(Deferred{expression: expression, inner: expressionResolver(expression, ev)})
}

func (deferredBuilder) Delegate(inner Resolver) Resolver {
	return staticResolver(Deferred{inner: inner})
}

type typedBuilder struct{}

func (typedBuilder) Static(v any) Resolver {
	return staticResolver(typed(v))
}

func (typedBuilder) Expression(expression string, ev Evaluator) Resolver {
	return typedBuilder{}.Delegate(expressionResolver(expression, ev))
}

func (typedBuilder) Delegate(inner Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, vars map[string]any) (any, error) {
		v, err := inner.Resolve(ctx, vars)
		if err != nil {
			return nil, err
		}
		return typed(v), nil
	})
}

// typed wraps v with a media type inferred from its Go type.
func typed(v any) Typed {
	if t, ok := v.(Typed); ok {
		return t
	}
	switch v.(type) {
	case string:
		return Typed{Value: v, MediaType: "text/plain"}
	case []byte:
		return Typed{Value: v, MediaType: "application/octet-stream"}
	case map[string]any, []any:
		return Typed{Value: v, MediaType: "application/java"}
	}
	return Typed{Value: v, MediaType: "*/*"}
}

type literalBuilder struct{}

func (literalBuilder) Static(v any) Resolver {
	if v == nil {
		return staticResolver(Literal{})
	}
	return staticResolver(Literal{text: fmt.Sprint(v), set: true})
}

// Expression keeps the expression text unevaluated.
func (literalBuilder) Expression(expression string, _ Evaluator) Resolver {
	return staticResolver(Literal{text: expression, set: true})
}

func (literalBuilder) Delegate(inner Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, vars map[string]any) (any, error) {
		v, err := inner.Resolve(ctx, vars)
		if err != nil {
			return nil, err
		}
		return literalBuilder{}.Static(v).Resolve(ctx, vars)
	})
}
