// Package stackable recognizes the generic wrapper types a parameter can be declared
// with and builds the layered resolvers those wrappers stand for.
//
// A parameter typed ParameterResolver<TypedValue<String>> is a String for schema
// purposes; the wrappers only select how the value is resolved at run time. Unwrap
// peels the wrappers off a declared type, outermost first, and Build stacks resolvers
// back in the same order.
package stackable

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// ErrMissingTypeArgument is returned when a wrapper type is used without its single
// type argument.
var ErrMissingTypeArgument = errors.New("stackable type requires exactly one type argument")

// Kind identifies a wrapper family.
type Kind string

const (
	KindParameterResolver Kind = "ParameterResolver"
	KindTypedValue        Kind = "TypedValue"
	KindLiteral           Kind = "Literal"
)

// Resolver produces a parameter value at run time.
type Resolver interface {
	Resolve(ctx context.Context, vars map[string]any) (any, error)
}

// Builder creates the three resolver flavors of one wrapper family.
type Builder interface {
	// Static wraps a fixed value.
	Static(value any) Resolver

	// Expression evaluates an expression on each resolution.
	Expression(expression string, ev Evaluator) Resolver

	// Delegate wraps the result of an inner resolver.
	Delegate(inner Resolver) Resolver
}

// Registry maps wrapper type names to their family and builder.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	kinds    map[string]Kind // qualified type name → kind
	builders map[Kind]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds:    make(map[string]Kind),
		builders: make(map[Kind]Builder),
	}
}

// Register maps every name of a type pair to kind.
func (r *Registry) Register(types vocabulary.TypePair, kind Kind, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range types.Names() {
		r.kinds[n] = kind
	}
	r.builders[kind] = b
}

// KindOf returns the wrapper family of a qualified type name.
func (r *Registry) KindOf(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[name]
	return k, ok
}

// Builder returns the builder of a wrapper family.
func (r *Registry) Builder(kind Kind) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[kind]
	return b, ok
}

// Unwrap strips registered wrappers from t and returns the innermost type together
// with the wrapper chain, outermost first. A registered wrapper without exactly one
// type argument fails with ErrMissingTypeArgument.
func (r *Registry) Unwrap(t decl.Type) (decl.Type, []Kind, error) {
	var chain []Kind
	for t != nil {
		kind, ok := r.KindOf(t.QualifiedName())
		if !ok {
			break
		}
		args := t.TypeArguments()
		if len(args) != 1 {
			return nil, chain, fmt.Errorf("%s: %w", t.Name(), ErrMissingTypeArgument)
		}
		chain = append(chain, kind)
		t = args[0]
	}
	return t, chain, nil
}

// Build stacks delegate resolvers over base so that the outermost wrapper of chain
// is the resolver returned.
func (r *Registry) Build(chain []Kind, base Resolver) (Resolver, error) {
	res := base
	for i := len(chain) - 1; i >= 0; i-- {
		b, ok := r.Builder(chain[i])
		if !ok {
			return nil, fmt.Errorf("no builder registered for %s", chain[i])
		}
		res = b.Delegate(res)
	}
	return res, nil
}

// ValueOf returns the resolver a parameter declared through chain gets for a raw
// value. The innermost wrapper builds the value and the outer ones delegate to it.
func (r *Registry) ValueOf(chain []Kind, value any, ev Evaluator) (Resolver, error) {
	if len(chain) == 0 {
		return ValueResolver(plainBuilder{}, value, ev), nil
	}
	inner := chain[len(chain)-1]
	b, ok := r.Builder(inner)
	if !ok {
		return nil, fmt.Errorf("no builder registered for %s", inner)
	}
	return r.Build(chain[:len(chain)-1], ValueResolver(b, value, ev))
}

// DefaultRegistry knows the wrapper types of both vocabularies.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(vocabulary.ParameterResolver, KindParameterResolver, deferredBuilder{})
	r.Register(vocabulary.TypedValue, KindTypedValue, typedBuilder{})
	r.Register(vocabulary.Literal, KindLiteral, literalBuilder{})
	return r
}
