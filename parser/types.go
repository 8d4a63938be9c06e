package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// is reports whether the erased name of t is a member of any pair.
func is(t decl.Type, pairs ...vocabulary.TypePair) bool {
	if t == nil {
		return false
	}
	for _, p := range pairs {
		if p.Matches(t.QualifiedName()) {
			return true
		}
	}
	return false
}

// assignableTo reports whether t is assignable to a member of any pair.
func assignableTo(t decl.Type, pairs ...vocabulary.TypePair) bool {
	_, ok := supertypeOf(t, pairs...)
	return ok
}

// supertypeOf returns the parameterized supertype of t that is a member of any pair.
func supertypeOf(t decl.Type, pairs ...vocabulary.TypePair) (decl.Type, bool) {
	var names []string
	for _, p := range pairs {
		names = append(names, p.Names()...)
	}
	return decl.FindSupertype(t, names...)
}

func isImplicit(t decl.Type) bool {
	return is(t, vocabulary.ImplicitTypes...)
}

func isInfrastructure(t decl.Type) bool {
	return is(t, vocabulary.InfrastructureTypes...)
}

func isCompletionCallback(t decl.Type) bool {
	return is(t, vocabulary.CompletionCallbacks...)
}

func isChain(t decl.Type) bool {
	return is(t, vocabulary.Chain)
}

// isRoute reports whether t is a route or a collection of routes.
func isRoute(t decl.Type) bool {
	if assignableTo(t, vocabulary.Route) {
		return true
	}
	if elem := collectionElement(t); elem != nil {
		return assignableTo(elem, vocabulary.Route)
	}
	return false
}

// collectionElement returns the element type of an array or a parameterized
// collection.
func collectionElement(t decl.Type) decl.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == decl.KindArray {
		return t.ElementType()
	}
	if c, ok := decl.FindSupertype(t, vocabulary.JavaCollection); ok {
		if args := c.TypeArguments(); len(args) == 1 {
			return args[0]
		}
	}
	return nil
}

// typeArg returns the i-th type argument of t, if present.
func typeArg(t decl.Type, i int) (decl.Type, bool) {
	if t == nil {
		return nil, false
	}
	args := t.TypeArguments()
	if i >= len(args) {
		return nil, false
	}
	return args[i], true
}

func typeName(t decl.Type) string {
	if t == nil {
		return ""
	}
	return decl.TypeString(t)
}
