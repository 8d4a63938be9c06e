package decl

import (
	"strconv"
	"strings"

	"github.com/c360studio/extmodel/vocabulary"
)

// IsAssignableTo reports whether a value of type t can be assigned to the named type,
// comparing erased names along the supertype hierarchy.
func IsAssignableTo(t Type, target string) bool {
	if t == nil || target == "" {
		return false
	}
	if t.QualifiedName() == target {
		return true
	}
	switch t.Kind() {
	case KindPrimitive, KindVoid:
		return false
	}
	if target == vocabulary.JavaObject {
		return true
	}
	_, ok := FindSupertype(t, target)
	return ok
}

// IsAssignableToAny reports whether t is assignable to any of the named types.
func IsAssignableToAny(t Type, targets ...string) bool {
	for _, target := range targets {
		if IsAssignableTo(t, target) {
			return true
		}
	}
	return false
}

// IsAssignable reports whether from is assignable to to.
func IsAssignable(from, to Type) bool {
	if to == nil {
		return false
	}
	return IsAssignableTo(from, to.QualifiedName())
}

// Related reports whether a and b are the same type or one is assignable to the other.
func Related(a, b Type) bool {
	return IsAssignable(a, b) || IsAssignable(b, a)
}

// FindSupertype walks the hierarchy of t breadth-first, t included, and returns the
// first parameterized usage whose erased name is one of names.
func FindSupertype(t Type, names ...string) (Type, bool) {
	if t == nil {
		return nil, false
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			want[n] = true
		}
	}
	seen := map[string]bool{}
	queue := []Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		key := TypeString(cur)
		if seen[key] {
			continue
		}
		seen[key] = true
		if want[cur.QualifiedName()] {
			return cur, true
		}
		queue = append(queue, cur.Supertypes()...)
	}
	return nil, false
}

// AllFields returns the fields of t followed by the fields inherited from its
// superclasses.
func AllFields(t Type) []Element {
	var out []Element
	seen := map[string]bool{}
	for cur := t; cur != nil; cur = superclass(cur) {
		if seen[cur.QualifiedName()] {
			break
		}
		seen[cur.QualifiedName()] = true
		out = append(out, cur.Fields()...)
	}
	return out
}

// AllMethods returns the methods of t followed by those inherited from its
// superclasses, skipping overridden signatures by name and arity.
func AllMethods(t Type) []Method {
	var out []Method
	seen := map[string]bool{}
	visited := map[string]bool{}
	for cur := t; cur != nil; cur = superclass(cur) {
		if visited[cur.QualifiedName()] || cur.QualifiedName() == vocabulary.JavaObject {
			break
		}
		visited[cur.QualifiedName()] = true
		for _, m := range cur.Methods() {
			key := m.Name() + "/" + strconv.Itoa(len(m.Parameters()))
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// superclass returns the first class-kind supertype of t.
func superclass(t Type) Type {
	if t.Kind() != KindClass && t.Kind() != KindEnum {
		return nil
	}
	for _, s := range t.Supertypes() {
		if s.Kind() == KindClass && s.Declared() {
			return s
		}
	}
	return nil
}

// TypeString renders a usage with its type arguments.
func TypeString(t Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == KindArray {
		return TypeString(t.ElementType()) + "[]"
	}
	args := t.TypeArguments()
	if len(args) == 0 {
		return t.QualifiedName()
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = TypeString(a)
	}
	return t.QualifiedName() + "<" + strings.Join(parts, ", ") + ">"
}

var scalarNames = map[string]bool{
	vocabulary.JavaString: true,
	"java.lang.Boolean":   true,
	"java.lang.Character": true,
	"java.util.Date":      true,
	"java.util.Calendar":  true,
}

// IsScalar reports whether t is a simple value: primitives, boxed primitives,
// strings, numbers, enums and date/time values.
func IsScalar(t Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case KindPrimitive, KindEnum:
		return true
	case KindArray, KindVoid, KindTypeVariable:
		return false
	}
	name := t.QualifiedName()
	if scalarNames[name] || strings.HasPrefix(name, "java.time.") {
		return true
	}
	return IsAssignableTo(t, "java.lang.Number")
}

// IsCollection reports whether t is an array or a java.util.Collection.
func IsCollection(t Type) bool {
	if t == nil {
		return false
	}
	return t.Kind() == KindArray || IsAssignableTo(t, vocabulary.JavaCollection)
}

// IsMap reports whether t is a java.util.Map.
func IsMap(t Type) bool {
	return IsAssignableTo(t, vocabulary.JavaMap)
}

// IsComplex reports whether t is a structured object type: not scalar, not a
// collection or map, not void.
func IsComplex(t Type) bool {
	if t == nil || IsScalar(t) || IsCollection(t) || IsMap(t) {
		return false
	}
	switch t.Kind() {
	case KindClass, KindInterface:
		return true
	}
	return false
}

// IsInstantiable reports whether t is a concrete class.
func IsInstantiable(t Type) bool {
	if t == nil || t.Kind() != KindClass {
		return false
	}
	return !t.IsAbstract()
}

// IsVoid reports whether t is void or java.lang.Void.
func IsVoid(t Type) bool {
	if t == nil {
		return true
	}
	return t.Kind() == KindVoid || t.QualifiedName() == vocabulary.JavaVoidBoxed
}
