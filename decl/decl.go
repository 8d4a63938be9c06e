// Package decl is the read-only declaration graph the extension parsers consume.
//
// A declaration graph is the structural view of an extension's classes, fields,
// methods and parameters together with the declarative tags attached to them. The
// parsers never inspect source text or perform reflection themselves; every question
// they ask (which tags does this element carry, what are the type arguments of this
// type, is A assignable to B) goes through the interfaces in this package.
//
// # Implementations
//
// MemoryGraph is the one concrete graph. Host loaders (see the java subpackage) populate
// it from source code; tests populate it directly through its builder methods. Once
// populated a graph must not be mutated, after which it is safe for concurrent readers.
//
// # Type usages
//
// A Type value is a usage of a declared type: the same declaration appears as many
// Type values with different type arguments. Supertypes and member types are
// substituted with the usage's arguments, so the connection type of
// "class P implements PoolingConnectionProvider<Conn>" is reachable as the single
// type argument of P's ConnectionProvider supertype.
package decl

// Kind classifies a type usage.
type Kind string

const (
	KindClass        Kind = "class"
	KindInterface    Kind = "interface"
	KindEnum         Kind = "enum"
	KindAnnotation   Kind = "annotation"
	KindPrimitive    Kind = "primitive"
	KindArray        Kind = "array"
	KindVoid         Kind = "void"
	KindTypeVariable Kind = "typevar"
)

// Annotated is anything that carries declarative tags.
type Annotated interface {
	// Tags returns the tags in declaration order.
	Tags() []Tag
}

// Type is a usage of a type in the declaration graph.
type Type interface {
	Annotated

	// Name is the simple name ("String").
	Name() string

	// QualifiedName is the erased, fully qualified name ("java.lang.String").
	// Arrays report their element name followed by "[]".
	QualifiedName() string

	Kind() Kind

	// TypeArguments are the generic arguments of this usage, empty for raw usages.
	TypeArguments() []Type

	// ElementType is the component type of an array, nil otherwise.
	ElementType() Type

	// Supertypes are the direct, parameterized supertypes.
	Supertypes() []Type

	// Fields are the fields declared by this type, not including inherited ones.
	Fields() []Element

	// Methods are the methods declared by this type, not including inherited ones.
	Methods() []Method

	// EnumConstants are the constants of an enum type.
	EnumConstants() []string

	// TypeParameters are the declared generic parameter names.
	TypeParameters() []string

	IsAbstract() bool

	// Declared reports whether the graph knows the declaration behind this usage.
	// Undeclared usages are opaque references that only carry a name.
	Declared() bool

	// Doc is the documentation attached to the declaration.
	Doc() string
}

// Element is a field or a method parameter.
type Element interface {
	Annotated
	Name() string
	Type() Type
	DeclaringType() Type
	Doc() string
}

// Method is a method declared by a type.
type Method interface {
	Annotated
	Name() string
	ReturnType() Type
	Parameters() []Element
	DeclaringType() Type
	IsPublic() bool
	IsStatic() bool
	Doc() string
}

// Graph is the read-only declaration graph of one or more compilation units.
type Graph interface {
	// Types returns the declared (non-platform) types in declaration order.
	Types() []Type

	// Lookup returns a raw usage of the named type.
	Lookup(qualifiedName string) (Type, bool)
}

// FindTag returns the first tag with the given qualified name.
func FindTag(a Annotated, name string) (Tag, bool) {
	if a == nil || name == "" {
		return Tag{}, false
	}
	for _, t := range a.Tags() {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// TagsNamed returns every tag with the given qualified name, in declaration order.
func TagsNamed(a Annotated, name string) []Tag {
	if a == nil || name == "" {
		return nil
	}
	var out []Tag
	for _, t := range a.Tags() {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// HasTag reports whether a carries a tag with the given name.
func HasTag(a Annotated, name string) bool {
	_, ok := FindTag(a, name)
	return ok
}
