package decl

import (
	"strings"
)

// Ref is a reference to a type from a declaration: a name plus type arguments.
type Ref struct {
	// Name is the qualified name, a primitive keyword, or a type-variable name.
	Name string

	// Args are the generic arguments.
	Args []Ref

	// Dims is the array dimension count.
	Dims int

	// Var marks a reference to a type variable of the enclosing declaration.
	Var bool
}

// R references a named type with optional type arguments.
func R(name string, args ...Ref) Ref {
	return Ref{Name: name, Args: args}
}

// V references a type variable.
func V(name string) Ref {
	return Ref{Name: name, Var: true}
}

// ArrayOf references a one-dimensional array of elem.
func ArrayOf(elem Ref) Ref {
	elem.Dims++
	return elem
}

func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if len(r.Args) > 0 {
		sb.WriteString("<")
		for i, a := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	for i := 0; i < r.Dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// FieldDecl declares a field.
type FieldDecl struct {
	Name string
	Type Ref
	Tags []Tag
	Doc  string
}

// ParamDecl declares a method parameter.
type ParamDecl struct {
	Name string
	Type Ref
	Tags []Tag
	Doc  string
}

// P declares a method parameter.
func P(name string, typ Ref, tags ...Tag) ParamDecl {
	return ParamDecl{Name: name, Type: typ, Tags: tags}
}

// MethodDecl declares a method. Methods are public and non-static unless stated.
type MethodDecl struct {
	Name      string
	Returns   Ref
	Params    []ParamDecl
	Tags      []Tag
	Static    bool
	NonPublic bool
	Doc       string
}

// WithTags appends tags to the method.
func (m *MethodDecl) WithTags(tags ...Tag) *MethodDecl {
	m.Tags = append(m.Tags, tags...)
	return m
}

// WithDoc sets the method documentation.
func (m *MethodDecl) WithDoc(doc string) *MethodDecl {
	m.Doc = doc
	return m
}

// Declaration is the declaration of a class, interface, enum or annotation type.
type Declaration struct {
	QualifiedName string
	Kind          Kind
	TypeParams    []string
	Abstract      bool
	Doc           string
	Tags          []Tag
	Supers        []Ref
	Fields        []FieldDecl
	Methods       []*MethodDecl
	Constants     []string
}

// WithTags appends tags to the declaration.
func (d *Declaration) WithTags(tags ...Tag) *Declaration {
	d.Tags = append(d.Tags, tags...)
	return d
}

// Extending appends direct supertypes.
func (d *Declaration) Extending(supers ...Ref) *Declaration {
	d.Supers = append(d.Supers, supers...)
	return d
}

// Generic sets the declared type parameter names.
func (d *Declaration) Generic(params ...string) *Declaration {
	d.TypeParams = append([]string(nil), params...)
	return d
}

// AsAbstract marks the declaration abstract.
func (d *Declaration) AsAbstract() *Declaration {
	d.Abstract = true
	return d
}

// WithDoc sets the documentation.
func (d *Declaration) WithDoc(doc string) *Declaration {
	d.Doc = doc
	return d
}

// AddField declares a field.
func (d *Declaration) AddField(name string, typ Ref, tags ...Tag) *Declaration {
	d.Fields = append(d.Fields, FieldDecl{Name: name, Type: typ, Tags: tags})
	return d
}

// AddMethod declares a public method and returns it for further decoration.
func (d *Declaration) AddMethod(name string, returns Ref, params ...ParamDecl) *MethodDecl {
	m := &MethodDecl{Name: name, Returns: returns, Params: params}
	d.Methods = append(d.Methods, m)
	return m
}

// MemoryGraph is an in-memory declaration graph backed by the platform catalog.
//
// The builder methods are not safe for concurrent use. Once building is done the
// graph is only read, and concurrent readers need no synchronization.
type MemoryGraph struct {
	decls    map[string]*Declaration
	order    []string
	platform map[string]*Declaration
}

// NewMemoryGraph returns an empty graph that falls back to the platform catalog for
// well-known JDK and extension API types.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		decls:    make(map[string]*Declaration),
		platform: platformCatalog,
	}
}

// Declare adds or replaces a declaration.
func (g *MemoryGraph) Declare(d *Declaration) *Declaration {
	if _, exists := g.decls[d.QualifiedName]; !exists {
		g.order = append(g.order, d.QualifiedName)
	}
	g.decls[d.QualifiedName] = d
	return d
}

// Remove deletes a declaration, returning whether it existed.
func (g *MemoryGraph) Remove(name string) bool {
	if _, ok := g.decls[name]; !ok {
		return false
	}
	delete(g.decls, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// Class declares a class.
func (g *MemoryGraph) Class(name string) *Declaration {
	return g.Declare(&Declaration{QualifiedName: name, Kind: KindClass})
}

// Interface declares an interface.
func (g *MemoryGraph) Interface(name string) *Declaration {
	return g.Declare(&Declaration{QualifiedName: name, Kind: KindInterface, Abstract: true})
}

// Enum declares an enum with its constants.
func (g *MemoryGraph) Enum(name string, constants ...string) *Declaration {
	return g.Declare(&Declaration{QualifiedName: name, Kind: KindEnum, Constants: constants})
}

// Has reports whether the graph itself (not the platform catalog) declares name.
func (g *MemoryGraph) Has(name string) bool {
	_, ok := g.decls[name]
	return ok
}

// Knows reports whether name is declared by the graph or the platform catalog.
func (g *MemoryGraph) Knows(name string) bool {
	return g.declaration(name) != nil
}

// Len returns the number of declarations in the graph, excluding the platform catalog.
func (g *MemoryGraph) Len() int {
	return len(g.order)
}

// Types implements Graph.
func (g *MemoryGraph) Types() []Type {
	out := make([]Type, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.use(Ref{Name: name}))
	}
	return out
}

// Lookup implements Graph.
func (g *MemoryGraph) Lookup(name string) (Type, bool) {
	if g.declaration(name) == nil {
		return nil, false
	}
	return g.use(Ref{Name: name}), true
}

// Use returns the usage of an arbitrary reference, declared or not.
func (g *MemoryGraph) Use(r Ref) Type {
	return g.use(r)
}

func (g *MemoryGraph) declaration(name string) *Declaration {
	if d, ok := g.decls[name]; ok {
		return d
	}
	if d, ok := g.platform[name]; ok {
		return d
	}
	return nil
}

func (g *MemoryGraph) use(r Ref) Type {
	return &typeUse{g: g, ref: r}
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
}

type typeUse struct {
	g   *MemoryGraph
	ref Ref
}

func (t *typeUse) decl() *Declaration {
	if t.ref.Dims > 0 || t.ref.Var {
		return nil
	}
	return t.g.declaration(t.ref.Name)
}

func (t *typeUse) binding() map[string]Ref {
	d := t.decl()
	if d == nil || len(d.TypeParams) == 0 || len(t.ref.Args) == 0 {
		return nil
	}
	b := make(map[string]Ref, len(d.TypeParams))
	for i, p := range d.TypeParams {
		if i < len(t.ref.Args) {
			b[p] = t.ref.Args[i]
		}
	}
	return b
}

func substitute(r Ref, b map[string]Ref) Ref {
	if len(b) == 0 {
		return r
	}
	if r.Var {
		if bound, ok := b[r.Name]; ok {
			bound.Dims += r.Dims
			return bound
		}
		return r
	}
	if len(r.Args) == 0 {
		return r
	}
	out := r
	out.Args = make([]Ref, len(r.Args))
	for i, a := range r.Args {
		out.Args[i] = substitute(a, b)
	}
	return out
}

func (t *typeUse) Tags() []Tag {
	if d := t.decl(); d != nil {
		return append([]Tag(nil), d.Tags...)
	}
	return nil
}

func (t *typeUse) Name() string {
	name := t.QualifiedName()
	if i := strings.LastIndex(strings.TrimSuffix(name, "[]"), "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (t *typeUse) QualifiedName() string {
	return t.ref.Name + strings.Repeat("[]", t.ref.Dims)
}

func (t *typeUse) Kind() Kind {
	switch {
	case t.ref.Dims > 0:
		return KindArray
	case t.ref.Var:
		return KindTypeVariable
	case t.ref.Name == "void":
		return KindVoid
	case primitives[t.ref.Name]:
		return KindPrimitive
	}
	if d := t.decl(); d != nil && d.Kind != "" {
		return d.Kind
	}
	return KindClass
}

func (t *typeUse) TypeArguments() []Type {
	if t.ref.Dims > 0 {
		return nil
	}
	out := make([]Type, len(t.ref.Args))
	for i, a := range t.ref.Args {
		out[i] = t.g.use(a)
	}
	return out
}

func (t *typeUse) ElementType() Type {
	if t.ref.Dims == 0 {
		return nil
	}
	elem := t.ref
	elem.Dims--
	return t.g.use(elem)
}

func (t *typeUse) Supertypes() []Type {
	d := t.decl()
	if d == nil {
		return nil
	}
	b := t.binding()
	out := make([]Type, len(d.Supers))
	for i, s := range d.Supers {
		out[i] = t.g.use(substitute(s, b))
	}
	return out
}

func (t *typeUse) Fields() []Element {
	d := t.decl()
	if d == nil {
		return nil
	}
	b := t.binding()
	out := make([]Element, len(d.Fields))
	for i := range d.Fields {
		f := d.Fields[i]
		out[i] = &element{
			name:  f.Name,
			typ:   t.g.use(substitute(f.Type, b)),
			tags:  f.Tags,
			doc:   f.Doc,
			owner: t,
		}
	}
	return out
}

func (t *typeUse) Methods() []Method {
	d := t.decl()
	if d == nil {
		return nil
	}
	b := t.binding()
	out := make([]Method, len(d.Methods))
	for i, m := range d.Methods {
		out[i] = &method{decl: m, owner: t, binding: b}
	}
	return out
}

func (t *typeUse) EnumConstants() []string {
	if d := t.decl(); d != nil {
		return append([]string(nil), d.Constants...)
	}
	return nil
}

func (t *typeUse) TypeParameters() []string {
	if d := t.decl(); d != nil {
		return append([]string(nil), d.TypeParams...)
	}
	return nil
}

func (t *typeUse) IsAbstract() bool {
	if d := t.decl(); d != nil {
		return d.Abstract || d.Kind == KindInterface
	}
	return false
}

func (t *typeUse) Declared() bool {
	return t.decl() != nil
}

func (t *typeUse) Doc() string {
	if d := t.decl(); d != nil {
		return d.Doc
	}
	return ""
}

func (t *typeUse) String() string {
	return t.ref.String()
}

type element struct {
	name  string
	typ   Type
	tags  []Tag
	doc   string
	owner Type
}

func (e *element) Tags() []Tag         { return append([]Tag(nil), e.tags...) }
func (e *element) Name() string        { return e.name }
func (e *element) Type() Type          { return e.typ }
func (e *element) DeclaringType() Type { return e.owner }
func (e *element) Doc() string         { return e.doc }

type method struct {
	decl    *MethodDecl
	owner   *typeUse
	binding map[string]Ref
}

func (m *method) Tags() []Tag         { return append([]Tag(nil), m.decl.Tags...) }
func (m *method) Name() string        { return m.decl.Name }
func (m *method) DeclaringType() Type { return m.owner }
func (m *method) IsPublic() bool      { return !m.decl.NonPublic }
func (m *method) IsStatic() bool      { return m.decl.Static }
func (m *method) Doc() string         { return m.decl.Doc }

func (m *method) ReturnType() Type {
	returns := m.decl.Returns
	if returns.Name == "" {
		returns = Ref{Name: "void"}
	}
	return m.owner.g.use(substitute(returns, m.binding))
}

func (m *method) Parameters() []Element {
	out := make([]Element, len(m.decl.Params))
	for i, p := range m.decl.Params {
		out[i] = &element{
			name:  p.Name,
			typ:   m.owner.g.use(substitute(p.Type, m.binding)),
			tags:  p.Tags,
			doc:   p.Doc,
			owner: m.owner,
		}
	}
	return out
}
