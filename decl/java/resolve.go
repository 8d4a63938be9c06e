package java

import (
	"strings"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

var primitiveNames = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// javaLang are the java.lang types resolved without an import.
var javaLang = map[string]bool{
	"Object": true, "String": true, "Integer": true, "Long": true, "Double": true,
	"Float": true, "Short": true, "Byte": true, "Boolean": true, "Character": true,
	"Number": true, "Void": true, "Class": true, "Enum": true, "Iterable": true,
	"CharSequence": true, "Comparable": true, "Exception": true, "RuntimeException": true,
	"Throwable": true, "Deprecated": true, "Override": true, "FunctionalInterface": true,
	"SuppressWarnings": true,
}

// resolveUnits resolves every unit against the others and declares its types in g.
// It returns the number of types declared.
func resolveUnits(g *decl.MemoryGraph, units []*unit) int {
	known := map[string]bool{}
	for _, u := range units {
		for _, t := range u.types {
			known[t.qualified] = true
		}
	}
	count := 0
	for _, u := range units {
		r := &resolver{g: g, u: u, known: known}
		for _, t := range u.types {
			g.Declare(r.declaration(t))
			count++
		}
	}
	return count
}

type resolver struct {
	g     *decl.MemoryGraph
	u     *unit
	known map[string]bool
}

// scope is the set of type variables and nested types visible at one point.
type scope struct {
	vars  map[string]bool
	owner *rawType
}

func (r *resolver) typeScope(t *rawType) scope {
	s := scope{vars: map[string]bool{}, owner: t}
	for cur := t; cur != nil; cur = cur.outer {
		for _, p := range cur.typeParams {
			s.vars[p] = true
		}
	}
	return s
}

func (s scope) with(params []string) scope {
	if len(params) == 0 {
		return s
	}
	vars := make(map[string]bool, len(s.vars)+len(params))
	for k := range s.vars {
		vars[k] = true
	}
	for _, p := range params {
		vars[p] = true
	}
	return scope{vars: vars, owner: s.owner}
}

func (r *resolver) isKnown(name string) bool {
	return r.known[name] || r.g.Knows(name) || vocabulary.IsKnown(name)
}

// resolveName maps a name as written to a qualified name. The lookup order follows
// Java scoping: type variables, nested and enclosing types, single-type imports,
// the same package, on-demand imports and finally java.lang.
func (r *resolver) resolveName(name string, s scope) (string, bool) {
	if primitiveNames[name] {
		return name, false
	}
	if i := strings.Index(name, "."); i > 0 {
		head, rest := name[:i], name[i+1:]
		if q, ok := r.resolveSimple(head, s); ok {
			return q + "." + rest, false
		}
		return name, false
	}
	if s.vars[name] {
		return name, true
	}
	if q, ok := r.resolveSimple(name, s); ok {
		return q, false
	}
	if r.u.pkg != "" {
		return r.u.pkg + "." + name, false
	}
	return name, false
}

func (r *resolver) resolveSimple(name string, s scope) (string, bool) {
	for cur := s.owner; cur != nil; cur = cur.outer {
		if cur.simple == name {
			return cur.qualified, true
		}
		if q := cur.qualified + "." + name; r.known[q] {
			return q, true
		}
	}
	if q, ok := r.u.imports[name]; ok {
		return q, true
	}
	if r.u.pkg != "" {
		if q := r.u.pkg + "." + name; r.isKnown(q) {
			return q, true
		}
	}
	for _, w := range r.u.wildcards {
		if q := w + "." + name; r.isKnown(q) {
			return q, true
		}
	}
	if javaLang[name] {
		return "java.lang." + name, true
	}
	return "", false
}

func (r *resolver) ref(raw rawRef, s scope) decl.Ref {
	name, isVar := r.resolveName(raw.name, s)
	ref := decl.Ref{Name: name, Dims: raw.dims, Var: isVar}
	for _, a := range raw.args {
		ref.Args = append(ref.Args, r.ref(a, s))
	}
	return ref
}

func (r *resolver) tags(raw []rawTag, s scope) []decl.Tag {
	if len(raw) == 0 {
		return nil
	}
	out := make([]decl.Tag, 0, len(raw))
	for _, t := range raw {
		out = append(out, r.tag(t, s))
	}
	return out
}

func (r *resolver) tag(raw rawTag, s scope) decl.Tag {
	name, _ := r.resolveName(raw.name, s)
	attrs := decl.Attrs{}
	for _, a := range raw.attrs {
		attrs[a.key] = r.value(a.value, s)
	}
	return decl.T(name, attrs)
}

func (r *resolver) value(v rawValue, s scope) decl.Value {
	switch v.kind {
	case rawString:
		return decl.String(v.text)
	case rawBool:
		return decl.Bool(v.flag)
	case rawInt:
		return decl.Int(v.num)
	case rawClass:
		ref := r.ref(v.class, s)
		return decl.Class(ref.Name + strings.Repeat("[]", ref.Dims))
	case rawEnum:
		return decl.Enum(v.text)
	case rawList:
		items := make([]decl.Value, len(v.items))
		for i, item := range v.items {
			items[i] = r.value(item, s)
		}
		return decl.List(items...)
	case rawTagValue:
		return decl.Nested(r.tag(*v.tag, s))
	}
	return decl.Raw(v.text)
}

func (r *resolver) declaration(t *rawType) *decl.Declaration {
	s := r.typeScope(t)
	d := &decl.Declaration{
		QualifiedName: t.qualified,
		Kind:          decl.Kind(t.kind),
		TypeParams:    append([]string(nil), t.typeParams...),
		Abstract:      t.abstract,
		Doc:           t.doc,
		Tags:          r.tags(t.tags, s),
		Constants:     append([]string(nil), t.constants...),
	}
	for _, sup := range t.supers {
		d.Supers = append(d.Supers, r.ref(sup, s))
	}
	for _, f := range t.fields {
		d.Fields = append(d.Fields, decl.FieldDecl{
			Name: f.name,
			Type: r.ref(f.typ, s),
			Tags: r.tags(f.tags, s),
			Doc:  f.doc,
		})
	}
	for _, m := range t.methods {
		ms := s.with(m.typeParams)
		md := &decl.MethodDecl{
			Name:      m.name,
			Returns:   r.ref(m.returns, ms),
			Tags:      r.tags(m.tags, ms),
			Static:    m.static,
			NonPublic: m.nonPublic,
			Doc:       m.doc,
		}
		for _, p := range m.params {
			md.Params = append(md.Params, decl.ParamDecl{
				Name: p.name,
				Type: r.ref(p.typ, ms),
				Tags: r.tags(p.tags, ms),
				Doc:  p.doc,
			})
		}
		d.Methods = append(d.Methods, md)
	}
	return d
}
