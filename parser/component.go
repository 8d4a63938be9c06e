package parser

import (
	"fmt"
	"slices"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// componentName returns the alias of a component or fallback.
func (s *scope) componentName(a decl.Annotated, fallback string) (string, error) {
	alias, ok, err := s.tag(a, vocabulary.Alias)
	if err != nil {
		return "", err
	}
	if ok {
		if name := alias.StringOr(decl.DefaultAttribute, ""); name != "" {
			return name, nil
		}
	}
	return fallback, nil
}

// metadata discovers the resolvers a component declares.
func (s *scope) metadata(a decl.Annotated) (Metadata, error) {
	var md Metadata
	if t, ok, err := s.tag(a, vocabulary.OutputResolver); err != nil {
		return md, err
	} else if ok {
		md.OutputResolver, _ = t.Class("output")
		md.AttributesResolver, _ = t.Class("attributes")
	}
	if t, ok, err := s.tag(a, vocabulary.MetadataScope); err != nil {
		return md, err
	} else if ok {
		md.KeysResolver, _ = t.Class("keysResolver")
		if out, ok := t.Class("outputResolver"); ok {
			md.OutputResolver = out
		}
		if attrs, ok := t.Class("attributesResolver"); ok {
			md.AttributesResolver = attrs
		}
	}
	return md, nil
}

// inheritMetadata fills resolvers a component leaves undeclared from its container.
func inheritMetadata(md, container Metadata) Metadata {
	if md.KeysResolver == "" {
		md.KeysResolver = container.KeysResolver
	}
	if md.OutputResolver == "" {
		md.OutputResolver = container.OutputResolver
	}
	if md.AttributesResolver == "" {
		md.AttributesResolver = container.AttributesResolver
	}
	return md
}

// explicitMinVersion applies a declared minimum runtime version.
func (s *scope) explicitMinVersion(a decl.Annotated) error {
	t, ok, err := s.tag(a, vocabulary.MinMuleVersion)
	if err != nil || !ok {
		return err
	}
	v := t.StringOr(decl.DefaultAttribute, "")
	if !IsValidVersion(v) {
		return shapeErrorf(s.subject, RuleMinVersion, "got %q", v)
	}
	s.require(v)
	return nil
}

func (s *scope) stereotype(a decl.Annotated) (string, error) {
	t, ok, err := s.tag(a, vocabulary.Stereotype)
	if err != nil || !ok {
		return "", err
	}
	name, _ := t.Class(decl.DefaultAttribute)
	return name, nil
}

// MediaType is the declared output media type of an operation or source.
type MediaType struct {
	Value  string
	Strict bool
}

func (s *scope) mediaType(a decl.Annotated) (*MediaType, error) {
	t, ok, err := s.tag(a, vocabulary.MediaType)
	if err != nil || !ok {
		return nil, err
	}
	return &MediaType{Value: t.StringOr(decl.DefaultAttribute, ""), Strict: t.BoolOr("strict", true)}, nil
}

// requiresConfig reports whether any element references the configuration.
func (s *scope) requiresConfig(elements []decl.Element) (bool, error) {
	for _, el := range elements {
		ok, err := s.has(el, vocabulary.Config)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// info is what every component exposes besides its kind-specific data.
type info struct {
	name        string
	description string
	groups      []ParameterGroup
	display     Display
	deprecation *Deprecation
	minVersion  string
}

// Name is the resolved name: the alias if declared, else the declared name.
func (i *info) Name() string        { return i.name }
func (i *info) Description() string { return i.description }

// ParameterGroups returns the groups in declaration order. The implicit default
// group is present only when an ungrouped parameter exists.
func (i *info) ParameterGroups() []ParameterGroup { return slices.Clone(i.groups) }

// Parameters returns every parameter across groups, in order.
func (i *info) Parameters() []Parameter { return allParameters(i.groups) }

// Group returns a parameter group by name.
func (i *info) Group(name string) (ParameterGroup, bool) {
	for _, g := range i.groups {
		if g.Name == name {
			return g, true
		}
	}
	return ParameterGroup{}, false
}

func (i *info) Display() Display { return i.display }

// Deprecation returns the deprecation notice, or nil.
func (i *info) Deprecation() *Deprecation { return i.deprecation }

// MinVersion is the lowest runtime version able to run the component.
func (i *info) MinVersion() string { return i.minVersion }

// describe fills the metadata shared by all components.
func (s *scope) describe(a decl.Annotated, doc string) (info, error) {
	display, err := s.display(a)
	if err != nil {
		return info{}, err
	}
	dep, err := s.deprecation(a)
	if err != nil {
		return info{}, err
	}
	if err := s.explicitMinVersion(a); err != nil {
		return info{}, err
	}
	return info{name: s.subject.Name, description: doc, display: display, deprecation: dep}, nil
}

// components are the executable components and providers of an owner.
type components struct {
	operations []*Operation
	sources    []*Source
	providers  []*ConnectionProvider
	functions  []*Function
}

func (c *components) Operations() []*Operation                   { return slices.Clone(c.operations) }
func (c *components) Sources() []*Source                         { return slices.Clone(c.sources) }
func (c *components) ConnectionProviders() []*ConnectionProvider { return slices.Clone(c.providers) }
func (c *components) Functions() []*Function                     { return slices.Clone(c.functions) }

// Operation returns an operation by name.
func (c *components) Operation(name string) (*Operation, bool) {
	for _, op := range c.operations {
		if op.name == name {
			return op, true
		}
	}
	return nil, false
}

// Source returns a source by name.
func (c *components) Source(name string) (*Source, bool) {
	for _, src := range c.sources {
		if src.name == name {
			return src, true
		}
	}
	return nil, false
}

func (c *components) highestVersion() string {
	v := vocabulary.BaselineVersion
	for _, op := range c.operations {
		v = MaxVersion(v, op.minVersion)
	}
	for _, src := range c.sources {
		v = MaxVersion(v, src.minVersion)
	}
	for _, p := range c.providers {
		v = MaxVersion(v, p.minVersion)
	}
	for _, f := range c.functions {
		v = MaxVersion(v, f.minVersion)
	}
	return v
}

// owner is a type that declares components: the extension type or a configuration.
type owner struct {
	subject Subject
	typ     decl.Type

	// root is the extension type, checked along with typ.
	root decl.Type
}

// guard rejects a component container related to its owner or to the extension.
func (o owner) guard(container decl.Type) error {
	for _, t := range []decl.Type{o.typ, o.root} {
		if t != nil && decl.Related(container, t) {
			return &SelfReferentialDeclarationError{
				Subject:   o.subject,
				Container: container.QualifiedName(),
				Root:      t.QualifiedName(),
			}
		}
	}
	return nil
}

// parseComponents discovers the components an owner type declares.
func (e *Env) parseComponents(s *scope, o owner, md Metadata) (components, []decl.Type, error) {
	var (
		c            components
		opContainers []decl.Type
	)
	refs := func(p vocabulary.Pair) ([]decl.Type, error) {
		t, ok, err := s.tag(o.typ, p)
		if err != nil || !ok {
			return nil, err
		}
		return e.lookupAll(s.subject, t.Classes(decl.DefaultAttribute))
	}

	ops, err := refs(vocabulary.Operations)
	if err != nil {
		return c, nil, err
	}
	for _, container := range ops {
		if err := o.guard(container); err != nil {
			return c, nil, err
		}
		opContainers = append(opContainers, container)
		parsed, err := e.parseOperations(container, md)
		if err != nil {
			return c, nil, err
		}
		c.operations = append(c.operations, parsed...)
	}

	srcs, err := refs(vocabulary.Sources)
	if err != nil {
		return c, nil, err
	}
	for _, t := range srcs {
		if err := o.guard(t); err != nil {
			return c, nil, err
		}
		src, err := e.parseSource(t, md)
		if err != nil {
			return c, nil, err
		}
		c.sources = append(c.sources, src)
	}

	providers, err := refs(vocabulary.ConnectionProviders)
	if err != nil {
		return c, nil, err
	}
	for _, t := range providers {
		p, err := e.parseConnectionProvider(t)
		if err != nil {
			return c, nil, err
		}
		c.providers = append(c.providers, p)
	}

	fns, err := refs(vocabulary.ExpressionFunctions)
	if err != nil {
		return c, nil, err
	}
	for _, container := range fns {
		if err := o.guard(container); err != nil {
			return c, nil, err
		}
		parsed, err := e.parseFunctions(container)
		if err != nil {
			return c, nil, err
		}
		c.functions = append(c.functions, parsed...)
	}

	if err := c.checkNames(o.subject); err != nil {
		return c, nil, err
	}
	return c, opContainers, nil
}

// checkNames rejects two components of the same kind with one name.
func (c *components) checkNames(owner Subject) error {
	check := func(kind ComponentKind, names []string) error {
		seen := map[string]bool{}
		for _, n := range names {
			if seen[n] {
				return shapeErrorf(owner, RuleDuplicateName, "%s '%s'", kind, n)
			}
			seen[n] = true
		}
		return nil
	}
	var ops, srcs, provs, fns []string
	for _, op := range c.operations {
		ops = append(ops, op.name)
	}
	for _, src := range c.sources {
		srcs = append(srcs, src.name)
	}
	for _, p := range c.providers {
		provs = append(provs, p.name)
	}
	for _, f := range c.functions {
		fns = append(fns, f.name)
	}
	for _, err := range []error{
		check(KindOperation, ops),
		check(KindSource, srcs),
		check(KindConnectionProvider, provs),
		check(KindFunction, fns),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// publicMethods returns the public instance methods of a container that are not
// excluded by an ignore tag.
func (e *Env) publicMethods(kind ComponentKind, container decl.Type) ([]decl.Method, error) {
	s := e.scope(kind, container.Name())
	var out []decl.Method
	for _, m := range decl.AllMethods(container) {
		if !m.IsPublic() || m.IsStatic() {
			continue
		}
		ignored, err := s.has(m, vocabulary.Ignore)
		if err != nil {
			return nil, fmt.Errorf("%s method %s: %w", container.QualifiedName(), m.Name(), err)
		}
		if !ignored {
			out = append(out, m)
		}
	}
	return out, nil
}
