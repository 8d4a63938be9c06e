package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// DefaultGroup is the name of the implicit group that collects ungrouped parameters.
const DefaultGroup = "DEFAULT"

// methodParameters returns the advertised parameters of a method: everything
// except host-injected types, config and connection references, chains and routes.
func (s *scope) methodParameters(m decl.Method) ([]decl.Element, error) {
	var out []decl.Element
	for _, p := range m.Parameters() {
		if isImplicit(p.Type()) || isChain(p.Type()) || isRoute(p.Type()) {
			continue
		}
		skip, err := s.hasAny(p, vocabulary.Config, vocabulary.Connection, vocabulary.Ignore)
		if err != nil {
			return nil, err
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out, nil
}

// fieldParameters returns the fields of t, inherited ones included, that are
// tagged as a parameter or a parameter group.
func (s *scope) fieldParameters(t decl.Type) ([]decl.Element, error) {
	var out []decl.Element
	for _, f := range decl.AllFields(t) {
		ignored, err := s.has(f, vocabulary.Ignore)
		if err != nil {
			return nil, err
		}
		if ignored {
			continue
		}
		advertised, err := s.hasAny(f, vocabulary.Parameter, vocabulary.ParameterGroup)
		if err != nil {
			return nil, err
		}
		if advertised {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *scope) hasAny(a decl.Annotated, pairs ...vocabulary.Pair) (bool, error) {
	found := false
	for _, p := range pairs {
		ok, err := s.has(a, p)
		if err != nil {
			return false, err
		}
		found = found || ok
	}
	return found, nil
}

// parseGroups partitions advertised elements into the implicit default group and
// explicit groups, in declaration order.
func (s *scope) parseGroups(elements []decl.Element, md Metadata) ([]ParameterGroup, error) {
	var (
		groups []ParameterGroup
		def    = -1
		seen   = map[string]bool{}
	)
	for _, el := range elements {
		groupTag, grouped, err := s.tag(el, vocabulary.ParameterGroup)
		if err != nil {
			return nil, err
		}
		if grouped {
			g, err := s.parseExplicitGroup(el, groupTag, md)
			if err != nil {
				return nil, err
			}
			for _, p := range g.Parameters {
				if err := s.claim(seen, p.Name); err != nil {
					return nil, err
				}
			}
			groups = append(groups, g)
			continue
		}

		p, err := s.parseParameter(el, paramContext{metadata: md})
		if err != nil {
			return nil, err
		}
		if err := s.claim(seen, p.Name); err != nil {
			return nil, err
		}
		if def < 0 {
			def = len(groups)
			groups = append(groups, ParameterGroup{Name: DefaultGroup, Placement: Placement{Tab: DefaultGroupName}})
		}
		groups[def].Parameters = append(groups[def].Parameters, p)
	}
	return groups, nil
}

func (s *scope) claim(seen map[string]bool, name string) error {
	if seen[name] {
		return paramError(s.subject, name, "", "is declared more than once")
	}
	seen[name] = true
	return nil
}

// parseExplicitGroup parses the group declared by el, whose type holds the
// group's parameters as fields.
func (s *scope) parseExplicitGroup(el decl.Element, tag decl.Tag, md Metadata) (ParameterGroup, error) {
	name := tag.StringOr("name", "")
	if name == "" {
		name = DefaultGroup
	}
	if name == DefaultGroup {
		return ParameterGroup{}, paramError(s.subject, el.Name(), tag.Name, "must name its group; "+DefaultGroup+" is reserved")
	}
	optional, err := s.has(el, vocabulary.Optional)
	if err != nil {
		return ParameterGroup{}, err
	}
	if optional {
		return ParameterGroup{}, paramError(s.subject, el.Name(), tag.Name, "cannot also be optional")
	}

	gt := el.Type()
	fields, err := s.fieldParameters(gt)
	if err != nil {
		return ParameterGroup{}, err
	}
	for _, f := range fields {
		nested, err := s.has(f, vocabulary.ParameterGroup)
		if err != nil {
			return ParameterGroup{}, err
		}
		if nested {
			return ParameterGroup{}, paramError(s.subject, el.Name(), tag.Name,
				"declares nested group '"+f.Name()+"'; groups cannot be nested")
		}
	}

	exclusive, err := s.exclusiveOptionals(gt, fields)
	if err != nil {
		return ParameterGroup{}, err
	}
	display, err := s.display(el)
	if err != nil {
		return ParameterGroup{}, err
	}

	g := ParameterGroup{
		Name:        name,
		Description: gt.Doc(),
		Exclusive:   exclusive,
		Placement:   display.Placement,
		ShowInDsl:   tag.BoolOr("showInDsl", false),
		Explicit:    true,
		Container:   el.Name(),
	}
	if g.Placement.Tab == "" {
		g.Placement.Tab = DefaultGroupName
	}
	pc := paramContext{inGroup: true, exclusive: exclusive, metadata: md}
	for _, f := range fields {
		p, err := s.parseParameter(f, pc)
		if err != nil {
			return ParameterGroup{}, err
		}
		g.Parameters = append(g.Parameters, p)
	}
	return g, nil
}

// exclusiveOptionals builds the exclusivity descriptor of a group type over its
// optional fields.
func (s *scope) exclusiveOptionals(gt decl.Type, fields []decl.Element) (*ExclusiveOptionals, error) {
	tag, ok, err := s.tag(gt, vocabulary.ExclusiveOptionals)
	if err != nil || !ok {
		return nil, err
	}
	ex := &ExclusiveOptionals{OneRequired: tag.BoolOr("isOneRequired", false)}
	for _, f := range fields {
		optional, err := s.has(f, vocabulary.Optional)
		if err != nil {
			return nil, err
		}
		if !optional {
			continue
		}
		name, err := s.parameterName(f)
		if err != nil {
			return nil, err
		}
		ex.Parameters = append(ex.Parameters, name)
	}
	return ex, nil
}

// allParameters flattens groups in order.
func allParameters(groups []ParameterGroup) []Parameter {
	var out []Parameter
	for _, g := range groups {
		out = append(out, g.Parameters...)
	}
	return out
}
