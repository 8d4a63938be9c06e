package parser

import (
	"fmt"
	"slices"
	"sort"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/stackable"
	"github.com/c360studio/extmodel/vocabulary"
)

// paramContext is what the enclosing group and component contribute to a parameter.
type paramContext struct {
	inGroup   bool
	exclusive *ExclusiveOptionals
	metadata  Metadata
}

// parameterName returns the alias of an element or its declared name.
func (s *scope) parameterName(el decl.Element) (string, error) {
	alias, ok, err := s.tag(el, vocabulary.Alias)
	if err != nil {
		return "", err
	}
	if ok {
		if name := alias.StringOr(decl.DefaultAttribute, ""); name != "" {
			return name, nil
		}
	}
	return el.Name(), nil
}

// parseParameter resolves one advertised parameter or field.
func (s *scope) parseParameter(el decl.Element, pc paramContext) (Parameter, error) {
	name, err := s.parameterName(el)
	if err != nil {
		return Parameter{}, err
	}
	ps := &scope{env: s.env, subject: s.subject, minVersion: vocabulary.BaselineVersion}
	p := Parameter{Name: name, Description: el.Doc(), DeclaredType: el.Type()}

	// type, stackable wrappers removed
	logical, chain, err := s.env.stackable.Unwrap(el.Type())
	if err != nil {
		return Parameter{}, &MissingGenericArgumentError{
			Subject:   s.subject,
			Parameter: name,
			Type:      typeName(el.Type()),
			Want:      1,
			Err:       err,
		}
	}
	p.Type = logical
	p.Stackable = chain

	if p.ExpressionSupport, err = ps.expressionSupport(el, logical, chain); err != nil {
		return Parameter{}, err
	}
	if p.Role, err = ps.role(el); err != nil {
		return Parameter{}, err
	}

	optional, isOptional, err := ps.tag(el, vocabulary.Optional)
	if err != nil {
		return Parameter{}, err
	}
	p.Required = !isOptional
	if isOptional {
		p.DefaultValue = optional.StringOr("defaultValue", "")
		p.HasDefault = p.DefaultValue != ""
	}

	if p.Display, err = ps.display(el); err != nil {
		return Parameter{}, err
	}
	if p.Deprecation, err = ps.deprecation(el); err != nil {
		return Parameter{}, err
	}
	if p.OAuth, err = ps.oauthParameter(el); err != nil {
		return Parameter{}, err
	}
	if p.ConfigOverride, err = ps.has(el, vocabulary.ConfigOverride); err != nil {
		return Parameter{}, err
	}
	secret, err := ps.has(el, vocabulary.Secret)
	if err != nil {
		return Parameter{}, err
	}
	p.SemanticTerms = semanticTerms(p.Display, secret, logical)

	if resolver, ok, err := ps.tag(el, vocabulary.TypeResolver); err != nil {
		return Parameter{}, err
	} else if ok {
		p.TypeResolver, _ = resolver.Class(decl.DefaultAttribute)
	}
	if allowed, ok, err := ps.tag(el, vocabulary.AllowedStereotypes); err != nil {
		return Parameter{}, err
	} else if ok {
		p.Stereotypes = allowed.Classes(decl.DefaultAttribute)
	}

	if p.NullSafe, err = ps.nullSafe(name, el, logical, p.Required, p.ConfigOverride, pc.inGroup); err != nil {
		return Parameter{}, err
	}
	if p.MetadataKey, err = ps.metadataKey(el, pc.metadata); err != nil {
		return Parameter{}, err
	}
	if pc.exclusive != nil && slices.Contains(pc.exclusive.Parameters, name) {
		ex := *pc.exclusive
		p.Exclusive = &ex
	}

	p.MinVersion = ps.minVersion
	s.require(ps.minVersion)
	return p, nil
}

func (s *scope) expressionSupport(el decl.Element, logical decl.Type, chain []stackable.Kind) (ExpressionSupport, error) {
	if isInfrastructure(logical) {
		return ExpressionNotSupported, nil
	}
	tag, ok, err := s.tag(el, vocabulary.Expression)
	if err != nil {
		return "", err
	}
	if ok {
		return ExpressionSupport(tag.EnumOr(decl.DefaultAttribute, string(ExpressionSupported))), nil
	}
	if slices.Contains(chain, stackable.KindLiteral) {
		return ExpressionNotSupported, nil
	}
	return ExpressionSupported, nil
}

func (s *scope) role(el decl.Element) (Role, error) {
	content, ok, err := s.tag(el, vocabulary.Content)
	if err != nil || !ok {
		return RoleBehaviour, err
	}
	if content.BoolOr("primary", false) {
		return RolePrimaryContent, nil
	}
	return RoleContent, nil
}

// display collects the UI metadata of a parameter or component.
func (s *scope) display(a decl.Annotated) (Display, error) {
	var d Display
	if t, ok, err := s.tag(a, vocabulary.DisplayName); err != nil {
		return d, err
	} else if ok {
		d.DisplayName = t.StringOr(decl.DefaultAttribute, "")
	}
	if t, ok, err := s.tag(a, vocabulary.Summary); err != nil {
		return d, err
	} else if ok {
		d.Summary = t.StringOr(decl.DefaultAttribute, "")
	}
	if t, ok, err := s.tag(a, vocabulary.Example); err != nil {
		return d, err
	} else if ok {
		d.Example = t.StringOr(decl.DefaultAttribute, "")
	}
	if t, ok, err := s.tag(a, vocabulary.Placement); err != nil {
		return d, err
	} else if ok {
		d.Placement = Placement{Tab: t.StringOr("tab", DefaultGroupName), Order: t.IntOr("order", 0)}
		if tab := t.EnumOr("tab", ""); tab == "ADVANCED_TAB" {
			d.Placement.Tab = "Advanced"
		}
	}
	var err error
	if d.Password, err = s.has(a, vocabulary.Password); err != nil {
		return d, err
	}
	if d.Text, err = s.has(a, vocabulary.Text); err != nil {
		return d, err
	}
	if t, ok, err := s.tag(a, vocabulary.Path); err != nil {
		return d, err
	} else if ok {
		d.Path = &PathModel{
			Type:           t.EnumOr("type", "ANY"),
			AcceptsURLs:    t.BoolOr("acceptsUrls", false),
			FileExtensions: t.Strings("acceptedFileExtensions"),
		}
	}
	return d, nil
}

func (s *scope) deprecation(a decl.Annotated) (*Deprecation, error) {
	t, ok, err := s.tag(a, vocabulary.Deprecated)
	if err != nil || !ok {
		return nil, err
	}
	return &Deprecation{
		Message:    t.StringOr("message", ""),
		Since:      t.StringOr("since", ""),
		ToRemoveIn: t.StringOr("toRemoveIn", ""),
	}, nil
}

func (s *scope) oauthParameter(el decl.Element) (*OAuthParameter, error) {
	t, ok, err := s.tag(el, vocabulary.OAuthParameter)
	if err != nil || !ok {
		return nil, err
	}
	return &OAuthParameter{
		RequestAlias: t.StringOr("requestAlias", ""),
		Placement:    t.EnumOr("placement", "BODY"),
	}, nil
}

// semanticTerms derives terms from tags and the logical type. A secret of a scalar
// type is narrowed to a scalar secret.
func semanticTerms(d Display, secret bool, logical decl.Type) []string {
	terms := map[string]bool{}
	if d.Password {
		terms[TermPassword] = true
		terms[TermSecret] = true
	}
	if secret {
		terms[TermSecret] = true
	}
	if d.Path != nil {
		terms[TermPath] = true
	}
	switch {
	case is(logical, vocabulary.TlsContextFactory):
		terms[TermTLS] = true
	case is(logical, vocabulary.SchedulingStrategy):
		terms[TermScheduling] = true
	case is(logical, vocabulary.OperationTransactionalAction, vocabulary.SourceTransactionalAction):
		terms[TermTransaction] = true
	}
	if terms[TermSecret] && decl.IsScalar(logical) {
		delete(terms, TermSecret)
		terms[TermScalarSecret] = true
	}
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for t := range terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// nullSafe validates a null-safe parameter and resolves the instance used when it
// has no value.
func (s *scope) nullSafe(name string, el decl.Element, typ decl.Type, required, configOverride, inGroup bool) (*NullSafe, error) {
	tag, ok, err := s.tag(el, vocabulary.NullSafe)
	if err != nil || !ok {
		return nil, err
	}
	fail := func(format string, a ...any) error {
		return paramError(s.subject, name, tag.Name, fmt.Sprintf(format, a...))
	}
	if configOverride {
		return nil, fail("cannot also be a config override")
	}
	if required && !inGroup {
		return nil, fail("is required; a null safe parameter must be optional or part of a group")
	}

	var override decl.Type
	if cls, ok := tag.Class("defaultImplementingType"); ok && cls != vocabulary.JavaObject {
		found, ok := s.env.graph.Lookup(cls)
		if !ok {
			return nil, fmt.Errorf("%s: null safe default %s: %w", s.subject, cls, decl.ErrTypeNotFound)
		}
		override = found
	}

	var impl decl.Type
	switch {
	case typ.Kind() == decl.KindArray || decl.IsMap(typ):
		if override != nil {
			return nil, fail("is an array or map and cannot declare a default implementing type")
		}
		impl = typ
		if decl.IsMap(typ) && !decl.IsInstantiable(typ) {
			impl = s.platformType("java.util.HashMap", typ)
		}
		return &NullSafe{DefaultImplementation: impl}, nil
	case decl.IsCollection(typ):
		if override == nil {
			impl = typ
			if !decl.IsInstantiable(typ) {
				impl = s.platformType("java.util.ArrayList", typ)
				if decl.IsAssignableTo(typ, "java.util.Set") {
					impl = s.platformType("java.util.HashSet", typ)
				}
			}
			return &NullSafe{DefaultImplementation: impl}, nil
		}
		impl = override
	case decl.IsInstantiable(typ) && !decl.IsScalar(typ):
		if override != nil {
			return nil, fail("has concrete type %s and cannot declare a default implementing type", typeName(typ))
		}
		impl = typ
	default:
		impl = typ
		if override != nil {
			impl = override
		}
	}

	if !decl.IsInstantiable(impl) || (!decl.IsComplex(impl) && !decl.IsCollection(impl)) {
		return nil, fail("needs a complex instantiable default implementation, %s is not", typeName(impl))
	}
	if !decl.IsAssignable(impl, typ) {
		return nil, fail("default implementation %s is not assignable to %s", typeName(impl), typeName(typ))
	}
	return &NullSafe{DefaultImplementation: impl}, nil
}

// platformType looks up a well-known type, falling back to def.
func (s *scope) platformType(name string, def decl.Type) decl.Type {
	if t, ok := s.env.graph.Lookup(name); ok {
		return t
	}
	return def
}

func (s *scope) metadataKey(el decl.Element, md Metadata) (*MetadataKeyPart, error) {
	if _, ok, err := s.tag(el, vocabulary.MetadataKeyID); err != nil {
		return nil, err
	} else if ok {
		return &MetadataKeyPart{Order: 1, ProvidedByKeyResolver: md.HasKeysResolver()}, nil
	}
	part, ok, err := s.tag(el, vocabulary.MetadataKeyPart)
	if err != nil || !ok {
		return nil, err
	}
	return &MetadataKeyPart{
		Order:                 part.IntOr("order", 1),
		ProvidedByKeyResolver: md.HasKeysResolver() && part.BoolOr("providedByKeyResolver", true),
	}, nil
}
