package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// Configuration is a parsed configuration together with the components it owns.
type Configuration struct {
	info
	components

	typ      string
	implicit bool

	// containers are the operation containers the configuration declares.
	containers []decl.Type
}

// TypeName is the qualified name of the configuration type.
func (c *Configuration) TypeName() string { return c.typ }

// IsImplicit reports whether the configuration is the extension type itself.
func (c *Configuration) IsImplicit() bool { return c.implicit }

// parseConfiguration parses a configuration type. The implicit configuration is
// the extension type, whose component tags are read as its own.
func (e *Env) parseConfiguration(t, root decl.Type, implicit bool) (*Configuration, error) {
	s := e.scope(KindConfiguration, t.Name())
	name := DefaultConfigName
	if tag, ok, err := s.tag(t, vocabulary.Configuration); err != nil {
		return nil, err
	} else if ok {
		name = tag.StringOr("name", DefaultConfigName)
	}
	name, err := s.componentName(t, name)
	if err != nil {
		return nil, err
	}
	s.subject.Name = name

	base, err := s.describe(t, t.Doc())
	if err != nil {
		return nil, err
	}
	c := &Configuration{info: base, typ: t.QualifiedName(), implicit: implicit}

	md, err := s.metadata(t)
	if err != nil {
		return nil, err
	}
	params, err := s.fieldParameters(t)
	if err != nil {
		return nil, err
	}
	if c.groups, err = s.parseGroups(params, md); err != nil {
		return nil, err
	}

	o := owner{subject: s.subject, typ: t}
	if !implicit {
		o.root = root
	}
	if c.components, c.containers, err = e.parseComponents(s, o, md); err != nil {
		return nil, err
	}

	c.minVersion = MaxVersion(s.minVersion, c.components.highestVersion())
	e.logger.Debug("Parsed configuration", "configuration", c.name,
		"operations", len(c.operations), "sources", len(c.sources), "providers", len(c.providers))
	return c, nil
}
