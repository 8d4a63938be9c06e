package parser

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// Extension is a parsed extension: the root of the model. Components declared
// on the extension type while explicit configurations exist are shared by every
// configuration and are exposed by the embedded component accessors.
type Extension struct {
	components

	name          string
	description   string
	typ           string
	vendor        string
	category      string
	prefix        string
	namespace     string
	minVersion    string
	javaVersions  []string
	configs       []*Configuration
	imports       []string
	exports       []string
	resources     []string
	subTypes      []SubTypes
	errorTypes    []string
	notifications []string
	licensing     Licensing
}

func (x *Extension) Name() string        { return x.name }
func (x *Extension) Description() string { return x.description }
func (x *Extension) TypeName() string    { return x.typ }
func (x *Extension) Vendor() string      { return x.vendor }
func (x *Extension) Category() string    { return x.category }

// Prefix is the XML namespace prefix.
func (x *Extension) Prefix() string    { return x.prefix }
func (x *Extension) Namespace() string { return x.namespace }

// MinVersion is the highest minimum runtime version among the extension and
// every component it declares.
func (x *Extension) MinVersion() string { return x.minVersion }

func (x *Extension) JavaVersions() []string           { return slices.Clone(x.javaVersions) }
func (x *Extension) Configurations() []*Configuration { return slices.Clone(x.configs) }
func (x *Extension) Imports() []string                { return slices.Clone(x.imports) }
func (x *Extension) Exports() []string                { return slices.Clone(x.exports) }
func (x *Extension) ExportedResources() []string      { return slices.Clone(x.resources) }
func (x *Extension) SubTypes() []SubTypes             { return slices.Clone(x.subTypes) }
func (x *Extension) ErrorTypes() []string             { return slices.Clone(x.errorTypes) }
func (x *Extension) NotificationActions() []string    { return slices.Clone(x.notifications) }
func (x *Extension) Licensing() Licensing             { return x.licensing }

// Configuration returns a configuration by name.
func (x *Extension) Configuration(name string) (*Configuration, bool) {
	for _, c := range x.configs {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// IsExtension reports whether t carries an extension tag of either vocabulary.
func IsExtension(t decl.Type) bool {
	return decl.HasTag(t, vocabulary.Extension.Legacy) || decl.HasTag(t, vocabulary.Extension.Current)
}

// ParseExtensions parses every extension type of the environment's graph.
func ParseExtensions(env *Env) ([]*Extension, error) {
	var out []*Extension
	for _, t := range env.graph.Types() {
		if !IsExtension(t) {
			continue
		}
		x, err := ParseExtension(env, t)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	if len(out) == 0 {
		return nil, ErrNoExtension
	}
	return out, nil
}

// ParseExtension parses one extension type. The first violation found aborts the
// parse; no partial model is returned.
func ParseExtension(env *Env, t decl.Type) (*Extension, error) {
	s := env.scope(KindExtension, t.Name())
	tag, ok, err := s.tag(t, vocabulary.Extension)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", t.QualifiedName(), ErrNoExtension)
	}
	x := &Extension{
		name:        strings.TrimSpace(tag.StringOr("name", "")),
		description: t.Doc(),
		typ:         t.QualifiedName(),
		vendor:      tag.StringOr("vendor", DefaultVendor),
		category:    tag.EnumOr("category", DefaultCategory),
	}
	if x.name == "" {
		return nil, shapeErrorf(s.subject, RuleExtensionName, "%s", t.QualifiedName())
	}
	s.subject.Name = x.name

	if err := s.explicitMinVersion(t); err != nil {
		return nil, err
	}
	if err := s.xml(t, x); err != nil {
		return nil, err
	}
	if err := x.parseTypeCatalog(env, s, t); err != nil {
		return nil, err
	}
	if x.javaVersions, err = s.javaVersions(t); err != nil {
		return nil, err
	}
	if lic, ok, err := s.tag(t, vocabulary.RequiresEnterpriseLicense); err != nil {
		return nil, err
	} else if ok {
		x.licensing = Licensing{
			RequiresEnterpriseLicense: true,
			AllowsEvaluationLicense:   lic.BoolOr("allowEvaluationLicense", true),
		}
	}

	if err := x.parseConfigurations(env, s, t); err != nil {
		return nil, err
	}

	x.minVersion = MaxVersion(s.minVersion, x.components.highestVersion())
	for _, c := range x.configs {
		x.minVersion = MaxVersion(x.minVersion, c.minVersion)
	}
	env.logger.Debug("Parsed extension", "extension", x.name, "configurations", len(x.configs),
		"min_version", x.minVersion)
	return x, nil
}

// parseConfigurations parses the explicit configurations, or the extension type
// as the implicit one.
func (x *Extension) parseConfigurations(env *Env, s *scope, t decl.Type) error {
	tag, explicit, err := s.tag(t, vocabulary.Configurations)
	if err != nil {
		return err
	}
	if !explicit {
		c, err := env.parseConfiguration(t, t, true)
		if err != nil {
			return err
		}
		x.configs = []*Configuration{c}
		return nil
	}

	types, err := env.lookupAll(s.subject, tag.Classes(decl.DefaultAttribute))
	if err != nil {
		return err
	}
	md, err := s.metadata(t)
	if err != nil {
		return err
	}
	var shared []decl.Type
	if x.components, shared, err = env.parseComponents(s, owner{subject: s.subject, typ: t}, md); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, ct := range types {
		c, err := env.parseConfiguration(ct, t, false)
		if err != nil {
			return err
		}
		if seen[c.name] {
			return shapeErrorf(s.subject, RuleDuplicateName, "%s '%s'", KindConfiguration, c.name)
		}
		seen[c.name] = true
		x.configs = append(x.configs, c)
	}

	// A configuration type must not double as any operation container, its own
	// or another configuration's.
	containers := slices.Clone(shared)
	for _, c := range x.configs {
		containers = append(containers, c.containers...)
	}
	for i, ct := range types {
		for _, container := range containers {
			if decl.Related(ct, container) {
				return &SelfReferentialDeclarationError{
					Subject:   Subject{Kind: KindConfiguration, Name: x.configs[i].name},
					Container: container.QualifiedName(),
					Root:      ct.QualifiedName(),
				}
			}
		}
	}
	return nil
}

// xml resolves the namespace prefix and URI.
func (s *scope) xml(t decl.Type, x *Extension) error {
	tag, ok, err := s.tag(t, vocabulary.Xml)
	if err != nil {
		return err
	}
	if ok {
		x.prefix = tag.StringOr("prefix", "")
		x.namespace = tag.StringOr("namespace", "")
	}
	if x.prefix == "" {
		x.prefix = DefaultPrefix(x.name)
	}
	if x.namespace == "" {
		x.namespace = DefaultNamespaceBase + x.prefix
	}
	return nil
}

// parseTypeCatalog collects imported, exported and sub-typed types and the enum
// constants of error and notification catalogs.
func (x *Extension) parseTypeCatalog(env *Env, s *scope, t decl.Type) error {
	imports, err := s.repeatable(t, vocabulary.Import)
	if err != nil {
		return err
	}
	for _, imp := range imports {
		if name, ok := imp.Class("type"); ok {
			x.imports = append(x.imports, name)
		}
	}

	mappings, err := s.repeatable(t, vocabulary.SubTypeMapping)
	if err != nil {
		return err
	}
	for _, m := range mappings {
		base, _ := m.Class("baseType")
		x.subTypes = append(x.subTypes, SubTypes{Base: base, SubTypes: m.Classes("subTypes")})
	}

	if export, ok, err := s.tag(t, vocabulary.Export); err != nil {
		return err
	} else if ok {
		x.exports = export.Classes("classes")
		x.resources = export.Strings("resources")
	}

	constants := func(p vocabulary.Pair) ([]string, error) {
		tag, ok, err := s.tag(t, p)
		if err != nil || !ok {
			return nil, err
		}
		types, err := env.lookupAll(s.subject, tag.Classes(decl.DefaultAttribute))
		if err != nil {
			return nil, err
		}
		var out []string
		for _, et := range types {
			out = append(out, et.EnumConstants()...)
		}
		return out, nil
	}
	if x.errorTypes, err = constants(vocabulary.ErrorTypes); err != nil {
		return err
	}
	if x.notifications, err = constants(vocabulary.NotificationActions); err != nil {
		return err
	}
	return nil
}

// javaVersions reads the supported Java versions; JAVA_17 reads as "17".
func (s *scope) javaVersions(t decl.Type) ([]string, error) {
	tag, ok, err := s.tag(t, vocabulary.JavaVersionSupport)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slices.Clone(DefaultJavaVersions), nil
	}
	var out []string
	for _, v := range tag.Enums(decl.DefaultAttribute) {
		out = append(out, strings.TrimPrefix(v, "JAVA_"))
	}
	if len(out) == 0 {
		return slices.Clone(DefaultJavaVersions), nil
	}
	return out, nil
}

// DefaultPrefix derives the namespace prefix of an extension name: the name
// hyphenized and lower-cased, without a trailing "-extension".
func DefaultPrefix(name string) string {
	return strings.TrimSuffix(Hyphenize(name), "-extension")
}

// Hyphenize turns "Acme Files", "AcmeFiles" or "acme_files" into "acme-files".
func Hyphenize(s string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if prev != '-' && b.Len() > 0 {
				b.WriteRune('-')
				prev = '-'
			}
			continue
		case unicode.IsUpper(r):
			if prev != 0 && prev != '-' && !unicode.IsUpper(prev) {
				b.WriteRune('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return strings.TrimSuffix(b.String(), "-")
}
