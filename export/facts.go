package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/parser"
)

// DefaultOrg is the organization segment of entity IDs when none is given.
const DefaultOrg = "local"

// FactSource is the provenance source recorded on every fact.
const FactSource = "extmodel.scan"

// Entity is an exportable entity with its type and facts.
type Entity struct {
	ID      string
	Type    EntityType
	Triples []message.Triple
}

// FactOptions control how entities are identified and stamped.
type FactOptions struct {
	// Org is the first segment of every entity ID.
	Org string

	// Origin is where the extension was loaded from, recorded on the extension.
	Origin string

	// Now stamps every fact. Zero means time.Now().
	Now time.Time
}

// ExtensionEntityID returns the entity ID of an extension.
// Format: {org}.extmodel.{prefix}.extension.{prefix}
func ExtensionEntityID(org, prefix string) string {
	p := sanitize(prefix)
	return fmt.Sprintf("%s.extmodel.%s.%s.%s", sanitize(org), p, EntityExtension, p)
}

// ComponentEntityID returns the entity ID of a component owned by owner.
// Format: {org}.extmodel.{prefix}.{type}.{owner}.{name}
func ComponentEntityID(org, prefix string, typ EntityType, owner, name string) string {
	return fmt.Sprintf("%s.extmodel.%s.%s.%s.%s", sanitize(org), sanitize(prefix), typ, sanitize(owner), sanitize(name))
}

// sanitize makes s usable as one dotted ID segment.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	if s == "" {
		return "_"
	}
	return s
}

// facts accumulates the triples of one entity.
type facts struct {
	entity Entity
	now    time.Time
}

func (f *facts) add(predicate string, object any) {
	f.entity.Triples = append(f.entity.Triples, message.Triple{
		Subject:    f.entity.ID,
		Predicate:  predicate,
		Object:     object,
		Source:     FactSource,
		Timestamp:  f.now,
		Confidence: 1.0,
	})
}

// addString records non-empty strings only.
func (f *facts) addString(predicate, object string) {
	if object != "" {
		f.add(predicate, object)
	}
}

func (f *facts) addAll(predicate string, objects []string) {
	for _, o := range objects {
		f.addString(predicate, o)
	}
}

// Entities converts an extension into graph entities: the extension, its
// configurations, every component and every parameter. Ownership is recorded in
// both directions.
func Entities(x *parser.Extension, opts FactOptions) []Entity {
	b := &builder{org: opts.Org, prefix: x.Prefix(), now: opts.Now}
	if b.org == "" {
		b.org = DefaultOrg
	}
	if b.now.IsZero() {
		b.now = time.Now()
	}

	root := b.entity(ExtensionEntityID(b.org, b.prefix), EntityExtension, x.Name(), x.Description(), x.MinVersion())
	root.addString(ComponentTypeName, x.TypeName())
	root.addString(ExtensionVendor, x.Vendor())
	root.addString(ExtensionCategory, x.Category())
	root.addString(ExtensionPrefix, x.Prefix())
	root.addString(ExtensionNamespace, x.Namespace())
	root.addString(ExtensionSource, opts.Origin)
	root.addAll(ExtensionJava, x.JavaVersions())
	root.addAll(ExtensionErrorType, x.ErrorTypes())
	root.add(ExtensionEnterprise, x.Licensing().RequiresEnterpriseLicense)

	b.components(root, x.Name(), x.Operations(), x.Sources(), x.ConnectionProviders(), x.Functions())
	for _, c := range x.Configurations() {
		cfg := b.child(root, EntityConfiguration, x.Name(), c.Name(), c.Description(), c.MinVersion())
		cfg.addString(ComponentTypeName, c.TypeName())
		b.parameters(cfg, c.Name(), c.ParameterGroups())
		b.components(cfg, c.Name(), c.Operations(), c.Sources(), c.ConnectionProviders(), c.Functions())
	}
	out := make([]Entity, 0, len(b.created)+1)
	out = append(out, root.entity)
	for _, f := range b.created {
		out = append(out, f.entity)
	}
	return out
}

// Facts flattens the entities of an extension into triples.
func Facts(x *parser.Extension, opts FactOptions) []message.Triple {
	var out []message.Triple
	for _, e := range Entities(x, opts) {
		out = append(out, e.Triples...)
	}
	return out
}

type builder struct {
	org     string
	prefix  string
	now     time.Time
	created []*facts
}

func (b *builder) entity(id string, typ EntityType, name, description, minVersion string) *facts {
	f := &facts{entity: Entity{ID: id, Type: typ}, now: b.now}
	f.add(ComponentKind, string(typ))
	f.addString(ComponentName, name)
	f.addString(ComponentDescription, description)
	f.addString(ComponentMinVersion, minVersion)
	return f
}

// child creates an entity owned by parent and links both ways.
func (b *builder) child(parent *facts, typ EntityType, owner, name, description, minVersion string) *facts {
	id := ComponentEntityID(b.org, b.prefix, typ, owner, name)
	f := b.entity(id, typ, name, description, minVersion)
	f.add(ComponentBelongsTo, parent.entity.ID)
	parent.add(ComponentContains, id)
	b.created = append(b.created, f)
	return f
}

func (b *builder) components(parent *facts, owner string, ops []*parser.Operation, srcs []*parser.Source,
	providers []*parser.ConnectionProvider, fns []*parser.Function) {
	for _, op := range ops {
		f := b.child(parent, EntityOperation, owner, op.Name(), op.Description(), op.MinVersion())
		f.addString(ComponentTypeName, op.Container())
		f.add(OperationShape, string(op.Shape()))
		f.add(OperationExecution, string(op.ExecutionType()))
		f.add(ComponentConnected, op.IsConnected())
		f.addString(ComponentConnection, decl.TypeString(op.ConnectionType()))
		f.add(OperationTransactional, op.IsTransactional())
		f.add(OperationPaged, op.IsAutoPaging())
		f.add(ComponentStreaming, op.SupportsStreaming())
		f.add(ComponentConfig, op.RequiresConfig())
		f.addString(ComponentOutputType, decl.TypeString(op.OutputType()))
		f.addString(ComponentAttributes, decl.TypeString(op.AttributesType()))
		f.addString(ComponentStereotype, op.Stereotype())
		f.addAll(OperationErrorProvider, op.ErrorProviders())
		deprecated(f, op.Deprecation())
		b.parameters(f, owner+"-"+op.Name(), op.ParameterGroups())
	}
	for _, src := range srcs {
		f := b.child(parent, EntitySource, owner, src.Name(), src.Description(), src.MinVersion())
		f.addString(ComponentTypeName, src.TypeName())
		f.add(ComponentConnected, src.IsConnected())
		f.addString(ComponentConnection, decl.TypeString(src.Connectivity().ConnectionType))
		f.add(ComponentStreaming, src.SupportsStreaming())
		f.add(ComponentConfig, src.RequiresConfig())
		f.addString(ComponentOutputType, decl.TypeString(src.OutputType()))
		f.addString(ComponentAttributes, decl.TypeString(src.AttributesType()))
		f.addString(ComponentStereotype, src.Stereotype())
		f.add(SourceClusterSupport, string(src.ClusterSupport()))
		f.add(SourceBackPressure, string(src.BackPressure().Default))
		f.add(SourcePolling, src.IsPolling())
		f.add(SourceEmitsResponse, src.EmitsResponse())
		deprecated(f, src.Deprecation())
		b.parameters(f, owner+"-"+src.Name(), src.ParameterGroups())
	}
	for _, p := range providers {
		f := b.child(parent, EntityConnectionProvider, owner, p.Name(), p.Description(), p.MinVersion())
		f.addString(ComponentTypeName, p.TypeName())
		f.add(ProviderManagement, string(p.Management()))
		f.addString(ComponentConnection, decl.TypeString(p.ConnectionType()))
		f.addAll(ProviderGrantType, p.GrantTypes())
		deprecated(f, p.Deprecation())
		b.parameters(f, owner+"-"+p.Name(), p.ParameterGroups())
	}
	for _, fn := range fns {
		f := b.child(parent, EntityFunction, owner, fn.Name(), fn.Description(), fn.MinVersion())
		f.addString(ComponentTypeName, fn.Container())
		f.addString(ComponentOutputType, decl.TypeString(fn.OutputType()))
		deprecated(f, fn.Deprecation())
		b.parameters(f, owner+"-"+fn.Name(), fn.ParameterGroups())
	}
}

func (b *builder) parameters(parent *facts, owner string, groups []parser.ParameterGroup) {
	for _, g := range groups {
		for _, p := range g.Parameters {
			f := b.child(parent, EntityParameter, owner, p.Name, p.Description, p.MinVersion)
			f.addString(ParameterType, decl.TypeString(p.Type))
			f.add(ParameterGroup, g.Name)
			f.add(ParameterRequired, p.Required)
			if p.HasDefault {
				f.add(ParameterDefault, p.DefaultValue)
			}
			f.add(ParameterExpression, string(p.ExpressionSupport))
			f.add(ParameterRole, string(p.Role))
			f.add(ParameterOverride, p.ConfigOverride)
			for _, k := range p.Stackable {
				f.add(ParameterStackable, string(k))
			}
			f.addAll(ParameterTerm, p.SemanticTerms)
			deprecated(f, p.Deprecation)
		}
	}
}

func deprecated(f *facts, d *parser.Deprecation) {
	if d != nil {
		f.add(ComponentDeprecated, d.Message)
	}
}
