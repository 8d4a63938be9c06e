package export

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/parser"
)

// Document is the serializable form of a parsed extension.
type Document struct {
	Name                string             `json:"name" yaml:"name"`
	Description         string             `json:"description,omitempty" yaml:"description,omitempty"`
	Type                string             `json:"type" yaml:"type"`
	Vendor              string             `json:"vendor" yaml:"vendor"`
	Category            string             `json:"category" yaml:"category"`
	Prefix              string             `json:"prefix" yaml:"prefix"`
	Namespace           string             `json:"namespace" yaml:"namespace"`
	MinVersion          string             `json:"minMuleVersion" yaml:"minMuleVersion"`
	JavaVersions        []string           `json:"javaVersions,omitempty" yaml:"javaVersions,omitempty"`
	Licensing           LicensingDoc       `json:"licensing" yaml:"licensing"`
	Configurations      []ConfigurationDoc `json:"configurations" yaml:"configurations"`
	Shared              ComponentsDoc      `json:"shared" yaml:"shared"`
	Imports             []string           `json:"imports,omitempty" yaml:"imports,omitempty"`
	Exports             []string           `json:"exports,omitempty" yaml:"exports,omitempty"`
	ExportedResources   []string           `json:"exportedResources,omitempty" yaml:"exportedResources,omitempty"`
	SubTypes            []SubTypesDoc      `json:"subTypes,omitempty" yaml:"subTypes,omitempty"`
	ErrorTypes          []string           `json:"errorTypes,omitempty" yaml:"errorTypes,omitempty"`
	NotificationActions []string           `json:"notificationActions,omitempty" yaml:"notificationActions,omitempty"`
}

// SubTypesDoc maps a base type to the types usable in its place.
type SubTypesDoc struct {
	Base     string   `json:"base" yaml:"base"`
	SubTypes []string `json:"subTypes" yaml:"subTypes"`
}

// LicensingDoc describes the license an extension requires.
type LicensingDoc struct {
	RequiresEnterpriseLicense bool `json:"requiresEnterpriseLicense" yaml:"requiresEnterpriseLicense"`
	AllowsEvaluationLicense   bool `json:"allowsEvaluationLicense" yaml:"allowsEvaluationLicense"`
}

// ComponentsDoc lists the components of an owner.
type ComponentsDoc struct {
	Operations          []OperationDoc `json:"operations,omitempty" yaml:"operations,omitempty"`
	Sources             []SourceDoc    `json:"sources,omitempty" yaml:"sources,omitempty"`
	ConnectionProviders []ProviderDoc  `json:"connectionProviders,omitempty" yaml:"connectionProviders,omitempty"`
	Functions           []FunctionDoc  `json:"functions,omitempty" yaml:"functions,omitempty"`
}

// ConfigurationDoc is a configuration and the components it owns.
type ConfigurationDoc struct {
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type            string     `json:"type" yaml:"type"`
	Implicit        bool       `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	MinVersion      string     `json:"minMuleVersion" yaml:"minMuleVersion"`
	ParameterGroups []GroupDoc `json:"parameterGroups,omitempty" yaml:"parameterGroups,omitempty"`

	ComponentsDoc `yaml:",inline"`
}

// GroupDoc is a parameter group.
type GroupDoc struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Explicit    bool           `json:"explicit,omitempty" yaml:"explicit,omitempty"`
	ShowInDsl   bool           `json:"showInDsl,omitempty" yaml:"showInDsl,omitempty"`
	Tab         string         `json:"tab,omitempty" yaml:"tab,omitempty"`
	Order       int            `json:"order,omitempty" yaml:"order,omitempty"`
	Exclusive   []string       `json:"exclusiveOptionals,omitempty" yaml:"exclusiveOptionals,omitempty"`
	OneRequired bool           `json:"oneRequired,omitempty" yaml:"oneRequired,omitempty"`
	Parameters  []ParameterDoc `json:"parameters" yaml:"parameters"`
}

// ParameterDoc is a parameter.
type ParameterDoc struct {
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type              string   `json:"type" yaml:"type"`
	DeclaredType      string   `json:"declaredType,omitempty" yaml:"declaredType,omitempty"`
	Required          bool     `json:"required" yaml:"required"`
	Default           *string  `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	EvaluatedDefault  any      `json:"evaluatedDefault,omitempty" yaml:"evaluatedDefault,omitempty"`
	ExpressionSupport string   `json:"expressionSupport" yaml:"expressionSupport"`
	Role              string   `json:"role" yaml:"role"`
	ConfigOverride    bool     `json:"configOverride,omitempty" yaml:"configOverride,omitempty"`
	Stackable         []string `json:"stackable,omitempty" yaml:"stackable,omitempty"`
	NullSafe          string   `json:"nullSafe,omitempty" yaml:"nullSafe,omitempty"`
	DisplayName       string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Summary           string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Example           string   `json:"example,omitempty" yaml:"example,omitempty"`
	SemanticTerms     []string `json:"semanticTerms,omitempty" yaml:"semanticTerms,omitempty"`
	MetadataKeyOrder  int      `json:"metadataKeyOrder,omitempty" yaml:"metadataKeyOrder,omitempty"`
	TypeResolver      string   `json:"typeResolver,omitempty" yaml:"typeResolver,omitempty"`
	Stereotypes       []string `json:"allowedStereotypes,omitempty" yaml:"allowedStereotypes,omitempty"`
	Deprecated        string   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	MinVersion        string   `json:"minMuleVersion" yaml:"minMuleVersion"`
}

// componentDoc holds what every component document carries.
type componentDoc struct {
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	MinVersion      string     `json:"minMuleVersion" yaml:"minMuleVersion"`
	Deprecated      string     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ParameterGroups []GroupDoc `json:"parameterGroups,omitempty" yaml:"parameterGroups,omitempty"`
}

// OperationDoc is an operation.
type OperationDoc struct {
	componentDoc `yaml:",inline"`

	Method         string      `json:"method" yaml:"method"`
	Container      string      `json:"container" yaml:"container"`
	Shape          string      `json:"shape" yaml:"shape"`
	Execution      string      `json:"executionType" yaml:"executionType"`
	Output         string      `json:"output,omitempty" yaml:"output,omitempty"`
	Attributes     string      `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Connected      bool        `json:"connected" yaml:"connected"`
	Transactional  bool        `json:"transactional,omitempty" yaml:"transactional,omitempty"`
	ConnectionType string      `json:"connectionType,omitempty" yaml:"connectionType,omitempty"`
	Streaming      bool        `json:"streaming,omitempty" yaml:"streaming,omitempty"`
	Paged          bool        `json:"paged,omitempty" yaml:"paged,omitempty"`
	RequiresConfig bool        `json:"requiresConfig,omitempty" yaml:"requiresConfig,omitempty"`
	ErrorProviders []string    `json:"errorProviders,omitempty" yaml:"errorProviders,omitempty"`
	Stereotype     string      `json:"stereotype,omitempty" yaml:"stereotype,omitempty"`
	MediaType      string      `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Metadata       MetadataDoc `json:"metadata,omitzero" yaml:"metadata,omitempty"`
	Chain          *ChainDoc   `json:"chain,omitempty" yaml:"chain,omitempty"`
	Routes         []RouteDoc  `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// MetadataDoc names the resolvers of a component.
type MetadataDoc struct {
	Keys       string `json:"keys,omitempty" yaml:"keys,omitempty"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	Attributes string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ChainDoc is the nested chain of a scope.
type ChainDoc struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required" yaml:"required"`
}

// RouteDoc is a nested route of a router.
type RouteDoc struct {
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	MinOccurs       int        `json:"minOccurs" yaml:"minOccurs"`
	MaxOccurs       int        `json:"maxOccurs" yaml:"maxOccurs"`
	ParameterGroups []GroupDoc `json:"parameterGroups,omitempty" yaml:"parameterGroups,omitempty"`
}

// SourceDoc is a message source.
type SourceDoc struct {
	componentDoc `yaml:",inline"`

	Type           string        `json:"type" yaml:"type"`
	Output         string        `json:"output,omitempty" yaml:"output,omitempty"`
	Attributes     string        `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Connected      bool          `json:"connected" yaml:"connected"`
	ConnectionType string        `json:"connectionType,omitempty" yaml:"connectionType,omitempty"`
	Streaming      bool          `json:"streaming,omitempty" yaml:"streaming,omitempty"`
	RequiresConfig bool          `json:"requiresConfig,omitempty" yaml:"requiresConfig,omitempty"`
	Polling        bool          `json:"polling,omitempty" yaml:"polling,omitempty"`
	EmitsResponse  bool          `json:"emitsResponse,omitempty" yaml:"emitsResponse,omitempty"`
	ClusterSupport string        `json:"clusterSupport" yaml:"clusterSupport"`
	BackPressure   string        `json:"backPressure" yaml:"backPressure"`
	SupportedModes []string      `json:"backPressureModes" yaml:"backPressureModes"`
	Stereotype     string        `json:"stereotype,omitempty" yaml:"stereotype,omitempty"`
	MediaType      string        `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Callbacks      []CallbackDoc `json:"callbacks,omitempty" yaml:"callbacks,omitempty"`
}

// CallbackDoc is a source callback.
type CallbackDoc struct {
	Kind            string     `json:"kind" yaml:"kind"`
	Method          string     `json:"method" yaml:"method"`
	ParameterGroups []GroupDoc `json:"parameterGroups,omitempty" yaml:"parameterGroups,omitempty"`
}

// ProviderDoc is a connection provider.
type ProviderDoc struct {
	componentDoc `yaml:",inline"`

	Type             string   `json:"type" yaml:"type"`
	Management       string   `json:"management" yaml:"management"`
	ConnectionType   string   `json:"connectionType" yaml:"connectionType"`
	GrantTypes       []string `json:"grantTypes,omitempty" yaml:"grantTypes,omitempty"`
	ConnectivityTest bool     `json:"connectivityTest" yaml:"connectivityTest"`
}

// FunctionDoc is an expression function.
type FunctionDoc struct {
	componentDoc `yaml:",inline"`

	Method    string `json:"method" yaml:"method"`
	Container string `json:"container" yaml:"container"`
	Output    string `json:"output" yaml:"output"`
}

// NewDocument converts a parsed extension.
func NewDocument(x *parser.Extension) Document {
	lic := x.Licensing()
	doc := Document{
		Name:                x.Name(),
		Description:         x.Description(),
		Type:                x.TypeName(),
		Vendor:              x.Vendor(),
		Category:            x.Category(),
		Prefix:              x.Prefix(),
		Namespace:           x.Namespace(),
		MinVersion:          x.MinVersion(),
		JavaVersions:        x.JavaVersions(),
		Licensing:           LicensingDoc{lic.RequiresEnterpriseLicense, lic.AllowsEvaluationLicense},
		Shared:              componentsDoc(x.Operations(), x.Sources(), x.ConnectionProviders(), x.Functions()),
		Imports:             x.Imports(),
		Exports:             x.Exports(),
		ExportedResources:   x.ExportedResources(),
		ErrorTypes:          x.ErrorTypes(),
		NotificationActions: x.NotificationActions(),
	}
	for _, st := range x.SubTypes() {
		doc.SubTypes = append(doc.SubTypes, SubTypesDoc{Base: st.Base, SubTypes: st.SubTypes})
	}
	for _, c := range x.Configurations() {
		doc.Configurations = append(doc.Configurations, ConfigurationDoc{
			Name:            c.Name(),
			Description:     c.Description(),
			Type:            c.TypeName(),
			Implicit:        c.IsImplicit(),
			MinVersion:      c.MinVersion(),
			ParameterGroups: groupDocs(c.ParameterGroups()),
			ComponentsDoc:   componentsDoc(c.Operations(), c.Sources(), c.ConnectionProviders(), c.Functions()),
		})
	}
	return doc
}

// NewDocuments converts every extension.
func NewDocuments(xs []*parser.Extension) []Document {
	out := make([]Document, len(xs))
	for i, x := range xs {
		out[i] = NewDocument(x)
	}
	return out
}

type described interface {
	Name() string
	Description() string
	MinVersion() string
	Deprecation() *parser.Deprecation
	ParameterGroups() []parser.ParameterGroup
}

func newComponentDoc(c described) componentDoc {
	return componentDoc{
		Name:            c.Name(),
		Description:     c.Description(),
		MinVersion:      c.MinVersion(),
		Deprecated:      deprecationMessage(c.Deprecation()),
		ParameterGroups: groupDocs(c.ParameterGroups()),
	}
}

func componentsDoc(ops []*parser.Operation, srcs []*parser.Source, providers []*parser.ConnectionProvider,
	fns []*parser.Function) ComponentsDoc {
	var out ComponentsDoc
	for _, op := range ops {
		out.Operations = append(out.Operations, operationDoc(op))
	}
	for _, src := range srcs {
		out.Sources = append(out.Sources, sourceDoc(src))
	}
	for _, p := range providers {
		out.ConnectionProviders = append(out.ConnectionProviders, ProviderDoc{
			componentDoc:     newComponentDoc(p),
			Type:             p.TypeName(),
			Management:       string(p.Management()),
			ConnectionType:   decl.TypeString(p.ConnectionType()),
			GrantTypes:       p.GrantTypes(),
			ConnectivityTest: p.SupportsConnectivityTest(),
		})
	}
	for _, fn := range fns {
		out.Functions = append(out.Functions, FunctionDoc{
			componentDoc: newComponentDoc(fn),
			Method:       fn.MethodName(),
			Container:    fn.Container(),
			Output:       decl.TypeString(fn.OutputType()),
		})
	}
	return out
}

func operationDoc(op *parser.Operation) OperationDoc {
	md := op.Metadata()
	doc := OperationDoc{
		componentDoc:   newComponentDoc(op),
		Method:         op.MethodName(),
		Container:      op.Container(),
		Shape:          string(op.Shape()),
		Execution:      string(op.ExecutionType()),
		Output:         decl.TypeString(op.OutputType()),
		Attributes:     decl.TypeString(op.AttributesType()),
		Connected:      op.IsConnected(),
		Transactional:  op.IsTransactional(),
		ConnectionType: decl.TypeString(op.ConnectionType()),
		Streaming:      op.SupportsStreaming(),
		Paged:          op.IsAutoPaging(),
		RequiresConfig: op.RequiresConfig(),
		ErrorProviders: op.ErrorProviders(),
		Stereotype:     op.Stereotype(),
		MediaType:      mediaType(op.MediaType()),
		Metadata:       MetadataDoc{md.KeysResolver, md.OutputResolver, md.AttributesResolver},
	}
	if c := op.Chain(); c != nil {
		doc.Chain = &ChainDoc{Name: c.Name, Required: c.Required}
	}
	for _, r := range op.Routes() {
		doc.Routes = append(doc.Routes, RouteDoc{
			Name:            r.Name,
			Description:     r.Description,
			MinOccurs:       r.MinOccurs,
			MaxOccurs:       r.MaxOccurs,
			ParameterGroups: groupDocs(r.ParameterGroups),
		})
	}
	return doc
}

func sourceDoc(src *parser.Source) SourceDoc {
	bp := src.BackPressure()
	doc := SourceDoc{
		componentDoc:   newComponentDoc(src),
		Type:           src.TypeName(),
		Output:         decl.TypeString(src.OutputType()),
		Attributes:     decl.TypeString(src.AttributesType()),
		Connected:      src.IsConnected(),
		ConnectionType: decl.TypeString(src.Connectivity().ConnectionType),
		Streaming:      src.SupportsStreaming(),
		RequiresConfig: src.RequiresConfig(),
		Polling:        src.IsPolling(),
		EmitsResponse:  src.EmitsResponse(),
		ClusterSupport: string(src.ClusterSupport()),
		BackPressure:   string(bp.Default),
		Stereotype:     src.Stereotype(),
		MediaType:      mediaType(src.MediaType()),
	}
	for _, m := range bp.Supported {
		doc.SupportedModes = append(doc.SupportedModes, string(m))
	}
	for _, kind := range []parser.CallbackKind{
		parser.CallbackOnSuccess, parser.CallbackOnError, parser.CallbackOnTerminate, parser.CallbackOnBackPressure,
	} {
		if cb, ok := src.Callback(kind); ok {
			doc.Callbacks = append(doc.Callbacks, CallbackDoc{
				Kind:            string(kind),
				Method:          cb.Method,
				ParameterGroups: groupDocs(cb.ParameterGroups),
			})
		}
	}
	return doc
}

func groupDocs(groups []parser.ParameterGroup) []GroupDoc {
	var out []GroupDoc
	for _, g := range groups {
		doc := GroupDoc{
			Name:        g.Name,
			Description: g.Description,
			Explicit:    g.Explicit,
			ShowInDsl:   g.ShowInDsl,
			Tab:         g.Placement.Tab,
			Order:       g.Placement.Order,
			Parameters:  make([]ParameterDoc, 0, len(g.Parameters)),
		}
		if g.Exclusive != nil {
			doc.Exclusive = g.Exclusive.Parameters
			doc.OneRequired = g.Exclusive.OneRequired
		}
		for _, p := range g.Parameters {
			doc.Parameters = append(doc.Parameters, parameterDoc(p))
		}
		out = append(out, doc)
	}
	return out
}

func parameterDoc(p parser.Parameter) ParameterDoc {
	doc := ParameterDoc{
		Name:              p.Name,
		Description:       p.Description,
		Type:              decl.TypeString(p.Type),
		Required:          p.Required,
		ExpressionSupport: string(p.ExpressionSupport),
		Role:              string(p.Role),
		ConfigOverride:    p.ConfigOverride,
		DisplayName:       p.Display.DisplayName,
		Summary:           p.Display.Summary,
		Example:           p.Display.Example,
		SemanticTerms:     p.SemanticTerms,
		TypeResolver:      p.TypeResolver,
		Stereotypes:       p.Stereotypes,
		Deprecated:        deprecationMessage(p.Deprecation),
		MinVersion:        p.MinVersion,
	}
	if declared := decl.TypeString(p.DeclaredType); declared != doc.Type {
		doc.DeclaredType = declared
	}
	if p.HasDefault {
		v := p.DefaultValue
		doc.Default = &v
		doc.EvaluatedDefault = evaluateDefault(p)
	}
	for _, k := range p.Stackable {
		doc.Stackable = append(doc.Stackable, string(k))
	}
	if p.NullSafe != nil {
		doc.NullSafe = decl.TypeString(p.NullSafe.DefaultImplementation)
	}
	if p.MetadataKey != nil {
		doc.MetadataKeyOrder = p.MetadataKey.Order
	}
	return doc
}

func deprecationMessage(d *parser.Deprecation) string {
	if d == nil {
		return ""
	}
	return d.Message
}

func mediaType(m *parser.MediaType) string {
	if m == nil {
		return ""
	}
	return m.Value
}
