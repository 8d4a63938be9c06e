package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/stackable"
)

// Default names applied when a declaration gives none.
const (
	DefaultGroupName      = "General"
	DefaultConfigName     = "config"
	DefaultConnectionName = "connection"
	DefaultVendor         = "Mulesoft"
	DefaultCategory       = "COMMUNITY"
	DefaultNamespaceBase  = "http://www.mulesoft.org/schema/mule/"
)

// DefaultJavaVersions are the Java versions an extension supports unless declared.
var DefaultJavaVersions = []string{"8", "11", "17"}

// ExpressionSupport states whether a parameter accepts expressions.
type ExpressionSupport string

const (
	ExpressionSupported    ExpressionSupport = "SUPPORTED"
	ExpressionNotSupported ExpressionSupport = "NOT_SUPPORTED"
	ExpressionRequired     ExpressionSupport = "REQUIRED"
)

// Role is how a parameter's value is used.
type Role string

const (
	RoleBehaviour      Role = "BEHAVIOUR"
	RoleContent        Role = "CONTENT"
	RolePrimaryContent Role = "PRIMARY_CONTENT"
)

// Shape classifies an operation.
type Shape string

const (
	ShapeBlocking    Shape = "BLOCKING"
	ShapeNonBlocking Shape = "NON_BLOCKING"
	ShapeScope       Shape = "SCOPE"
	ShapeRouter      Shape = "ROUTER"
)

// ExecutionType hints the scheduler an operation should run on.
type ExecutionType string

const (
	ExecutionCPULite      ExecutionType = "CPU_LITE"
	ExecutionBlocking     ExecutionType = "BLOCKING"
	ExecutionCPUIntensive ExecutionType = "CPU_INTENSIVE"
)

// ConnectionManagement is how a provider's connections are managed.
type ConnectionManagement string

const (
	ConnectionNone    ConnectionManagement = "NONE"
	ConnectionPooling ConnectionManagement = "POOLING"
	ConnectionCached  ConnectionManagement = "CACHED"
)

// ClusterSupport is how a source behaves in a cluster.
type ClusterSupport string

const (
	ClusterNotSupported           ClusterSupport = "NOT_SUPPORTED"
	ClusterDefaultAllNodes        ClusterSupport = "DEFAULT_ALL_NODES"
	ClusterDefaultPrimaryNodeOnly ClusterSupport = "DEFAULT_PRIMARY_NODE_ONLY"
)

// BackPressureMode is what a source does when the flow is saturated.
type BackPressureMode string

const (
	BackPressureWait BackPressureMode = "WAIT"
	BackPressureFail BackPressureMode = "FAIL"
	BackPressureDrop BackPressureMode = "DROP"
)

// Grant types of OAuth-enabled connection providers.
const (
	GrantAuthorizationCode = "AUTHORIZATION_CODE"
	GrantClientCredentials = "CLIENT_CREDENTIALS"
)

// Semantic terms attached to parameters.
const (
	TermSecret       = "secret"
	TermScalarSecret = "secret.scalar"
	TermPassword     = "password"
	TermPath         = "path"
	TermTLS          = "tls"
	TermScheduling   = "scheduling"
	TermTransaction  = "transaction"
)

// Placement positions a parameter in a UI.
type Placement struct {
	Tab   string
	Order int
}

// PathModel describes a file-system path parameter.
type PathModel struct {
	Type           string
	AcceptsURLs    bool
	FileExtensions []string
}

// Display is the UI metadata of a parameter or component.
type Display struct {
	DisplayName string
	Summary     string
	Example     string
	Placement   Placement
	Password    bool
	Text        bool
	Path        *PathModel
}

// Deprecation marks a deprecated component or parameter.
type Deprecation struct {
	Message    string
	Since      string
	ToRemoveIn string
}

// OAuthParameter marks a provider parameter sent to the OAuth server.
type OAuthParameter struct {
	RequestAlias string
	Placement    string
}

// MetadataKeyPart is a parameter's participation in a metadata key.
type MetadataKeyPart struct {
	Order                 int
	ProvidedByKeyResolver bool
}

// NullSafe is the default instance used when a null-safe parameter has no value.
type NullSafe struct {
	DefaultImplementation decl.Type
}

// ExclusiveOptionals constrains the optional parameters of a group.
type ExclusiveOptionals struct {
	Parameters  []string
	OneRequired bool
}

// Connectivity is whether and how a component uses a connection.
type Connectivity struct {
	Connected      bool
	Transactional  bool
	ConnectionType decl.Type
}

// Metadata names the resolvers a component declares.
type Metadata struct {
	KeysResolver       string
	OutputResolver     string
	AttributesResolver string
}

// HasKeysResolver reports whether a keys resolver is declared.
func (m Metadata) HasKeysResolver() bool { return m.KeysResolver != "" }

// Parameter is a parsed parameter.
type Parameter struct {
	Name        string
	Description string

	// Type is the logical type, wrappers removed.
	Type decl.Type

	// DeclaredType is the type as declared, wrappers included.
	DeclaredType decl.Type

	// Stackable is the wrapper chain, outermost first.
	Stackable []stackable.Kind

	Required          bool
	DefaultValue      string
	HasDefault        bool
	Role              Role
	ExpressionSupport ExpressionSupport
	ConfigOverride    bool
	NullSafe          *NullSafe
	Display           Display
	Deprecation       *Deprecation
	OAuth             *OAuthParameter
	SemanticTerms     []string
	MetadataKey       *MetadataKeyPart
	TypeResolver      string
	Stereotypes       []string
	Exclusive         *ExclusiveOptionals
	MinVersion        string
}

// ParameterGroup is a named set of parameters.
type ParameterGroup struct {
	Name        string
	Description string
	Parameters  []Parameter
	Exclusive   *ExclusiveOptionals
	Placement   Placement
	ShowInDsl   bool

	// Explicit is false for the implicit default group.
	Explicit bool

	// Container is the element an explicit group is declared by.
	Container string
}

// Parameter returns a parameter of the group by name.
func (g ParameterGroup) Parameter(name string) (Parameter, bool) {
	for _, p := range g.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Route is a nested route of a router operation.
type Route struct {
	Name            string
	Description     string
	MinOccurs       int
	MaxOccurs       int // 0 is unbounded
	ParameterGroups []ParameterGroup
}

// Chain is the nested chain of a scope operation.
type Chain struct {
	Name     string
	Required bool
}

// SourceCallback is one of the on-success/on-error/on-terminate/on-back-pressure
// methods of a source.
type SourceCallback struct {
	Method          string
	ParameterGroups []ParameterGroup
}

// BackPressure is a source's back-pressure strategy.
type BackPressure struct {
	Default   BackPressureMode
	Supported []BackPressureMode
}

// SubTypes maps a base type to the types that can be used in its place.
type SubTypes struct {
	Base     string
	SubTypes []string
}

// Licensing describes the license an extension requires.
type Licensing struct {
	RequiresEnterpriseLicense bool
	AllowsEvaluationLicense   bool
}
