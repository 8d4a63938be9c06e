package export

import "github.com/c360studio/semstreams/vocabulary"

// Namespace is the base IRI prefix for extension model ontology terms.
const Namespace = "https://c360studio.dev/extmodel/ontology/"

// EntityNamespace is the base IRI for extension model entity instances.
const EntityNamespace = "https://c360studio.dev/extmodel/entity/"

// EntityType classifies an exported entity.
type EntityType string

const (
	EntityExtension          EntityType = "extension"
	EntityConfiguration      EntityType = "configuration"
	EntityOperation          EntityType = "operation"
	EntitySource             EntityType = "source"
	EntityConnectionProvider EntityType = "provider"
	EntityFunction           EntityType = "function"
	EntityParameter          EntityType = "parameter"
)

// ClassIRI returns the ontology class of an entity type.
func (t EntityType) ClassIRI() string {
	switch t {
	case EntityExtension:
		return Namespace + "Extension"
	case EntityConfiguration:
		return Namespace + "Configuration"
	case EntityOperation:
		return Namespace + "Operation"
	case EntitySource:
		return Namespace + "Source"
	case EntityConnectionProvider:
		return Namespace + "ConnectionProvider"
	case EntityFunction:
		return Namespace + "Function"
	case EntityParameter:
		return Namespace + "Parameter"
	}
	return Namespace + "Entity"
}

// Component predicates are shared by every entity type.
const (
	// ComponentKind is the entity type.
	ComponentKind = "extmodel.component.kind"

	// ComponentName is the resolved name (alias if declared).
	ComponentName = "extmodel.component.name"

	ComponentDescription = "extmodel.component.description"

	// ComponentTypeName is the qualified name of the declaring type.
	ComponentTypeName = "extmodel.component.type_name"

	// ComponentMinVersion is the minimum runtime version.
	ComponentMinVersion = "extmodel.component.min_version"

	// ComponentBelongsTo links a component to its owner entity.
	ComponentBelongsTo = "extmodel.component.belongs_to"

	// ComponentContains links an owner to a component entity.
	ComponentContains = "extmodel.component.contains"

	ComponentDeprecated = "extmodel.component.deprecated"
	ComponentStereotype = "extmodel.component.stereotype"
	ComponentConnected  = "extmodel.component.connected"
	ComponentConnection = "extmodel.component.connection_type"
	ComponentOutputType = "extmodel.component.output_type"
	ComponentAttributes = "extmodel.component.attributes_type"
	ComponentStreaming  = "extmodel.component.streaming"
	ComponentConfig     = "extmodel.component.requires_config"
)

// Extension predicates.
const (
	ExtensionVendor     = "extmodel.extension.vendor"
	ExtensionCategory   = "extmodel.extension.category"
	ExtensionPrefix     = "extmodel.extension.prefix"
	ExtensionNamespace  = "extmodel.extension.namespace"
	ExtensionJava       = "extmodel.extension.java_version"
	ExtensionErrorType  = "extmodel.extension.error_type"
	ExtensionEnterprise = "extmodel.extension.enterprise_license"

	// ExtensionSource is where the extension was loaded from.
	ExtensionSource = "extmodel.extension.source"
)

// Operation predicates.
const (
	OperationShape         = "extmodel.operation.shape"
	OperationExecution     = "extmodel.operation.execution"
	OperationPaged         = "extmodel.operation.paged"
	OperationTransactional = "extmodel.operation.transactional"
	OperationErrorProvider = "extmodel.operation.error_provider"
)

// Source predicates.
const (
	SourceClusterSupport = "extmodel.source.cluster_support"
	SourceBackPressure   = "extmodel.source.back_pressure"
	SourcePolling        = "extmodel.source.polling"
	SourceEmitsResponse  = "extmodel.source.emits_response"
)

// Connection provider predicates.
const (
	ProviderManagement = "extmodel.provider.management"
	ProviderGrantType  = "extmodel.provider.grant_type"
)

// Parameter predicates.
const (
	ParameterType       = "extmodel.parameter.type"
	ParameterGroup      = "extmodel.parameter.group"
	ParameterRequired   = "extmodel.parameter.required"
	ParameterDefault    = "extmodel.parameter.default_value"
	ParameterExpression = "extmodel.parameter.expression_support"
	ParameterRole       = "extmodel.parameter.role"
	ParameterOverride   = "extmodel.parameter.config_override"
	ParameterStackable  = "extmodel.parameter.stackable"
	ParameterTerm       = "extmodel.parameter.semantic_term"
)

func registerComponentPredicates() {
	vocabulary.Register(ComponentKind,
		vocabulary.WithDescription("Kind of extension model entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"kind"))

	vocabulary.Register(ComponentName,
		vocabulary.WithDescription("Resolved component name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(ComponentDescription,
		vocabulary.WithDescription("Component documentation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"description"))

	vocabulary.Register(ComponentTypeName,
		vocabulary.WithDescription("Qualified name of the declaring type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcIdentifier))

	vocabulary.Register(ComponentMinVersion,
		vocabulary.WithDescription("Minimum runtime version"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"minVersion"))

	vocabulary.Register(ComponentBelongsTo,
		vocabulary.WithDescription("Owner of the component"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.SkosBroader))

	vocabulary.Register(ComponentContains,
		vocabulary.WithDescription("Component owned by this entity"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.SkosNarrower))

	vocabulary.Register(ComponentDeprecated,
		vocabulary.WithDescription("Deprecation message"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"deprecated"))

	vocabulary.Register(ComponentStereotype,
		vocabulary.WithDescription("Stereotype definition"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"stereotype"))

	vocabulary.Register(ComponentConnected,
		vocabulary.WithDescription("Whether the component requires a connection"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"connected"))

	vocabulary.Register(ComponentConnection,
		vocabulary.WithDescription("Connection type the component uses or provides"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"connectionType"))

	vocabulary.Register(ComponentOutputType,
		vocabulary.WithDescription("Output payload type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"outputType"))

	vocabulary.Register(ComponentAttributes,
		vocabulary.WithDescription("Output attributes type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"attributesType"))

	vocabulary.Register(ComponentStreaming,
		vocabulary.WithDescription("Whether the output is streamed"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"streaming"))

	vocabulary.Register(ComponentConfig,
		vocabulary.WithDescription("Whether the component requires its configuration"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"requiresConfig"))
}

func registerExtensionPredicates() {
	vocabulary.Register(ExtensionVendor,
		vocabulary.WithDescription("Extension vendor"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"vendor"))

	vocabulary.Register(ExtensionCategory,
		vocabulary.WithDescription("Extension category"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"category"))

	vocabulary.Register(ExtensionPrefix,
		vocabulary.WithDescription("XML namespace prefix"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosAltLabel))

	vocabulary.Register(ExtensionNamespace,
		vocabulary.WithDescription("XML namespace URI"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"xmlNamespace"))

	vocabulary.Register(ExtensionJava,
		vocabulary.WithDescription("Supported Java version"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"javaVersion"))

	vocabulary.Register(ExtensionErrorType,
		vocabulary.WithDescription("Error type the extension can raise"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"errorType"))

	vocabulary.Register(ExtensionEnterprise,
		vocabulary.WithDescription("Whether an enterprise license is required"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"enterpriseLicense"))

	vocabulary.Register(ExtensionSource,
		vocabulary.WithDescription("Source the extension was loaded from"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcSource))
}

func registerOperationPredicates() {
	vocabulary.Register(OperationShape,
		vocabulary.WithDescription("Operation shape: blocking, non-blocking, scope or router"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"shape"))

	vocabulary.Register(OperationExecution,
		vocabulary.WithDescription("Execution type hint"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"executionType"))

	vocabulary.Register(OperationPaged,
		vocabulary.WithDescription("Whether the operation pages its output"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"paged"))

	vocabulary.Register(OperationTransactional,
		vocabulary.WithDescription("Whether the connection is transactional"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"transactional"))

	vocabulary.Register(OperationErrorProvider,
		vocabulary.WithDescription("Error type provider declared by the operation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"errorProvider"))
}

func registerSourcePredicates() {
	vocabulary.Register(SourceClusterSupport,
		vocabulary.WithDescription("Cluster support mode"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"clusterSupport"))

	vocabulary.Register(SourceBackPressure,
		vocabulary.WithDescription("Default back-pressure mode"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"backPressure"))

	vocabulary.Register(SourcePolling,
		vocabulary.WithDescription("Whether the source polls"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"polling"))

	vocabulary.Register(SourceEmitsResponse,
		vocabulary.WithDescription("Whether the source emits a response"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"emitsResponse"))
}

func registerProviderPredicates() {
	vocabulary.Register(ProviderManagement,
		vocabulary.WithDescription("Connection management strategy"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"connectionManagement"))

	vocabulary.Register(ProviderGrantType,
		vocabulary.WithDescription("OAuth grant type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"grantType"))
}

func registerParameterPredicates() {
	vocabulary.Register(ParameterType,
		vocabulary.WithDescription("Logical parameter type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"parameterType"))

	vocabulary.Register(ParameterGroup,
		vocabulary.WithDescription("Parameter group name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"group"))

	vocabulary.Register(ParameterRequired,
		vocabulary.WithDescription("Whether the parameter is required"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"required"))

	vocabulary.Register(ParameterDefault,
		vocabulary.WithDescription("Default value"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"defaultValue"))

	vocabulary.Register(ParameterExpression,
		vocabulary.WithDescription("Expression support"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"expressionSupport"))

	vocabulary.Register(ParameterRole,
		vocabulary.WithDescription("Parameter role"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"role"))

	vocabulary.Register(ParameterOverride,
		vocabulary.WithDescription("Whether the value overrides the configuration"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"configOverride"))

	vocabulary.Register(ParameterStackable,
		vocabulary.WithDescription("Stackable wrapper, outermost first"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"stackable"))

	vocabulary.Register(ParameterTerm,
		vocabulary.WithDescription("Semantic term"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"semanticTerm"))
}

func init() {
	registerComponentPredicates()
	registerExtensionPredicates()
	registerOperationPredicates()
	registerSourcePredicates()
	registerProviderPredicates()
	registerParameterPredicates()
}

// PredicateIRI returns the IRI a predicate is registered with, falling back to
// the ontology namespace.
func PredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + predicate
}
