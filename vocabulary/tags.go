package vocabulary

// Component discovery tags.
var (
	Extension           = tag("Extension", "Extension", CurrentVocabularyVersion)
	Configuration       = tag("Configuration", "Configuration", CurrentVocabularyVersion)
	Configurations      = tag("Configurations", "Configurations", CurrentVocabularyVersion)
	Operations          = tag("Operations", "Operations", CurrentVocabularyVersion)
	Sources             = tag("Sources", "Sources", CurrentVocabularyVersion)
	ConnectionProviders = tag("ConnectionProviders", "connectivity.ConnectionProviders", CurrentVocabularyVersion)
	ExpressionFunctions = tag("ExpressionFunctions", "ExpressionFunctions", CurrentVocabularyVersion)
	Ignore              = tag("Ignore", "Ignore", CurrentVocabularyVersion)
)

// Parameter tags.
var (
	Parameter          = tag("Parameter", "param.Parameter", CurrentVocabularyVersion)
	ParameterGroup     = tag("ParameterGroup", "param.ParameterGroup", CurrentVocabularyVersion)
	Optional           = tag("Optional", "param.Optional", CurrentVocabularyVersion)
	Content            = tag("Content", "param.Content", CurrentVocabularyVersion)
	NullSafe           = tag("NullSafe", "param.NullSafe", CurrentVocabularyVersion)
	ConfigOverride     = tag("ConfigOverride", "param.ConfigOverride", CurrentVocabularyVersion)
	Connection         = tag("Connection", "param.Connection", CurrentVocabularyVersion)
	Config             = tag("Config", "param.Config", CurrentVocabularyVersion)
	Expression         = tag("Expression", "Expression", CurrentVocabularyVersion)
	Alias              = tag("Alias", "Alias", CurrentVocabularyVersion)
	ExclusiveOptionals = tag("ExclusiveOptionals", "param.ExclusiveOptionals", CurrentVocabularyVersion)
	MediaType          = tag("MediaType", "param.MediaType", CurrentVocabularyVersion)
	OAuthParameter     = tag("OAuthParameter", "connectivity.oauth.OAuthParameter", CurrentVocabularyVersion)
	Secret             = currentOnly("Secret", "semantics.security.Secret", "4.5.0")
)

// Display and layout tags.
var (
	DisplayName = tag("DisplayName", "param.display.DisplayName", CurrentVocabularyVersion)
	Summary     = tag("Summary", "param.display.Summary", CurrentVocabularyVersion)
	Example     = tag("Example", "param.display.Example", CurrentVocabularyVersion)
	Placement   = tag("Placement", "param.display.Placement", CurrentVocabularyVersion)
	Password    = tag("Password", "param.display.Password", CurrentVocabularyVersion)
	Text        = tag("Text", "param.display.Text", CurrentVocabularyVersion)
	Path        = tag("Path", "param.display.Path", CurrentVocabularyVersion)
)

// Component behavior tags.
var (
	Deprecated     = tag("Deprecated", "deprecated.Deprecated", CurrentVocabularyVersion)
	Streaming      = tag("Streaming", "Streaming", CurrentVocabularyVersion)
	Execution      = tag("Execution", "execution.Execution", CurrentVocabularyVersion)
	MinMuleVersion = currentOnly("MinMuleVersion", "MinMuleVersion", "4.5.0")
)

// Metadata, stereotype and error-model tags.
var (
	OutputResolver      = tag("OutputResolver", "metadata.OutputResolver", CurrentVocabularyVersion)
	MetadataScope       = tag("MetadataScope", "metadata.MetadataScope", CurrentVocabularyVersion)
	MetadataKeyID       = tag("MetadataKeyId", "metadata.MetadataKeyId", CurrentVocabularyVersion)
	MetadataKeyPart     = tag("MetadataKeyPart", "metadata.MetadataKeyPart", CurrentVocabularyVersion)
	TypeResolver        = tag("TypeResolver", "metadata.TypeResolver", CurrentVocabularyVersion)
	Stereotype          = tag("Stereotype", "param.stereotype.Stereotype", CurrentVocabularyVersion)
	AllowedStereotypes  = tag("AllowedStereotypes", "param.stereotype.AllowedStereotypes", CurrentVocabularyVersion)
	Throws              = tag("Throws", "error.Throws", CurrentVocabularyVersion)
	ErrorTypes          = tag("ErrorTypes", "error.ErrorTypes", CurrentVocabularyVersion)
	NotificationActions = tag("NotificationActions", "notification.NotificationActions", CurrentVocabularyVersion)
)

// Extension-level tags.
var (
	Xml                       = tag("Xml", "dsl.xml.Xml", CurrentVocabularyVersion)
	Export                    = tag("Export", "Export", CurrentVocabularyVersion)
	RequiresEnterpriseLicense = tag("RequiresEnterpriseLicense", "license.RequiresEnterpriseLicense", CurrentVocabularyVersion)
	JavaVersionSupport        = currentOnly("JavaVersionSupport", "JavaVersionSupport", "4.5.0")

	Import = Repeatable{
		Entry:     tag("Import", "Import", CurrentVocabularyVersion),
		Container: tag("ImportedTypes", "ImportedTypes", CurrentVocabularyVersion),
	}
	SubTypeMapping = Repeatable{
		Entry:     tag("SubTypeMapping", "SubTypeMapping", CurrentVocabularyVersion),
		Container: tag("SubTypesMapping", "SubTypesMapping", CurrentVocabularyVersion),
	}
)

// Source tags.
var (
	OnSuccess      = tag("OnSuccess", "execution.OnSuccess", CurrentVocabularyVersion)
	OnError        = tag("OnError", "execution.OnError", CurrentVocabularyVersion)
	OnTerminate    = tag("OnTerminate", "execution.OnTerminate", CurrentVocabularyVersion)
	OnBackPressure = tag("OnBackPressure", "execution.OnBackPressure", CurrentVocabularyVersion)
	ClusterSupport = tag("ClusterSupport", "source.ClusterSupport", CurrentVocabularyVersion)
	BackPressure   = tag("BackPressure", "source.BackPressure", CurrentVocabularyVersion)
	EmitsResponse  = tag("EmitsResponse", "source.EmitsResponse", CurrentVocabularyVersion)
)

// OAuth tags.
var (
	AuthorizationCode = tag("AuthorizationCode", "connectivity.oauth.AuthorizationCode", CurrentVocabularyVersion)
	ClientCredentials = tag("ClientCredentials", "connectivity.oauth.ClientCredentials", CurrentVocabularyVersion)
)

// AllPairs returns every tag pair in the catalog, repeatable entries and containers included.
func AllPairs() []Pair {
	return []Pair{
		Extension, Configuration, Configurations, Operations, Sources, ConnectionProviders,
		ExpressionFunctions, Ignore,
		Parameter, ParameterGroup, Optional, Content, NullSafe, ConfigOverride, Connection, Config,
		Expression, Alias, ExclusiveOptionals, MediaType, OAuthParameter, Secret,
		DisplayName, Summary, Example, Placement, Password, Text, Path,
		Deprecated, Streaming, Execution, MinMuleVersion,
		OutputResolver, MetadataScope, MetadataKeyID, MetadataKeyPart, TypeResolver,
		Stereotype, AllowedStereotypes, Throws, ErrorTypes, NotificationActions,
		Xml, Export, RequiresEnterpriseLicense, JavaVersionSupport,
		Import.Entry, Import.Container, SubTypeMapping.Entry, SubTypeMapping.Container,
		OnSuccess, OnError, OnTerminate, OnBackPressure, ClusterSupport, BackPressure, EmitsResponse,
		AuthorizationCode, ClientCredentials,
	}
}
