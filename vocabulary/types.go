package vocabulary

const (
	legacyRuntime  = "org.mule.runtime.extension.api.runtime"
	currentRuntime = "org.mule.sdk.api.runtime"
)

// Execution-model types.
var (
	CompletionCallback = typePair("CompletionCallback",
		legacyRuntime+".process.CompletionCallback", currentRuntime+".process.CompletionCallback")
	RouterCompletionCallback = typePair("RouterCompletionCallback",
		legacyRuntime+".process.RouterCompletionCallback", currentRuntime+".process.RouterCompletionCallback")
	VoidCompletionCallback = typePair("VoidCompletionCallback",
		legacyRuntime+".process.VoidCompletionCallback", currentRuntime+".process.VoidCompletionCallback")
	Chain = typePair("Chain",
		legacyRuntime+".route.Chain", currentRuntime+".route.Chain")
	Route = typePair("Route",
		legacyRuntime+".route.Route", currentRuntime+".route.Route")
	Result = typePair("Result",
		legacyRuntime+".operation.Result", currentRuntime+".operation.Result")
	PagingProvider = typePair("PagingProvider",
		legacyRuntime+".streaming.PagingProvider", currentRuntime+".streaming.PagingProvider")
	StreamingHelper = typePair("StreamingHelper",
		legacyRuntime+".streaming.StreamingHelper", currentRuntime+".streaming.StreamingHelper")
)

// Stackable wrapper types.
var (
	ParameterResolver = typePair("ParameterResolver",
		legacyRuntime+".parameter.ParameterResolver", currentRuntime+".parameter.ParameterResolver")
	Literal = typePair("Literal",
		legacyRuntime+".parameter.Literal", currentRuntime+".parameter.Literal")
	TypedValue = typePair("TypedValue", "org.mule.runtime.api.metadata.TypedValue", "")
)

// Connectivity types.
var (
	ConnectionProvider = typePair("ConnectionProvider",
		"org.mule.runtime.api.connection.ConnectionProvider", "org.mule.sdk.api.connectivity.ConnectionProvider")
	PoolingConnectionProvider = typePair("PoolingConnectionProvider",
		"org.mule.runtime.api.connection.PoolingConnectionProvider", "org.mule.sdk.api.connectivity.PoolingConnectionProvider")
	CachedConnectionProvider = typePair("CachedConnectionProvider",
		"org.mule.runtime.api.connection.CachedConnectionProvider", "org.mule.sdk.api.connectivity.CachedConnectionProvider")
	TransactionalConnection = typePair("TransactionalConnection",
		"org.mule.runtime.extension.api.connectivity.TransactionalConnection", "org.mule.sdk.api.connectivity.TransactionalConnection")
	NoConnectivityTest = typePair("NoConnectivityTest",
		"org.mule.runtime.extension.api.connectivity.NoConnectivityTest", "org.mule.sdk.api.connectivity.NoConnectivityTest")
)

// Source types.
var (
	Source = typePair("Source",
		legacyRuntime+".source.Source", currentRuntime+".source.Source")
	PollingSource = typePair("PollingSource",
		legacyRuntime+".source.PollingSource", currentRuntime+".source.PollingSource")
	SourceCallbackContext = typePair("SourceCallbackContext",
		legacyRuntime+".source.SourceCallbackContext", currentRuntime+".source.SourceCallbackContext")
	SourceCompletionCallback = typePair("SourceCompletionCallback",
		legacyRuntime+".source.SourceCompletionCallback", currentRuntime+".source.SourceCompletionCallback")
)

// Host-injected types that are never advertised as parameters.
var (
	ExtensionsClient = typePair("ExtensionsClient",
		"org.mule.runtime.extension.api.client.ExtensionsClient", "org.mule.sdk.api.client.ExtensionsClient")
	ComponentLocation = typePair("ComponentLocation",
		"org.mule.runtime.api.component.location.ComponentLocation", "")
	CorrelationInfo = typePair("CorrelationInfo",
		legacyRuntime+".parameter.CorrelationInfo", currentRuntime+".parameter.CorrelationInfo")
)

// Infrastructure types whose parameters never support expressions.
var (
	TlsContextFactory            = typePair("TlsContextFactory", "org.mule.runtime.api.tls.TlsContextFactory", "")
	SchedulingStrategy           = typePair("SchedulingStrategy", "org.mule.runtime.api.scheduler.SchedulingStrategy", "")
	OperationTransactionalAction = typePair("OperationTransactionalAction",
		"org.mule.runtime.extension.api.tx.OperationTransactionalAction", "org.mule.sdk.api.tx.OperationTransactionalAction")
	SourceTransactionalAction = typePair("SourceTransactionalAction",
		"org.mule.runtime.extension.api.tx.SourceTransactionalAction", "org.mule.sdk.api.tx.SourceTransactionalAction")
	TransactionType = typePair("TransactionType", "org.mule.runtime.api.tx.TransactionType", "")
)

// Java platform types the parsers reason about.
const (
	JavaObject      = "java.lang.Object"
	JavaString      = "java.lang.String"
	JavaInputStream = "java.io.InputStream"
	JavaCollection  = "java.util.Collection"
	JavaList        = "java.util.List"
	JavaMap         = "java.util.Map"
	JavaVoid        = "void"
	JavaVoidBoxed   = "java.lang.Void"
)

// CompletionCallbacks is the completion-callback family: any member makes an
// operation non-blocking.
var CompletionCallbacks = []TypePair{CompletionCallback, RouterCompletionCallback, VoidCompletionCallback}

// RouterCallbacks are the callback types a router may declare.
var RouterCallbacks = []TypePair{RouterCompletionCallback, VoidCompletionCallback}

// ImplicitTypes are injected by the host and never advertised as parameters.
var ImplicitTypes = []TypePair{
	CompletionCallback, RouterCompletionCallback, VoidCompletionCallback,
	StreamingHelper, SourceCallbackContext, SourceCompletionCallback,
	ExtensionsClient, ComponentLocation, CorrelationInfo,
}

// InfrastructureTypes are parameters whose values are never expressions.
var InfrastructureTypes = []TypePair{
	TlsContextFactory, SchedulingStrategy, OperationTransactionalAction,
	SourceTransactionalAction, TransactionType,
}

// StackableTypes are the generic wrappers whose presence selects a resolution strategy.
var StackableTypes = []TypePair{ParameterResolver, TypedValue, Literal}

// AllTypes returns every well-known type pair in the catalog.
func AllTypes() []TypePair {
	return []TypePair{
		CompletionCallback, RouterCompletionCallback, VoidCompletionCallback, Chain, Route, Result,
		PagingProvider, StreamingHelper, ParameterResolver, Literal, TypedValue,
		ConnectionProvider, PoolingConnectionProvider, CachedConnectionProvider,
		TransactionalConnection, NoConnectivityTest,
		Source, PollingSource, SourceCallbackContext, SourceCompletionCallback,
		ExtensionsClient, ComponentLocation, CorrelationInfo,
		TlsContextFactory, SchedulingStrategy, OperationTransactionalAction,
		SourceTransactionalAction, TransactionType,
	}
}
