package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

var (
	callback       = decl.R(vocabulary.CompletionCallback.Current, str, decl.R("com.acme.Attrs"))
	routerCallback = decl.R(vocabulary.RouterCompletionCallback.Current)
	voidCallback   = decl.R(vocabulary.VoidCompletionCallback.Current)
	chain          = decl.R(vocabulary.Chain.Current)
)

func routeGraph() (*decl.MemoryGraph, *decl.Declaration) {
	g, ops := operationsGraph()
	g.Class("com.acme.When").
		Extending(decl.R(vocabulary.Route.Current)).
		AddField("expression", str, cur(vocabulary.Parameter))
	g.Class("com.acme.Otherwise").Extending(decl.R(vocabulary.Route.Current))
	return g, ops
}

// Scenario B: two connection parameters.
func TestOperation_AmbiguousConnectivity(t *testing.T) {
	g, ops := operationsGraph()
	ops.AddMethod("copy", void, conn("source"), conn("target"))

	_, err := parse(t, g)
	var ambiguous *AmbiguousConnectivityError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Count)
	assert.Equal(t, Subject{Kind: KindOperation, Name: "copy"}, ambiguous.Subject)
}

// Scenario C and the remaining scope rules.
func TestOperation_ScopeRules(t *testing.T) {
	cfg := decl.P("config", decl.R(extType), cur(vocabulary.Config))

	tests := []struct {
		name   string
		params []decl.ParamDecl
		rule   string
	}{
		{"requires config", []decl.ParamDecl{decl.P("chain", chain), cfg}, RuleScopeConfig},
		{"config checked before blocking", []decl.ParamDecl{decl.P("chain", chain), cfg, decl.P("cb", callback)}, RuleScopeConfig},
		{"requires connection", []decl.ParamDecl{decl.P("chain", chain), conn("c"), decl.P("cb", callback)}, RuleScopeConnection},
		{"blocking", []decl.ParamDecl{decl.P("chain", chain)}, RuleScopeNonBlocking},
		{"two chains", []decl.ParamDecl{decl.P("a", chain), decl.P("b", chain), decl.P("cb", callback)}, RuleScopeSingleChain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, ops := operationsGraph()
			ops.AddMethod("within", void, tc.params...)

			_, err := parse(t, g)
			var shape *IllegalComponentShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tc.rule, shape.Rule)
			assert.Equal(t, KindOperation, shape.Subject.Kind)
		})
	}
}

func TestOperation_Scope(t *testing.T) {
	g, ops := operationsGraph()
	ops.AddMethod("retry", void,
		decl.P("attempts", decl.R("int"), cur(vocabulary.Optional, decl.Attrs{"defaultValue": decl.String("3")})),
		decl.P("operations", chain),
		decl.P("cb", callback),
	)

	op := operation(t, g, "retry")
	assert.Equal(t, ShapeScope, op.Shape())
	assert.True(t, op.IsScope())
	require.NotNil(t, op.Chain())
	assert.Equal(t, Chain{Name: "operations", Required: true}, *op.Chain())
	assert.Equal(t, vocabulary.JavaString, op.OutputType().QualifiedName())
	require.Len(t, op.Parameters(), 1, "chains and callbacks are not advertised")
	assert.Equal(t, "attempts", op.Parameters()[0].Name)
}

// Scenario F and the remaining router rules.
func TestOperation_RouterRules(t *testing.T) {
	tests := []struct {
		name    string
		returns decl.Ref
		params  []decl.ParamDecl
		rule    string
	}{
		{
			name:    "not void",
			returns: str,
			params:  []decl.ParamDecl{decl.P("when", decl.R("com.acme.When")), decl.P("cb", routerCallback)},
			rule:    RuleRouterVoid,
		},
		{
			name:    "no callback",
			returns: void,
			params:  []decl.ParamDecl{decl.P("when", decl.R("com.acme.When"))},
			rule:    RuleRouterCallback,
		},
		{
			name:    "plain completion callback",
			returns: void,
			params:  []decl.ParamDecl{decl.P("when", decl.R("com.acme.When")), decl.P("cb", callback)},
			rule:    RuleRouterCallback,
		},
		{
			name:    "no routes",
			returns: void,
			params:  []decl.ParamDecl{decl.P("cb", routerCallback)},
			rule:    RuleRouterRoutes,
		},
		{
			name:    "chain and route",
			returns: void,
			params:  []decl.ParamDecl{decl.P("when", decl.R("com.acme.When")), decl.P("chain", chain), decl.P("cb", routerCallback)},
			rule:    RuleScopeAndRouter,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, ops := routeGraph()
			ops.AddMethod("choice", tc.returns, tc.params...)

			_, err := parse(t, g)
			var shape *IllegalComponentShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tc.rule, shape.Rule)
		})
	}

	t.Run("message names the rule", func(t *testing.T) {
		g, ops := routeGraph()
		ops.AddMethod("choice", str, decl.P("when", decl.R("com.acme.When")), decl.P("cb", routerCallback))
		_, err := parse(t, g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not declared void")
		assert.Contains(t, err.Error(), "operation 'choice'")
	})
}

func TestOperation_Router(t *testing.T) {
	g, ops := routeGraph()
	ops.AddMethod("choice", void,
		decl.P("when", decl.R(vocabulary.JavaList, decl.R("com.acme.When"))),
		decl.P("otherwise", decl.R("com.acme.Otherwise"), cur(vocabulary.Optional)),
		decl.P("cb", routerCallback),
	)

	op := operation(t, g, "choice")
	assert.Equal(t, ShapeRouter, op.Shape())
	assert.Nil(t, op.Chain())
	assert.Empty(t, op.Parameters())
	assert.Equal(t, vocabulary.JavaObject, op.OutputType().QualifiedName())

	routes := op.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "when", routes[0].Name)
	assert.Equal(t, 1, routes[0].MinOccurs)
	assert.Equal(t, 0, routes[0].MaxOccurs)
	require.Len(t, routes[0].ParameterGroups, 1)
	assert.Equal(t, "expression", routes[0].ParameterGroups[0].Parameters[0].Name)

	assert.Equal(t, "otherwise", routes[1].Name)
	assert.Equal(t, 0, routes[1].MinOccurs)
	assert.Equal(t, 1, routes[1].MaxOccurs)
	assert.Empty(t, routes[1].ParameterGroups)
}

func TestOperation_NonBlocking(t *testing.T) {
	tests := []struct {
		name       string
		cb         decl.Ref
		output     string
		attributes string
	}{
		{"completion callback", callback, vocabulary.JavaString, "com.acme.Attrs"},
		{"void callback", voidCallback, vocabulary.JavaVoidBoxed, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, ops := operationsGraph()
			ops.AddMethod("send", void, decl.P("body", str), decl.P("cb", tc.cb))

			op := operation(t, g, "send")
			assert.Equal(t, ShapeNonBlocking, op.Shape())
			assert.False(t, op.IsBlocking())
			assert.Equal(t, tc.output, op.OutputType().QualifiedName())
			assert.Equal(t, tc.attributes, typeName(op.AttributesType()))
			require.Len(t, op.Parameters(), 1)
		})
	}
}

func TestOperation_Paging(t *testing.T) {
	g, ops := operationsGraph()
	g.Class("com.acme.TxConnection").Extending(decl.R(vocabulary.TransactionalConnection.Current))
	ops.AddMethod("list", decl.R(vocabulary.PagingProvider.Current, decl.R("com.acme.TxConnection"), str),
		decl.P("folder", str))

	op := operation(t, g, "list")
	assert.True(t, op.IsAutoPaging())
	assert.Equal(t, ShapeBlocking, op.Shape())
	assert.True(t, op.IsConnected())
	assert.True(t, op.IsTransactional())
	assert.True(t, op.SupportsStreaming())
	assert.Equal(t, "com.acme.TxConnection", op.ConnectionType().QualifiedName())
	assert.Equal(t, vocabulary.JavaString, op.OutputType().QualifiedName())
	assert.Equal(t, ExecutionBlocking, op.ExecutionType())

	t.Run("non-blocking", func(t *testing.T) {
		g, ops := operationsGraph()
		ops.AddMethod("list", decl.R(vocabulary.PagingProvider.Current, decl.R(connType), str), decl.P("cb", callback))
		_, err := parse(t, g)
		var shape *IllegalComponentShapeError
		require.ErrorAs(t, err, &shape)
		assert.Equal(t, RulePagedNonBlocking, shape.Rule)
	})
}

func TestOperation_RawPagingProvider(t *testing.T) {
	g, ops := operationsGraph()
	g.Class("com.acme.TxConnection").Extending(decl.R(vocabulary.TransactionalConnection.Current))
	g.Class("com.acme.Provider").Extending(decl.R(vocabulary.CachedConnectionProvider.Current, decl.R("com.acme.TxConnection")))
	ops.AddMethod("list", decl.R(vocabulary.PagingProvider.Current),
		decl.P("p", decl.R("com.acme.Provider"), cur(vocabulary.Connection)))

	op := operation(t, g, "list")
	assert.True(t, op.IsAutoPaging())
	assert.True(t, op.IsConnected())
	assert.False(t, op.IsTransactional())
	assert.Equal(t, "com.acme.TxConnection", op.ConnectionType().QualifiedName())
}

func TestOperation_Connectivity(t *testing.T) {
	g, ops := operationsGraph()
	g.Class("com.acme.TxConnection").Extending(decl.R(vocabulary.TransactionalConnection.Legacy))
	g.Class("com.acme.Provider").Extending(decl.R(vocabulary.CachedConnectionProvider.Current, decl.R("com.acme.TxConnection")))
	g.Class("com.acme.RawProvider").Extending(decl.R(vocabulary.ConnectionProvider.Current))
	ops.AddMethod("none", void)
	ops.AddMethod("direct", void, conn("c"))
	ops.AddMethod("viaProvider", void, decl.P("p", decl.R("com.acme.Provider"), cur(vocabulary.Connection)))

	x := mustParse(t, g)
	cfg := x.Configurations()[0]

	none, _ := cfg.Operation("none")
	assert.Equal(t, Connectivity{}, none.Connectivity())
	assert.Equal(t, ExecutionCPULite, none.ExecutionType())

	direct, _ := cfg.Operation("direct")
	assert.True(t, direct.IsConnected())
	assert.False(t, direct.IsTransactional())

	via, _ := cfg.Operation("viaProvider")
	assert.True(t, via.IsConnected())
	assert.True(t, via.IsTransactional())
	assert.Equal(t, "com.acme.TxConnection", via.ConnectionType().QualifiedName())

	t.Run("raw provider", func(t *testing.T) {
		ops.AddMethod("raw", void, decl.P("p", decl.R("com.acme.RawProvider"), cur(vocabulary.Connection)))
		_, err := parse(t, g)
		var missing *MissingGenericArgumentError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "p", missing.Parameter)
		assert.Equal(t, 1, missing.Want)
	})
}

func TestOperation_Metadata(t *testing.T) {
	g, ops := operationsGraph()
	ops.WithTags(cur(vocabulary.MetadataScope, decl.Attrs{
		"keysResolver":   decl.Class("com.acme.Keys"),
		"outputResolver": decl.Class("com.acme.Output"),
	}))
	ops.AddMethod("query", decl.R(vocabulary.JavaInputStream),
		decl.P("table", str, cur(vocabulary.MetadataKeyID)),
		decl.P("schema", str, cur(vocabulary.MetadataKeyPart, decl.Attrs{"order": decl.Int(2), "providedByKeyResolver": decl.Bool(false)})),
	).WithTags(
		cur(vocabulary.OutputResolver, decl.Attrs{"attributes": decl.Class("com.acme.AttrsResolver")}),
		cur(vocabulary.Throws, val(classes("com.acme.QueryErrors"))),
		cur(vocabulary.Stereotype, val(decl.Class("com.acme.QueryStereotype"))),
		cur(vocabulary.MediaType, decl.Attrs{"value": decl.String("application/json"), "strict": decl.Bool(false)}),
		cur(vocabulary.Execution, val(decl.Enum("ExecutionType.CPU_INTENSIVE"))),
		cur(vocabulary.Alias, val(decl.String("select"))),
	)

	op := operation(t, g, "select")
	assert.Equal(t, "query", op.MethodName())
	assert.Equal(t, Metadata{
		KeysResolver:       "com.acme.Keys",
		OutputResolver:     "com.acme.Output",
		AttributesResolver: "com.acme.AttrsResolver",
	}, op.Metadata())
	assert.Equal(t, []string{"com.acme.QueryErrors"}, op.ErrorProviders())
	assert.Equal(t, "com.acme.QueryStereotype", op.Stereotype())
	assert.Equal(t, &MediaType{Value: "application/json"}, op.MediaType())
	assert.Equal(t, ExecutionCPUIntensive, op.ExecutionType())
	assert.True(t, op.SupportsStreaming())

	params := op.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, &MetadataKeyPart{Order: 1, ProvidedByKeyResolver: true}, params[0].MetadataKey)
	assert.Equal(t, &MetadataKeyPart{Order: 2, ProvidedByKeyResolver: false}, params[1].MetadataKey)
}

func TestOperation_SkippedMethods(t *testing.T) {
	g, ops := operationsGraph()
	ops.AddMethod("visible", void)
	ops.AddMethod("ignored", void).WithTags(cur(vocabulary.Ignore))
	hidden := ops.AddMethod("hidden", void)
	hidden.NonPublic = true
	helper := ops.AddMethod("helper", void)
	helper.Static = true

	x := mustParse(t, g)
	ops2 := x.Configurations()[0].Operations()
	require.Len(t, ops2, 1)
	assert.Equal(t, "visible", ops2[0].Name())
}

func TestOperation_InheritedMethods(t *testing.T) {
	g, ops := operationsGraph()
	g.Class("com.acme.BaseOperations").AsAbstract().AddMethod("ping", str)
	ops.Extending(decl.R("com.acme.BaseOperations")).AddMethod("read", str)

	x := mustParse(t, g)
	var names []string
	for _, op := range x.Configurations()[0].Operations() {
		names = append(names, op.Name())
	}
	assert.Equal(t, []string{"read", "ping"}, names)
}
