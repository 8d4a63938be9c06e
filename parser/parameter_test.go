package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/stackable"
	"github.com/c360studio/extmodel/vocabulary"
)

// runParams declares a single "run" operation with the given parameters and parses it.
func runParams(t *testing.T, setup func(*decl.MemoryGraph), params ...decl.ParamDecl) ([]Parameter, error) {
	t.Helper()
	g, ops := operationsGraph()
	if setup != nil {
		setup(g)
	}
	ops.AddMethod("run", void, params...)
	x, err := parse(t, g)
	if err != nil {
		return nil, err
	}
	op, ok := x.Configurations()[0].Operation("run")
	require.True(t, ok)
	return op.Parameters(), nil
}

func mustParam(t *testing.T, setup func(*decl.MemoryGraph), p decl.ParamDecl) Parameter {
	t.Helper()
	params, err := runParams(t, setup, p)
	require.NoError(t, err)
	require.Len(t, params, 1)
	return params[0]
}

// Scenario D
func TestParameter_ParameterResolver(t *testing.T) {
	p := mustParam(t, nil, decl.P("filter", decl.R(vocabulary.ParameterResolver.Current, str)))

	assert.Equal(t, vocabulary.JavaString, p.Type.QualifiedName())
	assert.Equal(t, []stackable.Kind{stackable.KindParameterResolver}, p.Stackable)
	assert.Equal(t, vocabulary.ParameterResolver.Current, p.DeclaredType.QualifiedName())
	assert.Equal(t, ExpressionSupported, p.ExpressionSupport)
	assert.True(t, p.Required)
}

// Scenario E
func TestParameter_BareParameterResolver(t *testing.T) {
	_, err := runParams(t, nil, decl.P("filter", decl.R(vocabulary.ParameterResolver.Current)))

	var missing *MissingGenericArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "filter", missing.Parameter)
	assert.Equal(t, 1, missing.Want)
	assert.Equal(t, Subject{Kind: KindOperation, Name: "run"}, missing.Subject)
	assert.True(t, errors.Is(err, stackable.ErrMissingTypeArgument))
	assert.True(t, IsDiagnostic(err))
}

func TestParameter_Stackable(t *testing.T) {
	tests := []struct {
		name       string
		typ        decl.Ref
		logical    string
		chain      []stackable.Kind
		expression ExpressionSupport
	}{
		{"plain", str, vocabulary.JavaString, nil, ExpressionSupported},
		{"literal", decl.R(vocabulary.Literal.Legacy, str), vocabulary.JavaString,
			[]stackable.Kind{stackable.KindLiteral}, ExpressionNotSupported},
		{"typed stream", decl.R(vocabulary.TypedValue.Legacy, decl.R(vocabulary.JavaInputStream)), vocabulary.JavaInputStream,
			[]stackable.Kind{stackable.KindTypedValue}, ExpressionSupported},
		{"nested", decl.R(vocabulary.ParameterResolver.Current, decl.R(vocabulary.TypedValue.Legacy, str)), vocabulary.JavaString,
			[]stackable.Kind{stackable.KindParameterResolver, stackable.KindTypedValue}, ExpressionSupported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParam(t, nil, decl.P("value", tc.typ))
			assert.Equal(t, tc.logical, p.Type.QualifiedName())
			assert.Equal(t, tc.chain, p.Stackable)
			assert.Equal(t, tc.expression, p.ExpressionSupport)
		})
	}
}

func TestParameter_ExpressionSupport(t *testing.T) {
	tests := []struct {
		name string
		p    decl.ParamDecl
		want ExpressionSupport
	}{
		{"default", decl.P("v", str), ExpressionSupported},
		{"tagged", decl.P("v", str, cur(vocabulary.Expression, val(decl.Enum("ExpressionSupport.REQUIRED")))), ExpressionRequired},
		{"tag beats literal", decl.P("v", decl.R(vocabulary.Literal.Current, str),
			cur(vocabulary.Expression, val(decl.Enum("SUPPORTED")))), ExpressionSupported},
		{"infrastructure", decl.P("tls", decl.R(vocabulary.TlsContextFactory.Legacy),
			cur(vocabulary.Expression, val(decl.Enum("REQUIRED")))), ExpressionNotSupported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mustParam(t, nil, tc.p).ExpressionSupport)
		})
	}
}

func TestParameter_OptionalAndRole(t *testing.T) {
	params, err := runParams(t, nil,
		decl.P("body", str, cur(vocabulary.Content, decl.Attrs{"primary": decl.Bool(true)})),
		decl.P("headers", decl.R(vocabulary.JavaMap, str, str), cur(vocabulary.Content), cur(vocabulary.Optional)),
		decl.P("encoding", str, cur(vocabulary.Optional, decl.Attrs{"defaultValue": decl.String("UTF-8")})),
	)
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, RolePrimaryContent, params[0].Role)
	assert.True(t, params[0].Required)

	assert.Equal(t, RoleContent, params[1].Role)
	assert.False(t, params[1].Required)
	assert.False(t, params[1].HasDefault)

	assert.Equal(t, RoleBehaviour, params[2].Role)
	assert.Equal(t, "UTF-8", params[2].DefaultValue)
	assert.True(t, params[2].HasDefault)
}

func TestParameter_SemanticTerms(t *testing.T) {
	credentials := func(g *decl.MemoryGraph) { g.Class("com.acme.Credentials") }

	tests := []struct {
		name       string
		p          decl.ParamDecl
		terms      []string
		minVersion string
	}{
		{"none", decl.P("v", str), nil, vocabulary.BaselineVersion},
		{"password", decl.P("v", str, leg(vocabulary.Password)), []string{TermPassword, TermScalarSecret}, vocabulary.BaselineVersion},
		{"secret complex", decl.P("v", decl.R("com.acme.Credentials"), cur(vocabulary.Secret)), []string{TermSecret}, "4.5.0"},
		{"secret scalar", decl.P("v", decl.R("int"), cur(vocabulary.Secret)), []string{TermScalarSecret}, "4.5.0"},
		{"path", decl.P("v", str, leg(vocabulary.Path)), []string{TermPath}, vocabulary.BaselineVersion},
		{"tls", decl.P("v", decl.R(vocabulary.TlsContextFactory.Legacy)), []string{TermTLS}, vocabulary.BaselineVersion},
		{"scheduling", decl.P("v", decl.R(vocabulary.SchedulingStrategy.Legacy)), []string{TermScheduling}, vocabulary.BaselineVersion},
		{"transaction", decl.P("v", decl.R(vocabulary.OperationTransactionalAction.Current)), []string{TermTransaction}, vocabulary.BaselineVersion},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParam(t, credentials, tc.p)
			assert.Equal(t, tc.terms, p.SemanticTerms)
			assert.Equal(t, tc.minVersion, p.MinVersion)
		})
	}
}

func TestParameter_Display(t *testing.T) {
	p := mustParam(t, nil, decl.P("file", str,
		cur(vocabulary.DisplayName, val(decl.String("File name"))),
		cur(vocabulary.Summary, val(decl.String("The file to read"))),
		cur(vocabulary.Example, val(decl.String("/tmp/a.txt"))),
		cur(vocabulary.Placement, decl.Attrs{"tab": decl.Enum("Placement.ADVANCED_TAB"), "order": decl.Int(3)}),
		cur(vocabulary.Path, decl.Attrs{
			"type":                   decl.Enum("PathModel.Type.FILE"),
			"acceptsUrls":            decl.Bool(true),
			"acceptedFileExtensions": decl.List(decl.String("txt"), decl.String("csv")),
		}),
		cur(vocabulary.Deprecated, decl.Attrs{"message": decl.String("use path"), "since": decl.String("1.2")}),
	))

	assert.Equal(t, Display{
		DisplayName: "File name",
		Summary:     "The file to read",
		Example:     "/tmp/a.txt",
		Placement:   Placement{Tab: "Advanced", Order: 3},
		Path:        &PathModel{Type: "FILE", AcceptsURLs: true, FileExtensions: []string{"txt", "csv"}},
	}, p.Display)
	assert.Equal(t, &Deprecation{Message: "use path", Since: "1.2"}, p.Deprecation)
	assert.Equal(t, vocabulary.CurrentVocabularyVersion, p.MinVersion)

	t.Run("named tab", func(t *testing.T) {
		p := mustParam(t, nil, decl.P("v", str, leg(vocabulary.Placement, decl.Attrs{"tab": decl.String("Connection")})))
		assert.Equal(t, Placement{Tab: "Connection"}, p.Display.Placement)
	})
}

func TestParameter_Alias(t *testing.T) {
	p := mustParam(t, nil, decl.P("fileName", str, cur(vocabulary.Alias, val(decl.String("name")))))
	assert.Equal(t, "name", p.Name)
}

func TestParameter_ConflictingVocabularies(t *testing.T) {
	_, err := runParams(t, nil, decl.P("v", str, leg(vocabulary.Optional), cur(vocabulary.Optional)))

	var conflict *ConflictingDeclarationError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Optional", conflict.Concept)
	assert.Equal(t, vocabulary.Optional.Legacy, conflict.Legacy)
	assert.Equal(t, vocabulary.Optional.Current, conflict.Current)
}

func TestParameter_NullSafe(t *testing.T) {
	shapes := func(g *decl.MemoryGraph) {
		g.Interface("com.acme.Shape")
		g.Class("com.acme.Circle").Extending(decl.R("com.acme.Shape"))
		g.Class("com.acme.Square")
		g.Class("com.acme.Options").AddField("retries", decl.R("int"))
	}
	nullSafe := func(attrs ...decl.Attrs) decl.Tag { return cur(vocabulary.NullSafe, attrs...) }
	implementing := func(name string) decl.Attrs { return decl.Attrs{"defaultImplementingType": decl.Class(name)} }
	optional := cur(vocabulary.Optional)

	valid := []struct {
		name string
		typ  decl.Ref
		tag  decl.Tag
		want string
	}{
		{"list", decl.R(vocabulary.JavaList, str), nullSafe(), "java.util.ArrayList"},
		{"set", decl.R("java.util.Set", str), nullSafe(), "java.util.HashSet"},
		{"concrete list", decl.R("java.util.LinkedList", str), nullSafe(), "java.util.LinkedList"},
		{"map", decl.R(vocabulary.JavaMap, str, str), nullSafe(), "java.util.HashMap"},
		{"complex", decl.R("com.acme.Options"), nullSafe(), "com.acme.Options"},
		{"object default ignored", decl.R("com.acme.Options"), nullSafe(implementing(vocabulary.JavaObject)), "com.acme.Options"},
		{"interface with implementation", decl.R("com.acme.Shape"), nullSafe(implementing("com.acme.Circle")), "com.acme.Circle"},
		{"collection with implementation", decl.R(vocabulary.JavaList, str), nullSafe(implementing("java.util.LinkedList")), "java.util.LinkedList"},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParam(t, shapes, decl.P("v", tc.typ, optional, tc.tag))
			require.NotNil(t, p.NullSafe)
			assert.Equal(t, tc.want, p.NullSafe.DefaultImplementation.QualifiedName())
		})
	}

	invalid := []struct {
		name   string
		p      decl.ParamDecl
		reason string
	}{
		{"required", decl.P("v", decl.R("com.acme.Options"), nullSafe()), "is required"},
		{"config override", decl.P("v", decl.R("com.acme.Options"), optional, nullSafe(), cur(vocabulary.ConfigOverride)), "config override"},
		{"map with implementation", decl.P("v", decl.R(vocabulary.JavaMap, str, str), optional, nullSafe(implementing("java.util.LinkedHashMap"))), "array or map"},
		{"concrete with implementation", decl.P("v", decl.R("com.acme.Options"), optional, nullSafe(implementing("com.acme.Square"))), "concrete type"},
		{"interface without implementation", decl.P("v", decl.R("com.acme.Shape"), optional, nullSafe()), "complex instantiable"},
		{"scalar", decl.P("v", str, optional, nullSafe()), "complex instantiable"},
		{"unrelated implementation", decl.P("v", decl.R("com.acme.Shape"), optional, nullSafe(implementing("com.acme.Square"))), "not assignable"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runParams(t, shapes, tc.p)
			var illegal *IllegalParameterDefinitionError
			require.ErrorAs(t, err, &illegal)
			assert.Equal(t, "v", illegal.Parameter)
			assert.Equal(t, vocabulary.NullSafe.Current, illegal.Tag)
			assert.Contains(t, illegal.Reason, tc.reason)
		})
	}

	t.Run("unknown implementation", func(t *testing.T) {
		_, err := runParams(t, shapes,
			decl.P("v", decl.R("com.acme.Shape"), optional, nullSafe(implementing("com.acme.Missing"))))
		require.ErrorIs(t, err, decl.ErrTypeNotFound)
		assert.False(t, IsDiagnostic(err))
	})
}

func TestParameter_Skipped(t *testing.T) {
	params, err := runParams(t, nil,
		decl.P("config", decl.R(extType), cur(vocabulary.Config)),
		conn("connection"),
		decl.P("internal", str, leg(vocabulary.Ignore)),
		decl.P("helper", decl.R(vocabulary.StreamingHelper.Current)),
		decl.P("kept", str),
	)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "kept", params[0].Name)
}

func TestParameter_Resolvers(t *testing.T) {
	p := mustParam(t, nil, decl.P("target", decl.R(vocabulary.JavaObject),
		cur(vocabulary.TypeResolver, val(decl.Class("com.acme.TargetResolver"))),
		cur(vocabulary.AllowedStereotypes, val(classes("com.acme.Validator", "com.acme.Filter"))),
		cur(vocabulary.OAuthParameter, decl.Attrs{"requestAlias": decl.String("scope_id")}),
	))
	assert.Equal(t, "com.acme.TargetResolver", p.TypeResolver)
	assert.Equal(t, []string{"com.acme.Validator", "com.acme.Filter"}, p.Stereotypes)
	assert.Equal(t, &OAuthParameter{RequestAlias: "scope_id", Placement: "BODY"}, p.OAuth)
}
