package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// acmeGraph is a small but complete extension: one provider, one operation.
func acmeGraph() *decl.MemoryGraph {
	g := decl.NewMemoryGraph()
	g.Class(connType)
	g.Class("com.acme.BasicProvider").
		Extending(decl.R(vocabulary.PoolingConnectionProvider.Current, decl.R(connType))).
		WithTags(cur(vocabulary.Alias, val(decl.String("basic")))).
		AddField("host", str, cur(vocabulary.Parameter)).
		AddField("password", str, cur(vocabulary.Parameter), cur(vocabulary.Password))
	extension(g,
		cur(vocabulary.Operations, val(classes(opsType))),
		cur(vocabulary.ConnectionProviders, val(classes("com.acme.BasicProvider"))),
	).WithDoc("Reads files.")
	ops := g.Class(opsType)
	ops.AddMethod("get", decl.R(vocabulary.Result.Current, str, decl.R("com.acme.FileAttributes")),
		conn("connection"),
		decl.P("path", str),
		decl.P("timeout", decl.R("int"), cur(vocabulary.Optional, decl.Attrs{"defaultValue": decl.String("10")})),
	).WithDoc("Reads a file.")
	return g
}

func TestParseExtension(t *testing.T) {
	x := mustParse(t, acmeGraph())

	assert.Equal(t, "Acme Files", x.Name())
	assert.Equal(t, "Reads files.", x.Description())
	assert.Equal(t, DefaultVendor, x.Vendor())
	assert.Equal(t, DefaultCategory, x.Category())
	assert.Equal(t, "acme-files", x.Prefix())
	assert.Equal(t, "http://www.mulesoft.org/schema/mule/acme-files", x.Namespace())
	assert.Equal(t, []string{"8", "11", "17"}, x.JavaVersions())
	assert.Equal(t, vocabulary.CurrentVocabularyVersion, x.MinVersion())
	assert.Empty(t, x.Operations(), "no shared components without explicit configurations")

	require.Len(t, x.Configurations(), 1)
	cfg := x.Configurations()[0]
	assert.Equal(t, DefaultConfigName, cfg.Name())
	assert.True(t, cfg.IsImplicit())
	assert.Equal(t, extType, cfg.TypeName())

	require.Len(t, cfg.ConnectionProviders(), 1)
	p := cfg.ConnectionProviders()[0]
	assert.Equal(t, "basic", p.Name())
	assert.Equal(t, ConnectionPooling, p.Management())
	assert.Equal(t, connType, p.ConnectionType().QualifiedName())
	assert.True(t, p.SupportsConnectivityTest())
	require.Len(t, p.ParameterGroups(), 1)
	password, ok := p.ParameterGroups()[0].Parameter("password")
	require.True(t, ok)
	assert.Equal(t, []string{TermPassword, TermScalarSecret}, password.SemanticTerms)

	op, ok := cfg.Operation("get")
	require.True(t, ok)
	assert.Equal(t, "Reads a file.", op.Description())
	assert.Equal(t, ShapeBlocking, op.Shape())
	assert.True(t, op.IsConnected())
	assert.False(t, op.IsTransactional())
	assert.Equal(t, connType, op.ConnectionType().QualifiedName())
	assert.Equal(t, vocabulary.JavaString, op.OutputType().QualifiedName())
	assert.Equal(t, "com.acme.FileAttributes", op.AttributesType().QualifiedName())
	assert.Equal(t, ExecutionBlocking, op.ExecutionType())
	assert.False(t, op.SupportsStreaming())
	assert.Equal(t, opsType, op.Container())

	groups := op.ParameterGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, DefaultGroup, groups[0].Name)
	assert.False(t, groups[0].Explicit)
	require.Len(t, groups[0].Parameters, 2, "connection parameters are not advertised")

	path, timeout := groups[0].Parameters[0], groups[0].Parameters[1]
	assert.Equal(t, "path", path.Name)
	assert.True(t, path.Required)
	assert.Equal(t, ExpressionSupported, path.ExpressionSupport)
	assert.Equal(t, RoleBehaviour, path.Role)
	assert.Equal(t, "timeout", timeout.Name)
	assert.False(t, timeout.Required)
	assert.Equal(t, "10", timeout.DefaultValue)
}

func TestParseExtension_Idempotent(t *testing.T) {
	g := acmeGraph()
	first := summarize(mustParse(t, g))
	second := summarize(mustParse(t, g))
	assert.Equal(t, first, second)
	assert.Equal(t, 4, g.Len(), "parsing does not declare types")
}

func TestParseExtension_LegacyVocabulary(t *testing.T) {
	g := decl.NewMemoryGraph()
	g.Class(extType).WithTags(
		leg(vocabulary.Extension, decl.Attrs{"name": decl.String("legacy")}),
		leg(vocabulary.Operations, val(classes(opsType))),
	)
	g.Class(opsType).AddMethod("ping", str, decl.P("target", str, leg(vocabulary.Optional)))

	x := mustParse(t, g)
	assert.Equal(t, vocabulary.BaselineVersion, x.MinVersion())
	op, ok := x.Configurations()[0].Operation("ping")
	require.True(t, ok)
	assert.False(t, op.Parameters()[0].Required)
}

func TestParseExtension_MinVersion(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		g := decl.NewMemoryGraph()
		extension(g, cur(vocabulary.MinMuleVersion, val(decl.String("4.6.0"))))
		assert.Equal(t, "4.6.0", mustParse(t, g).MinVersion())
	})

	t.Run("invalid explicit", func(t *testing.T) {
		g := decl.NewMemoryGraph()
		extension(g, cur(vocabulary.MinMuleVersion, val(decl.String("next"))))
		_, err := parse(t, g)
		var shape *IllegalComponentShapeError
		require.ErrorAs(t, err, &shape)
		assert.Equal(t, RuleMinVersion, shape.Rule)
	})

	t.Run("raised by a component tag", func(t *testing.T) {
		g, ops := operationsGraph()
		ops.AddMethod("login", void, decl.P("token", str, cur(vocabulary.Secret)))
		x := mustParse(t, g)
		assert.Equal(t, vocabulary.Secret.Since, x.MinVersion())
		op, _ := x.Configurations()[0].Operation("login")
		assert.Equal(t, vocabulary.Secret.Since, op.MinVersion())
		assert.Equal(t, vocabulary.Secret.Since, op.Parameters()[0].MinVersion)
	})
}

func TestParseExtension_Metadata(t *testing.T) {
	g := decl.NewMemoryGraph()
	g.Enum("com.acme.AcmeError", "CONNECTIVITY", "NOT_FOUND")
	g.Enum("com.acme.AcmeNotification", "FILE_READ")
	g.Class(extType).WithTags(
		cur(vocabulary.Extension, decl.Attrs{
			"name":     decl.String("AcmeFiles"),
			"vendor":   decl.String("Acme"),
			"category": decl.Enum("Category.CERTIFIED"),
		}),
		cur(vocabulary.Xml, decl.Attrs{"prefix": decl.String("afs")}),
		cur(vocabulary.Import.Entry, decl.Attrs{"type": decl.Class("com.other.Record")}),
		cur(vocabulary.Import.Entry, decl.Attrs{"type": decl.Class("com.other.Page")}),
		cur(vocabulary.SubTypeMapping.Container, val(decl.List(
			decl.Nested(cur(vocabulary.SubTypeMapping.Entry, decl.Attrs{
				"baseType": decl.Class("com.acme.Auth"),
				"subTypes": classes("com.acme.Basic", "com.acme.Token"),
			})),
		))),
		cur(vocabulary.Export, decl.Attrs{
			"classes":   classes("com.acme.Record"),
			"resources": decl.List(decl.String("schema.xsd")),
		}),
		cur(vocabulary.ErrorTypes, val(decl.Class("com.acme.AcmeError"))),
		cur(vocabulary.NotificationActions, val(decl.Class("com.acme.AcmeNotification"))),
		cur(vocabulary.RequiresEnterpriseLicense, decl.Attrs{"allowEvaluationLicense": decl.Bool(false)}),
		cur(vocabulary.JavaVersionSupport, val(decl.List(decl.Enum("JavaVersion.JAVA_11"), decl.Enum("JavaVersion.JAVA_17")))),
	)

	x := mustParse(t, g)
	assert.Equal(t, "Acme", x.Vendor())
	assert.Equal(t, "CERTIFIED", x.Category())
	assert.Equal(t, "afs", x.Prefix())
	assert.Equal(t, DefaultNamespaceBase+"afs", x.Namespace())
	assert.Equal(t, []string{"com.other.Record", "com.other.Page"}, x.Imports())
	assert.Equal(t, []SubTypes{{Base: "com.acme.Auth", SubTypes: []string{"com.acme.Basic", "com.acme.Token"}}}, x.SubTypes())
	assert.Equal(t, []string{"com.acme.Record"}, x.Exports())
	assert.Equal(t, []string{"schema.xsd"}, x.ExportedResources())
	assert.Equal(t, []string{"CONNECTIVITY", "NOT_FOUND"}, x.ErrorTypes())
	assert.Equal(t, []string{"FILE_READ"}, x.NotificationActions())
	assert.Equal(t, Licensing{RequiresEnterpriseLicense: true}, x.Licensing())
	assert.Equal(t, []string{"11", "17"}, x.JavaVersions())
	assert.Equal(t, vocabulary.JavaVersionSupport.Since, x.MinVersion())
}

func TestParseExtension_ImportFamiliesConflict(t *testing.T) {
	g := decl.NewMemoryGraph()
	extension(g,
		cur(vocabulary.Import.Entry, decl.Attrs{"type": decl.Class("com.other.Record")}),
		leg(vocabulary.Import.Container, val(decl.List(
			decl.Nested(leg(vocabulary.Import.Entry, decl.Attrs{"type": decl.Class("com.other.Page")})),
		))),
	)
	_, err := parse(t, g)
	var conflict *ConflictingDeclarationError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, vocabulary.Import.Entry.Concept, conflict.Concept)
}

func TestParseExtension_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *decl.MemoryGraph)
		check func(t *testing.T, err error)
	}{
		{
			name: "blank name",
			build: func(g *decl.MemoryGraph) {
				g.Class(extType).WithTags(cur(vocabulary.Extension, decl.Attrs{"name": decl.String("  ")}))
			},
			check: func(t *testing.T, err error) {
				var shape *IllegalComponentShapeError
				require.ErrorAs(t, err, &shape)
				assert.Equal(t, RuleExtensionName, shape.Rule)
			},
		},
		{
			name: "both extension tags",
			build: func(g *decl.MemoryGraph) {
				extension(g, leg(vocabulary.Extension, decl.Attrs{"name": decl.String("old")}))
			},
			check: func(t *testing.T, err error) {
				var conflict *ConflictingDeclarationError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, KindExtension, conflict.Subject.Kind)
			},
		},
		{
			name: "unknown operations container",
			build: func(g *decl.MemoryGraph) {
				extension(g, cur(vocabulary.Operations, val(classes("com.acme.Missing"))))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, decl.ErrTypeNotFound)
				assert.False(t, IsDiagnostic(err))
			},
		},
		{
			name: "operations container is the extension",
			build: func(g *decl.MemoryGraph) {
				extension(g, cur(vocabulary.Operations, val(classes(extType))))
			},
			check: func(t *testing.T, err error) {
				var self *SelfReferentialDeclarationError
				require.ErrorAs(t, err, &self)
				assert.Equal(t, extType, self.Container)
			},
		},
		{
			name: "duplicate operation names",
			build: func(g *decl.MemoryGraph) {
				extension(g, cur(vocabulary.Operations, val(classes(opsType, "com.acme.MoreOperations"))))
				g.Class(opsType).AddMethod("read", str)
				g.Class("com.acme.MoreOperations").AddMethod("fetch", str).
					WithTags(cur(vocabulary.Alias, val(decl.String("read"))))
			},
			check: func(t *testing.T, err error) {
				var shape *IllegalComponentShapeError
				require.ErrorAs(t, err, &shape)
				assert.Equal(t, RuleDuplicateName, shape.Rule)
				assert.Contains(t, shape.Error(), "operation 'read'")
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := decl.NewMemoryGraph()
			tc.build(g)
			_, err := parse(t, g)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestParseExtensions(t *testing.T) {
	t.Run("no extension", func(t *testing.T) {
		g := decl.NewMemoryGraph()
		g.Class("com.acme.Plain")
		_, err := ParseExtensions(NewEnv(g))
		assert.ErrorIs(t, err, ErrNoExtension)
	})

	t.Run("finds every extension", func(t *testing.T) {
		g := acmeGraph()
		g.Class("com.acme.Second").WithTags(leg(vocabulary.Extension, decl.Attrs{"name": decl.String("Second")}))
		xs, err := ParseExtensions(NewEnv(g))
		require.NoError(t, err)
		require.Len(t, xs, 2)
		assert.Equal(t, "Second", xs[1].Name())
		assert.Equal(t, "second", xs[1].Prefix())
	})

	t.Run("untagged type", func(t *testing.T) {
		g := decl.NewMemoryGraph()
		plain := g.Use(decl.R(g.Class("com.acme.Plain").QualifiedName))
		_, err := ParseExtension(NewEnv(g), plain)
		assert.ErrorIs(t, err, ErrNoExtension)
	})
}

// Scenario A: a configuration type that is also an operation container.
func TestParseExtension_ConfigurationIsOperationContainer(t *testing.T) {
	tests := []struct {
		name    string
		extTags []decl.Tag
		build   func(g *decl.MemoryGraph)
	}{
		{
			name: "listed by itself",
			build: func(g *decl.MemoryGraph) {
				g.Class("com.acme.Cfg").WithTags(cur(vocabulary.Operations, val(classes("com.acme.Cfg"))))
			},
		},
		{
			name: "subtype of its container",
			build: func(g *decl.MemoryGraph) {
				g.Class(opsType).AddMethod("read", str)
				g.Class("com.acme.Cfg").Extending(decl.R(opsType)).
					WithTags(cur(vocabulary.Operations, val(classes(opsType))))
			},
		},
		{
			name:    "supertype of a shared container",
			extTags: []decl.Tag{cur(vocabulary.Operations, val(classes(opsType)))},
			build: func(g *decl.MemoryGraph) {
				g.Class(opsType).Extending(decl.R("com.acme.Cfg")).AddMethod("read", str)
				g.Class("com.acme.Cfg")
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := decl.NewMemoryGraph()
			extension(g, cur(vocabulary.Configurations, val(classes("com.acme.Cfg")))).WithTags(tc.extTags...)
			tc.build(g)

			_, err := parse(t, g)
			var self *SelfReferentialDeclarationError
			require.ErrorAs(t, err, &self)
			assert.Equal(t, KindConfiguration, self.Subject.Kind)
			assert.True(t, IsDiagnostic(err))
		})
	}
}

func TestParseExtension_ExplicitConfigurations(t *testing.T) {
	g := decl.NewMemoryGraph()
	extension(g,
		cur(vocabulary.Configurations, val(classes("com.acme.ReadConfig", "com.acme.WriteConfig"))),
		cur(vocabulary.Operations, val(classes(opsType))),
	)
	g.Class(opsType).AddMethod("list", decl.R(vocabulary.JavaList, str))
	g.Class("com.acme.ReadConfig").
		WithTags(cur(vocabulary.Configuration, decl.Attrs{"name": decl.String("read")})).
		AddField("root", str, cur(vocabulary.Parameter))
	g.Class("com.acme.WriteConfig").
		WithTags(cur(vocabulary.Configuration, decl.Attrs{"name": decl.String("write")}),
			cur(vocabulary.Operations, val(classes("com.acme.WriteOperations"))))
	g.Class("com.acme.WriteOperations").AddMethod("write", void, decl.P("content", decl.R(vocabulary.JavaInputStream), cur(vocabulary.Content)))

	x := mustParse(t, g)
	require.Len(t, x.Operations(), 1)
	assert.Equal(t, "list", x.Operations()[0].Name())

	require.Len(t, x.Configurations(), 2)
	read, ok := x.Configuration("read")
	require.True(t, ok)
	assert.False(t, read.IsImplicit())
	assert.Empty(t, read.Operations())
	require.Len(t, read.Parameters(), 1)
	assert.Equal(t, "root", read.Parameters()[0].Name)

	write, _ := x.Configuration("write")
	op, ok := write.Operation("write")
	require.True(t, ok)
	assert.Equal(t, RoleContent, op.Parameters()[0].Role)
	assert.Equal(t, ExecutionCPULite, op.ExecutionType())

	t.Run("duplicate names", func(t *testing.T) {
		g.Class("com.acme.WriteConfig").
			WithTags(cur(vocabulary.Configuration, decl.Attrs{"name": decl.String("read")}))
		_, err := parse(t, g)
		var shape *IllegalComponentShapeError
		require.ErrorAs(t, err, &shape)
		assert.Equal(t, RuleDuplicateName, shape.Rule)
	})
}

func TestHyphenize(t *testing.T) {
	tests := []struct {
		in, want, prefix string
	}{
		{"Acme Files", "acme-files", "acme-files"},
		{"AcmeFiles", "acme-files", "acme-files"},
		{"acme_files", "acme-files", "acme-files"},
		{"HTTP", "http", "http"},
		{"Sockets Extension", "sockets-extension", "sockets"},
		{" spaced  out ", "spaced-out", "spaced-out"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Hyphenize(tc.in))
			assert.Equal(t, tc.prefix, DefaultPrefix(tc.in))
		})
	}
}

func TestIsDiagnostic(t *testing.T) {
	assert.True(t, IsDiagnostic(&AmbiguousConnectivityError{Count: 2}))
	assert.True(t, IsDiagnostic(errors.Join(errors.New("load"), shapeError(Subject{}, RuleRouterVoid))))
	assert.False(t, IsDiagnostic(ErrNoExtension))
	assert.False(t, IsDiagnostic(nil))
}

func TestDiagnosticKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ConflictingDeclarationError{}, DiagnosticConflictingDeclaration},
		{paramError(Subject{}, "p", "", "is odd"), DiagnosticIllegalParameter},
		{fmt.Errorf("parse: %w", &AmbiguousConnectivityError{Count: 3}), DiagnosticAmbiguousConnectivity},
		{shapeError(Subject{}, RuleRouterVoid), DiagnosticIllegalShape},
		{&SelfReferentialDeclarationError{}, DiagnosticSelfReferential},
		{&MissingGenericArgumentError{Want: 1}, DiagnosticMissingGenericArgument},
		{ErrNoExtension, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DiagnosticKind(tc.err), "%T", tc.err)
	}
}
