package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/parser"
	"github.com/c360studio/extmodel/vocabulary"
)

const (
	extType  = "com.acme.AcmeExtension"
	opsType  = "com.acme.AcmeOperations"
	connType = "com.acme.AcmeConnection"

	extID = "local.extmodel.acme-files.extension.acme-files"
	getID = "local.extmodel.acme-files.operation.config.get"
)

var (
	str   = decl.R(vocabulary.JavaString)
	stamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func cur(p vocabulary.Pair, attrs ...decl.Attrs) decl.Tag { return decl.T(p.Current, attrs...) }

func val(v decl.Value) decl.Attrs { return decl.Attrs{decl.DefaultAttribute: v} }

// acme parses a small extension: one pooling provider and one connected
// operation reading a file.
func acme(t *testing.T) *parser.Extension {
	t.Helper()
	g := decl.NewMemoryGraph()
	g.Class(connType)
	g.Class("com.acme.FileAttributes")
	g.Class("com.acme.BasicProvider").
		Extending(decl.R(vocabulary.PoolingConnectionProvider.Current, decl.R(connType))).
		WithTags(cur(vocabulary.Alias, val(decl.String("basic")))).
		AddField("host", str, cur(vocabulary.Parameter)).
		AddField("password", str, cur(vocabulary.Parameter), cur(vocabulary.Password))
	g.Class(extType).
		WithDoc("Reads files.").
		WithTags(
			cur(vocabulary.Extension, decl.Attrs{"name": decl.String("Acme Files")}),
			cur(vocabulary.Operations, val(decl.List(decl.Class(opsType)))),
			cur(vocabulary.ConnectionProviders, val(decl.List(decl.Class("com.acme.BasicProvider")))),
		)
	g.Class(opsType).
		AddMethod("get", decl.R(vocabulary.Result.Current, str, decl.R("com.acme.FileAttributes")),
			decl.P("connection", decl.R(connType), cur(vocabulary.Connection)),
			decl.P("path", str),
			decl.P("timeout", decl.R("int"), cur(vocabulary.Optional, decl.Attrs{"defaultValue": decl.String("10")})),
		).WithDoc("Reads a \"file\".")

	ext, ok := g.Lookup(extType)
	require.True(t, ok)
	x, err := parser.ParseExtension(parser.NewEnv(g), ext)
	require.NoError(t, err)
	return x
}
