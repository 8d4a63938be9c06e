package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

const (
	extType  = "com.acme.AcmeExtension"
	opsType  = "com.acme.AcmeOperations"
	connType = "com.acme.AcmeConnection"
)

var (
	str    = decl.R(vocabulary.JavaString)
	object = decl.R(vocabulary.JavaObject)
	void   = decl.R("void")
)

// cur builds a current-vocabulary tag.
func cur(p vocabulary.Pair, attrs ...decl.Attrs) decl.Tag { return decl.T(p.Current, attrs...) }

// leg builds a legacy-vocabulary tag.
func leg(p vocabulary.Pair, attrs ...decl.Attrs) decl.Tag { return decl.T(p.Legacy, attrs...) }

func val(v decl.Value) decl.Attrs { return decl.Attrs{decl.DefaultAttribute: v} }

func classes(names ...string) decl.Value {
	items := make([]decl.Value, len(names))
	for i, n := range names {
		items[i] = decl.Class(n)
	}
	return decl.List(items...)
}

// extension declares an extension type named "Acme Files" with the given tags.
func extension(g *decl.MemoryGraph, tags ...decl.Tag) *decl.Declaration {
	d := g.Class(extType).WithTags(cur(vocabulary.Extension, decl.Attrs{"name": decl.String("Acme Files")}))
	return d.WithTags(tags...)
}

// operationsGraph declares the extension with one operations container and returns
// the container for the test to add methods to.
func operationsGraph() (*decl.MemoryGraph, *decl.Declaration) {
	g := decl.NewMemoryGraph()
	g.Class(connType)
	extension(g, cur(vocabulary.Operations, val(classes(opsType))))
	return g, g.Class(opsType)
}

func parse(t *testing.T, g decl.Graph) (*Extension, error) {
	t.Helper()
	ext, ok := g.Lookup(extType)
	require.True(t, ok)
	return ParseExtension(NewEnv(g), ext)
}

func mustParse(t *testing.T, g decl.Graph) *Extension {
	t.Helper()
	x, err := parse(t, g)
	require.NoError(t, err)
	return x
}

// operation parses g and returns the named operation of the implicit configuration.
func operation(t *testing.T, g decl.Graph, name string) *Operation {
	t.Helper()
	x := mustParse(t, g)
	require.Len(t, x.Configurations(), 1)
	op, ok := x.Configurations()[0].Operation(name)
	require.True(t, ok, "operation %s not found", name)
	return op
}

func conn(name string) decl.ParamDecl {
	return decl.P(name, decl.R(connType), cur(vocabulary.Connection))
}

// summarize renders the structure of a parsed extension for equality checks.
func summarize(x *Extension) []string {
	out := []string{fmt.Sprintf("extension %s %s %s", x.Name(), x.Namespace(), x.MinVersion())}
	groups := func(indent string, gs []ParameterGroup) {
		for _, g := range gs {
			out = append(out, fmt.Sprintf("%sgroup %s", indent, g.Name))
			for _, p := range g.Parameters {
				out = append(out, fmt.Sprintf("%s  param %s %s required=%t %s %s %v",
					indent, p.Name, typeName(p.Type), p.Required, p.Role, p.ExpressionSupport, p.Stackable))
			}
		}
	}
	for _, c := range x.Configurations() {
		out = append(out, "config "+c.Name())
		groups("  ", c.ParameterGroups())
		for _, op := range c.Operations() {
			out = append(out, fmt.Sprintf("  operation %s %s connected=%t output=%s",
				op.Name(), op.Shape(), op.IsConnected(), typeName(op.OutputType())))
			groups("    ", op.ParameterGroups())
		}
		for _, src := range c.Sources() {
			out = append(out, fmt.Sprintf("  source %s output=%s", src.Name(), typeName(src.OutputType())))
			groups("    ", src.ParameterGroups())
		}
		for _, p := range c.ConnectionProviders() {
			out = append(out, fmt.Sprintf("  provider %s %s %s", p.Name(), p.Management(), typeName(p.ConnectionType())))
			groups("    ", p.ParameterGroups())
		}
	}
	return out
}
