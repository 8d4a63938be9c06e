package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/vocabulary"
)

func TestMemoryGraph_DeclareAndLookup(t *testing.T) {
	g := NewMemoryGraph()
	g.Class("com.acme.Conn")
	g.Interface("com.acme.Api")
	g.Enum("com.acme.Mode", "FAST", "SLOW")

	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Has("com.acme.Conn"))
	assert.False(t, g.Has(vocabulary.JavaString), "platform types are not part of the graph")
	assert.True(t, g.Knows(vocabulary.JavaString))

	names := []string{}
	for _, typ := range g.Types() {
		names = append(names, typ.QualifiedName())
	}
	assert.Equal(t, []string{"com.acme.Conn", "com.acme.Api", "com.acme.Mode"}, names)

	mode, ok := g.Lookup("com.acme.Mode")
	require.True(t, ok)
	assert.Equal(t, KindEnum, mode.Kind())
	assert.Equal(t, "Mode", mode.Name())
	assert.Equal(t, []string{"FAST", "SLOW"}, mode.EnumConstants())

	api, _ := g.Lookup("com.acme.Api")
	assert.True(t, api.IsAbstract())

	_, ok = g.Lookup("com.acme.Missing")
	assert.False(t, ok)

	assert.True(t, g.Remove("com.acme.Api"))
	assert.False(t, g.Remove("com.acme.Api"))
	assert.Equal(t, 2, g.Len())
}

func TestMemoryGraph_UsageKinds(t *testing.T) {
	g := NewMemoryGraph()

	tests := []struct {
		name string
		ref  Ref
		want Kind
	}{
		{"primitive", R("int"), KindPrimitive},
		{"void", R("void"), KindVoid},
		{"array", ArrayOf(R(vocabulary.JavaString)), KindArray},
		{"type variable", V("T"), KindTypeVariable},
		{"platform interface", R(vocabulary.JavaList), KindInterface},
		{"undeclared", R("com.acme.Unknown"), KindClass},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Use(tc.ref).Kind())
		})
	}

	arr := g.Use(ArrayOf(R(vocabulary.JavaString)))
	assert.Equal(t, "java.lang.String[]", arr.QualifiedName())
	assert.Equal(t, "String[]", arr.Name())
	assert.Equal(t, vocabulary.JavaString, arr.ElementType().QualifiedName())
	assert.False(t, g.Use(R("com.acme.Unknown")).Declared())
}

func TestMemoryGraph_SupertypeSubstitution(t *testing.T) {
	g := NewMemoryGraph()
	g.Class("com.acme.Conn")
	g.Class("com.acme.Provider").Extending(
		R(vocabulary.PoolingConnectionProvider.Current, R("com.acme.Conn")),
	)

	provider, ok := g.Lookup("com.acme.Provider")
	require.True(t, ok)

	cp, ok := FindSupertype(provider, vocabulary.ConnectionProvider.Current)
	require.True(t, ok, "pooling provider should reach ConnectionProvider")
	args := cp.TypeArguments()
	require.Len(t, args, 1)
	assert.Equal(t, "com.acme.Conn", args[0].QualifiedName())
}

func TestMemoryGraph_MemberSubstitution(t *testing.T) {
	g := NewMemoryGraph()
	box := g.Class("com.acme.Box").Generic("T")
	box.AddField("item", V("T"))
	box.AddMethod("all", R(vocabulary.JavaList, V("T")), P("seed", V("T")))

	use := g.Use(R("com.acme.Box", R(vocabulary.JavaString)))

	fields := use.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, vocabulary.JavaString, fields[0].Type().QualifiedName())
	assert.Equal(t, "com.acme.Box", fields[0].DeclaringType().QualifiedName())

	methods := use.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, "java.util.List<java.lang.String>", TypeString(methods[0].ReturnType()))
	assert.Equal(t, vocabulary.JavaString, methods[0].Parameters()[0].Type().QualifiedName())
	assert.True(t, methods[0].IsPublic())
	assert.False(t, methods[0].IsStatic())
}

func TestMemoryGraph_DefaultReturnIsVoid(t *testing.T) {
	g := NewMemoryGraph()
	g.Class("com.acme.Ops").AddMethod("run", Ref{})
	ops, _ := g.Lookup("com.acme.Ops")
	assert.Equal(t, KindVoid, ops.Methods()[0].ReturnType().Kind())
}

func TestMemoryGraph_TagsAreCopied(t *testing.T) {
	g := NewMemoryGraph()
	g.Class("com.acme.Ext").WithTags(T(vocabulary.Extension.Current, Attrs{"name": String("acme")}))

	ext, _ := g.Lookup("com.acme.Ext")
	tags := ext.Tags()
	tags[0] = T("other")

	tag, ok := FindTag(ext, vocabulary.Extension.Current)
	require.True(t, ok)
	assert.Equal(t, "acme", tag.StringOr("name", ""))
	assert.True(t, HasTag(ext, vocabulary.Extension.Current))
	assert.False(t, HasTag(ext, vocabulary.Extension.Legacy))
	assert.Len(t, TagsNamed(ext, vocabulary.Extension.Current), 1)
}
