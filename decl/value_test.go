package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Accessors(t *testing.T) {
	s, ok := String("abc").AsString()
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	_, ok = Int(3).AsString()
	assert.False(t, ok)

	b, ok := Raw("true").AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	n, ok := Raw("42").AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	e, ok := Enum("ExpressionSupport.NOT_SUPPORTED").AsEnum()
	assert.True(t, ok)
	assert.Equal(t, "NOT_SUPPORTED", e)

	e, ok = Raw("Placement.ADVANCED_TAB").AsEnum()
	assert.True(t, ok)
	assert.Equal(t, "ADVANCED_TAB", e)

	c, ok := Class("com.acme.Conn").AsClass()
	assert.True(t, ok)
	assert.Equal(t, "com.acme.Conn", c)
}

func TestValue_ItemsTreatsScalarAsList(t *testing.T) {
	assert.Len(t, Class("a.B").Items(), 1)
	assert.Len(t, List(Class("a.B"), Class("a.C")).Items(), 2)
	assert.Empty(t, Value{}.Items())
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("x"), `"x"`},
		{Bool(true), "true"},
		{Int(7), "7"},
		{Class("a.B"), "a.B.class"},
		{Enum("X.Y"), "Y"},
		{List(Int(1), Int(2)), "{1, 2}"},
		{Nested(T("a.Tag")), "@a.Tag"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.v.String())
	}
}

func TestTag_Attributes(t *testing.T) {
	tag := T("a.Tag",
		Attrs{"value": String("v"), "count": Int(2)},
		Attrs{"flag": Bool(true), "types": List(Class("a.B"), Class("a.C"))},
		Attrs{"mode": Enum("M.FAST"), "nested": List(Nested(T("a.Inner", Attrs{"value": String("i")})))},
	)

	assert.Equal(t, []string{"count", "flag", "mode", "nested", "types", "value"}, tag.AttributeNames())
	assert.Equal(t, "v", tag.StringOr("value", "def"))
	assert.Equal(t, "def", tag.StringOr("missing", "def"))
	assert.True(t, tag.BoolOr("flag", false))
	assert.Equal(t, 2, tag.IntOr("count", 0))
	assert.Equal(t, "FAST", tag.EnumOr("mode", "SLOW"))
	assert.Equal(t, []string{"a.B", "a.C"}, tag.Classes("types"))
	assert.Equal(t, []string{"v"}, tag.Strings("value"))

	nested := tag.Nested("nested")
	if assert.Len(t, nested, 1) {
		assert.Equal(t, "a.Inner", nested[0].Name)
		assert.Equal(t, "i", nested[0].StringOr("value", ""))
	}

	_, ok := tag.Class("value")
	assert.False(t, ok)
	assert.Equal(t, `@a.Tag(count=2, flag=true, mode=FAST, nested={@a.Inner(value="i")}, types={a.B.class, a.C.class}, value="v")`, tag.String())
}
