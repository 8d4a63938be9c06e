package decl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultAttribute is the attribute a tag argument binds to when no name is given.
const DefaultAttribute = "value"

// ValueKind classifies a tag attribute value.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueBool   ValueKind = "bool"
	ValueInt    ValueKind = "int"
	ValueClass  ValueKind = "class"
	ValueEnum   ValueKind = "enum"
	ValueList   ValueKind = "list"
	ValueTag    ValueKind = "tag"
	// ValueRaw holds source text that could not be folded into a constant,
	// such as a reference to a static field.
	ValueRaw ValueKind = "raw"
)

// Value is an immutable tag attribute value.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flag bool
	list []Value
	tag  *Tag
}

func String(s string) Value        { return Value{kind: ValueString, str: s} }
func Bool(b bool) Value            { return Value{kind: ValueBool, flag: b} }
func Int(i int64) Value            { return Value{kind: ValueInt, num: i} }
func Raw(text string) Value        { return Value{kind: ValueRaw, str: text} }
func Class(qualified string) Value { return Value{kind: ValueClass, str: qualified} }

// Enum is an enum constant reference. Only the constant name is kept.
func Enum(constant string) Value {
	if i := strings.LastIndex(constant, "."); i >= 0 {
		constant = constant[i+1:]
	}
	return Value{kind: ValueEnum, str: constant}
}

func List(items ...Value) Value {
	return Value{kind: ValueList, list: append([]Value(nil), items...)}
}

func Nested(t Tag) Value {
	return Value{kind: ValueTag, tag: &t}
}

func (v Value) Kind() ValueKind { return v.kind }

// AsString returns string and raw values.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case ValueString, ValueRaw:
		return v.str, true
	}
	return "", false
}

func (v Value) AsBool() (bool, bool) {
	if v.kind == ValueBool {
		return v.flag, true
	}
	if v.kind == ValueRaw || v.kind == ValueString {
		b, err := strconv.ParseBool(v.str)
		return b, err == nil
	}
	return false, false
}

func (v Value) AsInt() (int64, bool) {
	if v.kind == ValueInt {
		return v.num, true
	}
	if v.kind == ValueRaw {
		n, err := strconv.ParseInt(v.str, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// AsClass returns the qualified name of a class literal.
func (v Value) AsClass() (string, bool) {
	if v.kind == ValueClass {
		return v.str, true
	}
	return "", false
}

// AsEnum returns the constant name of an enum reference.
func (v Value) AsEnum() (string, bool) {
	switch v.kind {
	case ValueEnum:
		return v.str, true
	case ValueRaw:
		return Enum(v.str).str, true
	}
	return "", false
}

func (v Value) AsTag() (Tag, bool) {
	if v.kind == ValueTag && v.tag != nil {
		return *v.tag, true
	}
	return Tag{}, false
}

// Items returns the elements of a list; a scalar value is a one-element list.
func (v Value) Items() []Value {
	if v.kind == ValueList {
		return append([]Value(nil), v.list...)
	}
	if v.kind == "" {
		return nil
	}
	return []Value{v}
}

func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return strconv.Quote(v.str)
	case ValueBool:
		return strconv.FormatBool(v.flag)
	case ValueInt:
		return strconv.FormatInt(v.num, 10)
	case ValueClass:
		return v.str + ".class"
	case ValueEnum, ValueRaw:
		return v.str
	case ValueList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ValueTag:
		return v.tag.String()
	}
	return ""
}

// Attrs maps attribute names to values.
type Attrs map[string]Value

// Tag is an immutable declarative tag: an annotation with its attribute values.
type Tag struct {
	// Name is the qualified name of the tag type.
	Name  string
	attrs Attrs
}

// T builds a tag. Several attribute maps are merged left to right.
func T(name string, attrs ...Attrs) Tag {
	merged := Attrs{}
	for _, a := range attrs {
		for k, v := range a {
			merged[k] = v
		}
	}
	return Tag{Name: name, attrs: merged}
}

// Value returns an attribute value.
func (t Tag) Value(attr string) (Value, bool) {
	v, ok := t.attrs[attr]
	return v, ok
}

// AttributeNames returns the attribute names that carry explicit values, sorted.
func (t Tag) AttributeNames() []string {
	names := make([]string, 0, len(t.attrs))
	for k := range t.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StringOr returns a string attribute or def when absent.
func (t Tag) StringOr(attr, def string) string {
	if v, ok := t.attrs[attr]; ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return def
}

func (t Tag) BoolOr(attr string, def bool) bool {
	if v, ok := t.attrs[attr]; ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return def
}

func (t Tag) IntOr(attr string, def int) int {
	if v, ok := t.attrs[attr]; ok {
		if n, ok := v.AsInt(); ok {
			return int(n)
		}
	}
	return def
}

// EnumOr returns an enum constant attribute or def when absent.
func (t Tag) EnumOr(attr, def string) string {
	if v, ok := t.attrs[attr]; ok {
		if s, ok := v.AsEnum(); ok {
			return s
		}
	}
	return def
}

// Class returns a class-literal attribute.
func (t Tag) Class(attr string) (string, bool) {
	if v, ok := t.attrs[attr]; ok {
		return v.AsClass()
	}
	return "", false
}

// Classes returns the class literals of a scalar or list attribute.
func (t Tag) Classes(attr string) []string {
	var out []string
	for _, item := range t.attrs[attr].Items() {
		if c, ok := item.AsClass(); ok {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the strings of a scalar or list attribute.
func (t Tag) Strings(attr string) []string {
	var out []string
	for _, item := range t.attrs[attr].Items() {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Enums returns the enum constants of a scalar or list attribute.
func (t Tag) Enums(attr string) []string {
	var out []string
	for _, item := range t.attrs[attr].Items() {
		if s, ok := item.AsEnum(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Nested returns the tags held by a scalar or list attribute.
func (t Tag) Nested(attr string) []Tag {
	var out []Tag
	for _, item := range t.attrs[attr].Items() {
		if n, ok := item.AsTag(); ok {
			out = append(out, n)
		}
	}
	return out
}

func (t Tag) String() string {
	if len(t.attrs) == 0 {
		return "@" + t.Name
	}
	parts := make([]string, 0, len(t.attrs))
	for _, k := range t.AttributeNames() {
		parts = append(parts, fmt.Sprintf("%s=%s", k, t.attrs[k]))
	}
	return fmt.Sprintf("@%s(%s)", t.Name, strings.Join(parts, ", "))
}
