package java

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// unit is the unresolved content of one compilation unit. Names are kept as written
// in the source and resolved against every loaded unit afterwards.
type unit struct {
	path      string
	pkg       string
	imports   map[string]string // simple name → qualified name
	wildcards []string
	types     []*rawType
}

type rawType struct {
	qualified  string
	simple     string
	kind       string
	typeParams []string
	abstract   bool
	doc        string
	tags       []rawTag
	supers     []rawRef
	fields     []rawField
	methods    []rawMethod
	constants  []string
	outer      *rawType
}

type rawRef struct {
	name string
	args []rawRef
	dims int
}

type rawField struct {
	name string
	typ  rawRef
	tags []rawTag
	doc  string
}

type rawMethod struct {
	name       string
	returns    rawRef
	typeParams []string
	params     []rawField
	tags       []rawTag
	static     bool
	nonPublic  bool
	doc        string
}

type rawTag struct {
	name  string
	attrs []rawAttr
}

type rawAttr struct {
	key   string
	value rawValue
}

type rawValueKind int

const (
	rawString rawValueKind = iota
	rawBool
	rawInt
	rawClass
	rawEnum
	rawList
	rawTagValue
	rawText
)

type rawValue struct {
	kind  rawValueKind
	text  string
	num   int64
	flag  bool
	class rawRef
	items []rawValue
	tag   *rawTag
}

// extractor walks one tree-sitter tree.
type extractor struct {
	content []byte
	u       *unit
	docs    *docConverter
}

func (x *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(x.content[n.StartByte():n.EndByte()])
}

func (x *extractor) extractUnit(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				n := child.NamedChild(j)
				if n.Type() == "scoped_identifier" || n.Type() == "identifier" {
					x.u.pkg = x.text(n)
				}
			}
		case "import_declaration":
			x.extractImport(child)
		default:
			x.extractType(child, nil)
		}
	}
}

func (x *extractor) extractImport(node *sitter.Node) {
	static := false
	wildcard := false
	var path string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "static":
			static = true
		case "asterisk":
			wildcard = true
		case "scoped_identifier", "identifier":
			path = x.text(child)
		}
	}
	if path == "" || static {
		return
	}
	if wildcard {
		x.u.wildcards = append(x.u.wildcards, path)
		return
	}
	x.u.imports[path[strings.LastIndex(path, ".")+1:]] = path
}

// extractType extracts a type declaration and its nested types.
func (x *extractor) extractType(node *sitter.Node, outer *rawType) {
	var kind string
	switch node.Type() {
	case "class_declaration", "record_declaration":
		kind = "class"
	case "interface_declaration":
		kind = "interface"
	case "enum_declaration":
		kind = "enum"
	case "annotation_type_declaration":
		kind = "annotation"
	default:
		return
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	t := &rawType{
		simple: x.text(nameNode),
		kind:   kind,
		outer:  outer,
		doc:    x.javadoc(node).text,
	}
	switch {
	case outer != nil:
		t.qualified = outer.qualified + "." + t.simple
	case x.u.pkg != "":
		t.qualified = x.u.pkg + "." + t.simple
	default:
		t.qualified = t.simple
	}
	mods := x.modifiers(node)
	t.tags = mods.tags
	t.abstract = mods.has("abstract") || kind == "interface" || kind == "annotation"
	x.u.types = append(x.u.types, t)

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "type_parameters":
			t.typeParams = x.typeParameters(child)
		case "superclass", "super_interfaces", "extends_interfaces":
			t.supers = append(t.supers, x.typeList(child)...)
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	x.extractBody(body, t)
}

func (x *extractor) extractBody(body *sitter.Node, t *rawType) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "enum_constant":
			if n := child.ChildByFieldName("name"); n != nil {
				t.constants = append(t.constants, x.text(n))
			}
		case "enum_body_declarations":
			x.extractBody(child, t)
		case "field_declaration", "constant_declaration":
			t.fields = append(t.fields, x.fields(child)...)
		case "method_declaration", "annotation_type_element_declaration":
			if m, ok := x.method(child, t); ok {
				t.methods = append(t.methods, m)
			}
		default:
			x.extractType(child, t)
		}
	}
}

// fields returns the instance fields of one declaration; static fields are
// constants and never carry extension parameters.
func (x *extractor) fields(node *sitter.Node) []rawField {
	mods := x.modifiers(node)
	if mods.has("static") {
		return nil
	}
	typ := x.typeRef(node.ChildByFieldName("type"))
	doc := x.javadoc(node).text
	var out []rawField
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		name := x.text(child.ChildByFieldName("name"))
		if name == "" {
			continue
		}
		ft := typ
		if dims := child.ChildByFieldName("dimensions"); dims != nil {
			ft.dims += strings.Count(x.text(dims), "[")
		}
		out = append(out, rawField{name: name, typ: ft, tags: mods.tags, doc: doc})
	}
	return out
}

func (x *extractor) method(node *sitter.Node, owner *rawType) (rawMethod, bool) {
	name := x.text(node.ChildByFieldName("name"))
	if name == "" {
		return rawMethod{}, false
	}
	mods := x.modifiers(node)
	jd := x.javadoc(node)
	m := rawMethod{
		name:      name,
		returns:   x.typeRef(node.ChildByFieldName("type")),
		tags:      mods.tags,
		static:    mods.has("static"),
		nonPublic: !mods.has("public") && owner.kind != "interface" && owner.kind != "annotation",
		doc:       jd.text,
	}
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		m.typeParams = x.typeParameters(tp)
	}
	if dims := node.ChildByFieldName("dimensions"); dims != nil {
		m.returns.dims += strings.Count(x.text(dims), "[")
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			switch p.Type() {
			case "formal_parameter":
				pm := x.modifiers(p)
				pname := x.text(p.ChildByFieldName("name"))
				ptype := x.typeRef(p.ChildByFieldName("type"))
				if dims := p.ChildByFieldName("dimensions"); dims != nil {
					ptype.dims += strings.Count(x.text(dims), "[")
				}
				m.params = append(m.params, rawField{name: pname, typ: ptype, tags: pm.tags, doc: jd.params[pname]})
			case "spread_parameter":
				pm := x.modifiers(p)
				var ptype rawRef
				var pname string
				for j := 0; j < int(p.NamedChildCount()); j++ {
					c := p.NamedChild(j)
					switch c.Type() {
					case "modifiers":
					case "variable_declarator":
						pname = x.text(c.ChildByFieldName("name"))
					default:
						if ptype.name == "" {
							ptype = x.typeRef(c)
						}
					}
				}
				ptype.dims++
				m.params = append(m.params, rawField{name: pname, typ: ptype, tags: pm.tags, doc: jd.params[pname]})
			}
		}
	}
	return m, true
}

type modifierSet struct {
	keywords map[string]bool
	tags     []rawTag
}

func (m modifierSet) has(keyword string) bool { return m.keywords[keyword] }

// modifiers collects modifier keywords and annotations of a declaration.
func (x *extractor) modifiers(node *sitter.Node) modifierSet {
	set := modifierSet{keywords: map[string]bool{}}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			mod := child.Child(j)
			switch mod.Type() {
			case "marker_annotation", "annotation":
				set.tags = append(set.tags, x.annotation(mod))
			default:
				set.keywords[strings.TrimSpace(x.text(mod))] = true
			}
		}
	}
	return set
}

func (x *extractor) typeParameters(node *sitter.Node) []string {
	var out []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		tp := node.NamedChild(i)
		if tp.Type() != "type_parameter" {
			continue
		}
		for j := 0; j < int(tp.NamedChildCount()); j++ {
			c := tp.NamedChild(j)
			if c.Type() == "type_identifier" || c.Type() == "identifier" {
				out = append(out, x.text(c))
				break
			}
		}
	}
	return out
}

// typeList flattens the types of an extends/implements clause.
func (x *extractor) typeList(node *sitter.Node) []rawRef {
	var out []rawRef
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "type_list" {
			out = append(out, x.typeList(child)...)
			continue
		}
		if r := x.typeRef(child); r.name != "" {
			out = append(out, r)
		}
	}
	return out
}

// typeRef converts a type node into a reference, keeping type arguments.
// Wildcards resolve to their bound, or Object when unbounded.
func (x *extractor) typeRef(node *sitter.Node) rawRef {
	if node == nil {
		return rawRef{}
	}
	switch node.Type() {
	case "type_identifier", "scoped_type_identifier", "identifier", "scoped_identifier":
		return rawRef{name: x.text(node)}
	case "generic_type":
		var r rawRef
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.Type() == "type_arguments" {
				for j := 0; j < int(c.NamedChildCount()); j++ {
					r.args = append(r.args, x.typeRef(c.NamedChild(j)))
				}
				continue
			}
			if r.name == "" {
				r.name = x.typeRef(c).name
			}
		}
		return r
	case "array_type":
		r := x.typeRef(node.ChildByFieldName("element"))
		r.dims += strings.Count(x.text(node.ChildByFieldName("dimensions")), "[")
		return r
	case "wildcard":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.Type() != "super" && c.Type() != "annotation" && c.Type() != "marker_annotation" {
				return x.typeRef(c)
			}
		}
		return rawRef{name: "Object"}
	case "annotated_type":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.Type() != "annotation" && c.Type() != "marker_annotation" {
				return x.typeRef(c)
			}
		}
		return rawRef{}
	case "void_type":
		return rawRef{name: "void"}
	default:
		return rawRef{name: strings.TrimSpace(x.text(node))}
	}
}

// annotation extracts an annotation with its typed attribute values.
func (x *extractor) annotation(node *sitter.Node) rawTag {
	tag := rawTag{name: x.text(node.ChildByFieldName("name"))}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return tag
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "element_value_pair" {
			tag.attrs = append(tag.attrs, rawAttr{
				key:   x.text(child.ChildByFieldName("key")),
				value: x.elementValue(child.ChildByFieldName("value")),
			})
			continue
		}
		if child.Type() == "line_comment" || child.Type() == "block_comment" || child.Type() == "comment" {
			continue
		}
		tag.attrs = append(tag.attrs, rawAttr{key: "value", value: x.elementValue(child)})
	}
	return tag
}

func (x *extractor) elementValue(node *sitter.Node) rawValue {
	if node == nil {
		return rawValue{kind: rawText}
	}
	switch node.Type() {
	case "string_literal":
		return rawValue{kind: rawString, text: unquote(x.text(node))}
	case "true", "false":
		return rawValue{kind: rawBool, flag: node.Type() == "true"}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		lit := strings.TrimRight(strings.ReplaceAll(x.text(node), "_", ""), "lL")
		if n, err := strconv.ParseInt(lit, 0, 64); err == nil {
			return rawValue{kind: rawInt, num: n}
		}
	case "class_literal":
		if node.NamedChildCount() > 0 {
			return rawValue{kind: rawClass, class: x.typeRef(node.NamedChild(0))}
		}
	case "field_access", "scoped_identifier":
		return rawValue{kind: rawEnum, text: x.text(node)}
	case "element_value_array_initializer":
		v := rawValue{kind: rawList}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if strings.HasSuffix(c.Type(), "comment") {
				continue
			}
			v.items = append(v.items, x.elementValue(c))
		}
		return v
	case "annotation", "marker_annotation":
		nested := x.annotation(node)
		return rawValue{kind: rawTagValue, tag: &nested}
	case "binary_expression":
		// string concatenation of literals
		left := x.elementValue(node.ChildByFieldName("left"))
		right := x.elementValue(node.ChildByFieldName("right"))
		if left.kind == rawString && right.kind == rawString {
			return rawValue{kind: rawString, text: left.text + right.text}
		}
	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return x.elementValue(node.NamedChild(0))
		}
	}
	return rawValue{kind: rawText, text: strings.TrimSpace(x.text(node))}
}

func unquote(lit string) string {
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	return strings.Trim(lit, `"`)
}

func (x *extractor) javadoc(node *sitter.Node) javadoc {
	return x.docs.parse(x.docComment(node))
}

// docComment returns the Javadoc block directly preceding a declaration.
func (x *extractor) docComment(node *sitter.Node) string {
	prev := node.PrevSibling()
	for prev != nil && prev.Type() == "line_comment" {
		prev = prev.PrevSibling()
	}
	if prev == nil || (prev.Type() != "block_comment" && prev.Type() != "comment") {
		return ""
	}
	text := x.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return text
}
