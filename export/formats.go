package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatJSON produces the extension model as JSON documents.
	FormatJSON Format = "json"

	// FormatYAML produces the extension model as YAML documents.
	FormatYAML Format = "yaml"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// IsRDF reports whether the format serializes graph facts rather than documents.
func (f Format) IsRDF() bool {
	return f == FormatTurtle || f == FormatNTriples || f == FormatJSONLD
}

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - extension model documents",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML - extension model documents",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats lists the supported formats in name order.
func Formats() []Format {
	out := make([]Format, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format %q (want one of %v)", name, Formats())
	}
	return f, nil
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with default prefixes.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: defaultPrefixes(),
	}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	fmt.Fprintf(&w.sb, "<%s>\n", iri)
}

// WriteType writes a type assertion.
func (w *TurtleWriter) WriteType(typeIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    a <%s>%s\n", typeIRI, terminator(last))
}

// WritePredicate writes a predicate with an already formatted object term.
func (w *TurtleWriter) WritePredicate(predicateIRI, object string, last bool) {
	fmt.Fprintf(&w.sb, "    <%s> %s%s\n", predicateIRI, object, terminator(last))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func terminator(last bool) string {
	if last {
		return " ."
	}
	return " ;"
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple with an already formatted object term.
func (w *NTriplesWriter) WriteTriple(subject, predicate, object string) {
	fmt.Fprintf(&w.sb, "<%s> <%s> %s .\n", subject, predicate, object)
}

// WriteTypeTriple writes a type assertion triple.
func (w *NTriplesWriter) WriteTypeTriple(subject, typeIRI string) {
	fmt.Fprintf(&w.sb, "<%s> <%s> <%s> .\n", subject, rdfType, typeIRI)
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON flattens the properties next to @id and @type.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(id string, types []string, properties map[string]any) {
	w.doc.Graph = append(w.doc.Graph, JSONLDNode{
		ID:         id,
		Type:       types,
		Properties: properties,
	})
}

// Bytes returns the indented JSON-LD output.
func (w *JSONLDWriter) Bytes() ([]byte, error) {
	return json.MarshalIndent(w.doc, "", "  ")
}
