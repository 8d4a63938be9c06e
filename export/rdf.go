// Package export serializes parsed extension models: as JSON or YAML documents,
// as graph facts, and as RDF in Turtle, N-Triples or JSON-LD.
package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/extmodel/parser"
)

const (
	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	xsd     = "http://www.w3.org/2001/XMLSchema#"
)

// RDFExporter exports entities to RDF.
type RDFExporter struct {
	entities []Entity
	ids      map[string]bool
	prefixes map[string]string
}

// NewRDFExporter creates an empty exporter.
func NewRDFExporter() *RDFExporter {
	return &RDFExporter{
		ids:      make(map[string]bool),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    xsd,
		"dc":     "http://purl.org/dc/terms/",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"ext":    Namespace,
		"entity": EntityNamespace,
	}
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
	e.ids[entity.ID] = true
}

// AddExtension adds every entity of a parsed extension.
func (e *RDFExporter) AddExtension(x *parser.Extension, opts FactOptions) {
	for _, entity := range Entities(x, opts) {
		e.AddEntity(entity)
	}
}

// Len is the number of entities added.
func (e *RDFExporter) Len() int { return len(e.entities) }

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD()
	default:
		return "", fmt.Errorf("unsupported RDF format: %s", format)
	}
}

func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, entity := range e.entities {
		w.WriteSubject(entityIDToIRI(entity.ID))
		w.WriteType(entity.Type.ClassIRI(), len(entity.Triples) == 0)
		for i, triple := range entity.Triples {
			w.WritePredicate(PredicateIRI(triple.Predicate), e.turtleTerm(triple.Object), i == len(entity.Triples)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()
	for _, entity := range e.entities {
		iri := entityIDToIRI(entity.ID)
		w.WriteTypeTriple(iri, entity.Type.ClassIRI())
		for _, triple := range entity.Triples {
			w.WriteTriple(iri, PredicateIRI(triple.Predicate), e.ntriplesTerm(triple.Object))
		}
	}
	return w.String()
}

func (e *RDFExporter) toJSONLD() (string, error) {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range e.entities {
		props := make(map[string]any)
		for _, triple := range entity.Triples {
			key := PredicateIRI(triple.Predicate)
			value := e.jsonldValue(triple.Object)
			switch prev := props[key].(type) {
			case nil:
				props[key] = value
			case []any:
				props[key] = append(prev, value)
			default:
				props[key] = []any{prev, value}
			}
		}
		w.AddNode(entityIDToIRI(entity.ID), []string{entity.Type.ClassIRI()}, props)
	}

	data, err := w.Bytes()
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data) + "\n", nil
}

// entityIDToIRI converts a dotted entity ID to an IRI. The org and system
// segments are dropped.
// Example: "acme.extmodel.file.operation.config.read"
//
//	-> "https://c360studio.dev/extmodel/entity/file/operation/config/read"
func entityIDToIRI(entityID string) string {
	parts := strings.Split(entityID, ".")
	if len(parts) < 3 {
		return EntityNamespace + entityID
	}
	return EntityNamespace + strings.Join(parts[2:], "/")
}

// reference returns the IRI of an object naming an exported entity.
func (e *RDFExporter) reference(obj any) (string, bool) {
	s, ok := obj.(string)
	if !ok || !e.ids[s] {
		return "", false
	}
	return entityIDToIRI(s), true
}

func (e *RDFExporter) turtleTerm(obj any) string {
	if iri, ok := e.reference(obj); ok {
		return fmt.Sprintf("<%s>", iri)
	}
	switch v := obj.(type) {
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprint(v)))
	}
}

func (e *RDFExporter) ntriplesTerm(obj any) string {
	if iri, ok := e.reference(obj); ok {
		return fmt.Sprintf("<%s>", iri)
	}
	switch v := obj.(type) {
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<%sinteger>", v, xsd)
	case bool:
		return fmt.Sprintf("\"%t\"^^<%sboolean>", v, xsd)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprint(v)))
	}
}

func (e *RDFExporter) jsonldValue(obj any) any {
	if iri, ok := e.reference(obj); ok {
		return map[string]string{"@id": iri}
	}
	switch v := obj.(type) {
	case string, bool, int, int32, int64:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
