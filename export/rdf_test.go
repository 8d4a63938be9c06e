package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/extmodel/export"
)

const (
	opIRI  = "https://c360studio.dev/extmodel/entity/acme-files/operation/config/get"
	cfgIRI = "https://c360studio.dev/extmodel/entity/acme-files/configuration/Acme-Files/config"
)

func exporter(t *testing.T) *export.RDFExporter {
	t.Helper()
	e := export.NewRDFExporter()
	e.AddExtension(acme(t), export.FactOptions{Now: stamp})
	return e
}

func TestExportTurtle(t *testing.T) {
	output, err := exporter(t).Export(export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, output, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .")
	assert.Contains(t, output, "<"+opIRI+">\n    a <"+export.Namespace+"Operation> ;")
	assert.Contains(t, output, "<"+vocabulary.DcTitle+`> "get" ;`)
	assert.Contains(t, output, `"true"^^xsd:boolean`)
	assert.Contains(t, output, "<"+cfgIRI+">", "entity references become IRIs")
	assert.Contains(t, output, `"Reads a \"file\"."`)

	// Every subject block ends with a full stop.
	for _, block := range strings.Split(strings.TrimSpace(output), "\n\n")[1:] {
		assert.True(t, strings.HasSuffix(block, " ."), block)
	}
}

func TestExportNTriples(t *testing.T) {
	output, err := exporter(t).Export(export.FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "<"+export.EntityNamespace), line)
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
	assert.Contains(t, output,
		"<"+opIRI+"> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <"+export.Namespace+"Operation> .")
	assert.Contains(t, output, `"false"^^<http://www.w3.org/2001/XMLSchema#boolean>`)
	assert.Contains(t, output, "<"+opIRI+"> <"+export.PredicateIRI(export.ComponentBelongsTo)+"> <"+cfgIRI+"> .")
}

func TestExportJSONLD(t *testing.T) {
	output, err := exporter(t).Export(export.FormatJSONLD)
	require.NoError(t, err)

	var doc struct {
		Context map[string]string `json:"@context"`
		Graph   []map[string]any  `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc))
	assert.Equal(t, export.Namespace, doc.Context["ext"])

	var op map[string]any
	for _, node := range doc.Graph {
		if node["@id"] == opIRI {
			op = node
		}
	}
	require.NotNil(t, op)
	assert.Equal(t, []any{export.Namespace + "Operation"}, op["@type"])
	assert.Equal(t, "get", op[vocabulary.DcTitle])
	assert.Equal(t, true, op[export.Namespace+"connected"])
	assert.Equal(t, map[string]any{"@id": cfgIRI}, op[export.PredicateIRI(export.ComponentBelongsTo)])

	contains, ok := op[export.PredicateIRI(export.ComponentContains)].([]any)
	require.True(t, ok, "repeated predicates become arrays")
	assert.Len(t, contains, 2)
}

func TestExportObjectTypes(t *testing.T) {
	e := export.NewRDFExporter()
	id := "acme.extmodel.x.operation.config.run"
	e.AddEntity(export.Entity{
		ID:   id,
		Type: export.EntityOperation,
		Triples: []message.Triple{
			{Subject: id, Predicate: export.ComponentName, Object: "run"},
			{Subject: id, Predicate: export.ParameterStackable, Object: 3},
			{Subject: id, Predicate: export.ComponentConnected, Object: false},
			{Subject: id, Predicate: export.ComponentTypeName, Object: "com.acme.foo.Operations"},
		},
	})
	assert.Equal(t, 1, e.Len())

	output, err := e.Export(export.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, output, `"run"`)
	assert.Contains(t, output, `"3"^^xsd:integer`)
	assert.Contains(t, output, `"false"^^xsd:boolean`)
	assert.Contains(t, output, `"com.acme.foo.Operations"`, "dotted names that are not entities stay literals")
}

func TestExportEmptyEntity(t *testing.T) {
	e := export.NewRDFExporter()
	e.AddEntity(export.Entity{ID: "acme.extmodel.x.extension.x", Type: export.EntityExtension})

	output, err := e.Export(export.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, output, "a <"+export.Namespace+"Extension> .")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := export.NewRDFExporter().Export(export.FormatYAML)
	assert.Error(t, err)
}
