package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/extmodel/parser"
)

// Render writes extensions to w in the given format.
func Render(w io.Writer, format Format, xs []*parser.Extension, opts FactOptions) error {
	switch {
	case format == FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocuments(xs)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case format == FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocuments(xs)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case format.IsRDF():
		e := NewRDFExporter()
		for _, x := range xs {
			e.AddExtension(x, opts)
		}
		out, err := e.Export(format)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
