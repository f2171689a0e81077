package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DocumentOptions controls document output formatting.
type DocumentOptions struct {
	// Format specifies output format: "yaml" or "json"
	Format Format
	// Writer is the output destination
	Writer io.Writer
}

// WriteDocument writes a single document to the writer in the given format.
func WriteDocument(doc any, opts DocumentOptions) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(doc, opts.Writer)
	case FormatYAML, "":
		return writeYAML(doc, opts.Writer)
	default:
		return fmt.Errorf("format %s not supported for document output", opts.Format)
	}
}

// MarshalYAML encodes doc as a YAML document with two-space indentation.
func MarshalYAML(doc any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeYAML(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAML(doc any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	err := encoder.Encode(doc)
	if closeErr := encoder.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return nil
}

func writeJSON(doc any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
