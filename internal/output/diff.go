package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffOptions configures a document diff.
type DiffOptions struct {
	// FromName and ToName label the two sides in the report.
	FromName string
	ToName   string

	// UseColor enables colorized diff output.
	UseColor bool
}

// DiffDocuments computes a YAML-aware diff between two documents using dyff.
// An empty string means the documents are equal.
func DiffDocuments(from, to any, opts DiffOptions) (string, error) {
	fromYAML, err := MarshalYAML(from)
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", opts.FromName, err)
	}

	toYAML, err := MarshalYAML(to)
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", opts.ToName, err)
	}

	return diffYAML(fromYAML, toYAML, opts)
}

func diffYAML(from, to []byte, opts DiffOptions) (string, error) {
	if len(from) == 0 && len(to) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput(opts.FromName, from)
	if err != nil {
		return "", fmt.Errorf("parsing %s YAML: %w", opts.FromName, err)
	}

	toInput, err := parseYAMLInput(opts.ToName, to)
	if err != nil {
		return "", fmt.Errorf("parsing %s YAML: %w", opts.ToName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, opts.UseColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// DiffSummary returns a summary line for a number of changed flags.
func DiffSummary(changed int) string {
	switch changed {
	case 0:
		return "No changes"
	case 1:
		return "1 flag changed"
	default:
		return fmt.Sprintf("%d flags changed", changed)
	}
}
