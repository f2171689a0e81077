package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/opmodel/buildcond/internal/conditionals"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// BuildRows converts a flag set into table rows.
func BuildRows(b *conditionals.Build) ([]output.ScalarRow, []output.FlagRow) { //nolint:gocritic // unnamedResult: the row types name themselves
	scalars := []output.ScalarRow{
		{Name: "appNamespace", Value: b.AppNamespace},
		{Name: "appNamespaceLower", Value: b.AppNamespaceLower},
		{Name: "coreImportPath", Value: b.CoreImportPath},
		{Name: "appModuleFiles", Value: strings.Join(b.AppModuleFiles, ", ")},
	}

	flags := b.Flags()
	rows := make([]output.FlagRow, len(flags))
	for i, f := range flags {
		rows[i] = output.FlagRow{Name: f.Name, Group: f.Group, Value: f.Value}
	}
	return scalars, rows
}

// WriteBuild writes the flag set to w in the given format.
func WriteBuild(b *conditionals.Build, format output.Format, w io.Writer) error {
	if format == output.FormatTable {
		_, err := fmt.Fprintln(w, output.RenderFlagTable(BuildRows(b)))
		return err
	}
	return output.WriteDocument(b, output.DocumentOptions{Format: format, Writer: w})
}

// WriteBuildFile writes the flag set to path, replacing any existing file.
func WriteBuildFile(b *conditionals.Build, format output.Format, path string) error {
	var buf bytes.Buffer
	if err := WriteBuild(b, format, &buf); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("encoding flag set: %w", err)}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &oerrors.ExitError{
				Code: oerrors.ExitPermissionDenied,
				Err:  oerrors.NewPermissionError("cannot write output file", path, ""),
			}
		}
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("writing %s: %w", path, err)}
	}
	return nil
}

// LogChanges logs one line per changed flag.
func LogChanges(changes []conditionals.FlagChange) {
	for _, c := range changes {
		output.Info(output.FormatFlagChange(c.Name, c.From, c.To))
	}
}

// PrintError reports a failed command step. Detailed errors are printed
// in full to w below the log line.
func PrintError(w io.Writer, msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		fmt.Fprint(w, detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// ReportError prints err and returns it as a printed *ExitError. Errors that
// already are an *ExitError are returned unchanged.
func ReportError(w io.Writer, msg string, err error) error {
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	PrintError(w, msg, err)
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
