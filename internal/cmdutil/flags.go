// Package cmdutil provides shared command utilities: flag groups, config
// loading, pipeline orchestration and flag set output.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// DefaultManifestFileName is the manifest read when no path argument is given.
const DefaultManifestFileName = "buildcond.manifest.yaml"

// ResolveFlags holds flags common to commands that resolve a manifest
// (resolve, diff, watch).
type ResolveFlags struct {
	AppModules []string
}

// AddTo registers the resolve flags on the given cobra command.
func (f *ResolveFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.AppModules, "app", nil,
		"App module source path (can be repeated, overrides the manifest's appModules)")
}

// OutputFlags holds the flag set output flags.
type OutputFlags struct {
	Format  string
	OutFile string
}

// AddTo registers the output flags on the given cobra command. withFile
// adds --out-file.
func (f *OutputFlags) AddTo(cmd *cobra.Command, withFile bool) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "yaml",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
	if withFile {
		cmd.Flags().StringVar(&f.OutFile, "out-file", "",
			fmt.Sprintf("Write the flag set to a file instead of stdout (%s)", strings.Join(output.ValidFileFormats(), ", ")))
	}
}

// Parse validates the output flags and returns the selected format.
// Files cannot be written as a table.
func (f *OutputFlags) Parse() (output.Format, error) {
	format, ok := output.ParseFormat(f.Format)
	if !ok {
		return "", &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  fmt.Errorf("invalid output format %q (valid: %s)", f.Format, strings.Join(output.ValidFormats(), ", ")),
		}
	}
	if f.OutFile != "" && format == output.FormatTable {
		return "", &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  fmt.Errorf("--out-file requires one of: %s", strings.Join(output.ValidFileFormats(), ", ")),
		}
	}
	return format, nil
}

// ResolveManifestPath returns the manifest path from command args,
// defaulting to DefaultManifestFileName.
func ResolveManifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultManifestFileName
}
