package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/config"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// configHeader is written above the generated config file.
const configHeader = "# buildcond build configuration\n# Every key can be overridden with a BUILDCOND_ environment variable.\n\n"

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the build configuration",
		Long: `Manage the build configuration file (buildcond.yaml by default).

Use --config or BUILDCOND_CONFIG to point at a different file.`,
	}

	c.AddCommand(newConfigInitCmd(cfg))
	c.AddCommand(newConfigVetCmd(cfg))
	return c
}

func newConfigInitCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new configuration file",
		Long:  `Create a new build configuration file with default values.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdutil.GlobalConfig, force bool) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.FileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath),
			oerrors.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("Config file created: %s", expandedPath)))
	return nil
}

func newConfigVetCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the build configuration file against the embedded CUE schema.

Environment overrides are applied before validation, exactly as for resolve.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdutil.GlobalConfig) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.FileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewExitError(
			fmt.Errorf("config file not found: %s", expandedPath),
			oerrors.ExitNotFound,
		)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if _, err := validator.ValidateFile(expandedPath); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			cmdutil.PrintConfigErrors(c.ErrOrStderr(), expandedPath, validationErrs)
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("Config file is valid: %s", expandedPath)))
	return nil
}
