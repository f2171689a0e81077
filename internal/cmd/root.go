// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/config"
	"github.com/opmodel/buildcond/internal/output"
)

// NewRootCmd creates the root command for the buildcond CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	// Populated in PersistentPreRunE, read by every sub-command.
	cfg := &cmdutil.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "buildcond",
		Short: "Resolve build conditionals for a component app",
		Long: `buildcond resolves the build conditionals of a component app: the flag set
that tells the bundler which optional runtime capabilities the app uses.

It reads the module manifest written by the compiler and the build
configuration, inspects the app components and every module they import,
and prints the resolved flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			initializeGlobals(c, cfg, configFlag, verboseFlag, timestampsFlag)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BUILDCOND_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewResolveCmd(cfg))
	rootCmd.AddCommand(NewDefaultsCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(NewWatchCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and resolves the config file path.
// The config itself is loaded by the commands that need it.
func initializeGlobals(c *cobra.Command, cfg *cmdutil.GlobalConfig, configFlag string, verbose, timestamps bool) {
	logCfg := output.LogConfig{
		Verbose: verbose,
	}
	// nil means SetupLogging defaults to timestamps on
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	}
	output.SetupLogging(logCfg)

	cfg.Verbose = verbose
	cfg.ConfigPath = config.ResolveConfigPath(configFlag)
	cfg.ConfigPath.LogResolved()
}
