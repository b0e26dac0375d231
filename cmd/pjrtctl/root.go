package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pluginPath string

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "pjrtctl",
	Short: "Run demo programs against a PJRT plugin",
	Long: `pjrtctl loads a PJRT C plugin and runs one of a handful of demo
StableHLO programs against it: a scalar add, a vector identity, and an
MNIST training loop. Each subcommand is a small end-to-end exercise of
the pjrt wrapper package.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&pluginPath, "plugin-path", "", "path to the PJRT plugin shared library (falls back to PJRT_PLUGIN_PATH)")
	viper.BindPFlag("plugin-path", rootCmd.PersistentFlags().Lookup("plugin-path"))
	viper.BindEnv("plugin-path", "PJRT_PLUGIN_PATH")
}

func initConfig() {}
