// Package cmd wires up the command line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fluwatch/fluwatch-go/cmd/classify"
	"github.com/fluwatch/fluwatch-go/cmd/server"
	"github.com/fluwatch/fluwatch-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fluwatch",
		Short: "FluWatch chicken thermal health CLI",
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	rootCmd.AddCommand(
		server.Command(settings),
		classify.Command(settings),
	)
	return rootCmd
}
