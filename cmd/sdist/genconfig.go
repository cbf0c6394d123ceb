package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crusader2000/sunpy/pkg/config"
)

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Print the default configuration as TOML",
	Long: `Genconfig prints the built-in default configuration. Redirect it to
.sdist.toml in your packaging root as a starting point for customization.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.DefaultTOML()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
