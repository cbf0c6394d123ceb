package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crusader2000/sunpy/pkg/config"
	"github.com/crusader2000/sunpy/pkg/filesystem"
	"github.com/crusader2000/sunpy/pkg/manifest"
	"github.com/crusader2000/sunpy/pkg/pattern"
)

var checkManifestFlag string

var checkCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Validate the manifest without resolving it",
	Long: `Check parses and compiles every directive in the manifest, reporting
the first malformed line or invalid pattern with its line number. No file
tree is read and nothing is resolved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("manifest") {
			cfg.Manifest.File = checkManifestFlag
		}

		path := filepath.Join(root, cfg.Manifest.File)
		directives, err := manifest.Load(filesystem.NewOS(), path)
		if err != nil {
			return err
		}
		if _, err := pattern.CompileAll(directives); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d directive(s) OK\n", path, len(directives))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkManifestFlag, "manifest", "m", "", "Manifest file relative to root (default from config)")
}
