package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crusader2000/sunpy/pkg/config"
	"github.com/crusader2000/sunpy/pkg/filesystem"
	"github.com/crusader2000/sunpy/pkg/logging"
	"github.com/crusader2000/sunpy/pkg/manifest"
	"github.com/crusader2000/sunpy/pkg/output"
	"github.com/crusader2000/sunpy/pkg/resolver"
)

var (
	resolveManifestFlag string
	resolvePolicyFlag   string
	resolveFormatFlag   string
	resolveSummaryFlag  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [root]",
	Short: "Resolve the manifest into the final file list",
	Long: `Resolve reads the manifest in the given packaging root (default "."),
snapshots the source tree, applies every directive in declaration order and
prints the resulting file list. The output is sorted and free of duplicates,
ready for an archiver to consume.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.resolve")

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("manifest") {
			cfg.Manifest.File = resolveManifestFlag
		}
		if cmd.Flags().Changed("policy") {
			cfg.Resolve.Policy = resolvePolicyFlag
		}
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = resolveFormatFlag
		}
		if cmd.Flags().Changed("summary") {
			cfg.Output.Summary = resolveSummaryFlag
		}

		policy, err := resolver.ParsePolicy(cfg.Resolve.Policy)
		if err != nil {
			return err
		}
		format, err := output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}

		fsys := filesystem.NewOS()
		directives, err := manifest.Load(fsys, filepath.Join(root, cfg.Manifest.File))
		if err != nil {
			return err
		}

		tree, err := resolver.Snapshot(fsys, root)
		if err != nil {
			return err
		}
		if tree.Len() == 0 {
			logger.Warn().Str("root", root).Msg("Source tree is empty")
		}

		result, err := resolver.New(policy).Resolve(tree, directives)
		if err != nil {
			return err
		}
		if len(result.Files) == 0 {
			logger.Warn().Str("root", root).Msg("Manifest resolved to an empty file list")
		}

		if err := output.WriteFiles(cmd.OutOrStdout(), result.Files, format); err != nil {
			return err
		}

		if cfg.Output.Summary {
			return output.WriteSummary(cmd.ErrOrStderr(), result, output.ColorEnabled(os.Stderr))
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveManifestFlag, "manifest", "m", "", "Manifest file relative to root (default from config)")
	resolveCmd.Flags().StringVar(&resolvePolicyFlag, "policy", "", "Global-exclude policy: sequential or deferred-global-exclude")
	resolveCmd.Flags().StringVarP(&resolveFormatFlag, "format", "f", "", "Output format: text, json or yaml")
	resolveCmd.Flags().BoolVar(&resolveSummaryFlag, "summary", false, "Print a per-directive summary to stderr")
}
