package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/crusader2000/sunpy/pkg/errors"
)

//go:embed docs/*.md
var guideFS embed.FS

var guideCmd = &cobra.Command{
	Use:   "guide [topic]",
	Short: "Show documentation on manifest syntax and behavior",
	Long: `Guide renders the built-in documentation. Without a topic it lists
what is available.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			topics, err := listTopics()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
			for _, t := range topics {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
			}
			return nil
		}

		content, err := guideFS.ReadFile("docs/" + args[0] + ".md")
		if err != nil {
			return errors.Newf(errors.ErrNotFound, "unknown topic %q", args[0])
		}

		fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(string(content)))
		return nil
	},
}

// listTopics returns the embedded topic names without extension
func listTopics() ([]string, error) {
	entries, err := guideFS.ReadDir("docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read embedded docs")
	}

	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

// renderMarkdown converts markdown to terminal output, falling back to
// the raw text when rendering fails
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
