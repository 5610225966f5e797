package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dtroshin/newsforge/internal/compose"
	"github.com/dtroshin/newsforge/internal/config"
	"github.com/dtroshin/newsforge/internal/source"
)

var (
	previewLink   string
	previewSource string
)

var previewCmd = &cobra.Command{
	Use:   "preview <headline>",
	Short: "Compose one headline against every template",
	Args:  cobra.ExactArgs(1),
	RunE:  previewAction,
}

func init() {
	previewCmd.Flags().StringVar(&previewLink, "link", "", "article link to append when it fits")
	previewCmd.Flags().StringVar(&previewSource, "source", "", "source name shown in the output")
	previewCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	rootCmd.AddCommand(previewCmd)
}

func previewAction(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	counter, _ := compose.NewCounter(cfg.Compose.Counting)
	composer, err := compose.NewComposer(cfg.Compose.Limit, counter)
	if err != nil {
		return fmt.Errorf("create composer: %w", err)
	}

	h := source.Headline{
		Text:   args[0],
		Source: previewSource,
		Link:   previewLink,
	}

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	dim := func(s string) string {
		if !color {
			return s
		}
		return "\033[2m" + s + "\033[0m"
	}

	for _, tpl := range compose.Builtin() {
		post, err := composer.Compose(h, tpl)
		if err != nil {
			return fmt.Errorf("compose with %s: %w", tpl.Name, err)
		}
		fmt.Printf("%s:\n%s\n", tpl.Name, post.Body)
		note := fmt.Sprintf("%d/%d characters", post.Length, composer.Limit())
		if post.LinkIncluded {
			note += ", link included"
		}
		fmt.Println(dim(note))
		fmt.Println()
	}
	return nil
}
