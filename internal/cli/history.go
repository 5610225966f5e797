package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dtroshin/newsforge/internal/config"
	"github.com/dtroshin/newsforge/internal/store"
)

var (
	historyLimit int
	historyPosts bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent batches from the archive",
	RunE:  historyAction,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of batches to show")
	historyCmd.Flags().BoolVar(&historyPosts, "posts", false, "include post bodies")
	rootCmd.AddCommand(historyCmd)
}

func historyAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.Open(cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()

	batches, err := db.ListBatches(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}

	if len(batches) == 0 {
		fmt.Println("Archive is empty. Run `newsforge run` first.")
		return nil
	}

	for _, bs := range batches {
		fmt.Printf("%s — %d posts, %s\n", bs.ID, bs.PostCount, humanize.Time(bs.GeneratedAt))
		if !historyPosts {
			continue
		}
		posts, err := db.PostsForBatch(ctx, bs.ID)
		if err != nil {
			return fmt.Errorf("get posts for %s: %w", bs.ID, err)
		}
		for _, p := range posts {
			fmt.Printf("  [%d] %s\n", p.Chars, firstLine(p.Body))
		}
		fmt.Println()
	}
	return nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
