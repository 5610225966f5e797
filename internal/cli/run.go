package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dtroshin/newsforge/internal/batch"
	"github.com/dtroshin/newsforge/internal/compose"
	"github.com/dtroshin/newsforge/internal/config"
	"github.com/dtroshin/newsforge/internal/output"
	"github.com/dtroshin/newsforge/internal/source"
	"github.com/dtroshin/newsforge/internal/store"
)

var (
	runCount  int
	runDemo   bool
	runOut    string
	runDryRun bool
	noColor   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch headlines, compose posts, print and save them",
	RunE:  runAction,
}

func init() {
	runCmd.Flags().IntVar(&runCount, "count", 0, "number of posts to generate (overrides config and NUM_POSTS)")
	runCmd.Flags().BoolVar(&runDemo, "demo", false, "use demo headlines instead of fetching feeds")
	runCmd.Flags().StringVar(&runOut, "out", "", "output file path (overrides config)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print posts without writing the file or the archive")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	rootCmd.AddCommand(runCmd)
}

// shuffleFunc reorders headlines for variety between runs. Swappable in
// tests for deterministic output.
var shuffleFunc = func(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

func runAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runCount > 0 {
		cfg.Posts.Count = runCount
	}
	if runDemo {
		cfg.Posts.Demo = true
	}
	if runOut != "" {
		cfg.Output.Path = runOut
	}

	ctx := cmd.Context()

	src, err := buildSource(cfg)
	if err != nil {
		return fmt.Errorf("build source: %w", err)
	}

	if cfg.Posts.Demo {
		fmt.Println("Using demo headlines (demo mode enabled)")
	} else {
		fmt.Println("Fetching news headlines...")
	}
	headlines, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}

	var db *store.Store
	if cfg.Archive.Enabled && !runDryRun {
		db, err = store.Open(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer func() { _ = db.Close() }()

		if cfg.Archive.SkipSeen {
			seenSince := time.Now().AddDate(0, 0, -cfg.Archive.RetainDays)
			seen, err := db.SeenHeadlines(ctx, seenSince)
			if err != nil {
				return fmt.Errorf("load seen headlines: %w", err)
			}
			headlines = dropSeen(headlines, seen)
		}
	}

	shuffleFunc(len(headlines), func(i, j int) {
		headlines[i], headlines[j] = headlines[j], headlines[i]
	})

	counter, _ := compose.NewCounter(cfg.Compose.Counting)
	composer, err := compose.NewComposer(cfg.Compose.Limit, counter)
	if err != nil {
		return fmt.Errorf("create composer: %w", err)
	}
	selector, err := compose.NewSelector(nil, cfg.Compose.Selection)
	if err != nil {
		return fmt.Errorf("create selector: %w", err)
	}
	gen, err := batch.NewGenerator(composer, selector)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}

	b, err := gen.Generate(headlines, cfg.Posts.Count)
	if err != nil {
		return fmt.Errorf("generate posts: %w", err)
	}

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	output.NewConsole(color, composer.Limit()).Print(os.Stdout, b)

	if runDryRun {
		return nil
	}

	fw, err := output.NewFile(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("create file writer: %w", err)
	}
	if err := fw.Write(b); err != nil {
		return fmt.Errorf("write batch file: %w", err)
	}
	fmt.Printf("Saved %d posts to %s\n", b.Count(), cfg.Output.Path)

	if db != nil {
		if err := db.SaveBatch(ctx, b); err != nil {
			return fmt.Errorf("archive batch: %w", err)
		}
		pruned, err := db.PruneOld(ctx, cfg.Archive.RetainDays)
		if err != nil {
			return fmt.Errorf("prune archive: %w", err)
		}
		if pruned > 0 {
			fmt.Printf("Pruned %d old batches from the archive\n", pruned)
		}
	}

	return nil
}

func buildSource(cfg *config.Config) (source.Source, error) {
	demo := source.NewDemo()
	if cfg.Posts.Demo {
		return demo, nil
	}
	rss, err := source.NewRSS(cfg.Feeds)
	if err != nil {
		return nil, err
	}
	return source.NewFallback(rss, demo)
}

func dropSeen(headlines []source.Headline, seen map[string]bool) []source.Headline {
	if len(seen) == 0 {
		return headlines
	}
	kept := headlines[:0]
	skipped := 0
	for _, h := range headlines {
		if seen[store.HeadlineHash(h.Text)] {
			skipped++
			continue
		}
		kept = append(kept, h)
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d headlines already posted\n", skipped)
	}
	return kept
}
