package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dtroshin/newsforge/internal/compose"
	"github.com/dtroshin/newsforge/internal/config"
	"github.com/dtroshin/newsforge/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and archive health",
	RunE:  doctorAction,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorAction(_ *cobra.Command, _ []string) error {
	ok := true

	// Config dir
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		printCheck(false, "config directory %s", configDir)
		ok = false
	} else {
		printCheck(true, "config directory %s", configDir)
	}

	// Config
	cfg, err := config.Load(configDir)
	if err != nil {
		printCheck(false, "config.yaml: %v", err)
		ok = false
	} else {
		printCheck(true, "config.yaml (%d feeds, %d posts per run, limit %d)",
			len(cfg.Feeds), cfg.Posts.Count, cfg.Compose.Limit)
	}

	// Template set
	if _, err := compose.NewSelector(nil, compose.SelectCycle); err != nil {
		printCheck(false, "templates: %v", err)
		ok = false
	} else {
		printCheck(true, "templates (%d builtin)", len(compose.Builtin()))
	}

	if cfg != nil {
		// Output destination
		outDir := filepath.Dir(cfg.Output.Path)
		if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
			printCheck(false, "output directory %s", outDir)
			ok = false
		} else {
			printCheck(true, "output %s", cfg.Output.Path)
		}

		// Archive
		if cfg.Archive.Enabled {
			db, err := store.Open(cfg.Archive.Path)
			if err != nil {
				printCheck(false, "archive: %v", err)
				ok = false
			} else {
				_ = db.Close()
				printCheck(true, "archive %s", cfg.Archive.Path)
			}
		} else {
			printCheck(true, "archive disabled")
		}
	}

	if !ok {
		return errors.New("some checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

func printCheck(ok bool, format string, args ...any) {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	fmt.Printf("  %s %s\n", mark, fmt.Sprintf(format, args...))
}
