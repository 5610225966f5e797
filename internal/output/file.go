package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dtroshin/newsforge/internal/batch"
)

type batchRecord struct {
	GeneratedAt string   `json:"generated_at"`
	Count       int      `json:"count"`
	Posts       []string `json:"posts"`
}

// FileWriter serializes a batch to a JSON file. The file is rewritten on
// every run; there is no append mode.
type FileWriter struct {
	path string
}

// NewFile creates a file writer for path.
func NewFile(path string) (*FileWriter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("output: file path is required")
	}
	return &FileWriter{path: path}, nil
}

// Path returns the destination path.
func (f *FileWriter) Path() string {
	return f.path
}

// Write serializes the batch. An empty batch still produces a valid file
// with count 0 and an empty posts array.
func (f *FileWriter) Write(b batch.Batch) error {
	rec := batchRecord{
		GeneratedAt: b.GeneratedAt.Format(time.RFC3339),
		Count:       b.Count(),
		Posts:       b.Bodies(),
	}

	out, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode batch: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}
