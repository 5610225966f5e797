package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtroshin/newsforge/internal/batch"
	"github.com/dtroshin/newsforge/internal/compose"
)

func testBatch(posts ...compose.Post) batch.Batch {
	return batch.Batch{
		ID:          "b-1",
		GeneratedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Posts:       posts,
	}
}

func TestFileWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	fw, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}

	b := testBatch(
		compose.Post{Body: "🔥 Breaking: big news\nhttps://example.com/1", Length: 42},
		compose.Post{Body: "📢 second item", Length: 14},
	)
	if err := fw.Write(b); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var rec struct {
		GeneratedAt string   `json:"generated_at"`
		Count       int      `json:"count"`
		Posts       []string `json:"posts"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, data)
	}

	if rec.Count != 2 {
		t.Errorf("count = %d, want 2", rec.Count)
	}
	if len(rec.Posts) != 2 || rec.Posts[0] != b.Posts[0].Body {
		t.Errorf("posts = %v", rec.Posts)
	}
	if _, err := time.Parse(time.RFC3339, rec.GeneratedAt); err != nil {
		t.Errorf("generated_at %q is not RFC3339: %v", rec.GeneratedAt, err)
	}
}

func TestFileWrite_EmptyBatchStillValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	fw, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}

	if err := fw.Write(testBatch()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `"posts": []`) {
		t.Errorf("empty batch should serialize posts as [], got:\n%s", data)
	}
	if !strings.Contains(string(data), `"count": 0`) {
		t.Errorf("empty batch should have count 0, got:\n%s", data)
	}
}

func TestFileWrite_OverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	fw, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}

	big := testBatch(
		compose.Post{Body: strings.Repeat("long post body ", 20), Length: 280},
		compose.Post{Body: "second", Length: 6},
	)
	if err := fw.Write(big); err != nil {
		t.Fatalf("first write: %v", err)
	}

	small := testBatch(compose.Post{Body: "only one", Length: 8})
	if err := fw.Write(small); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var rec struct {
		Count int      `json:"count"`
		Posts []string `json:"posts"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Count != 1 || len(rec.Posts) != 1 {
		t.Errorf("file was not overwritten: count = %d, posts = %v", rec.Count, rec.Posts)
	}
}

func TestNewFile_EmptyPath(t *testing.T) {
	if _, err := NewFile("  "); err == nil {
		t.Error("expected error for empty path")
	}
}
