// Package store keeps a local archive of generated batches so later
// runs can show history and avoid repeating headlines.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dtroshin/newsforge/internal/batch"
)

// Store is a sqlite-backed batch archive.
type Store struct {
	db *sql.DB
}

// BatchSummary is one archived batch without its post bodies.
type BatchSummary struct {
	ID          string
	GeneratedAt time.Time
	PostCount   int
}

// ArchivedPost is one post row from the archive.
type ArchivedPost struct {
	Body         string
	Chars        int
	LinkIncluded bool
	Source       string
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveBatch records a batch and all its posts in one transaction.
func (s *Store) SaveBatch(ctx context.Context, b batch.Batch) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("batch id is required")
	}
	if b.GeneratedAt.IsZero() {
		return errors.New("generated_at is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO batches (id, generated_at, post_count)
		VALUES (?, ?, ?)
	`, b.ID, formatTime(b.GeneratedAt), b.Count()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, p := range b.Posts {
		var sourceVal sql.NullString
		if strings.TrimSpace(p.Source) != "" {
			sourceVal = sql.NullString{String: p.Source, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO posts (batch_id, body, chars, link_included, source, headline_hash)
			VALUES (?, ?, ?, ?, ?, ?)
		`, b.ID, p.Body, p.Length, boolToInt(p.LinkIncluded), sourceVal, HeadlineHash(p.Headline)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ListBatches returns up to limit batches, most recent first.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, generated_at, post_count
		FROM batches
		ORDER BY generated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []BatchSummary
	for rows.Next() {
		var (
			bs          BatchSummary
			generatedAt string
		)
		if err := rows.Scan(&bs.ID, &generatedAt, &bs.PostCount); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		bs.GeneratedAt, err = parseTime(generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse generated_at: %w", err)
		}
		batches = append(batches, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	return batches, nil
}

// PostsForBatch returns the posts of one batch in insertion order.
func (s *Store) PostsForBatch(ctx context.Context, batchID string) ([]ArchivedPost, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(batchID) == "" {
		return nil, errors.New("batch id is required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT body, chars, link_included, source
		FROM posts
		WHERE batch_id = ?
		ORDER BY id ASC
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []ArchivedPost
	for rows.Next() {
		var (
			p         ArchivedPost
			linkVal   int
			sourceVal sql.NullString
		)
		if err := rows.Scan(&p.Body, &p.Chars, &linkVal, &sourceVal); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.LinkIncluded = linkVal != 0
		if sourceVal.Valid {
			p.Source = sourceVal.String
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// SeenHeadlines returns the headline hashes archived since the given
// time, for skipping already-posted headlines.
func (s *Store) SeenHeadlines(ctx context.Context, since time.Time) (map[string]bool, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.headline_hash
		FROM posts p
		JOIN batches b ON b.id = p.batch_id
		WHERE b.generated_at >= ?
	`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("query seen headlines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]bool)
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("scan headline hash: %w", err)
		}
		seen[hash] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate headline hashes: %w", err)
	}

	return seen, nil
}

// PruneOld deletes batches older than retainDays; their posts cascade.
// Returns the number of batches removed.
func (s *Store) PruneOld(ctx context.Context, retainDays int) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if retainDays <= 0 {
		return 0, nil
	}

	cutoff := formatTime(time.Now().AddDate(0, 0, -retainDays))

	res, err := s.db.ExecContext(ctx, "DELETE FROM batches WHERE generated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune old batches: %w", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}

// HeadlineHash returns the archive key for a headline text.
func HeadlineHash(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return time.Time{}.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
