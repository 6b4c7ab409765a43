package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS announcement (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	title     TEXT NOT NULL,
	message   TEXT NOT NULL,
	days      TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reviews (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	reviewer_name TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	rating        INTEGER NOT NULL,
	image         TEXT,
	date          TEXT NOT NULL
);`

// SQLite stores records in a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite backend requires a database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) LoadAnnouncement(ctx context.Context) (models.Announcement, error) {
	var a models.Announcement
	err := s.db.QueryRowContext(ctx,
		`SELECT title, message, days, timestamp FROM announcement WHERE id = 1`,
	).Scan(&a.Title, &a.Message, &a.Days, &a.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Announcement{}, ErrNoAnnouncement
		}
		return models.Announcement{}, fmt.Errorf("failed to load announcement: %w", err)
	}
	return a, nil
}

func (s *SQLite) SaveAnnouncement(ctx context.Context, a models.Announcement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO announcement (id, title, message, days, timestamp) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			message = excluded.message,
			days = excluded.days,
			timestamp = excluded.timestamp`,
		a.Title, a.Message, a.Days, a.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	return nil
}

func (s *SQLite) LoadReviews(ctx context.Context) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reviewer_name, title, description, rating, image, date
		FROM reviews ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		var image sql.NullString
		if err := rows.Scan(&r.ID, &r.ReviewerName, &r.Title, &r.Description, &r.Rating, &image, &r.Date); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		if image.Valid {
			r.Image = &image.String
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *SQLite) InsertReview(ctx context.Context, r models.Review) error {
	var image sql.NullString
	if r.Image != nil {
		image = sql.NullString{String: *r.Image, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, reviewer_name, title, description, rating, image, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ReviewerName, r.Title, r.Description, r.Rating, image, r.Date)
	if err != nil {
		return fmt.Errorf("failed to insert review %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLite) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

func (s *SQLite) DeleteAllReviews(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
