package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
)

const (
	announcementFile = "announcement.json"
	reviewsFile      = "reviews.json"
)

// File stores the announcement and the review list as two flat JSON files
// inside a directory. Every write replaces a whole file via rename, so a
// failed write leaves the previous file in place.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates dir if needed and returns a backend rooted there.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file backend requires a data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory the files live in.
func (f *File) Dir() string { return f.dir }

func (f *File) LoadAnnouncement(ctx context.Context) (models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var a models.Announcement
	if err := f.read(announcementFile, &a); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Announcement{}, ErrNoAnnouncement
		}
		return models.Announcement{}, err
	}
	return a, nil
}

func (f *File) SaveAnnouncement(ctx context.Context, a models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(announcementFile, a)
}

func (f *File) LoadReviews(ctx context.Context) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadReviews()
}

func (f *File) InsertReview(ctx context.Context, r models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reviews, err := f.loadReviews()
	if err != nil {
		return err
	}
	return f.write(reviewsFile, slices.Insert(reviews, 0, r))
}

func (f *File) DeleteReview(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reviews, err := f.loadReviews()
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(reviews, func(r models.Review) bool { return r.ID == id })
	return f.write(reviewsFile, kept)
}

func (f *File) DeleteAllReviews(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(reviewsFile, []models.Review{})
}

func (f *File) Close() error { return nil }

func (f *File) loadReviews() ([]models.Review, error) {
	var reviews []models.Review
	if err := f.read(reviewsFile, &reviews); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Review{}, nil
		}
		return nil, err
	}
	return reviews, nil
}

func (f *File) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (f *File) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
