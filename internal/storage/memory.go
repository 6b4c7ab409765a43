package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
)

// Memory keeps everything in process memory. Data is gone on restart.
type Memory struct {
	mu           sync.Mutex
	announcement *models.Announcement
	reviews      []models.Review
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadAnnouncement(ctx context.Context) (models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.announcement == nil {
		return models.Announcement{}, ErrNoAnnouncement
	}
	return *m.announcement, nil
}

func (m *Memory) SaveAnnouncement(ctx context.Context, a models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.announcement = &a
	return nil
}

func (m *Memory) LoadReviews(ctx context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.reviews), nil
}

func (m *Memory) InsertReview(ctx context.Context, r models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = slices.Insert(m.reviews, 0, r)
	return nil
}

func (m *Memory) DeleteReview(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = slices.DeleteFunc(m.reviews, func(r models.Review) bool { return r.ID == id })
	return nil
}

func (m *Memory) DeleteAllReviews(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = nil
	return nil
}

func (m *Memory) Close() error { return nil }
