package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/storage"
)

// AnnouncementStorage persists the announcement.
type AnnouncementStorage interface {
	LoadAnnouncement(ctx context.Context) (models.Announcement, error)
	SaveAnnouncement(ctx context.Context, a models.Announcement) error
}

// DefaultAnnouncement is shown until an announcement is saved.
func DefaultAnnouncement(now time.Time) models.Announcement {
	return models.Announcement{
		Title:     "🎉 SPECIAL OFFER! 🎉",
		Message:   "Buy 1 Get the 2nd 40% Off",
		Days:      "Every Thursday & Friday on All Vapes",
		Timestamp: models.FormatTimestamp(now),
	}
}

// AnnouncementService owns the site announcement. Writes are serialized and
// persisted before they become visible; reads never block.
type AnnouncementService struct {
	storage AnnouncementStorage
	config

	mu      sync.Mutex
	current atomic.Pointer[models.Announcement]
}

// NewAnnouncementService loads the stored announcement, falling back to
// DefaultAnnouncement when none was saved yet.
func NewAnnouncementService(ctx context.Context, s AnnouncementStorage, opts ...Option) (*AnnouncementService, error) {
	svc := &AnnouncementService{storage: s, config: newConfig(opts)}

	a, err := s.LoadAnnouncement(ctx)
	switch {
	case errors.Is(err, storage.ErrNoAnnouncement):
		a = DefaultAnnouncement(svc.now())
		svc.logger.Info("no stored announcement, using default")
	case err != nil:
		return nil, fmt.Errorf("failed to load announcement: %w", err)
	}
	svc.current.Store(&a)
	return svc, nil
}

// Get returns the current announcement.
func (s *AnnouncementService) Get() models.Announcement {
	return *s.current.Load()
}

// Set replaces the announcement. title, message and days are trimmed and
// must not be empty.
func (s *AnnouncementService) Set(ctx context.Context, title, message, days string) (models.Announcement, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	days = strings.TrimSpace(days)

	if err := required(
		field{"title", title},
		field{"message", message},
		field{"days", days},
	); err != nil {
		s.logger.Info("rejected announcement update", "error", err)
		return models.Announcement{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := models.Announcement{
		Title:     title,
		Message:   message,
		Days:      days,
		Timestamp: models.FormatTimestamp(s.now()),
	}
	if err := s.storage.SaveAnnouncement(ctx, a); err != nil {
		s.logger.Error("failed to save announcement", "error", err)
		return models.Announcement{}, &StorageError{Op: "save announcement", Err: err}
	}
	s.current.Store(&a)

	s.logger.Info("announcement updated", "title", a.Title, "timestamp", a.Timestamp)
	return a, nil
}
