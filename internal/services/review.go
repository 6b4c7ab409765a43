package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
)

// ReviewStorage persists reviews, newest first.
type ReviewStorage interface {
	LoadReviews(ctx context.Context) ([]models.Review, error)
	InsertReview(ctx context.Context, r models.Review) error
	DeleteReview(ctx context.Context, id string) error
	DeleteAllReviews(ctx context.Context) error
}

// ReviewInput is a review as submitted. Rating is the raw text, empty when
// the field was absent.
type ReviewInput struct {
	ReviewerName string
	Title        string
	Description  string
	Rating       string
}

// ReviewService owns the review list. Writes are serialized and persisted
// before they become visible; List returns a snapshot without locking.
type ReviewService struct {
	storage ReviewStorage
	config

	mu      sync.Mutex
	reviews atomic.Pointer[[]models.Review]
}

// NewReviewService loads the stored reviews.
func NewReviewService(ctx context.Context, s ReviewStorage, opts ...Option) (*ReviewService, error) {
	svc := &ReviewService{storage: s, config: newConfig(opts)}

	reviews, err := s.LoadReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	svc.reviews.Store(&reviews)
	svc.logger.Info("reviews loaded", "count", len(reviews))
	return svc, nil
}

// List returns every review, newest first.
func (s *ReviewService) List() []models.Review {
	return slices.Clone(*s.reviews.Load())
}

// Add validates in, stores a new review in front of the list and returns it.
func (s *ReviewService) Add(ctx context.Context, in ReviewInput) (models.Review, error) {
	name := strings.TrimSpace(in.ReviewerName)
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if err := required(
		field{"reviewerName", name},
		field{"reviewTitle", title},
		field{"reviewDescription", description},
	); err != nil {
		s.logger.Info("rejected review", "error", err)
		return models.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to generate review id: %w", err)
	}
	r := models.Review{
		ID:           id,
		ReviewerName: name,
		Title:        title,
		Description:  description,
		Rating:       ParseRating(in.Rating),
		Date:         models.FormatTimestamp(s.now()),
	}
	if err := s.storage.InsertReview(ctx, r); err != nil {
		s.logger.Error("failed to save review", "id", r.ID, "error", err)
		return models.Review{}, &StorageError{Op: "save review", Err: err}
	}

	current := *s.reviews.Load()
	next := make([]models.Review, 0, len(current)+1)
	next = append(next, r)
	next = append(next, current...)
	s.reviews.Store(&next)

	s.logger.Info("review added", "id", r.ID, "rating", r.Rating)
	return r, nil
}

// Remove deletes the review with id. It returns ErrNotFound if there is none.
func (s *ReviewService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := *s.reviews.Load()
	i := slices.IndexFunc(current, func(r models.Review) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("review %q: %w", id, ErrNotFound)
	}

	if err := s.storage.DeleteReview(ctx, id); err != nil {
		s.logger.Error("failed to delete review", "id", id, "error", err)
		return &StorageError{Op: "delete review", Err: err}
	}

	next := slices.Delete(slices.Clone(current), i, i+1)
	s.reviews.Store(&next)

	s.logger.Info("review deleted", "id", id)
	return nil
}

// Clear deletes every review and reports how many there were.
func (s *ReviewService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(*s.reviews.Load())
	if err := s.storage.DeleteAllReviews(ctx); err != nil {
		s.logger.Error("failed to clear reviews", "error", err)
		return 0, &StorageError{Op: "clear reviews", Err: err}
	}

	empty := []models.Review{}
	s.reviews.Store(&empty)

	s.logger.Info("reviews cleared", "count", n)
	return n, nil
}
