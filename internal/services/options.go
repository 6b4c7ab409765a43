package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type config struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() (string, error)
}

// Option customizes a service.
type Option func(*config)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDGenerator replaces the review id generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(c *config) { c.newID = gen }
}

func newConfig(opts []Option) config {
	c := config{
		logger: slog.Default(),
		now:    time.Now,
		newID:  newReviewID,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// newReviewID returns a UUIDv7: time ordered, unique within the process.
func newReviewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
