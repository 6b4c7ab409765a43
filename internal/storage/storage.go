// Package storage holds the persistence backends behind the announcement and
// review stores. Every backend implements the same Backend contract so the
// services never know where records end up.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoAnnouncement is returned by LoadAnnouncement when nothing was saved yet.
var ErrNoAnnouncement = errors.New("no announcement stored")

// Supported backend kinds.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindBadger = "badger"
	KindSQLite = "sqlite"
	KindMongo  = "mongo"
)

// Kinds lists every backend Open understands.
var Kinds = []string{KindMemory, KindFile, KindBadger, KindSQLite, KindMongo}

// Backend persists the single announcement and the review list.
//
// LoadReviews returns reviews newest first. InsertReview makes r the newest
// review. Deleting an id that is not stored is not an error.
type Backend interface {
	LoadAnnouncement(ctx context.Context) (models.Announcement, error)
	SaveAnnouncement(ctx context.Context, a models.Announcement) error

	LoadReviews(ctx context.Context) ([]models.Review, error)
	InsertReview(ctx context.Context, r models.Review) error
	DeleteReview(ctx context.Context, id string) error
	DeleteAllReviews(ctx context.Context) error

	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Kind string

	DataDir    string // file
	BadgerPath string // badger, empty means in-memory
	SQLitePath string // sqlite

	MongoDatabase *mongo.Database // mongo, connection owned by the caller
}

// Open builds the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Kind {
	case KindMemory, "":
		return NewMemory(), nil
	case KindFile:
		return NewFile(opts.DataDir)
	case KindBadger:
		return OpenBadger(opts.BadgerPath)
	case KindSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case KindMongo:
		if opts.MongoDatabase == nil {
			return nil, errors.New("mongo backend requires a database handle")
		}
		return NewMongo(opts.MongoDatabase), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
