package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// announcementID is the _id of the one announcement document.
const announcementID = "current"

type announcementDoc struct {
	ID                  string `bson:"_id"`
	models.Announcement `bson:",inline"`
}

// Mongo stores the announcement and the reviews in two collections.
// The client connection belongs to the caller; Close does not disconnect.
type Mongo struct {
	announcement *mongo.Collection
	reviews      *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		announcement: db.Collection("announcement"),
		reviews:      db.Collection("reviews"),
	}
}

func (m *Mongo) LoadAnnouncement(ctx context.Context) (models.Announcement, error) {
	var doc announcementDoc
	err := m.announcement.FindOne(ctx, bson.M{"_id": announcementID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Announcement{}, ErrNoAnnouncement
		}
		return models.Announcement{}, fmt.Errorf("failed to fetch announcement: %w", err)
	}
	return doc.Announcement, nil
}

func (m *Mongo) SaveAnnouncement(ctx context.Context, a models.Announcement) error {
	doc := announcementDoc{ID: announcementID, Announcement: a}
	_, err := m.announcement.ReplaceOne(ctx, bson.M{"_id": announcementID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	return nil
}

func (m *Mongo) LoadReviews(ctx context.Context) ([]models.Review, error) {
	// review ids are UUIDv7, so _id breaks ties between reviews of the same millisecond
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.reviews.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (m *Mongo) InsertReview(ctx context.Context, r models.Review) error {
	if _, err := m.reviews.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to insert review %s: %w", r.ID, err)
	}
	return nil
}

func (m *Mongo) DeleteReview(ctx context.Context, id string) error {
	if _, err := m.reviews.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

func (m *Mongo) DeleteAllReviews(ctx context.Context) error {
	if _, err := m.reviews.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

func (m *Mongo) Close() error { return nil }
