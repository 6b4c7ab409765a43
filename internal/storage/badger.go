package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
)

// Key layout:
//
//	announcement          -> JSON announcement
//	review/<seq>          -> JSON review, seq zero padded so keys sort by insertion
//	reviewid/<id>         -> review/<seq> key of that review
//	seq/review            -> badger sequence
var (
	keyAnnouncement   = []byte("announcement")
	prefixReview      = []byte("review/")
	prefixReviewIndex = []byte("reviewid/")
	keyReviewSeq      = []byte("seq/review")
)

// Badger stores records in an embedded Badger database.
type Badger struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadger opens or creates a database at path. An empty path opens an
// in-memory database.
func OpenBadger(path string) (*Badger, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	seq, err := db.GetSequence(keyReviewSeq, 100)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("review sequence: %w", err)
	}
	return &Badger{db: db, seq: seq}, nil
}

func (b *Badger) LoadAnnouncement(ctx context.Context) (models.Announcement, error) {
	var a models.Announcement
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyAnnouncement)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNoAnnouncement
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &a)
		})
	})
	return a, err
}

func (b *Badger) SaveAnnouncement(ctx context.Context, a models.Announcement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyAnnouncement, data)
	})
}

func (b *Badger) LoadReviews(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefixReview
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration has to start past the last key of the prefix.
		start := append(append([]byte{}, prefixReview...), 0xFF)
		for it.Seek(start); it.ValidForPrefix(prefixReview); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r models.Review
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				reviews = append(reviews, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return reviews, err
}

func (b *Badger) InsertReview(ctx context.Context, r models.Review) error {
	n, err := b.seq.Next()
	if err != nil {
		return fmt.Errorf("next review sequence: %w", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := fmt.Appendf(nil, "%s%020d", prefixReview, n)
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(reviewIndexKey(r.ID), key)
	})
}

func (b *Badger) DeleteReview(ctx context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(reviewIndexKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(reviewIndexKey(id))
	})
}

func (b *Badger) DeleteAllReviews(ctx context.Context) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, prefix := range [][]byte{prefixReview, prefixReviewIndex} {
			keys, err := keysWithPrefix(txn, prefix)
			if err != nil {
				return err
			}
			for _, k := range keys {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (b *Badger) Close() error {
	if err := b.seq.Release(); err != nil {
		b.db.Close()
		return fmt.Errorf("release review sequence: %w", err)
	}
	return b.db.Close()
}

func reviewIndexKey(id string) []byte {
	return append(append([]byte{}, prefixReviewIndex...), id...)
}

func keysWithPrefix(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}
