package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends opens a fresh instance of every backend that runs without an
// external server.
func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := NewFile(t.TempDir())
	require.NoError(t, err)

	bdg, err := OpenBadger("")
	require.NoError(t, err)

	lite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	all := map[string]Backend{
		KindMemory: NewMemory(),
		KindFile:   file,
		KindBadger: bdg,
		KindSQLite: lite,
	}
	t.Cleanup(func() {
		for _, b := range all {
			b.Close()
		}
	})
	return all
}

func review(id, name string) models.Review {
	return models.Review{
		ID:           id,
		ReviewerName: name,
		Title:        "title " + id,
		Description:  "description " + id,
		Rating:       4,
		Date:         "2025-06-01T10:00:00.000Z",
	}
}

func ids(reviews []models.Review) []string {
	out := make([]string, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.ID)
	}
	return out
}

func TestBackendAnnouncement(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.LoadAnnouncement(ctx)
			require.ErrorIs(t, err, ErrNoAnnouncement)

			first := models.Announcement{Title: "Sale", Message: "20% off", Days: "Monday", Timestamp: "2025-06-01T10:00:00.000Z"}
			require.NoError(t, b.SaveAnnouncement(ctx, first))

			got, err := b.LoadAnnouncement(ctx)
			require.NoError(t, err)
			assert.Equal(t, first, got)

			second := models.Announcement{Title: "New", Message: "BOGO", Days: "Friday", Timestamp: "2025-06-02T10:00:00.000Z"}
			require.NoError(t, b.SaveAnnouncement(ctx, second))

			got, err = b.LoadAnnouncement(ctx)
			require.NoError(t, err)
			assert.Equal(t, second, got)
		})
	}
}

func TestBackendReviews(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			for _, id := range []string{"a", "b", "c"} {
				require.NoError(t, b.InsertReview(ctx, review(id, "name "+id)))
			}

			got, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "a"}, ids(got))
			assert.Equal(t, review("b", "name b"), got[1])

			require.NoError(t, b.DeleteReview(ctx, "b"))
			got, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "a"}, ids(got))

			// unknown ids are ignored
			require.NoError(t, b.DeleteReview(ctx, "missing"))
			got, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 2)

			require.NoError(t, b.DeleteAllReviews(ctx))
			got, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			// inserts keep working after a clear
			require.NoError(t, b.InsertReview(ctx, review("d", "name d")))
			got, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"d"}, ids(got))
		})
	}
}

func TestBackendsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		open func(t *testing.T) Backend
	}{
		{
			name: KindFile,
			open: func(t *testing.T) Backend {
				b, err := NewFile(filepath.Join(dir, "files"))
				require.NoError(t, err)
				return b
			},
		},
		{
			name: KindBadger,
			open: func(t *testing.T) Backend {
				b, err := OpenBadger(filepath.Join(dir, "badger"))
				require.NoError(t, err)
				return b
			},
		},
		{
			name: KindSQLite,
			open: func(t *testing.T) Backend {
				b, err := OpenSQLite(ctx, filepath.Join(dir, "sqlite", "site.db"))
				require.NoError(t, err)
				return b
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.Announcement{Title: "Sale", Message: "20% off", Days: "Monday", Timestamp: "2025-06-01T10:00:00.000Z"}

			b := tt.open(t)
			require.NoError(t, b.SaveAnnouncement(ctx, a))
			require.NoError(t, b.InsertReview(ctx, review("a", "Ann")))
			require.NoError(t, b.InsertReview(ctx, review("b", "Bob")))
			require.NoError(t, b.Close())

			b = tt.open(t)
			defer b.Close()

			got, err := b.LoadAnnouncement(ctx)
			require.NoError(t, err)
			assert.Equal(t, a, got)

			reviews, err := b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"b", "a"}, ids(reviews))

			// ordering continues across the reopen
			require.NoError(t, b.InsertReview(ctx, review("c", "Cid")))
			reviews, err = b.LoadReviews(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "a"}, ids(reviews))
		})
	}
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	b, err := NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, b.SaveAnnouncement(ctx, models.Announcement{Title: "t", Message: "m", Days: "d"}))
	require.NoError(t, b.InsertReview(ctx, review("a", "Ann")))

	entries, err := os.ReadDir(b.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{announcementFile, reviewsFile}, names)
}

func TestFileCorruptReviews(t *testing.T) {
	b, err := NewFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir(), reviewsFile), []byte("{not json"), 0o644))

	_, err = b.LoadReviews(context.Background())
	assert.Error(t, err)

	// a failed read must not overwrite the file
	err = b.InsertReview(context.Background(), review("a", "Ann"))
	assert.Error(t, err)
	data, err := os.ReadFile(filepath.Join(b.Dir(), reviewsFile))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(ctx, Options{Kind: KindFile, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	b, err = Open(ctx, Options{Kind: KindBadger})
	require.NoError(t, err)
	assert.IsType(t, &Badger{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, Options{Kind: KindMongo})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Kind: "postgres"})
	assert.ErrorContains(t, err, `unknown storage backend "postgres"`)
}
