// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package library_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafiq/crafiq/internal/library"
	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/constants"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # Test Doubles

// fakeRepository is an in-memory [library.Repository].
type fakeRepository struct {
	meta    map[string]*library.WorkMeta
	entries map[string]map[string]time.Time // userID -> workID -> added
	recents map[string][]string             // userID -> workIDs, newest first
	liked   map[string][]string             // userID -> workIDs, newest first
	markers map[string]string               // userID+workID -> position marker

	// lastRecentLimit records the limit passed to ListRecentViews.
	lastRecentLimit int
	// lastKeep records the cap passed to UpsertRecentView.
	lastKeep int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		meta:    make(map[string]*library.WorkMeta),
		entries: make(map[string]map[string]time.Time),
		recents: make(map[string][]string),
		liked:   make(map[string][]string),
		markers: make(map[string]string),
	}
}

func (f *fakeRepository) FindWorkMeta(_ context.Context, workID string) (*library.WorkMeta, error) {
	if m, ok := f.meta[workID]; ok {
		return m, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) ListEntries(_ context.Context, userID string, limit, offset int) ([]*library.Item, int, error) {
	items := make([]*library.Item, 0)
	for workID, added := range f.entries[userID] {
		items = append(items, &library.Item{WorkID: workID, AddedAt: added})
	}
	total := len(items)
	if offset >= len(items) {
		return nil, total, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (f *fakeRepository) AddEntry(_ context.Context, userID, workID string) error {
	shelf := f.entries[userID]
	if shelf == nil {
		shelf = make(map[string]time.Time)
		f.entries[userID] = shelf
	}
	if _, exists := shelf[workID]; !exists {
		shelf[workID] = time.Now()
	}
	return nil
}

func (f *fakeRepository) ListLikedWorks(_ context.Context, userID string, limit, offset int) ([]*library.Item, int, error) {
	ids := f.liked[userID]
	total := len(ids)
	if offset >= len(ids) {
		return nil, total, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	items := make([]*library.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, &library.Item{WorkID: id})
	}
	return items, total, nil
}

func (f *fakeRepository) RemoveEntry(_ context.Context, userID, workID string) error {
	if _, exists := f.entries[userID][workID]; !exists {
		return dberr.ErrNotFound
	}
	delete(f.entries[userID], workID)
	return nil
}

func (f *fakeRepository) ListRecentViews(_ context.Context, userID string, limit int) ([]*library.Item, error) {
	f.lastRecentLimit = limit
	ids := f.recents[userID]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	items := make([]*library.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, &library.Item{WorkID: id, PositionMarker: f.markers[userID+id]})
	}
	return items, nil
}

func (f *fakeRepository) UpsertRecentView(_ context.Context, userID, workID, position string, keep int) error {
	f.lastKeep = keep
	if position != "" {
		f.markers[userID+workID] = position
	}

	// Move-to-front semantics, then prune.
	history := make([]string, 0, keep)
	history = append(history, workID)
	for _, id := range f.recents[userID] {
		if id != workID {
			history = append(history, id)
		}
	}
	if len(history) > keep {
		history = history[:keep]
	}
	f.recents[userID] = history
	return nil
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	workID   = "0191f000-0000-7000-8000-000000000001"
	authorID = "0191f000-0000-7000-8000-0000000000aa"
	readerID = "0191f000-0000-7000-8000-0000000000bb"
)

func seedMeta(repo *fakeRepository, id, author, visibility string) {
	repo.meta[id] = &library.WorkMeta{ID: id, AuthorID: author, Visibility: visibility}
}

// # Shelf Tests

/*
TestAddToLibrary_Idempotent verifies saving the same work twice succeeds and
leaves a single shelf entry.
*/
func TestAddToLibrary_Idempotent(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())
	seedMeta(repo, workID, authorID, "public")

	require.NoError(t, service.AddToLibrary(context.Background(), readerID, workID))
	require.NoError(t, service.AddToLibrary(context.Background(), readerID, workID))

	items, total, err := service.ListLibrary(context.Background(), readerID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, workID, items[0].WorkID)
}

/*
TestAddToLibrary_Visibility verifies private works cannot be shelved by
non-authors and missing works yield NotFound.
*/
func TestAddToLibrary_Visibility(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())
	seedMeta(repo, workID, authorID, "private")

	err := service.AddToLibrary(context.Background(), readerID, workID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The author can shelf their own private work.
	require.NoError(t, service.AddToLibrary(context.Background(), authorID, workID))

	err = service.AddToLibrary(context.Background(), readerID, "0191f000-0000-7000-8000-00000000dead")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestRemoveFromLibrary verifies removal and the NotFound on a work that was
never saved.
*/
func TestRemoveFromLibrary(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())
	seedMeta(repo, workID, authorID, "public")

	require.NoError(t, service.AddToLibrary(context.Background(), readerID, workID))
	require.NoError(t, service.RemoveFromLibrary(context.Background(), readerID, workID))

	err := service.RemoveFromLibrary(context.Background(), readerID, workID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestListLikedWorks verifies the liked shelf is served straight from the
repository in its stored order.
*/
func TestListLikedWorks(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())

	otherWork := "0191f000-0000-7000-8000-000000000002"
	repo.liked[readerID] = []string{otherWork, workID}

	items, total, err := service.ListLikedWorks(context.Background(), readerID, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, otherWork, items[0].WorkID)
	assert.Equal(t, workID, items[1].WorkID)
}

// # Recent Views Tests

/*
TestListRecentViews_ClampsLimit verifies the history cap is enforced for
zero, negative, and oversized limits.
*/
func TestListRecentViews_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		effective int
	}{
		{"zero_defaults_to_cap", 0, constants.RecentViewsLimit},
		{"negative_defaults_to_cap", -5, constants.RecentViewsLimit},
		{"over_cap_clamped", constants.RecentViewsLimit * 3, constants.RecentViewsLimit},
		{"small_passthrough", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := library.NewService(repo, testLogger())

			_, err := service.ListRecentViews(context.Background(), readerID, tt.requested)

			require.NoError(t, err)
			assert.Equal(t, tt.effective, repo.lastRecentLimit)
		})
	}
}

/*
TestTrackView verifies move-to-front semantics and the pruning cap handed to
the repository.
*/
func TestTrackView(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())

	otherWork := "0191f000-0000-7000-8000-000000000002"
	require.NoError(t, service.TrackView(context.Background(), readerID, workID))
	require.NoError(t, service.TrackView(context.Background(), readerID, otherWork))
	require.NoError(t, service.TrackView(context.Background(), readerID, workID))

	assert.Equal(t, constants.RecentViewsLimit, repo.lastKeep)

	// Re-viewing moved workID back to the front without duplicating it.
	items, err := service.ListRecentViews(context.Background(), readerID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, workID, items[0].WorkID)
	assert.Equal(t, otherWork, items[1].WorkID)
}

/*
TestMarkRecentView verifies reading positions are stored, that marker-less
updates keep the previous position, and that invisible works stay hidden.
*/
func TestMarkRecentView(t *testing.T) {
	repo := newFakeRepository()
	service := library.NewService(repo, testLogger())
	seedMeta(repo, workID, authorID, "public")

	// 1. Store a position.
	require.NoError(t, service.MarkRecentView(context.Background(), readerID, workID, "page:12"))

	items, err := service.ListRecentViews(context.Background(), readerID, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "page:12", items[0].PositionMarker)

	// 2. An empty marker bumps the view without clearing the position.
	require.NoError(t, service.MarkRecentView(context.Background(), readerID, workID, ""))

	items, err = service.ListRecentViews(context.Background(), readerID, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "page:12", items[0].PositionMarker)

	// 3. Private works resolve to NotFound for non-authors.
	privateWork := "0191f000-0000-7000-8000-000000000003"
	seedMeta(repo, privateWork, authorID, "private")

	err = service.MarkRecentView(context.Background(), readerID, privateWork, "page:1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
