// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package work_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/dberr"
	"github.com/crafiq/crafiq/internal/work"
	"github.com/crafiq/crafiq/pkg/cursor"
)

// # Test Doubles

// fakeRepository is an in-memory [work.Repository] for service-level tests.
type fakeRepository struct {
	works    map[string]*work.Work
	pages    map[string][]*work.Page
	episodes map[string][]*work.Episode

	// listErr forces List to fail once per call while set.
	listErr error

	// listCalls records every filter List was invoked with.
	listCalls []work.Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		works:    make(map[string]*work.Work),
		pages:    make(map[string][]*work.Page),
		episodes: make(map[string][]*work.Episode),
	}
}

func (f *fakeRepository) List(_ context.Context, filter work.Filter, limit, offset int) ([]*work.Work, int, error) {
	f.listCalls = append(f.listCalls, filter)
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	matched := make([]*work.Work, 0)
	for _, w := range f.works {
		if filter.CreatedAfter != nil && !w.CreatedAt.After(*filter.CreatedAfter) {
			continue
		}
		if filter.Type != "" && w.Type != filter.Type {
			continue
		}
		if !filter.IncludesOwnWorks() && w.Visibility != work.VisibilityPublic {
			continue
		}
		matched = append(matched, w)
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*work.Work, error) {
	if w, ok := f.works[id]; ok {
		clone := *w
		return &clone, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*work.Work, error) {
	for _, w := range f.works {
		if w.Slug == slug {
			clone := *w
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, w *work.Work) error {
	f.works[w.ID] = w
	return nil
}

func (f *fakeRepository) Update(_ context.Context, w *work.Work) error {
	if _, ok := f.works[w.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.works[w.ID] = w
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.works[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.works, id)
	delete(f.pages, id)
	delete(f.episodes, id)
	return nil
}

func (f *fakeRepository) ListPages(_ context.Context, workID string) ([]*work.Page, error) {
	return f.pages[workID], nil
}

func (f *fakeRepository) ReplacePages(_ context.Context, workID string, pages []*work.Page) error {
	f.pages[workID] = pages
	return nil
}

func (f *fakeRepository) ListEpisodes(_ context.Context, workID string) ([]*work.Episode, error) {
	return f.episodes[workID], nil
}

func (f *fakeRepository) ReplaceEpisodes(_ context.Context, workID string, episodes []*work.Episode) error {
	f.episodes[workID] = episodes
	return nil
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedWork(repo *fakeRepository, id, authorID string, visibility work.Visibility, workType work.Type, createdAt time.Time) *work.Work {
	w := &work.Work{
		ID:         id,
		Title:      "Seeded " + id,
		Slug:       "seeded-" + id,
		Type:       workType,
		Genre:      work.GenreFantasy,
		AgeRating:  work.AgeRatingAll,
		Visibility: visibility,
		AuthorID:   authorID,
		AuthorName: "author-" + authorID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	repo.works[id] = w
	return w
}

const (
	workID   = "0191b2c3-0000-7000-8000-000000000001"
	authorID = "0191b2c3-0000-7000-8000-0000000000aa"
	otherID  = "0191b2c3-0000-7000-8000-0000000000bb"
)

// # Discovery Tests

/*
TestListWorks_NewReleasesFallback verifies that an empty windowed feed falls
back to the unwindowed feed instead of returning an empty shelf.
*/
func TestListWorks_NewReleasesFallback(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())

	// Only an old work exists, outside any recency window.
	old := time.Now().Add(-90 * 24 * time.Hour)
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeComic, old)

	window := time.Now().Add(-30 * 24 * time.Hour)
	works, total, err := service.ListWorks(context.Background(), work.Filter{CreatedAfter: &window}, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, works, 1)
	assert.Equal(t, workID, works[0].ID)

	// Two queries: the windowed one and the fallback.
	require.Len(t, repo.listCalls, 2)
	assert.NotNil(t, repo.listCalls[0].CreatedAfter)
	assert.Nil(t, repo.listCalls[1].CreatedAfter)
}

/*
TestListWorks_NewReleasesFallback_OnError verifies the fallback also fires
when the windowed query errors, and that the second error (if any) surfaces.
*/
func TestListWorks_NewReleasesFallback_OnError(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("window scan failed")
	service := work.NewService(repo, nil, testLogger())

	window := time.Now().Add(-30 * 24 * time.Hour)
	_, _, err := service.ListWorks(context.Background(), work.Filter{CreatedAfter: &window}, 20, 0)

	// Both attempts fail: the error must surface.
	require.Error(t, err)
	require.Len(t, repo.listCalls, 2)
}

/*
TestListWorks_NoFallbackWithoutWindow verifies errors on the plain feed are
surfaced directly with no retry.
*/
func TestListWorks_NoFallbackWithoutWindow(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("db down")
	service := work.NewService(repo, nil, testLogger())

	_, _, err := service.ListWorks(context.Background(), work.Filter{}, 20, 0)

	require.Error(t, err)
	assert.Len(t, repo.listCalls, 1)
}

/*
TestListWorks_RejectsInvalidFilter verifies unknown enum values are rejected
before any query runs.
*/
func TestListWorks_RejectsInvalidFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter work.Filter
	}{
		{"bad_type", work.Filter{Type: "podcast"}},
		{"bad_genre", work.Filter{Genre: "noir"}},
		{"bad_sort", work.Filter{Sort: "random"}},
		{"bad_cursor", work.Filter{Cursor: "!!not-base64!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := work.NewService(repo, nil, testLogger())

			_, _, err := service.ListWorks(context.Background(), tt.filter, 20, 0)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Empty(t, repo.listCalls)
		})
	}
}

/*
TestNextCursor verifies cursor derivation per sort mode and page fullness.
*/
func TestNextCursor(t *testing.T) {
	service := work.NewService(newFakeRepository(), nil, testLogger())

	now := time.Now().UTC().Truncate(time.Second)
	page := []*work.Work{
		{ID: "a", Title: "Alpha", ViewCount: 10, LikeCount: 3, CreatedAt: now},
		{ID: "b", Title: "Beta", ViewCount: 7, LikeCount: 1, CreatedAt: now.Add(-time.Hour)},
	}

	// Short page: no next cursor.
	assert.Empty(t, service.NextCursor(page, work.SortLatest, 20))
	assert.Empty(t, service.NextCursor(nil, work.SortLatest, 0))

	// Full page: cursor captures the last row's sort key.
	encoded := service.NextCursor(page, work.SortPopular, 2)
	require.NotEmpty(t, encoded)

	key, err := cursor.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "b", key.ID)
	assert.Equal(t, int64(7), key.Count)

	encoded = service.NextCursor(page, work.SortTitle, 2)
	key, err = cursor.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Beta", key.Title)
}

// # Detail Fetch Tests

/*
TestGetWork_PrivateVisibility verifies private works resolve to NotFound for
everyone except their author.
*/
func TestGetWork_PrivateVisibility(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPrivate, work.TypeNovel, time.Now())

	// 1. Anonymous viewer: hidden.
	_, err := service.GetWork(context.Background(), workID, "")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// 2. Different user: hidden.
	_, err = service.GetWork(context.Background(), workID, otherID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// 3. The author: visible.
	found, err := service.GetWork(context.Background(), workID, authorID)
	require.NoError(t, err)
	assert.Equal(t, workID, found.ID)
}

/*
TestGetWork_UnlistedBySlug verifies unlisted works stay fetchable by direct
identifier even though feeds exclude them.
*/
func TestGetWork_UnlistedBySlug(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityUnlisted, work.TypeNovel, time.Now())

	found, err := service.GetWork(context.Background(), "seeded-"+workID, "")
	require.NoError(t, err)
	assert.Equal(t, workID, found.ID)

	// Feeds must not surface it.
	works, _, err := service.ListWorks(context.Background(), work.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, works)
}

/*
TestGetWork_HydratesContent verifies the content set matching the work's type
is attached on detail fetches.
*/
func TestGetWork_HydratesContent(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeNovel, time.Now())
	repo.pages[workID] = []*work.Page{
		{ID: "p1", WorkID: workID, PageNumber: 1, Content: "Once upon a time"},
	}

	found, err := service.GetWork(context.Background(), workID, "")
	require.NoError(t, err)
	require.Len(t, found.Pages, 1)
	assert.Nil(t, found.Episodes)
}

/*
TestGetWork_CountsView verifies every successful detail fetch is forwarded to
the view recorder and reflected in the returned counter, and that a recorder
failure degrades instead of failing the read.
*/
func TestGetWork_CountsView(t *testing.T) {
	repo := newFakeRepository()

	var recordedWork, recordedViewer string
	recorder := work.ViewRecorderFunc(func(_ context.Context, workID, viewerID string) error {
		recordedWork, recordedViewer = workID, viewerID
		return nil
	})

	service := work.NewService(repo, recorder, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeNovel, time.Now())

	found, err := service.GetWork(context.Background(), workID, otherID)
	require.NoError(t, err)
	assert.Equal(t, workID, recordedWork)
	assert.Equal(t, otherID, recordedViewer)
	assert.Equal(t, int64(1), found.ViewCount)

	// A failing recorder leaves the read intact with the stored counter.
	failing := work.NewService(repo, work.ViewRecorderFunc(func(context.Context, string, string) error {
		return errors.New("counter store down")
	}), testLogger())

	found, err = failing.GetWork(context.Background(), workID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.ViewCount)
}

// # Lifecycle Tests

/*
TestCreateWork_DefaultsAndNormalization verifies defaulting of visibility and
age rating, tag normalization, ID/slug generation, and zeroed counters.
*/
func TestCreateWork_DefaultsAndNormalization(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())

	newWork := &work.Work{
		Title:      "Moonlit Blade",
		Type:       work.TypeComic,
		Genre:      work.GenreMartialArts,
		Tags:       []string{"  Sword ", "REVENGE", "", "wuxia"},
		AuthorID:   authorID,
		AuthorName: "inkbrush",
		ViewCount:  999, // Must be ignored
		LikeCount:  999,
	}

	err := service.CreateWork(context.Background(), newWork)
	require.NoError(t, err)

	assert.NotEmpty(t, newWork.ID)
	assert.Equal(t, "moonlit-blade", newWork.Slug)
	assert.Equal(t, work.VisibilityPublic, newWork.Visibility)
	assert.Equal(t, work.AgeRatingAll, newWork.AgeRating)
	assert.Equal(t, []string{"sword", "revenge", "wuxia"}, newWork.Tags)
	assert.Zero(t, newWork.ViewCount)
	assert.Zero(t, newWork.LikeCount)
}

/*
TestCreateWork_Validation rejects structurally invalid metadata.
*/
func TestCreateWork_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input work.Work
	}{
		{"missing_title", work.Work{Type: work.TypeComic, Genre: work.GenreAction}},
		{"missing_type", work.Work{Title: "X", Genre: work.GenreAction}},
		{"unknown_type", work.Work{Title: "X", Type: "audio", Genre: work.GenreAction}},
		{"unknown_genre", work.Work{Title: "X", Type: work.TypeComic, Genre: "noir"}},
		{"bad_age_rating", work.Work{Title: "X", Type: work.TypeComic, Genre: work.GenreAction, AgeRating: "21"}},
		{"bad_visibility", work.Work{Title: "X", Type: work.TypeComic, Genre: work.GenreAction, Visibility: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := work.NewService(newFakeRepository(), nil, testLogger())
			input := tt.input
			input.AuthorID = authorID

			err := service.CreateWork(context.Background(), &input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestUpdateWork_Ownership verifies only the author may update, and that the
work's type is immutable.
*/
func TestUpdateWork_Ownership(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeComic, time.Now())

	// 1. Non-author: forbidden.
	_, err := service.UpdateWork(context.Background(), otherID, &work.Work{ID: workID, Title: "Stolen"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. Author changing the type: unprocessable.
	_, err = service.UpdateWork(context.Background(), authorID, &work.Work{ID: workID, Type: work.TypeNovel})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	// 3. Author partial update: applied, untouched fields preserved.
	updated, err := service.UpdateWork(context.Background(), authorID, &work.Work{ID: workID, Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, work.GenreFantasy, updated.Genre)
}

/*
TestDeleteWork verifies ownership enforcement and hard removal.
*/
func TestDeleteWork(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeComic, time.Now())

	err := service.DeleteWork(context.Background(), otherID, workID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteWork(context.Background(), authorID, workID))

	err = service.DeleteWork(context.Background(), authorID, workID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Content Tests

/*
TestReplacePages_DenseNumbering verifies the 1..N dense numbering rule for
novel pages.
*/
func TestReplacePages_DenseNumbering(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		valid   bool
	}{
		{"dense_from_one", []int{1, 2, 3}, true},
		{"single_page", []int{1}, true},
		{"unordered_but_dense", []int{3, 1, 2}, true},
		{"gap", []int{1, 2, 4}, false},
		{"duplicate", []int{1, 2, 2}, false},
		{"zero_indexed", []int{0, 1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := work.NewService(repo, nil, testLogger())
			seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeNovel, time.Now())

			pages := make([]*work.Page, 0, len(tt.numbers))
			for _, n := range tt.numbers {
				pages = append(pages, &work.Page{PageNumber: n, Content: "text"})
			}

			result, err := service.ReplacePages(context.Background(), authorID, workID, pages)

			if tt.valid {
				require.NoError(t, err)
				assert.Len(t, result, len(tt.numbers))
			} else {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			}
		})
	}
}

/*
TestReplacePages_TypeMismatch verifies pages cannot be attached to comics and
episodes cannot be attached to novels.
*/
func TestReplacePages_TypeMismatch(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeComic, time.Now())

	_, err := service.ReplacePages(context.Background(), authorID, workID, []*work.Page{
		{PageNumber: 1, Content: "text"},
	})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	novelID := "0191b2c3-0000-7000-8000-000000000002"
	seedWork(repo, novelID, authorID, work.VisibilityPublic, work.TypeNovel, time.Now())

	_, err = service.ReplaceEpisodes(context.Background(), authorID, novelID, []*work.Episode{
		{EpisodeNumber: 1, ImageURLs: []string{"https://cdn.crafiq.app/e1/01.png"}},
	})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

/*
TestReplaceEpisodes verifies ownership, image requirements, and identity
assignment for comic episodes.
*/
func TestReplaceEpisodes(t *testing.T) {
	repo := newFakeRepository()
	service := work.NewService(repo, nil, testLogger())
	seedWork(repo, workID, authorID, work.VisibilityPublic, work.TypeComic, time.Now())

	// 1. Non-author: forbidden.
	_, err := service.ReplaceEpisodes(context.Background(), otherID, workID, nil)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. Episode without images: rejected.
	_, err = service.ReplaceEpisodes(context.Background(), authorID, workID, []*work.Episode{
		{EpisodeNumber: 1},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// 3. Valid set: persisted with generated IDs.
	episodes, err := service.ReplaceEpisodes(context.Background(), authorID, workID, []*work.Episode{
		{EpisodeNumber: 1, Title: "Dawn", ImageURLs: []string{"https://cdn.crafiq.app/e1/01.png"}},
		{EpisodeNumber: 2, Title: "Dusk", ImageURLs: []string{"https://cdn.crafiq.app/e2/01.png"}},
	})
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	for _, episode := range episodes {
		assert.NotEmpty(t, episode.ID)
		assert.Equal(t, workID, episode.WorkID)
	}
}
