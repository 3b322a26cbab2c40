// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package engagement_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafiq/crafiq/internal/engagement"
	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # Test Doubles

// fakeRepository is a mutex-guarded in-memory [engagement.Repository].
//
// The mutex mirrors the serialization the real store achieves with its
// FOR UPDATE row lock, so concurrent toggles exercise the same invariant:
// counter == membership count at every step.
type fakeRepository struct {
	mu sync.Mutex

	meta      map[string]*engagement.WorkMeta
	likes     map[string]map[string]bool // workID -> userID -> liked
	likeCount map[string]int64
	viewCount map[string]int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		meta:      make(map[string]*engagement.WorkMeta),
		likes:     make(map[string]map[string]bool),
		likeCount: make(map[string]int64),
		viewCount: make(map[string]int64),
	}
}

func (f *fakeRepository) FindWorkMeta(_ context.Context, workID string) (*engagement.WorkMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.meta[workID]; ok {
		return m, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) ToggleLike(_ context.Context, workID, userID string) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.meta[workID]; !ok {
		return false, 0, dberr.ErrNotFound
	}
	members := f.likes[workID]
	if members == nil {
		members = make(map[string]bool)
		f.likes[workID] = members
	}

	if members[userID] {
		delete(members, userID)
		f.likeCount[workID]--
		return false, f.likeCount[workID], nil
	}

	members[userID] = true
	f.likeCount[workID]++
	return true, f.likeCount[workID], nil
}

func (f *fakeRepository) IncrementView(_ context.Context, workID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meta[workID]; !ok {
		return 0, dberr.ErrNotFound
	}
	f.viewCount[workID]++
	return f.viewCount[workID], nil
}

func (f *fakeRepository) HasLiked(_ context.Context, workID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[workID][userID], nil
}

func (f *fakeRepository) ListLikerIDs(_ context.Context, workID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.likes[workID]))
	for id := range f.likes[workID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRepository) CountLikes(_ context.Context, workID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meta[workID]; !ok {
		return 0, dberr.ErrNotFound
	}
	return f.likeCount[workID], nil
}

// membership returns the current size of the like set.
func (f *fakeRepository) membership(workID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.likes[workID]))
}

// counter returns the denormalized like counter.
func (f *fakeRepository) counter(workID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likeCount[workID]
}

// failingTracker always errors, simulating a broken recent-views backend.
type failingTracker struct {
	calls int
}

func (t *failingTracker) TrackView(context.Context, string, string) error {
	t.calls++
	return errors.New("history store unavailable")
}

// recordingTracker captures forwarded views.
type recordingTracker struct {
	mu    sync.Mutex
	views [][2]string // (userID, workID)
}

func (t *recordingTracker) TrackView(_ context.Context, userID, workID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.views = append(t.views, [2]string{userID, workID})
	return nil
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	workID   = "0191d000-0000-7000-8000-000000000001"
	authorID = "0191d000-0000-7000-8000-0000000000aa"
	userID   = "0191d000-0000-7000-8000-0000000000bb"
)

func seedMeta(repo *fakeRepository, id, author, visibility string) {
	repo.meta[id] = &engagement.WorkMeta{ID: id, AuthorID: author, Visibility: visibility}
}

// # View Tests

/*
TestRecordView verifies the counter increments on every call with no dedup,
and that authenticated views are forwarded to the history tracker.
*/
func TestRecordView(t *testing.T) {
	repo := newFakeRepository()
	tracker := &recordingTracker{}
	service := engagement.NewService(repo, tracker, testLogger())
	seedMeta(repo, workID, authorID, "public")

	// Repeat views by the same user all count.
	for i := 1; i <= 3; i++ {
		result, err := service.RecordView(context.Background(), workID, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), result.ViewCount)
	}

	assert.Len(t, tracker.views, 3)
	assert.Equal(t, [2]string{userID, workID}, tracker.views[0])
}

/*
TestRecordView_AnonymousSkipsHistory verifies anonymous views bump the counter
but never touch the recent-views tracker.
*/
func TestRecordView_AnonymousSkipsHistory(t *testing.T) {
	repo := newFakeRepository()
	tracker := &recordingTracker{}
	service := engagement.NewService(repo, tracker, testLogger())
	seedMeta(repo, workID, authorID, "public")

	result, err := service.RecordView(context.Background(), workID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ViewCount)
	assert.Empty(t, tracker.views)
}

/*
TestRecordView_TrackerFailureIsNotFatal verifies a broken history backend
never fails the view itself.
*/
func TestRecordView_TrackerFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepository()
	tracker := &failingTracker{}
	service := engagement.NewService(repo, tracker, testLogger())
	seedMeta(repo, workID, authorID, "public")

	result, err := service.RecordView(context.Background(), workID, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ViewCount)
	assert.Equal(t, 1, tracker.calls)
}

/*
TestRecordView_PrivateWork verifies private works are indistinguishable from
missing ones for everyone but the author.
*/
func TestRecordView_PrivateWork(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "private")

	_, err := service.RecordView(context.Background(), workID, userID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	result, err := service.RecordView(context.Background(), workID, authorID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ViewCount)
}

/*
TestRecordView_ConcurrentIncrements verifies no views are lost under
concurrent recording.
*/
func TestRecordView_ConcurrentIncrements(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "public")

	const viewers = 50
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			_, err := service.RecordView(context.Background(), workID, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.IncrementView(context.Background(), workID)
	require.NoError(t, err)
	assert.Equal(t, int64(viewers+1), count)
}

// # Like Tests

/*
TestToggleLike_SelfInverse verifies two toggles return the work to its
original state, with the counter tracking membership at every step.
*/
func TestToggleLike_SelfInverse(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "public")

	// 1. First toggle: liked.
	result, err := service.ToggleLike(context.Background(), workID, userID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)

	// 2. Second toggle: unliked.
	result, err = service.ToggleLike(context.Background(), workID, userID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)

	assert.Equal(t, repo.membership(workID), repo.counter(workID))
}

/*
TestToggleLike_ConcurrentUsers verifies the counter equals the membership
count after many interleaved toggles by distinct users.
*/
func TestToggleLike_ConcurrentUsers(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "public")

	const users = 40
	var wg sync.WaitGroup
	wg.Add(users)
	for i := 0; i < users; i++ {
		uid := fmt.Sprintf("user-%02d", i)
		toggles := 1
		if i%2 == 1 {
			toggles = 2 // Odd users end up net-zero
		}
		go func(uid string, toggles int) {
			defer wg.Done()
			for j := 0; j < toggles; j++ {
				_, err := service.ToggleLike(context.Background(), workID, uid)
				assert.NoError(t, err)
			}
		}(uid, toggles)
	}
	wg.Wait()

	// Half the users net-liked; counter must match membership exactly.
	assert.Equal(t, int64(users/2), repo.counter(workID))
	assert.Equal(t, repo.membership(workID), repo.counter(workID))
}

/*
TestToggleLike_PrivateWork verifies likes on private works are rejected for
non-authors.
*/
func TestToggleLike_PrivateWork(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "private")

	_, err := service.ToggleLike(context.Background(), workID, userID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestGetLikeSummary verifies the counter, viewer membership, and liker list.
*/
func TestGetLikeSummary(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, authorID, "public")

	_, err := service.ToggleLike(context.Background(), workID, userID)
	require.NoError(t, err)

	// 1. The liker sees their own membership.
	summary, err := service.GetLikeSummary(context.Background(), workID, userID)
	require.NoError(t, err)
	assert.True(t, summary.Liked)
	assert.Equal(t, int64(1), summary.LikeCount)
	assert.Equal(t, []string{userID}, summary.LikerIDs)

	// 2. An anonymous viewer sees the counter but no membership.
	summary, err = service.GetLikeSummary(context.Background(), workID, "")
	require.NoError(t, err)
	assert.False(t, summary.Liked)
	assert.Equal(t, int64(1), summary.LikeCount)
}

/*
TestEngagement_MissingWork verifies all operations surface NotFound for a
nonexistent work.
*/
func TestEngagement_MissingWork(t *testing.T) {
	repo := newFakeRepository()
	service := engagement.NewService(repo, nil, testLogger())

	_, err := service.RecordView(context.Background(), workID, "")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.ToggleLike(context.Background(), workID, userID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.GetLikeSummary(context.Background(), workID, "")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
