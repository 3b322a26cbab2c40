// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafiq/crafiq/internal/comment"
	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # Test Doubles

// fakeRepository is an in-memory [comment.Repository].
type fakeRepository struct {
	meta     map[string]*comment.WorkMeta
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		meta:     make(map[string]*comment.WorkMeta),
		comments: make(map[string]*comment.Comment),
	}
}

func (f *fakeRepository) FindWorkMeta(_ context.Context, workID string) (*comment.WorkMeta, error) {
	if m, ok := f.meta[workID]; ok {
		return m, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) ListByWork(_ context.Context, workID string, limit, offset int) ([]*comment.Comment, int, error) {
	matched := make([]*comment.Comment, 0)
	for _, c := range f.comments {
		if c.WorkID == workID {
			matched = append(matched, c)
		}
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

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

// stubLimiter returns canned rate-limit decisions.
type stubLimiter struct {
	allowed    bool
	retryAfter int
	err        error
	calls      int
}

func (l *stubLimiter) Allow(context.Context, string) (bool, int, error) {
	l.calls++
	return l.allowed, l.retryAfter, l.err
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	workID     = "0191e000-0000-7000-8000-000000000001"
	workAuthor = "0191e000-0000-7000-8000-0000000000aa"
	reader     = "0191e000-0000-7000-8000-0000000000bb"
	stranger   = "0191e000-0000-7000-8000-0000000000cc"
)

func seedMeta(repo *fakeRepository, id, author, visibility string) {
	repo.meta[id] = &comment.WorkMeta{ID: id, AuthorID: author, Visibility: visibility}
}

// # Creation Tests

/*
TestCreateComment verifies trimming, denormalized author name, and persistence.
*/
func TestCreateComment(t *testing.T) {
	repo := newFakeRepository()
	service := comment.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, workAuthor, "public")

	created, err := service.CreateComment(context.Background(), workID, reader, "bookworm", "  Loved the twist!  ")

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Loved the twist!", created.Content)
	assert.Equal(t, "bookworm", created.AuthorName)
	assert.Contains(t, repo.comments, created.ID)
}

/*
TestCreateComment_ContentValidation rejects empty, whitespace-only, and
oversized content.
*/
func TestCreateComment_ContentValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace_only", "   \n\t  "},
		{"too_long", strings.Repeat("x", comment.MaxContentLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := comment.NewService(repo, nil, testLogger())
			seedMeta(repo, workID, workAuthor, "public")

			_, err := service.CreateComment(context.Background(), workID, reader, "bookworm", tt.content)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, repo.comments)
		})
	}
}

/*
TestCreateComment_RateLimited verifies a denied slot maps to a 429 with the
window's retry hint.
*/
func TestCreateComment_RateLimited(t *testing.T) {
	repo := newFakeRepository()
	limiter := &stubLimiter{allowed: false, retryAfter: 42}
	service := comment.NewService(repo, limiter, testLogger())
	seedMeta(repo, workID, workAuthor, "public")

	_, err := service.CreateComment(context.Background(), workID, reader, "bookworm", "spam?")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
	assert.Contains(t, ae.Message, "42s")
	assert.Equal(t, 1, limiter.calls)
	assert.Empty(t, repo.comments)
}

/*
TestCreateComment_LimiterBackendFailure verifies a broken limiter backend is
logged but does not block posting.
*/
func TestCreateComment_LimiterBackendFailure(t *testing.T) {
	repo := newFakeRepository()
	limiter := &stubLimiter{err: errors.New("redis down")}
	service := comment.NewService(repo, limiter, testLogger())
	seedMeta(repo, workID, workAuthor, "public")

	created, err := service.CreateComment(context.Background(), workID, reader, "bookworm", "still works")

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

/*
TestCreateComment_PrivateWork verifies discussion on private works is hidden
from non-authors.
*/
func TestCreateComment_PrivateWork(t *testing.T) {
	repo := newFakeRepository()
	service := comment.NewService(repo, nil, testLogger())
	seedMeta(repo, workID, workAuthor, "private")

	_, err := service.CreateComment(context.Background(), workID, reader, "bookworm", "hello?")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, _, err = service.ListComments(context.Background(), workID, reader, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The author can still use their own discussion space.
	_, err = service.CreateComment(context.Background(), workID, workAuthor, "the author", "notes to self")
	require.NoError(t, err)
}

// # Deletion Tests

/*
TestDeleteComment_PermissionMatrix verifies the comment author and the work
author may delete; everyone else is forbidden.
*/
func TestDeleteComment_PermissionMatrix(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		allowed bool
	}{
		{"comment_author", reader, true},
		{"work_author", workAuthor, true},
		{"unrelated_user", stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := comment.NewService(repo, nil, testLogger())
			seedMeta(repo, workID, workAuthor, "public")

			created, err := service.CreateComment(context.Background(), workID, reader, "bookworm", "delete me")
			require.NoError(t, err)

			err = service.DeleteComment(context.Background(), created.ID, tt.actorID)

			if tt.allowed {
				require.NoError(t, err)
				assert.Empty(t, repo.comments)
			} else {
				require.Error(t, err)
				assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
				assert.Contains(t, repo.comments, created.ID)
			}
		})
	}
}

/*
TestDeleteComment_Missing verifies deleting a nonexistent comment yields
NotFound.
*/
func TestDeleteComment_Missing(t *testing.T) {
	service := comment.NewService(newFakeRepository(), nil, testLogger())

	err := service.DeleteComment(context.Background(), "0191e000-0000-7000-8000-00000000dead", reader)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
