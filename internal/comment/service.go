// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/validate"
	"github.com/crafiq/crafiq/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for work discussion.
type Service struct {
	repo    Repository
	limiter RateLimiter
	logger  *slog.Logger
}

// NewService constructs a new [Service]. The limiter may be nil when rate
// limiting is not wired (e.g. in isolated tests).
func NewService(repo Repository, limiter RateLimiter, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		limiter: limiter,
		logger:  logger,
	}
}

// # Comment Operations

/*
ListComments retrieves a page of a work's comments, newest first.

Parameters:
  - context: context.Context
  - workID: string (Owner work)
  - viewerID: string (Authenticated user ID, "" when anonymous)
  - limit: int
  - offset: int

Returns:
  - []*Comment: Page of comments
  - int: Total comment count for the work
  - error: NotFound if the work is missing or private to the viewer
*/
func (service *Service) ListComments(context context.Context, workID, viewerID string, limit, offset int) ([]*Comment, int, error) {

	// Access resolution: private works look missing to non-authors
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return nil, 0, err
	}
	if !meta.VisibleTo(viewerID) {
		return nil, 0, apperr.NotFound("Work")
	}

	return service.repo.ListByWork(context, workID, limit, offset)
}

/*
CreateComment posts a new comment on a work.

Description: Content is trimmed before validation, so whitespace-only
submissions are rejected. Posting is rate limited per user; the author's
display name is denormalized onto the comment at creation time.

Parameters:
  - context: context.Context
  - workID: string (Target work)
  - authorID: string (Acting user)
  - authorName: string (Display name from the verified token)
  - content: string (Raw message body)

Returns:
  - *Comment: The persisted comment
  - error: RateLimited, validation, or persistence errors
*/
func (service *Service) CreateComment(context context.Context, workID, authorID, authorName, content string) (*Comment, error) {

	// Access resolution: private works look missing to non-authors
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return nil, err
	}
	if !meta.VisibleTo(authorID) {
		return nil, apperr.NotFound("Work")
	}

	// Content validation after trimming
	content = strings.TrimSpace(content)
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Per-user posting throttle
	if service.limiter != nil {
		allowed, retryAfter, err := service.limiter.Allow(context, authorID)
		if err != nil {
			// A broken limiter backend must not silently open the floodgates,
			// but it also must not take commenting down with it.
			service.logger.Error("comment_rate_limiter_unavailable", slog.Any("error", err))
		} else if !allowed {
			return nil, apperr.RateLimited(retryAfter)
		}
	}

	newComment := &Comment{
		ID:         uuidv7.New(),
		WorkID:     workID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}

	if err := service.repo.Create(context, newComment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", newComment.ID),
		slog.String("work_id", workID),
		slog.String("author_id", authorID),
	)

	return newComment, nil
}

/*
DeleteComment removes a comment.

Description: Allowed to the comment's author and to the author of the work
the comment sits on (moderating their own discussion space). Everyone else
receives Forbidden.

Parameters:
  - context: context.Context
  - commentID: string (Target comment)
  - actorID: string (Acting user)

Returns:
  - error: Forbidden for unrelated users, ErrNotFound if already gone
*/
func (service *Service) DeleteComment(context context.Context, commentID, actorID string) error {

	existing, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}

	// The comment author may always remove their own message
	allowed := existing.AuthorID == actorID

	// The work's author moderates their own discussion space
	if !allowed {
		meta, err := service.repo.FindWorkMeta(context, existing.WorkID)
		if err == nil && meta.AuthorID == actorID {
			allowed = true
		}
	}

	if !allowed {
		return apperr.Forbidden("Only the comment author or the work author can delete this comment")
	}

	if err := service.repo.Delete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("actor_id", actorID),
	)

	return nil
}
