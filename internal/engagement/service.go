// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package engagement

import (
	"context"
	"log/slog"

	"github.com/crafiq/crafiq/internal/platform/apperr"
)

// # Service Layer

// ViewTracker receives view notifications for a user's recent-views history.
//
// # Why an interface?
//
// The library domain owns the recent-views shelf; declaring the contract
// here keeps the dependency pointing outward and lets tests inject a fake.
type ViewTracker interface {
	TrackView(context context.Context, userID, workID string) error
}

// Service orchestrates view and like mutations on works.
type Service struct {
	repo    Repository
	tracker ViewTracker
	logger  *slog.Logger
}

// NewService constructs a new [Service]. The tracker may be nil when
// recent-view history is not wired (e.g. in isolated tests).
func NewService(repo Repository, tracker ViewTracker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		tracker: tracker,
		logger:  logger,
	}
}

// # View Recording

/*
RecordView increments a work's view counter by one.

Description: Every read of a visible work counts, including repeat reads by
the same user; there is no dedup window. For authenticated viewers the view
is also forwarded to the library domain's recent-views history. A failure
to record history never fails the view itself.

Parameters:
  - context: context.Context
  - workID: string (Target work)
  - viewerID: string (Authenticated user ID, "" when anonymous)

Returns:
  - *ViewResult: The counter after the increment
  - error: NotFound if the work is missing or private to the viewer
*/
func (service *Service) RecordView(context context.Context, workID, viewerID string) (*ViewResult, error) {

	// Access resolution: private works look missing to non-authors
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return nil, err
	}
	if !meta.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Work")
	}

	// Atomic counter bump
	viewCount, err := service.repo.IncrementView(context, workID)
	if err != nil {
		return nil, err
	}

	// Recent-views history (best effort, authenticated viewers only)
	if service.tracker != nil && viewerID != "" {
		if err := service.tracker.TrackView(context, viewerID, workID); err != nil {
			service.logger.Warn("recent_view_tracking_failed",
				slog.String("work_id", workID),
				slog.String("user_id", viewerID),
				slog.Any("error", err),
			)
		}
	}

	return &ViewResult{ViewCount: viewCount}, nil
}

// # Like Toggling

/*
ToggleLike flips the user's like on a work.

Description: A single call is self-inverse: liking an unliked work adds the
user to the membership set and increments the counter; calling again removes
the membership and decrements. Both writes happen in one transaction under a
row lock, so the counter and the membership set can never diverge, no matter
how many toggles race.

Parameters:
  - context: context.Context
  - workID: string (Target work)
  - userID: string (Acting user, must be authenticated)

Returns:
  - *LikeResult: The membership state and counter after the toggle
  - error: NotFound if the work is missing or private to the user
*/
func (service *Service) ToggleLike(context context.Context, workID, userID string) (*LikeResult, error) {

	// Access resolution: private works look missing to non-authors
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return nil, err
	}
	if !meta.VisibleTo(userID) {
		return nil, apperr.NotFound("Work")
	}

	liked, likeCount, err := service.repo.ToggleLike(context, workID, userID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("work_like_toggled",
		slog.String("work_id", workID),
		slog.String("user_id", userID),
		slog.Bool("liked", liked),
		slog.Int64("like_count", likeCount),
	)

	return &LikeResult{Liked: liked, LikeCount: likeCount}, nil
}

/*
GetLikeSummary returns the like state of a work for a given viewer.

Description: Includes the counter, the viewer's own membership state, and
the full list of liker IDs for profile display.

Parameters:
  - context: context.Context
  - workID: string (Target work)
  - viewerID: string (Authenticated user ID, "" when anonymous)

Returns:
  - *LikeSummary: Counter, viewer state, and liker IDs
  - error: NotFound if the work is missing or private to the viewer
*/
func (service *Service) GetLikeSummary(context context.Context, workID, viewerID string) (*LikeSummary, error) {

	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return nil, err
	}
	if !meta.VisibleTo(viewerID) {
		return nil, apperr.NotFound("Work")
	}

	likeCount, err := service.repo.CountLikes(context, workID)
	if err != nil {
		return nil, err
	}

	likerIDs, err := service.repo.ListLikerIDs(context, workID)
	if err != nil {
		return nil, err
	}

	summary := &LikeSummary{
		LikeCount: likeCount,
		LikerIDs:  likerIDs,
	}

	if viewerID != "" {
		summary.Liked, err = service.repo.HasLiked(context, workID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return summary, nil
}
