// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package library

import (
	"context"
	"log/slog"

	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/constants"
)

// # Service Layer

// Service orchestrates the business logic for personal shelves.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Saved Works

/*
ListLibrary retrieves a page of the user's saved works, most recently
added first.

Parameters:
  - context: context.Context
  - userID: string (Shelf owner)
  - limit: int
  - offset: int

Returns:
  - []*Item: Page of shelf items
  - int: Total saved works
  - error: Retrieval failures
*/
func (service *Service) ListLibrary(context context.Context, userID string, limit, offset int) ([]*Item, int, error) {
	return service.repo.ListEntries(context, userID, limit, offset)
}

/*
AddToLibrary saves a work to the user's shelf.

Description: Idempotent: saving an already saved work succeeds without
effect. Works the user cannot see (private, non-author) resolve to
NotFound so the shelf never leaks their existence.

Parameters:
  - context: context.Context
  - userID: string (Shelf owner)
  - workID: string (Target work)

Returns:
  - error: NotFound if missing or invisible, persistence failures
*/
func (service *Service) AddToLibrary(context context.Context, userID, workID string) error {

	// Access resolution: private works look missing to non-authors
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return err
	}
	if !meta.VisibleTo(userID) {
		return apperr.NotFound("Work")
	}

	if err := service.repo.AddEntry(context, userID, workID); err != nil {
		return err
	}

	service.logger.Info("library_entry_added",
		slog.String("user_id", userID),
		slog.String("work_id", workID),
	)

	return nil
}

/*
RemoveFromLibrary removes a work from the user's shelf.

Parameters:
  - context: context.Context
  - userID: string (Shelf owner)
  - workID: string (Target work)

Returns:
  - error: ErrNotFound if the work was not saved
*/
func (service *Service) RemoveFromLibrary(context context.Context, userID, workID string) error {
	if err := service.repo.RemoveEntry(context, userID, workID); err != nil {
		return err
	}

	service.logger.Info("library_entry_removed",
		slog.String("user_id", userID),
		slog.String("work_id", workID),
	)

	return nil
}

/*
ListLikedWorks retrieves a page of the works the user currently likes,
most recently liked first.

Description: The liked shelf is read-only here; membership is mutated
through the engagement domain's like toggle.

Parameters:
  - context: context.Context
  - userID: string (Acting user)
  - limit: int
  - offset: int

Returns:
  - []*Item: Page of liked works
  - int: Total liked works
  - error: Retrieval failures
*/
func (service *Service) ListLikedWorks(context context.Context, userID string, limit, offset int) ([]*Item, int, error) {
	return service.repo.ListLikedWorks(context, userID, limit, offset)
}

// # Recent Views

/*
ListRecentViews returns the user's reading history, most recent first.

The history is capped server-side; clients always receive at most the
configured maximum regardless of the requested limit.

Parameters:
  - context: context.Context
  - userID: string (History owner)
  - limit: int (Requested size, clamped to the cap)

Returns:
  - []*Item: Recently viewed works
  - error: Retrieval failures
*/
func (service *Service) ListRecentViews(context context.Context, userID string, limit int) ([]*Item, error) {
	if limit <= 0 || limit > constants.RecentViewsLimit {
		limit = constants.RecentViewsLimit
	}
	return service.repo.ListRecentViews(context, userID, limit)
}

/*
TrackView records that the user just viewed a work.

Description: Implements the engagement domain's ViewTracker contract.
Re-viewing a work moves it to the top of the history instead of creating
a duplicate; rows beyond the cap are pruned. The stored reading position
is left untouched.

Parameters:
  - context: context.Context
  - userID: string (History owner)
  - workID: string (Viewed work)

Returns:
  - error: Persistence failures
*/
func (service *Service) TrackView(context context.Context, userID, workID string) error {
	return service.repo.UpsertRecentView(context, userID, workID, "", constants.RecentViewsLimit)
}

/*
MarkRecentView records a view with an explicit reading position.

Description: Backs the client-driven history endpoint. Unlike TrackView,
the work's existence and visibility are checked here because the call
does not ride on a successful work fetch. An empty position refreshes
the view time without clearing the stored marker.

Parameters:
  - context: context.Context
  - userID: string (History owner)
  - workID: string (Viewed work)
  - position: string (Last-read position marker, may be empty)

Returns:
  - error: NotFound if missing or invisible, persistence failures
*/
func (service *Service) MarkRecentView(context context.Context, userID, workID, position string) error {
	meta, err := service.repo.FindWorkMeta(context, workID)
	if err != nil {
		return err
	}
	if !meta.VisibleTo(userID) {
		return apperr.NotFound("Work")
	}

	return service.repo.UpsertRecentView(context, userID, workID, position, constants.RecentViewsLimit)
}
