// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package library

import "context"

// # Library Data Access

// Repository defines the data access contract for the library domain.
type Repository interface {

	/*
		FindWorkMeta returns the access-control projection of a work.

		Parameters:
		  - context: context.Context
		  - workID: string (UUID)

		Returns:
		  - *WorkMeta: Author and visibility of the work
		  - error: ErrNotFound if the work does not exist
	*/
	FindWorkMeta(context context.Context, workID string) (*WorkMeta, error)

	/*
		ListEntries returns the user's saved works, most recently added
		first, with the total count.

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
	ListEntries(context context.Context, userID string, limit, offset int) ([]*Item, int, error)

	/*
		AddEntry saves a work to the user's library. Saving an already
		saved work is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string (Shelf owner)
		  - workID: string (Target work)

		Returns:
		  - error: Constraint or persistence failures
	*/
	AddEntry(context context.Context, userID, workID string) error

	/*
		ListLikedWorks returns the works the user currently likes, most
		recently liked first, with the total count.

		Parameters:
		  - context: context.Context
		  - userID: string (Acting user)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Item: Page of liked works (AddedAt carries the like time)
		  - int: Total liked works
		  - error: Retrieval failures
	*/
	ListLikedWorks(context context.Context, userID string, limit, offset int) ([]*Item, int, error)

	/*
		RemoveEntry removes a work from the user's library.

		Parameters:
		  - context: context.Context
		  - userID: string (Shelf owner)
		  - workID: string (Target work)

		Returns:
		  - error: ErrNotFound if the work was not saved
	*/
	RemoveEntry(context context.Context, userID, workID string) error

	/*
		ListRecentViews returns the user's reading history, most recent
		first, capped by limit.

		Parameters:
		  - context: context.Context
		  - userID: string (History owner)
		  - limit: int

		Returns:
		  - []*Item: Recently viewed works (AddedAt carries the view time)
		  - error: Retrieval failures
	*/
	ListRecentViews(context context.Context, userID string, limit int) ([]*Item, error)

	/*
		UpsertRecentView records that the user viewed a work now, moving it
		to the top of the history and pruning entries beyond the cap.

		Parameters:
		  - context: context.Context
		  - userID: string (History owner)
		  - workID: string (Viewed work)
		  - position: string (Last-read position; empty preserves the stored marker)
		  - keep: int (Maximum history rows to retain)

		Returns:
		  - error: Persistence failures
	*/
	UpsertRecentView(context context.Context, userID, workID, position string, keep int) error
}
