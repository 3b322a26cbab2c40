// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package engagement

import "context"

// # Engagement Data Access

// Repository defines the data access contract for views and likes.
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
		ToggleLike atomically flips the user's like membership on a work and
		adjusts the denormalized like counter in the same transaction.

		Description: The work row is locked FOR UPDATE for the duration of the
		transaction, so concurrent toggles serialize and the counter always
		equals the membership count.

		Parameters:
		  - context: context.Context
		  - workID: string (Target work)
		  - userID: string (Acting user)

		Returns:
		  - bool: Membership state after the toggle (true = now liked)
		  - int64: Like counter after the toggle
		  - error: ErrNotFound if the work vanished, transactional failures
	*/
	ToggleLike(context context.Context, workID, userID string) (bool, int64, error)

	/*
		IncrementView atomically adds one to a work's view counter.

		Parameters:
		  - context: context.Context
		  - workID: string (Target work)

		Returns:
		  - int64: View counter after the increment
		  - error: ErrNotFound if the work does not exist
	*/
	IncrementView(context context.Context, workID string) (int64, error)

	/*
		HasLiked reports whether the user currently likes the work.

		Parameters:
		  - context: context.Context
		  - workID: string
		  - userID: string

		Returns:
		  - bool: Membership state
		  - error: Retrieval failures
	*/
	HasLiked(context context.Context, workID, userID string) (bool, error)

	/*
		ListLikerIDs returns the IDs of all users who like the work, most
		recent first.

		Parameters:
		  - context: context.Context
		  - workID: string

		Returns:
		  - []string: User UUIDs
		  - error: Retrieval failures
	*/
	ListLikerIDs(context context.Context, workID string) ([]string, error)

	/*
		CountLikes returns the work's denormalized like counter.

		Parameters:
		  - context: context.Context
		  - workID: string

		Returns:
		  - int64: Like counter
		  - error: ErrNotFound if the work does not exist
	*/
	CountLikes(context context.Context, workID string) (int64, error)
}
