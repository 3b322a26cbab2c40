// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for the comment domain.
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
		ListByWork returns a work's comments, newest first, with the total count.

		Parameters:
		  - context: context.Context
		  - workID: string (Owner UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Page of comments
		  - int: Total comment count for the work
		  - error: Retrieval failures
	*/
	ListByWork(context context.Context, workID string, limit, offset int) ([]*Comment, int, error)

	/*
		FindByID returns the comment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Comment: The hydrated comment
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Delete removes a comment permanently.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if the comment no longer exists
	*/
	Delete(context context.Context, id string) error
}

// # Rate Limiting

// RateLimiter throttles comment creation per user.
//
// Implemented on Redis with a fixed one-minute window; the interface keeps
// the service testable without a live Redis.
type RateLimiter interface {

	/*
		Allow consumes one posting slot for the user.

		Parameters:
		  - context: context.Context
		  - userID: string (Acting user)

		Returns:
		  - bool: Whether the post is allowed
		  - int: Seconds until the window resets (when denied)
		  - error: Backend failures
	*/
	Allow(context context.Context, userID string) (bool, int, error)
}
