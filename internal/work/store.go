// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package work

import "context"

// # Work Data Access

// Repository defines the data access contract for the work domain.
type Repository interface {

	/*
		List returns a filtered, paginated slice of works and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for type, genre, search, visibility scope)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Work: Slice of matching works, content not hydrated
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error)

	/*
		FindByID returns the work with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Work: The hydrated domain entity, content not included
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Work, error)

	/*
		FindBySlug returns the work matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Work: The hydrated domain entity, content not included
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Work, error)

	/*
		Create persists a new work to the store.

		Parameters:
		  - context: context.Context
		  - work: *Work (Metadata and initial state)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, work *Work) error

	/*
		Update persists changes to an existing work's mutable metadata.
		Engagement counters are never written through this path.

		Parameters:
		  - context: context.Context
		  - work: *Work (Target ID and modified attributes)

		Returns:
		  - error: ErrNotFound if the work no longer exists
	*/
	Update(context context.Context, work *Work) error

	/*
		Delete removes a work permanently. Content, likes, comments, and
		library references are removed by cascading foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if the work no longer exists
	*/
	Delete(context context.Context, id string) error

	// # Content Sub-resources

	/*
		ListPages returns all pages of a novel ordered by page number.

		Parameters:
		  - context: context.Context
		  - workID: string (Owner UUID)

		Returns:
		  - []*Page: Ordered collection of text pages
		  - error: Retrieval failures
	*/
	ListPages(context context.Context, workID string) ([]*Page, error)

	/*
		ReplacePages atomically replaces the full page set of a novel.
		The previous pages are removed and the new set inserted in one
		transaction.

		Parameters:
		  - context: context.Context
		  - workID: string (Owner UUID)
		  - pages: []*Page (Complete new page set)

		Returns:
		  - error: Transactional failures
	*/
	ReplacePages(context context.Context, workID string, pages []*Page) error

	/*
		ListEpisodes returns all episodes of a comic ordered by episode number.

		Parameters:
		  - context: context.Context
		  - workID: string (Owner UUID)

		Returns:
		  - []*Episode: Ordered collection of episodes
		  - error: Retrieval failures
	*/
	ListEpisodes(context context.Context, workID string) ([]*Episode, error)

	/*
		ReplaceEpisodes atomically replaces the full episode set of a comic.

		Parameters:
		  - context: context.Context
		  - workID: string (Owner UUID)
		  - episodes: []*Episode (Complete new episode set)

		Returns:
		  - error: Transactional failures
	*/
	ReplaceEpisodes(context context.Context, workID string, episodes []*Episode) error
}
