// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package work

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crafiq/crafiq/internal/platform/apperr"
	"github.com/crafiq/crafiq/internal/platform/validate"
	"github.com/crafiq/crafiq/pkg/cursor"
	"github.com/crafiq/crafiq/pkg/slug"
	"github.com/crafiq/crafiq/pkg/uuidv7"
)

// # Service Layer

// ViewRecorder applies the read side effect of fetching a work: the view
// counter bump and, for authenticated viewers, the recent-views history.
//
// # Why an interface?
//
// The engagement domain owns the counters; declaring the contract here
// keeps the dependency pointing outward and lets tests inject a fake.
type ViewRecorder interface {
	RecordView(context context.Context, workID, viewerID string) error
}

// ViewRecorderFunc adapts a plain function to the [ViewRecorder] interface.
type ViewRecorderFunc func(context context.Context, workID, viewerID string) error

// RecordView calls f(context, workID, viewerID).
func (f ViewRecorderFunc) RecordView(context context.Context, workID, viewerID string) error {
	return f(context, workID, viewerID)
}

// Service orchestrates the business logic for the work catalogue.
// It enforces ownership, visibility, and content-shape rules before
// delegating persistence to the repository.
type Service struct {
	repo     Repository
	recorder ViewRecorder
	logger   *slog.Logger
}

// NewService constructs a new [Service]. The recorder may be nil when
// view counting is not wired (e.g. in isolated tests).
func NewService(repo Repository, recorder ViewRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// # Discovery

/*
ListWorks retrieves a paginated and filtered collection of works.

Description: This method orchestrates the discovery phase of the catalogue.
Visibility scoping is applied at the repository level: feeds only surface
public works, unless the viewer lists their own catalogue.

Fallback: When a new-releases window (CreatedAfter) yields no rows or an
error, the query is retried once with the window removed so the feed is
never empty when matching works exist at all. The fallback applies to this
read path only; errors on any mutation path are always surfaced.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for type, genre, search, sort, window)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Work: Slice of matching works
  - int: Total count of records matching the filter
  - error: System or repository level errors
*/
func (service *Service) ListWorks(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {

	// Filter criteria validation
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	// Tag filters use the same normal form as stored tags
	filter.Tags = normalizeTags(filter.Tags)

	works, total, err := service.repo.List(context, filter, limit, offset)

	// New-releases window fallback: degrade to the unwindowed feed rather
	// than showing an empty shelf.
	if filter.CreatedAfter != nil && (err != nil || len(works) == 0) {
		if err != nil {
			service.logger.Warn("new_releases_window_failed", slog.Any("error", err))
		}

		fallback := filter
		fallback.CreatedAfter = nil

		works, total, err = service.repo.List(context, fallback, limit, offset)
		if err == nil {
			service.logger.Info("new_releases_fallback_served", slog.Int("total", total))
		}
	}

	if err != nil {
		return nil, 0, err
	}

	return works, total, nil
}

/*
NextCursor derives the opaque keyset cursor for the page following the
given result set.

Description: Returns "" when the result set is shorter than the limit,
meaning there is no further page. The cursor captures the active sort
key of the last row plus its ID as tie-breaker.

Parameters:
  - works: []*Work (The page just served)
  - sort: Sort (The feed's active ordering)
  - limit: int (Requested page size)

Returns:
  - string: Opaque cursor for the next page, or "" at the end
*/
func (service *Service) NextCursor(works []*Work, sort Sort, limit int) string {
	if len(works) < limit || len(works) == 0 {
		return ""
	}

	last := works[len(works)-1]
	key := cursor.Key{ID: last.ID}

	switch sort {
	case SortPopular:
		key.Count = last.ViewCount
	case SortLikes:
		key.Count = last.LikeCount
	case SortTitle:
		key.Title = last.Title
	default:
		key.CreatedAt = last.CreatedAt
	}

	return cursor.Encode(key)
}

/*
GetWork fetches a single work by UUID or SEO slug, with content hydrated.

Description: The service determines the lookup strategy from the identifier
format, then enforces visibility: private works resolve to NotFound for
anyone but their author, so their existence is never revealed. Unlisted
works remain fetchable by direct link.

Every successful fetch counts as a read: the view counter is bumped
through the recorder and the returned entity reflects the increment.
A recorder failure degrades to the pre-increment counter instead of
failing the read.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)
  - viewerID: string (Authenticated user ID, "" when anonymous)

Returns:
  - *Work: The hydrated entity including pages or episodes
  - error: ErrNotFound if missing or not visible to the viewer
*/
func (service *Service) GetWork(context context.Context, identifier, viewerID string) (*Work, error) {

	// Identity format detection
	var (
		found *Work
		err   error
	)
	if isUUID(identifier) {
		found, err = service.repo.FindByID(context, identifier)
	} else {
		found, err = service.repo.FindBySlug(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	// Private works are indistinguishable from missing ones for non-authors
	if found.Visibility == VisibilityPrivate && !found.IsOwnedBy(viewerID) {
		return nil, apperr.NotFound("Work")
	}

	// Content hydration by work type
	switch found.Type {
	case TypeNovel:
		found.Pages, err = service.repo.ListPages(context, found.ID)
	case TypeComic:
		found.Episodes, err = service.repo.ListEpisodes(context, found.ID)
	}
	if err != nil {
		return nil, err
	}

	// Reading a work is a view (best effort)
	if service.recorder != nil {
		if err := service.recorder.RecordView(context, found.ID, viewerID); err != nil {
			service.logger.Warn("view_record_failed",
				slog.String("work_id", found.ID),
				slog.Any("error", err),
			)
		} else {
			found.ViewCount++
		}
	}

	return found, nil
}

// # Work Management

/*
CreateWork initialises a new work record in the system.

Description: Performs deep business validation on the metadata, generates
a stable UUID v7 identity, and creates an SEO-friendly slug before
persisting. Engagement counters start at zero.

Parameters:
  - context: context.Context
  - work: *Work (The entity to be persisted; AuthorID/AuthorName must be set)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateWork(context context.Context, work *Work) error {

	// Default state
	if work.Visibility == "" {
		work.Visibility = VisibilityPublic
	}
	if work.AgeRating == "" {
		work.AgeRating = AgeRatingAll
	}
	work.Tags = normalizeTags(work.Tags)

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, work.Title).MaxLen(FieldTitle, work.Title, MaxTitleLen)
	validator.MaxLen(FieldDescription, work.Description, MaxDescriptionLen)

	validator.Required(FieldType, string(work.Type)).
		Custom(FieldType, work.Type != "" && !work.Type.IsValid(), "Must be one of: comic, novel")

	validator.Required(FieldGenre, string(work.Genre)).
		Custom(FieldGenre, work.Genre != "" && !work.Genre.IsValid(), "Unknown genre")

	validator.Custom(FieldAgeRating, !work.AgeRating.IsValid(), "Must be one of: all, 12, 15, 18")
	validator.Custom(FieldVisibility, !work.Visibility.IsValid(), "Must be one of: public, unlisted, private")

	validator.Custom(FieldTags, len(work.Tags) > MaxTags, "Too many tags")
	for _, tag := range work.Tags {
		validator.MaxLen(FieldTags, tag, MaxTagLen)
	}

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return err
	}

	// Identity & Slug generation
	if work.ID == "" {
		work.ID = uuidv7.New()
	}
	if work.Slug == "" {
		work.Slug = slug.From(work.Title)
	}

	// Counters always start clean regardless of input
	work.ViewCount = 0
	work.LikeCount = 0

	// Persistence via Repository
	if err := service.repo.Create(context, work); err != nil {
		return err
	}

	service.logger.Info("work_created",
		slog.String("work_id", work.ID),
		slog.String("author_id", work.AuthorID),
		slog.String("type", string(work.Type)),
	)

	return nil
}

/*
UpdateWork applies modifications to an existing work.

Description: Supports partial updates; non-empty fields in the input
overwrite existing values. Only the work's author may update it. View
and like counters cannot be modified through this path.

Parameters:
  - context: context.Context
  - viewerID: string (Authenticated actor)
  - input: *Work (Target ID and modified attributes)

Returns:
  - *Work: The updated entity
  - error: Forbidden for non-authors, validation or persistence errors
*/
func (service *Service) UpdateWork(context context.Context, viewerID string, input *Work) (*Work, error) {

	// Ownership resolution
	existing, err := service.repo.FindByID(context, input.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(viewerID) {
		return nil, apperr.Forbidden("Only the author can update this work")
	}

	// Integrity validation for updated fields
	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, MaxTitleLen)
		existing.Title = input.Title
	}
	if input.Description != "" {
		validator.MaxLen(FieldDescription, input.Description, MaxDescriptionLen)
		existing.Description = input.Description
	}
	if input.Genre != "" {
		validator.Custom(FieldGenre, !input.Genre.IsValid(), "Unknown genre")
		existing.Genre = input.Genre
	}
	if input.AgeRating != "" {
		validator.Custom(FieldAgeRating, !input.AgeRating.IsValid(), "Must be one of: all, 12, 15, 18")
		existing.AgeRating = input.AgeRating
	}
	if input.Visibility != "" {
		validator.Custom(FieldVisibility, !input.Visibility.IsValid(), "Must be one of: public, unlisted, private")
		existing.Visibility = input.Visibility
	}
	if input.ThumbnailURL != "" {
		existing.ThumbnailURL = input.ThumbnailURL
	}
	if input.Tags != nil {
		tags := normalizeTags(input.Tags)
		validator.Custom(FieldTags, len(tags) > MaxTags, "Too many tags")
		for _, tag := range tags {
			validator.MaxLen(FieldTags, tag, MaxTagLen)
		}
		existing.Tags = tags
	}

	// The content format of a work is fixed at creation
	if input.Type != "" && input.Type != existing.Type {
		return nil, apperr.Unprocessable("The type of a work cannot be changed")
	}

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Execute storage update
	if err := service.repo.Update(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("work_updated", slog.String("work_id", existing.ID))

	return existing, nil
}

/*
DeleteWork permanently removes a work and everything attached to it.

Description: Only the work's author may delete it. The removal is hard:
pages, episodes, likes, comments, and library references are cascaded
away by the storage layer and cannot be recovered.

Parameters:
  - context: context.Context
  - viewerID: string (Authenticated actor)
  - id: string (UUID)

Returns:
  - error: Forbidden for non-authors, ErrNotFound if already gone
*/
func (service *Service) DeleteWork(context context.Context, viewerID, id string) error {

	// Ownership resolution
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(viewerID) {
		return apperr.Forbidden("Only the author can delete this work")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("work_deleted",
		slog.String("work_id", id),
		slog.String("author_id", viewerID),
	)

	return nil
}

// # Content Management

/*
ReplacePages replaces the full page set of a novel-type work.

Description: The submitted set must be densely numbered 1..N with no gaps
or duplicates. Submitting pages to a comic-type work is rejected with a
422 so content never disagrees with the work's declared format.

Parameters:
  - context: context.Context
  - viewerID: string (Authenticated actor)
  - workID: string (Owner UUID)
  - pages: []*Page (Complete new page set)

Returns:
  - []*Page: The persisted page set ordered by page number
  - error: Forbidden, Unprocessable, validation or persistence errors
*/
func (service *Service) ReplacePages(context context.Context, viewerID, workID string, pages []*Page) ([]*Page, error) {

	// Ownership and format resolution
	owner, err := service.repo.FindByID(context, workID)
	if err != nil {
		return nil, err
	}
	if !owner.IsOwnedBy(viewerID) {
		return nil, apperr.Forbidden("Only the author can edit this work's content")
	}
	if owner.Type != TypeNovel {
		return nil, apperr.Unprocessable("Pages can only be attached to novel-type works")
	}

	// Dense numbering and content validation
	validator := &validate.Validator{}
	numbers := make([]int, 0, len(pages))
	for _, page := range pages {
		numbers = append(numbers, page.PageNumber)
		validator.Required(FieldPageContent, page.Content).
			MaxLen(FieldPageContent, page.Content, MaxPageContentLen)
	}
	validator.Dense(FieldPageNumber, numbers)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Identity assignment for the new set
	for _, page := range pages {
		if page.ID == "" {
			page.ID = uuidv7.New()
		}
		page.WorkID = workID
	}

	if err := service.repo.ReplacePages(context, workID, pages); err != nil {
		return nil, err
	}

	service.logger.Info("work_pages_replaced",
		slog.String("work_id", workID),
		slog.Int("page_count", len(pages)),
	)

	return service.repo.ListPages(context, workID)
}

/*
ReplaceEpisodes replaces the full episode set of a comic-type work.

Description: Mirror of [Service.ReplacePages] for comics. Episodes must be
densely numbered 1..N; each episode carries an ordered list of image URLs.

Parameters:
  - context: context.Context
  - viewerID: string (Authenticated actor)
  - workID: string (Owner UUID)
  - episodes: []*Episode (Complete new episode set)

Returns:
  - []*Episode: The persisted episode set ordered by episode number
  - error: Forbidden, Unprocessable, validation or persistence errors
*/
func (service *Service) ReplaceEpisodes(context context.Context, viewerID, workID string, episodes []*Episode) ([]*Episode, error) {

	// Ownership and format resolution
	owner, err := service.repo.FindByID(context, workID)
	if err != nil {
		return nil, err
	}
	if !owner.IsOwnedBy(viewerID) {
		return nil, apperr.Forbidden("Only the author can edit this work's content")
	}
	if owner.Type != TypeComic {
		return nil, apperr.Unprocessable("Episodes can only be attached to comic-type works")
	}

	// Dense numbering and payload validation
	validator := &validate.Validator{}
	numbers := make([]int, 0, len(episodes))
	for _, episode := range episodes {
		numbers = append(numbers, episode.EpisodeNumber)
		validator.MaxLen(FieldEpisodeTitle, episode.Title, MaxTitleLen)
		validator.Custom(FieldImageURLs, len(episode.ImageURLs) == 0, "An episode needs at least one image")
		validator.Custom(FieldImageURLs, len(episode.ImageURLs) > MaxEpisodeImages, "Too many images in one episode")
	}
	validator.Dense(FieldEpisodeNumber, numbers)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Identity assignment for the new set
	for _, episode := range episodes {
		if episode.ID == "" {
			episode.ID = uuidv7.New()
		}
		episode.WorkID = workID
	}

	if err := service.repo.ReplaceEpisodes(context, workID, episodes); err != nil {
		return nil, err
	}

	service.logger.Info("work_episodes_replaced",
		slog.String("work_id", workID),
		slog.Int("episode_count", len(episodes)),
	)

	return service.repo.ListEpisodes(context, workID)
}

// # Internal Helpers

// validateFilter rejects unknown enum values before they reach SQL building.
func validateFilter(filter Filter) error {
	validator := &validate.Validator{}

	if filter.Type != "" {
		validator.Custom(FieldType, !filter.Type.IsValid(), "Must be one of: comic, novel")
	}
	if filter.Genre != "" {
		validator.Custom(FieldGenre, !filter.Genre.IsValid(), "Unknown genre")
	}
	if filter.Sort != "" {
		validator.Custom(FieldSort, !filter.Sort.IsValid(), "Must be one of: latest, popular, likes, title")
	}
	if filter.Cursor != "" {
		_, err := cursor.Decode(filter.Cursor)
		validator.Custom(FieldCursor, err != nil, "Invalid cursor")
	}

	return validator.Err()
}

// normalizeTags trims whitespace, lowercases, and drops empty entries.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
