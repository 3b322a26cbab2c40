// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package work defines the core domain entities for the Crafiq catalogue.

It manages the lifecycle of creator-published works (comics and web novels)
including metadata, content structure, and engagement counters.

Core Responsibility:

  - Catalogue: Defines work types (Comic, Novel), genres, and age ratings.
  - Discovery: Powers search, genre filtering, and the new-releases feed.
  - Content: Manages novel pages and comic episodes as owned sub-resources.

This package acts as the source of truth for all work-related data models.
*/
package work

import "time"

// # Domain Enums

// Type distinguishes the two content formats a work can carry.
type Type string

const (
	// TypeComic holds episodes composed of ordered image URLs.
	TypeComic Type = "comic"

	// TypeNovel holds pages composed of text content.
	TypeNovel Type = "novel"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	return t == TypeComic || t == TypeNovel
}

// Genre classifies a work into one of the platform's fixed categories.
type Genre string

const (
	GenreFantasy     Genre = "fantasy"
	GenreRomance     Genre = "romance"
	GenreAction      Genre = "action"
	GenreSF          Genre = "sf"
	GenreHorror      Genre = "horror"
	GenreSliceOfLife Genre = "slice-of-life"
	GenreMystery     Genre = "mystery"
	GenreComedy      Genre = "comedy"
	GenreMartialArts Genre = "martial-arts"
)

// AllGenres lists every recognised [Genre] in display order.
var AllGenres = []Genre{
	GenreFantasy,
	GenreRomance,
	GenreAction,
	GenreSF,
	GenreHorror,
	GenreSliceOfLife,
	GenreMystery,
	GenreComedy,
	GenreMartialArts,
}

// IsValid reports whether g is a recognised [Genre] value.
func (g Genre) IsValid() bool {
	for _, known := range AllGenres {
		if g == known {
			return true
		}
	}
	return false
}

// AgeRating classifies the audience suitability of a work.
type AgeRating string

const (
	// AgeRatingAll is suitable for all audiences.
	AgeRatingAll AgeRating = "all"

	// AgeRating12 is suitable for readers aged 12 and over.
	AgeRating12 AgeRating = "12"

	// AgeRating15 is suitable for readers aged 15 and over.
	AgeRating15 AgeRating = "15"

	// AgeRating18 is intended for adult audiences.
	AgeRating18 AgeRating = "18"
)

// IsValid reports whether r is a recognised [AgeRating] value.
func (r AgeRating) IsValid() bool {
	switch r {
	case AgeRatingAll, AgeRating12, AgeRating15, AgeRating18:
		return true
	}
	return false
}

// Visibility controls who can discover and read a work.
type Visibility string

const (
	// VisibilityPublic appears in feeds, search, and direct fetches.
	VisibilityPublic Visibility = "public"

	// VisibilityUnlisted is fetchable by direct link but excluded from feeds.
	VisibilityUnlisted Visibility = "unlisted"

	// VisibilityPrivate is readable only by its author.
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether v is a recognised [Visibility] value.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// # Core Entities

// Work is the central aggregate of the Crafiq domain.
// It represents a single comic or novel published by a creator.
type Work struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"` // URL-safe identifier
	Description  string     `json:"description"`
	Type         Type       `json:"type"`
	Genre        Genre      `json:"genre"`
	AgeRating    AgeRating  `json:"age_rating"`
	Visibility   Visibility `json:"visibility"`
	Tags         []string   `json:"tags"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`

	// # Authorship
	// AuthorName is denormalized onto the work at creation time so feed
	// queries never join the accounts table.
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`

	// # Engagement Counters
	// ViewCount and LikeCount are maintained atomically by the engagement
	// layer; they are never written through work updates.
	ViewCount int64 `json:"view_count"`
	LikeCount int64 `json:"like_count"`

	// # Content (hydrated only on detail fetches)
	Pages    []*Page    `json:"pages,omitempty"`    // Novel text, ordered by PageNumber
	Episodes []*Episode `json:"episodes,omitempty"` // Comic episodes, ordered by EpisodeNumber

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID is the work's author.
func (w *Work) IsOwnedBy(userID string) bool {
	return userID != "" && w.AuthorID == userID
}

// Page is a single text page of a novel-type work.
type Page struct {
	ID         string    `json:"id"`
	WorkID     string    `json:"work_id"`
	PageNumber int       `json:"page_number"` // 1-indexed, dense
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Episode is a single image-sequence episode of a comic-type work.
type Episode struct {
	ID            string    `json:"id"`
	WorkID        string    `json:"work_id"`
	EpisodeNumber int       `json:"episode_number"` // 1-indexed, dense
	Title         string    `json:"title"`
	ImageURLs     []string  `json:"image_urls"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// # Search & Filtering

// Sort identifies the ordering applied to a work feed.
type Sort string

const (
	// SortLatest orders by creation time, newest first (default).
	SortLatest Sort = "latest"

	// SortPopular orders by view count, highest first.
	SortPopular Sort = "popular"

	// SortLikes orders by like count, highest first.
	SortLikes Sort = "likes"

	// SortTitle orders alphabetically by title, ascending.
	SortTitle Sort = "title"
)

// IsValid reports whether s is a recognised [Sort] value.
func (s Sort) IsValid() bool {
	switch s {
	case SortLatest, SortPopular, SortLikes, SortTitle:
		return true
	}
	return false
}

// Filter holds the parameters for a filtered work list query.
type Filter struct {
	Type         Type       `json:"type,omitempty"`
	Genre        Genre      `json:"genre,omitempty"`
	Search       string     `json:"q,omitempty"`             // Case-insensitive substring match
	Tags         []string   `json:"tags,omitempty"`          // Works must carry every listed tag
	CreatedAfter *time.Time `json:"created_after,omitempty"` // New-releases window lower bound
	Sort         Sort       `json:"sort,omitempty"`
	Cursor       string     `json:"cursor,omitempty"` // Opaque keyset cursor
	AuthorID     string     `json:"author_id,omitempty"`

	// ViewerID is the authenticated user performing the query ("" when
	// anonymous). It scopes visibility: feeds return public works only,
	// except when the viewer lists their own catalogue.
	ViewerID string `json:"-"`
}

// IncludesOwnWorks reports whether the filter targets the viewer's own
// catalogue, which bypasses the public-only visibility rule.
func (f Filter) IncludesOwnWorks() bool {
	return f.AuthorID != "" && f.AuthorID == f.ViewerID
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldSlug         = "slug"
	FieldDescription  = "description"
	FieldType         = "type"
	FieldGenre        = "genre"
	FieldAgeRating    = "age_rating"
	FieldVisibility   = "visibility"
	FieldTags         = "tags"
	FieldThumbnailURL = "thumbnail_url"
	FieldSort         = "sort"
	FieldCursor       = "cursor"
)

// Field identifiers for the content sub-resources.
const (
	FieldPages         = "pages"
	FieldPageNumber    = "page_number"
	FieldPageContent   = "content"
	FieldEpisodes      = "episodes"
	FieldEpisodeNumber = "episode_number"
	FieldEpisodeTitle  = "title"
	FieldImageURLs     = "image_urls"
)

// Validation bounds for work metadata and content payloads.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 4000
	MaxTags           = 10
	MaxTagLen         = 30
	MaxPageContentLen = 50000
	MaxEpisodeImages  = 200
)
