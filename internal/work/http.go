// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package work provides the HTTP interface for discovery and management of works.

It exposes endpoints for browsing the catalogue, reading work details, and
publishing content by authenticated creators.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /works).
  - Authenticated (v1): Mutative endpoints restricted to the work's author.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package work

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crafiq/crafiq/internal/platform/constants"
	"github.com/crafiq/crafiq/internal/platform/middleware"
	requestutil "github.com/crafiq/crafiq/internal/platform/request"
	"github.com/crafiq/crafiq/internal/platform/respond"
	"github.com/crafiq/crafiq/pkg/pagination"
	"github.com/crafiq/crafiq/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for work management and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new work [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the work domain's endpoints on the given router.
//
// # Routing Strategy
//
//   - Discovery (Public): Accessible by all visitors for browsing.
//   - Publishing (Authenticated): Author-only rules are enforced in the service.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery Endpoints
	router.Get("/", handler.listWorks)
	router.Get("/{identifier}", handler.getWork)

	// ## Publishing Endpoints (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createWork)
		authed.Patch("/{id}", handler.updateWork)
		authed.Delete("/{id}", handler.deleteWork)

		// Content
		authed.Put("/{id}/pages", handler.replacePages)
		authed.Put("/{id}/episodes", handler.replaceEpisodes)
	})
}

// # Request Payloads

// workPayload is the request body for creating or updating a work.
type workPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Genre        string   `json:"genre"`
	AgeRating    string   `json:"age_rating"`
	Visibility   string   `json:"visibility"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// pagesPayload is the request body for replacing a novel's page set.
type pagesPayload struct {
	Pages []struct {
		PageNumber int    `json:"page_number"`
		Content    string `json:"content"`
	} `json:"pages"`
}

// episodesPayload is the request body for replacing a comic's episode set.
type episodesPayload struct {
	Episodes []struct {
		EpisodeNumber int      `json:"episode_number"`
		Title         string   `json:"title"`
		ImageURLs     []string `json:"image_urls"`
	} `json:"episodes"`
}

// # Work Endpoints

/*
GET /api/v1/works.

Description: Retrieves a paginated feed of works. Supports filtering by
type and genre, case-insensitive substring search, four sort orders, and
a new-releases window that degrades gracefully to the full feed.

Request:
  - q: string (Substring search across title, author name, description, tags)
  - type: string (comic, novel)
  - genre: string (fantasy, romance, action, sf, horror, slice-of-life, mystery, comedy, martial-arts)
  - tags: string (Comma-separated; works must carry every listed tag)
  - sort: string (latest, popular, likes, title)
  - window: string ("new" restricts to the last 30 days)
  - author: string (Author UUID, or "me" for the viewer's own catalogue)
  - cursor: string (Opaque keyset cursor from a previous response)
  - limit: int
  - page: int

Response:
  - 200: []Work: Paginated list of works
*/
func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Type:     Type(queryParams.Get("type")),
		Genre:    Genre(queryParams.Get("genre")),
		Search:   queryParams.Get("q"),
		Tags:     query.StringSlice(queryParams.Get("tags")),
		Sort:     Sort(queryParams.Get("sort")),
		Cursor:   queryParams.Get("cursor"),
		AuthorID: queryParams.Get("author"),
		ViewerID: requestutil.OptionalUserID(request),
	}

	// "author=me" resolves to the viewer's own catalogue (drafts included)
	if filter.AuthorID == "me" {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.AuthorID = userID
	}

	// New releases window
	if queryParams.Get("window") == "new" {
		createdAfter := time.Now().UTC().Add(-constants.NewReleasesWindow)
		filter.CreatedAfter = &createdAfter
	}

	works, total, err := handler.service.ListWorks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	metadata := pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total).
		WithCursor(handler.service.NextCursor(works, filter.Sort, paginationParams.Limit))

	respond.Paginated(writer, works, metadata)
}

/*
GET /api/v1/works/{identifier}.

Description: Retrieves a single work by UUID or slug, with its full content
(pages or episodes) hydrated. Private works resolve to 404 for anyone but
their author.

Response:
  - 200: Work: The hydrated work
  - 404: Work missing or not visible to the viewer
*/
func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")
	viewerID := requestutil.OptionalUserID(request)

	found, err := handler.service.GetWork(request.Context(), identifier, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
POST /api/v1/works.

Description: Publishes a new work owned by the authenticated user. The
author's identity is taken from the verified token, never from the payload.

Response:
  - 201: Work: The created work
  - 400: Validation failure
*/
func (handler *Handler) createWork(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload workPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	newWork := &Work{
		Title:        payload.Title,
		Description:  payload.Description,
		Type:         Type(payload.Type),
		Genre:        Genre(payload.Genre),
		AgeRating:    AgeRating(payload.AgeRating),
		Visibility:   Visibility(payload.Visibility),
		Tags:         payload.Tags,
		ThumbnailURL: payload.ThumbnailURL,
		AuthorID:     claims.UserID,
		AuthorName:   claims.DisplayName,
	}

	if err := handler.service.CreateWork(request.Context(), newWork); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newWork)
}

/*
PATCH /api/v1/works/{id}.

Description: Applies partial metadata updates to a work. Author-only.

Response:
  - 200: Work: The updated work
  - 403: Viewer is not the author
*/
func (handler *Handler) updateWork(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload workPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := &Work{
		ID:           requestutil.ID(request, "id"),
		Title:        payload.Title,
		Description:  payload.Description,
		Type:         Type(payload.Type),
		Genre:        Genre(payload.Genre),
		AgeRating:    AgeRating(payload.AgeRating),
		Visibility:   Visibility(payload.Visibility),
		Tags:         payload.Tags,
		ThumbnailURL: payload.ThumbnailURL,
	}

	updated, err := handler.service.UpdateWork(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/works/{id}.

Description: Permanently removes a work and cascades away its content,
likes, comments, and library references. Author-only.

Response:
  - 204: Removed
  - 403: Viewer is not the author
*/
func (handler *Handler) deleteWork(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteWork(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Content Endpoints

/*
PUT /api/v1/works/{id}/pages.

Description: Replaces the full page set of a novel-type work. Page numbers
must form a dense 1..N sequence. Author-only.

Response:
  - 200: []Page: The persisted page set
  - 422: Work is not novel-type
*/
func (handler *Handler) replacePages(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload pagesPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pages := make([]*Page, 0, len(payload.Pages))
	for _, p := range payload.Pages {
		pages = append(pages, &Page{PageNumber: p.PageNumber, Content: p.Content})
	}

	saved, err := handler.service.ReplacePages(request.Context(), userID, requestutil.ID(request, "id"), pages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, saved)
}

/*
PUT /api/v1/works/{id}/episodes.

Description: Replaces the full episode set of a comic-type work. Episode
numbers must form a dense 1..N sequence. Author-only.

Response:
  - 200: []Episode: The persisted episode set
  - 422: Work is not comic-type
*/
func (handler *Handler) replaceEpisodes(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload episodesPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	episodes := make([]*Episode, 0, len(payload.Episodes))
	for _, e := range payload.Episodes {
		episodes = append(episodes, &Episode{
			EpisodeNumber: e.EpisodeNumber,
			Title:         e.Title,
			ImageURLs:     e.ImageURLs,
		})
	}

	saved, err := handler.service.ReplaceEpisodes(request.Context(), userID, requestutil.ID(request, "id"), episodes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, saved)
}
