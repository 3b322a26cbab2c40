// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package library

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crafiq/crafiq/internal/platform/middleware"
	requestutil "github.com/crafiq/crafiq/internal/platform/request"
	"github.com/crafiq/crafiq/internal/platform/respond"
	"github.com/crafiq/crafiq/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for personal shelves.
// Every endpoint operates on the authenticated user's own data.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the library domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Saved Works
	router.Get("/", handler.listLibrary)
	router.Put("/{workID}", handler.addToLibrary)
	router.Delete("/{workID}", handler.removeFromLibrary)

	// ## Liked Works (membership mutated via the engagement endpoints)
	router.Get("/liked", handler.listLikedWorks)

	// ## Reading History
	router.Get("/recent", handler.listRecentViews)
	router.Put("/recent/{workID}", handler.markRecentView)

	return router
}

// # Library Endpoints

/*
GET /api/v1/library.

Description: Retrieves a page of the authenticated user's saved works,
most recently added first.

Response:
  - 200: []Item: Paginated shelf
*/
func (handler *Handler) listLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	items, total, err := handler.service.ListLibrary(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
PUT /api/v1/library/{workID}.

Description: Saves a work to the user's shelf. Idempotent.

Response:
  - 204: Saved (or already saved)
  - 404: Work missing or not visible to the user
*/
func (handler *Handler) addToLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddToLibrary(request.Context(), userID, requestutil.ID(request, "workID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/library/{workID}.

Description: Removes a work from the user's shelf.

Response:
  - 204: Removed
  - 404: Work was not on the shelf
*/
func (handler *Handler) removeFromLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFromLibrary(request.Context(), userID, requestutil.ID(request, "workID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/library/liked.

Description: Retrieves a page of the works the authenticated user likes,
most recently liked first.

Response:
  - 200: []Item: Paginated liked shelf
*/
func (handler *Handler) listLikedWorks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	items, total, err := handler.service.ListLikedWorks(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/library/recent.

Description: Retrieves the user's reading history, most recent first,
capped server-side.

Request:
  - limit: int (Clamped to the server-side cap)

Response:
  - 200: []Item: Recently viewed works
*/
/*
PUT /api/v1/library/recent/{workID}.

Description: Records that the user viewed a work and optionally stores
their last-read position. An absent or empty marker refreshes the view
time without clearing the stored position.

Request:
  - position_marker: string (Optional, e.g. a page or episode reference)

Response:
  - 204: Recorded
  - 404: Work missing or not visible to the user
*/
func (handler *Handler) markRecentView(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Body is optional; an empty PUT just bumps the view time.
	var payload struct {
		PositionMarker string `json:"position_marker"`
	}
	_ = requestutil.DecodeJSON(request, &payload)

	if err := handler.service.MarkRecentView(request.Context(), userID, requestutil.ID(request, "workID"), payload.PositionMarker); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) listRecentViews(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))

	items, err := handler.service.ListRecentViews(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}
