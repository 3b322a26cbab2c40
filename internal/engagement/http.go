// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crafiq/crafiq/internal/platform/middleware"
	requestutil "github.com/crafiq/crafiq/internal/platform/request"
	"github.com/crafiq/crafiq/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for work engagement (views and likes).
type Handler struct {
	service *Service
}

// NewHandler constructs a new engagement [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the engagement endpoints under the works route.
//
// # Routing Strategy
//
//   - Views (Public): Anonymous readers also count toward view totals.
//   - Likes (Authenticated): A like is always attributed to a real account.
func (handler *Handler) Register(router chi.Router) {

	// ## View Recording (Public)
	router.Post("/{id}/view", handler.recordView)

	// ## Like State (Public read)
	router.Get("/{id}/likes", handler.getLikeSummary)

	// ## Like Toggling (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/{id}/like", handler.toggleLike)
	})
}

// # Engagement Endpoints

/*
POST /api/v1/works/{id}/view.

Description: Records one view on the work. Fires on every read, repeat
reads included. Authenticated viewers also get the work added to their
recent-views history.

Response:
  - 200: ViewResult: The view counter after the increment
  - 404: Work missing or not visible to the viewer
*/
func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")
	viewerID := requestutil.OptionalUserID(request)

	result, err := handler.service.RecordView(request.Context(), workID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/works/{id}/like.

Description: Toggles the authenticated user's like on the work. Calling
twice returns the work to its original state.

Response:
  - 200: LikeResult: The membership state and counter after the toggle
  - 404: Work missing or not visible to the user
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleLike(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/works/{id}/likes.

Description: Returns the like counter, the viewer's own like state, and
the list of liker IDs.

Response:
  - 200: LikeSummary
  - 404: Work missing or not visible to the viewer
*/
func (handler *Handler) getLikeSummary(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")
	viewerID := requestutil.OptionalUserID(request)

	summary, err := handler.service.GetLikeSummary(request.Context(), workID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
