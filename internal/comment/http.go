// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crafiq/crafiq/internal/platform/middleware"
	requestutil "github.com/crafiq/crafiq/internal/platform/request"
	"github.com/crafiq/crafiq/internal/platform/respond"
	"github.com/crafiq/crafiq/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for work discussion.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the comment endpoints under the works route.
func (handler *Handler) Register(router chi.Router) {

	// ## Reading (Public)
	router.Get("/{id}/comments", handler.listComments)

	// ## Posting & Moderation (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/{id}/comments", handler.createComment)
		authed.Delete("/{id}/comments/{commentID}", handler.deleteComment)
	})
}

// # Request Payloads

// commentPayload is the request body for posting a comment.
type commentPayload struct {
	Content string `json:"content"`
}

// # Comment Endpoints

/*
GET /api/v1/works/{id}/comments.

Description: Retrieves a page of the work's comments, newest first.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Comment: Paginated list of comments
  - 404: Work missing or not visible to the viewer
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	workID := requestutil.ID(request, "id")
	viewerID := requestutil.OptionalUserID(request)

	comments, total, err := handler.service.ListComments(request.Context(), workID, viewerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/works/{id}/comments.

Description: Posts a comment as the authenticated user. Content is trimmed
before validation; posting is rate limited per user.

Response:
  - 201: Comment: The created comment
  - 400: Empty or oversized content
  - 429: Posting rate exceeded
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload commentPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateComment(
		request.Context(),
		requestutil.ID(request, "id"),
		claims.UserID,
		claims.DisplayName,
		payload.Content,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
DELETE /api/v1/works/{id}/comments/{commentID}.

Description: Removes a comment. Allowed to the comment's author and to the
work's author.

Response:
  - 204: Removed
  - 403: Actor is neither the comment author nor the work author
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), requestutil.ID(request, "commentID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
