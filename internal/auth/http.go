// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crafiq/crafiq/internal/platform/middleware"
	requestutil "github.com/crafiq/crafiq/internal/platform/request"
	"github.com/crafiq/crafiq/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for identity and sessions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the auth domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Credential Flow (Public)
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// ## Profile (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

// registerPayload is the request body for account creation.
type registerPayload struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// loginPayload is the request body for authentication.
type loginPayload struct {
	Login    string `json:"login"` // Username or email
	Password string `json:"password"`
}

// tokenPayload carries a refresh token in the request body.
type tokenPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// sessionResponse is the envelope for a freshly issued session.
type sessionResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

// # Auth Endpoints

/*
POST /api/v1/auth/register.

Description: Enrolls a new member. Usernames are unique and slug-shaped;
emails are unique.

Response:
  - 201: User: The created account (password hash omitted)
  - 409: Username or email already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username:    payload.Username,
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Description: Authenticates with username-or-email plus password and issues
an access/refresh token pair.

Response:
  - 200: sessionResponse
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Login:    payload.Login,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		AccessToken:           session.AccessToken,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.RefreshTokenExpiresAt,
		User:                  session.User,
	})
}

/*
POST /api/v1/auth/refresh.

Description: Rotates a refresh token: the presented token is revoked and a
fresh pair is issued.

Response:
  - 200: sessionResponse
  - 401: Token invalid, expired, or already rotated
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var payload tokenPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.RefreshSession(request.Context(), payload.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		AccessToken:           session.AccessToken,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.RefreshTokenExpiresAt,
		User:                  session.User,
	})
}

/*
POST /api/v1/auth/logout.

Description: Revokes the presented refresh token. Idempotent.

Response:
  - 204: Session revoked (or was already gone)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var payload tokenPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), payload.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/auth/me.

Description: Returns the account behind the presented access token.

Response:
  - 200: User
  - 401: Not authenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
