// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
registration, login, and refresh-token rotation.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity. Sessions live in Redis with a TTL matching the refresh token.
*/
package auth

import (
	"time"

	"github.com/crafiq/crafiq/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Crafiq platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is the server-side record of an issued refresh token.
type Session struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Security Parameters

const (
	// RefreshTokenLength is the entropy (bytes) of a refresh token.
	RefreshTokenLength = 32

	// MinPasswordLength is the minimum accepted password size.
	MinPasswordLength = 8

	// MaxUsernameLength bounds usernames for display and storage.
	MaxUsernameLength = 30
)

// # Field Identifiers

// Global field names for validation and identity mapping.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
	FieldToken       = "token"
)
