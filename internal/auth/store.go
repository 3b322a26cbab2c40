// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for accounts.
type UserRepository interface {

	/*
		FindByID returns the user with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: The hydrated account
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the user with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: The hydrated account
		  - error: ErrNotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the user with the given email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: The hydrated account
		  - error: ErrNotFound if missing
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate username/email, storage failures
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository tracks active refresh-token sessions.
//
// Sessions are keyed by the token's hash; the raw token never touches
// server-side storage.
type SessionRepository interface {

	/*
		Create stores a session under the token hash with a TTL.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 digest of the refresh token)
		  - session: *Session
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error

	/*
		Find resolves a session by token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: The active session
		  - error: Unauthorized if absent or expired
	*/
	Find(context context.Context, tokenHash string) (*Session, error)

	/*
		Delete revokes a session by token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Removal failures
	*/
	Delete(context context.Context, tokenHash string) error
}
