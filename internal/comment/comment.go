// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package comment manages reader discussion attached to works.

Comments are flat (no threading) and ordered newest first. Posting is
authenticated and rate limited per user to keep spam off the platform;
removal is allowed to the comment's author and to the work's author.
*/
package comment

import "time"

// # Core Entities

// Comment is a single reader message attached to a work.
type Comment struct {
	ID     string `json:"id"`
	WorkID string `json:"work_id"`

	// AuthorName is denormalized at posting time so listings never join
	// the accounts table.
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`

	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkMeta is the minimal projection of a work needed for access decisions.
type WorkMeta struct {
	ID         string
	AuthorID   string
	Visibility string
}

// visibilityPrivate mirrors the work domain's private visibility value.
const visibilityPrivate = "private"

// VisibleTo reports whether the work's discussion can be read or written
// by the given user. Private works are only visible to their author.
func (m WorkMeta) VisibleTo(userID string) bool {
	if m.Visibility != visibilityPrivate {
		return true
	}
	return userID != "" && m.AuthorID == userID
}

// # Field Identifiers

const (
	FieldContent = "content"
)

// MaxContentLen bounds the size of a single comment.
const MaxContentLen = 1000
