// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package library manages each reader's personal shelf.

It covers two per-user collections:

  - Entries: Works the user explicitly saved for later.
  - Recent views: The works the user has read, most recent first, capped.

Saving a work is independent of liking it: the library is a private
bookmark list, while likes are public engagement.
*/
package library

import "time"

// # Core Entities

// Item is a work projection on a user's shelf.
//
// The fields mirror what shelf listings render; hydrating them via a join
// avoids a second round-trip per work.
type Item struct {
	WorkID       string    `json:"work_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Type         string    `json:"type"`
	Genre        string    `json:"genre"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	AddedAt      time.Time `json:"added_at"`

	// PositionMarker is the last-read position within the work.
	// Populated on recent-view rows only.
	PositionMarker string `json:"position_marker,omitempty"`
}

// WorkMeta is the minimal projection of a work needed for access decisions.
type WorkMeta struct {
	ID         string
	AuthorID   string
	Visibility string
}

// visibilityPrivate mirrors the work domain's private visibility value.
const visibilityPrivate = "private"

// VisibleTo reports whether the work can be shelved by the given user.
func (m WorkMeta) VisibleTo(userID string) bool {
	if m.Visibility != visibilityPrivate {
		return true
	}
	return userID != "" && m.AuthorID == userID
}
