// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package engagement manages the interaction counters attached to works.

It owns the two hot-path signals of the platform:

  - Views: Monotonic counter incremented on every work read.
  - Likes: A toggle backed by a membership set, with a denormalized counter.

Core Invariant:

The like counter on a work always equals the number of rows in its
like-membership set. Both are mutated inside a single transaction under a
row lock, so no interleaving of concurrent toggles can break the equality.
*/
package engagement

import "time"

// # Result Types

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	// Liked reports the user's membership state after the toggle.
	Liked bool `json:"liked"`
	// LikeCount is the work's like counter after the toggle.
	LikeCount int64 `json:"like_count"`
}

// LikeSummary describes the like state of a work for a given viewer.
type LikeSummary struct {
	LikeCount int64    `json:"like_count"`
	Liked     bool     `json:"liked"`
	LikerIDs  []string `json:"liker_ids,omitempty"`
}

// ViewResult is the outcome of recording a view.
type ViewResult struct {
	// ViewCount is the work's view counter after the increment.
	ViewCount int64 `json:"view_count"`
}

// WorkMeta is the minimal projection of a work needed for access decisions.
type WorkMeta struct {
	ID         string
	AuthorID   string
	Visibility string
	CreatedAt  time.Time
}

// visibilityPrivate mirrors the work domain's private visibility value.
// Kept as a string so this package does not depend on the work package.
const visibilityPrivate = "private"

// VisibleTo reports whether the work can be engaged with by the given user.
// Private works are only visible to their author.
func (m WorkMeta) VisibleTo(userID string) bool {
	if m.Visibility != visibilityPrivate {
		return true
	}
	return userID != "" && m.AuthorID == userID
}
