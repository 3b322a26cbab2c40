// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package engagement provides the PostgreSQL implementation for view and like storage.

The like toggle is the critical path: it locks the work row FOR UPDATE, flips
the membership row, and adjusts the denormalized counter inside one transaction.
Serializing on the row lock is what guarantees the counter-equals-membership
invariant under concurrency.
*/
package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crafiq/crafiq/internal/platform/database/schema"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # PostgreSQL Repository

// engagementRepository implements the [Repository] interface using pgx.
type engagementRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed engagement store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &engagementRepository{pool: pool}
}

// # Repository Implementation

// FindWorkMeta returns the access-control projection of a work.
func (repository *engagementRepository) FindWorkMeta(context context.Context, workID string) (*WorkMeta, error) {
	t := schema.CoreWork
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		t.ID, t.AuthorID, t.Visibility, t.CreatedAt, t.Table, t.ID,
	)

	var meta WorkMeta
	err := repository.pool.QueryRow(context, query, workID).
		Scan(&meta.ID, &meta.AuthorID, &meta.Visibility, &meta.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find work meta")
	}

	return &meta, nil
}

/*
ToggleLike atomically flips the user's like membership and the counter.

Description: Transactional sequence under a row lock:
 1. Lock the work row FOR UPDATE; concurrent toggles on the same work queue here.
 2. Check membership in the like set.
 3. Insert or delete the membership row.
 4. Adjust the counter by ±1 and return its new value.

Because every toggle holds the lock across steps 2-4, the counter can never
drift from the membership count.
*/
func (repository *engagementRepository) ToggleLike(context context.Context, workID, userID string) (bool, int64, error) {
	work := schema.CoreWork
	like := schema.EngagementWorkLike

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, dberr.Wrap(err, "begin toggle like")
	}
	defer tx.Rollback(context)

	// 1. Serialize concurrent toggles on this work
	lockQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", work.LikeCount, work.Table, work.ID)
	var currentCount int64
	if err := tx.QueryRow(context, lockQuery, workID).Scan(&currentCount); err != nil {
		return false, 0, dberr.Wrap(err, "lock work row")
	}

	// 2. Current membership state
	existsQuery := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		like.Table, like.WorkID, like.UserID,
	)
	var alreadyLiked bool
	if err := tx.QueryRow(context, existsQuery, workID, userID).Scan(&alreadyLiked); err != nil {
		return false, 0, dberr.Wrap(err, "check like membership")
	}

	// 3. Flip the membership row
	delta := int64(1)
	if alreadyLiked {
		delta = -1
		deleteQuery := fmt.Sprintf(
			"DELETE FROM %s WHERE %s = $1 AND %s = $2",
			like.Table, like.WorkID, like.UserID,
		)
		if _, err := tx.Exec(context, deleteQuery, workID, userID); err != nil {
			return false, 0, dberr.Wrap(err, "remove like")
		}
	} else {
		insertQuery := fmt.Sprintf(
			"INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			like.Table, like.WorkID, like.UserID, like.CreatedAt,
		)
		if _, err := tx.Exec(context, insertQuery, workID, userID, time.Now().UTC()); err != nil {
			return false, 0, dberr.Wrap(err, "add like")
		}
	}

	// 4. Adjust the denormalized counter
	updateQuery := fmt.Sprintf(
		"UPDATE %s SET %s = %s + $2 WHERE %s = $1 RETURNING %s",
		work.Table, work.LikeCount, work.LikeCount, work.ID, work.LikeCount,
	)
	var newCount int64
	if err := tx.QueryRow(context, updateQuery, workID, delta).Scan(&newCount); err != nil {
		return false, 0, dberr.Wrap(err, "update like count")
	}

	if err := tx.Commit(context); err != nil {
		return false, 0, dberr.Wrap(err, "commit toggle like")
	}

	return !alreadyLiked, newCount, nil
}

// IncrementView atomically adds one to a work's view counter.
// A single UPDATE needs no explicit transaction: the row-level write lock
// makes concurrent increments serialize without lost updates.
func (repository *engagementRepository) IncrementView(context context.Context, workID string) (int64, error) {
	t := schema.CoreWork
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s",
		t.Table, t.ViewCount, t.ViewCount, t.ID, t.ViewCount,
	)

	var viewCount int64
	if err := repository.pool.QueryRow(context, query, workID).Scan(&viewCount); err != nil {
		return 0, dberr.Wrap(err, "increment view count")
	}

	return viewCount, nil
}

// HasLiked reports whether the user currently likes the work.
func (repository *engagementRepository) HasLiked(context context.Context, workID, userID string) (bool, error) {
	t := schema.EngagementWorkLike
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		t.Table, t.WorkID, t.UserID,
	)

	var liked bool
	if err := repository.pool.QueryRow(context, query, workID, userID).Scan(&liked); err != nil {
		return false, dberr.Wrap(err, "check liked")
	}

	return liked, nil
}

// ListLikerIDs returns the IDs of all users who like the work, most recent first.
func (repository *engagementRepository) ListLikerIDs(context context.Context, workID string) ([]string, error) {
	t := schema.EngagementWorkLike
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC",
		t.UserID, t.Table, t.WorkID, t.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, workID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list likers: %w", err)
	}
	defer rows.Close()

	var likerIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan liker row: %w", err)
		}
		likerIDs = append(likerIDs, userID)
	}

	return likerIDs, rows.Err()
}

// CountLikes returns the work's denormalized like counter.
func (repository *engagementRepository) CountLikes(context context.Context, workID string) (int64, error) {
	t := schema.CoreWork
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.LikeCount, t.Table, t.ID)

	var likeCount int64
	if err := repository.pool.QueryRow(context, query, workID).Scan(&likeCount); err != nil {
		return 0, dberr.Wrap(err, "count likes")
	}

	return likeCount, nil
}
