// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package library

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crafiq/crafiq/internal/platform/database/schema"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # PostgreSQL Repository

// libraryRepository implements the [Repository] interface using pgx.
type libraryRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed library store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &libraryRepository{pool: pool}
}

// itemColumns selects the work projection joined onto a shelf row.
// The timestamp column (added/viewed) is appended by the caller.
func itemColumns() string {
	w := schema.CoreWork
	return fmt.Sprintf(
		"w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s",
		w.ID, w.Title, w.Slug, w.WorkType, w.Genre, w.ThumbnailURL,
		w.AuthorID, w.AuthorName, w.ViewCount, w.LikeCount,
	)
}

// # Repository Implementation

// FindWorkMeta returns the access-control projection of a work.
func (repository *libraryRepository) FindWorkMeta(context context.Context, workID string) (*WorkMeta, error) {
	t := schema.CoreWork
	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1",
		t.ID, t.AuthorID, t.Visibility, t.Table, t.ID,
	)

	var meta WorkMeta
	err := repository.pool.QueryRow(context, query, workID).
		Scan(&meta.ID, &meta.AuthorID, &meta.Visibility)
	if err != nil {
		return nil, dberr.Wrap(err, "find work meta")
	}

	return &meta, nil
}

// ListEntries returns the user's saved works, most recently added first.
func (repository *libraryRepository) ListEntries(context context.Context, userID string, limit, offset int) ([]*Item, int, error) {
	e := schema.LibraryEntry
	w := schema.CoreWork

	query := fmt.Sprintf(`
		SELECT %s, e.%s, COUNT(*) OVER() AS total_count
		FROM %s e
		JOIN %s w ON w.%s = e.%s
		WHERE e.%s = $1
		ORDER BY e.%s DESC
		LIMIT $2 OFFSET $3
	`, itemColumns(), e.CreatedAt,
		e.Table, w.Table, w.ID, e.WorkID,
		e.UserID, e.CreatedAt)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list library entries: %w", err)
	}
	defer rows.Close()

	var items []*Item
	total := 0

	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.WorkID, &item.Title, &item.Slug, &item.Type, &item.Genre,
			&item.ThumbnailURL, &item.AuthorID, &item.AuthorName,
			&item.ViewCount, &item.LikeCount, &item.AddedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan library row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: library row iteration failed: %w", err)
	}

	return items, total, nil
}

// ListLikedWorks returns the works the user likes, most recently liked first.
func (repository *libraryRepository) ListLikedWorks(context context.Context, userID string, limit, offset int) ([]*Item, int, error) {
	l := schema.EngagementWorkLike
	w := schema.CoreWork

	query := fmt.Sprintf(`
		SELECT %s, l.%s, COUNT(*) OVER() AS total_count
		FROM %s l
		JOIN %s w ON w.%s = l.%s
		WHERE l.%s = $1
		ORDER BY l.%s DESC
		LIMIT $2 OFFSET $3
	`, itemColumns(), l.CreatedAt,
		l.Table, w.Table, w.ID, l.WorkID,
		l.UserID, l.CreatedAt)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list liked works: %w", err)
	}
	defer rows.Close()

	var items []*Item
	total := 0

	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.WorkID, &item.Title, &item.Slug, &item.Type, &item.Genre,
			&item.ThumbnailURL, &item.AuthorID, &item.AuthorName,
			&item.ViewCount, &item.LikeCount, &item.AddedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan liked work row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: liked work row iteration failed: %w", err)
	}

	return items, total, nil
}

// AddEntry saves a work to the user's library. ON CONFLICT DO NOTHING makes
// repeat saves idempotent.
func (repository *libraryRepository) AddEntry(context context.Context, userID, workID string) error {
	t := schema.LibraryEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING
	`, t.Table, t.UserID, t.WorkID, t.CreatedAt, t.UserID, t.WorkID)

	if _, err := repository.pool.Exec(context, query, userID, workID, time.Now().UTC()); err != nil {
		return dberr.Wrap(err, "add library entry")
	}

	return nil
}

// RemoveEntry removes a work from the user's library.
func (repository *libraryRepository) RemoveEntry(context context.Context, userID, workID string) error {
	t := schema.LibraryEntry
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		t.Table, t.UserID, t.WorkID,
	)

	tag, err := repository.pool.Exec(context, query, userID, workID)
	if err != nil {
		return dberr.Wrap(err, "remove library entry")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// ListRecentViews returns the user's reading history, most recent first.
func (repository *libraryRepository) ListRecentViews(context context.Context, userID string, limit int) ([]*Item, error) {
	v := schema.LibraryRecentView
	w := schema.CoreWork

	query := fmt.Sprintf(`
		SELECT %s, v.%s, v.%s
		FROM %s v
		JOIN %s w ON w.%s = v.%s
		WHERE v.%s = $1
		ORDER BY v.%s DESC
		LIMIT $2
	`, itemColumns(), v.ViewedAt, v.PositionMarker,
		v.Table, w.Table, w.ID, v.WorkID,
		v.UserID, v.ViewedAt)

	rows, err := repository.pool.Query(context, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list recent views: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.WorkID, &item.Title, &item.Slug, &item.Type, &item.Genre,
			&item.ThumbnailURL, &item.AuthorID, &item.AuthorName,
			&item.ViewCount, &item.LikeCount, &item.AddedAt, &item.PositionMarker,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan recent view row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// UpsertRecentView moves a work to the top of the user's history and prunes
// rows beyond the retention cap.
func (repository *libraryRepository) UpsertRecentView(context context.Context, userID, workID, position string, keep int) error {
	t := schema.LibraryRecentView

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin upsert recent view")
	}
	defer tx.Rollback(context)

	// Re-viewing refreshes the timestamp instead of duplicating the row.
	// An empty position keeps the marker already on the row, so plain view
	// tracking never wipes a reading position.
	upsert := fmt.Sprintf(`
		INSERT INTO %s AS rv (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = CASE WHEN EXCLUDED.%s = '' THEN rv.%s ELSE EXCLUDED.%s END
	`, t.Table, t.UserID, t.WorkID, t.ViewedAt, t.PositionMarker,
		t.UserID, t.WorkID,
		t.ViewedAt, t.ViewedAt,
		t.PositionMarker, t.PositionMarker, t.PositionMarker, t.PositionMarker)

	if _, err := tx.Exec(context, upsert, userID, workID, time.Now().UTC(), position); err != nil {
		return dberr.Wrap(err, "upsert recent view")
	}

	// Retention: drop history beyond the newest N rows
	prune := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s NOT IN (
			SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2
		)
	`, t.Table, t.UserID, t.WorkID, t.WorkID, t.Table, t.UserID, t.ViewedAt)

	if _, err := tx.Exec(context, prune, userID, keep); err != nil {
		return dberr.Wrap(err, "prune recent views")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit upsert recent view")
	}

	return nil
}
