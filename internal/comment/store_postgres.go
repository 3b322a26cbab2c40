// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crafiq/crafiq/internal/platform/database/schema"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # PostgreSQL Repository

// commentRepository implements the [Repository] interface using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

// # Repository Implementation

// FindWorkMeta returns the access-control projection of a work.
func (repository *commentRepository) FindWorkMeta(context context.Context, workID string) (*WorkMeta, error) {
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

// ListByWork returns a work's comments, newest first, with the total count.
// COUNT(*) OVER() delivers the total in the same round-trip.
func (repository *commentRepository) ListByWork(context context.Context, workID string, limit, offset int) ([]*Comment, int, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3
	`, t.ID, t.WorkID, t.AuthorID, t.AuthorName, t.Content, t.CreatedAt, t.UpdatedAt,
		t.Table, t.WorkID, t.CreatedAt, t.ID)

	rows, err := repository.pool.Query(context, query, workID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	total := 0

	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID, &comment.WorkID, &comment.AuthorID, &comment.AuthorName,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: comment row iteration failed: %w", err)
	}

	return comments, total, nil
}

// FindByID returns the comment with the given ID.
func (repository *commentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
	`, t.ID, t.WorkID, t.AuthorID, t.AuthorName, t.Content, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID)

	var comment Comment
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.WorkID, &comment.AuthorID, &comment.AuthorName,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find comment by id")
	}

	return &comment, nil
}

// Create persists a new comment.
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	t := schema.SocialComment
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.Table, t.ID, t.WorkID, t.AuthorID, t.AuthorName, t.Content, t.CreatedAt, t.UpdatedAt)

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.WorkID, comment.AuthorID, comment.AuthorName,
		comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create comment")
	}

	return nil
}

// Delete removes a comment permanently.
func (repository *commentRepository) Delete(context context.Context, id string) error {
	t := schema.SocialComment
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
