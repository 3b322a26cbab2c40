// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

/*
Package work provides the PostgreSQL implementation for the catalogue's data access.

It utilizes several Postgres features to deliver a responsive discovery experience:
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - Array Columns: Stores tags and episode image URLs natively as text[].
  - Keyset Pagination: Resumes feeds from an opaque cursor using row comparisons.
  - ACID Transactions: Replaces content sets (pages/episodes) atomically.

The repository follows an "Aggregate" pattern where content sub-resources are
managed through the main repository instance to maintain domain integrity.
*/
package work

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crafiq/crafiq/internal/platform/database/schema"
	"github.com/crafiq/crafiq/internal/platform/dberr"
	"github.com/crafiq/crafiq/pkg/cursor"
)

// # PostgreSQL Repository

// workRepository implements the [Repository] interface using pgx.
type workRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed work store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &workRepository{pool: pool}
}

// workColumns is the canonical SELECT column list for hydrating a [Work].
func workColumns(alias string) string {
	t := schema.CoreWork
	cols := []string{
		t.ID, t.Title, t.Slug, t.Description, t.WorkType, t.Genre, t.AgeRating,
		t.Visibility, t.Tags, t.ThumbnailURL, t.AuthorID, t.AuthorName,
		t.ViewCount, t.LikeCount, t.CreatedAt, t.UpdatedAt,
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanWork hydrates a single [Work] from a row produced with [workColumns].
func scanWork(row pgx.Row) (*Work, error) {
	var work Work
	err := row.Scan(
		&work.ID, &work.Title, &work.Slug, &work.Description, &work.Type,
		&work.Genre, &work.AgeRating, &work.Visibility, &work.Tags,
		&work.ThumbnailURL, &work.AuthorID, &work.AuthorName,
		&work.ViewCount, &work.LikeCount, &work.CreatedAt, &work.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// # Repository Implementation

/*
List returns a filtered, paginated slice of works and the total count.

Description: Builds a dynamic WHERE clause from the filter, then applies
either OFFSET pagination or keyset (cursor) pagination:
  - Window Function: COUNT(*) OVER() retrieves the total without a second query.
  - Substring Search: Case-insensitive ILIKE match across title, author name,
    description, and tag entries.
  - Keyset Resume: Row-comparison predicates continue a feed from the cursor's
    last seen sort key, with the time-ordered UUID as tie-breaker.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Work: Slice of hydrated work entities (content not included)
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *workRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	t := schema.CoreWork

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s w
		WHERE 1=1
	`, workColumns("w"), t.Table))

	// Visibility scoping: feeds are public-only, except an author listing
	// their own catalogue.
	if !filter.IncludesOwnWorks() {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s = $%d", t.Visibility, argID))
		args = append(args, string(VisibilityPublic))
		argID++
	}

	// Author Filtering
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s = $%d", t.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	// Work Type Filtering
	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s = $%d", t.WorkType, argID))
		args = append(args, string(filter.Type))
		argID++
	}

	// Genre Filtering
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s = $%d", t.Genre, argID))
		args = append(args, string(filter.Genre))
		argID++
	}

	// Tag Filtering (array containment: the work must carry every tag)
	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s @> $%d", t.Tags, argID))
		args = append(args, filter.Tags)
		argID++
	}

	// New Releases Window Filtering
	if filter.CreatedAfter != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.%s >= $%d", t.CreatedAt, argID))
		args = append(args, *filter.CreatedAfter)
		argID++
	}

	// Search Query Filtering (case-insensitive substring, OR semantics)
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		queryBuilder.WriteString(fmt.Sprintf(` AND (
			w.%s ILIKE $%d OR w.%s ILIKE $%d OR w.%s ILIKE $%d
			OR EXISTS (SELECT 1 FROM unnest(w.%s) AS tag WHERE tag ILIKE $%d)
		)`, t.Title, argID, t.AuthorName, argID, t.Description, argID, t.Tags, argID))
		args = append(args, pattern)
		argID++
	}

	// Keyset Resume (cursor pagination)
	if filter.Cursor != "" {
		key, err := cursor.Decode(filter.Cursor)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "decode cursor")
		}
		argID = appendCursorPredicate(&queryBuilder, &args, argID, filter.Sort, key)
	}

	// Apply Sorting (ID is always the secondary key so ordering is total
	// and cursors can resume deterministically)
	switch filter.Sort {
	case SortPopular:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY w.%s DESC, w.%s DESC", t.ViewCount, t.ID))
	case SortLikes:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY w.%s DESC, w.%s DESC", t.LikeCount, t.ID))
	case SortTitle:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY w.%s ASC, w.%s ASC", t.Title, t.ID))
	default:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY w.%s DESC, w.%s DESC", t.CreatedAt, t.ID))
	}

	// Pagination injection (keyset already positions the window, so offset
	// only applies to page-based requests)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
	args = append(args, limit)
	argID++
	if filter.Cursor == "" {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argID))
		args = append(args, offset)
	}

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list works: %w", err)
	}
	defer rows.Close()

	var works []*Work
	total := 0

	for rows.Next() {
		var work Work
		err := rows.Scan(
			&work.ID, &work.Title, &work.Slug, &work.Description, &work.Type,
			&work.Genre, &work.AgeRating, &work.Visibility, &work.Tags,
			&work.ThumbnailURL, &work.AuthorID, &work.AuthorName,
			&work.ViewCount, &work.LikeCount, &work.CreatedAt, &work.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan work row: %w", err)
		}
		works = append(works, &work)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: work row iteration failed: %w", err)
	}

	return works, total, nil
}

// FindByID returns the work with the given ID.
func (repository *workRepository) FindByID(context context.Context, id string) (*Work, error) {
	t := schema.CoreWork
	query := fmt.Sprintf("SELECT %s FROM %s w WHERE w.%s = $1", workColumns("w"), t.Table, t.ID)

	work, err := scanWork(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find work by id")
	}
	return work, nil
}

// FindBySlug returns the work matching the unique SEO identifier.
func (repository *workRepository) FindBySlug(context context.Context, slug string) (*Work, error) {
	t := schema.CoreWork
	query := fmt.Sprintf("SELECT %s FROM %s w WHERE w.%s = $1", workColumns("w"), t.Table, t.Slug)

	work, err := scanWork(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find work by slug")
	}
	return work, nil
}

// Create persists a new work to the store.
func (repository *workRepository) Create(context context.Context, work *Work) error {
	t := schema.CoreWork
	now := time.Now().UTC()
	work.CreatedAt = now
	work.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, t.Table,
		t.ID, t.Title, t.Slug, t.Description, t.WorkType, t.Genre, t.AgeRating,
		t.Visibility, t.Tags, t.ThumbnailURL, t.AuthorID, t.AuthorName,
		t.ViewCount, t.LikeCount, t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		work.ID, work.Title, work.Slug, work.Description, string(work.Type),
		string(work.Genre), string(work.AgeRating), string(work.Visibility),
		work.Tags, work.ThumbnailURL, work.AuthorID, work.AuthorName,
		work.ViewCount, work.LikeCount, work.CreatedAt, work.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create work")
	}

	return nil
}

// Update persists changes to an existing work's mutable metadata.
// Engagement counters are deliberately excluded from the SET list.
func (repository *workRepository) Update(context context.Context, work *Work) error {
	t := schema.CoreWork
	work.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1
	`, t.Table,
		t.Title, t.Description, t.Genre, t.AgeRating, t.Visibility,
		t.Tags, t.ThumbnailURL, t.UpdatedAt,
		t.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		work.ID, work.Title, work.Description, string(work.Genre),
		string(work.AgeRating), string(work.Visibility), work.Tags,
		work.ThumbnailURL, work.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update work")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Delete removes a work permanently. All dependent rows (pages, episodes,
// likes, comments, library references) are removed by ON DELETE CASCADE.
func (repository *workRepository) Delete(context context.Context, id string) error {
	t := schema.CoreWork
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete work")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Content Sub-resources

// ListPages returns all pages of a novel ordered by page number.
func (repository *workRepository) ListPages(context context.Context, workID string) ([]*Page, error) {
	t := schema.CoreWorkPage
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
		ORDER BY %s ASC
	`, t.ID, t.WorkID, t.PageNumber, t.Content, t.CreatedAt, t.UpdatedAt,
		t.Table, t.WorkID, t.PageNumber)

	rows, err := repository.pool.Query(context, query, workID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.WorkID, &page.PageNumber, &page.Content, &page.CreatedAt, &page.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page row: %w", err)
		}
		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// ReplacePages atomically replaces the full page set of a novel.
func (repository *workRepository) ReplacePages(context context.Context, workID string, pages []*Page) error {
	t := schema.CoreWorkPage

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin replace pages")
	}
	defer tx.Rollback(context)

	// Clear the previous set
	if _, err := tx.Exec(context, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.WorkID), workID); err != nil {
		return dberr.Wrap(err, "clear pages")
	}

	// Bulk insert the new set
	now := time.Now().UTC()
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.Table, t.ID, t.WorkID, t.PageNumber, t.Content, t.CreatedAt, t.UpdatedAt)

	batch := &pgx.Batch{}
	for _, page := range pages {
		page.CreatedAt = now
		page.UpdatedAt = now
		batch.Queue(insert, page.ID, page.WorkID, page.PageNumber, page.Content, page.CreatedAt, page.UpdatedAt)
	}

	if err := tx.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "insert pages")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit replace pages")
	}

	return nil
}

// ListEpisodes returns all episodes of a comic ordered by episode number.
func (repository *workRepository) ListEpisodes(context context.Context, workID string) ([]*Episode, error) {
	t := schema.CoreWorkEpisode
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
		ORDER BY %s ASC
	`, t.ID, t.WorkID, t.EpisodeNumber, t.Title, t.ImageURLs, t.CreatedAt, t.UpdatedAt,
		t.Table, t.WorkID, t.EpisodeNumber)

	rows, err := repository.pool.Query(context, query, workID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []*Episode
	for rows.Next() {
		var episode Episode
		if err := rows.Scan(&episode.ID, &episode.WorkID, &episode.EpisodeNumber, &episode.Title, &episode.ImageURLs, &episode.CreatedAt, &episode.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan episode row: %w", err)
		}
		episodes = append(episodes, &episode)
	}

	return episodes, rows.Err()
}

// ReplaceEpisodes atomically replaces the full episode set of a comic.
func (repository *workRepository) ReplaceEpisodes(context context.Context, workID string, episodes []*Episode) error {
	t := schema.CoreWorkEpisode

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin replace episodes")
	}
	defer tx.Rollback(context)

	// Clear the previous set
	if _, err := tx.Exec(context, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Table, t.WorkID), workID); err != nil {
		return dberr.Wrap(err, "clear episodes")
	}

	// Bulk insert the new set
	now := time.Now().UTC()
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.Table, t.ID, t.WorkID, t.EpisodeNumber, t.Title, t.ImageURLs, t.CreatedAt, t.UpdatedAt)

	batch := &pgx.Batch{}
	for _, episode := range episodes {
		episode.CreatedAt = now
		episode.UpdatedAt = now
		batch.Queue(insert, episode.ID, episode.WorkID, episode.EpisodeNumber, episode.Title, episode.ImageURLs, episode.CreatedAt, episode.UpdatedAt)
	}

	if err := tx.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "insert episodes")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit replace episodes")
	}

	return nil
}

// # Internal Helpers

// appendCursorPredicate writes the keyset WHERE clause for the active sort.
// Row comparison keeps the predicate aligned with the compound ORDER BY.
func appendCursorPredicate(builder *strings.Builder, args *[]any, argID int, sort Sort, key cursor.Key) int {
	t := schema.CoreWork

	switch sort {
	case SortPopular:
		builder.WriteString(fmt.Sprintf(" AND (w.%s, w.%s) < ($%d, $%d)", t.ViewCount, t.ID, argID, argID+1))
		*args = append(*args, key.Count, key.ID)
	case SortLikes:
		builder.WriteString(fmt.Sprintf(" AND (w.%s, w.%s) < ($%d, $%d)", t.LikeCount, t.ID, argID, argID+1))
		*args = append(*args, key.Count, key.ID)
	case SortTitle:
		builder.WriteString(fmt.Sprintf(" AND (w.%s, w.%s) > ($%d, $%d)", t.Title, t.ID, argID, argID+1))
		*args = append(*args, key.Title, key.ID)
	default:
		builder.WriteString(fmt.Sprintf(" AND (w.%s, w.%s) < ($%d, $%d)", t.CreatedAt, t.ID, argID, argID+1))
		*args = append(*args, key.CreatedAt, key.ID)
	}

	return argID + 2
}

// escapeLike neutralizes LIKE wildcards inside a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
