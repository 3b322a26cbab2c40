// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crafiq/crafiq/internal/platform/database/schema"
	"github.com/crafiq/crafiq/internal/platform/dberr"
)

// # PostgreSQL Repository

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// userColumns is the canonical SELECT column list for hydrating a [User].
func userColumns() string {
	t := schema.UsersAccount
	return fmt.Sprintf(
		"%s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.DisplayName, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt,
	)
}

// scanUser hydrates a single [User] from a row produced with [userColumns].
func (repository *userRepository) findOne(context context.Context, whereColumn string, value string) (*User, error) {
	t := schema.UsersAccount
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", userColumns(), t.Table, whereColumn)

	var user User
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.DisplayName,
		&user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find user")
	}

	return &user, nil
}

// FindByID returns the user with the given ID.
func (repository *userRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UsersAccount.ID, id)
}

// FindByUsername returns the user with the given username.
func (repository *userRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.UsersAccount.Username, username)
}

// FindByEmail returns the user with the given email address.
func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UsersAccount.Email, email)
}

// Create persists a new account. Unique violations surface as Conflict.
func (repository *userRepository) Create(context context.Context, user *User) error {
	t := schema.UsersAccount
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.Table, t.ID, t.Username, t.Email, t.DisplayName, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt)

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email, user.DisplayName,
		user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create user")
	}

	return nil
}
