package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// userColumns tolerates NULL text columns left by rows written outside this package.
const userColumns = `id, COALESCE(name, '') AS name, COALESCE(email, '') AS email,
	COALESCE(passwordHash, '') AS passwordHash, COALESCE(role, '') AS role`

// InsertUser inserts a user row and returns the id assigned by the store.
// A duplicate email fails with [shared.ErrEmailTaken].
func InsertUser(ctx context.Context, e sqlx.ExtContext, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, passwordHash, role) VALUES (?, ?, ?, ?)
	`

	result, err := e.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	if isUniqueViolation(err) {
		return 0, shared.ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert user: %v", shared.ErrWrite, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read inserted id: %v", shared.ErrWrite, err)
	}

	return id, nil
}

// GetUser retrieves a user by ID. Returns [shared.ErrNotFound] when no row matches.
func GetUser(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return getUser(ctx, q, query, id)
}

// FindUserByEmail retrieves the user with the exact email. Returns [shared.ErrNotFound] when no row matches.
func FindUserByEmail(ctx context.Context, q sqlx.QueryerContext, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return getUser(ctx, q, query, email)
}

// CountUsers returns the number of rows in the users table.
func CountUsers(ctx context.Context, q sqlx.QueryerContext) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("%w: failed to count users: %v", shared.ErrRead, err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func getUser(ctx context.Context, q sqlx.QueryerContext, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query user: %v", shared.ErrRead, err)
	}
	return &user, nil
}
