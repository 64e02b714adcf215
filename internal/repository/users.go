// Package repository provides the user store on top of database/sql
// for MySQL and PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/atinyakov/feather/internal/config"
	"github.com/atinyakov/feather/internal/models"
)

const mysqlDuplicateEntry = 1062

const (
	insertUserMySQL = `INSERT INTO users (user_name, email, pwd_hash, is_verified, created_at, last_active_at)
VALUES (?, ?, ?, ?, ?, ?)`
	insertUserPostgres = `INSERT INTO users (user_name, email, pwd_hash, is_verified, created_at, last_active_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	countUsers = `SELECT COUNT(*) FROM users`
)

// SQLUserRepository persists users in a relational database.
type SQLUserRepository struct {
	// DB is the connection pool.
	DB *sql.DB
	// Driver selects the SQL dialect, see config.DriverMySQL and config.DriverPostgres.
	Driver string
}

// NewSQLUserRepository creates a repository over db speaking the given driver's dialect.
func NewSQLUserRepository(db *sql.DB, driver string) *SQLUserRepository {
	return &SQLUserRepository{DB: db, Driver: driver}
}

// InsertUser stores u and returns the generated id.
// A connection is held from the pool only for the duration of the insert.
//
// Duplicate username, email or credential values yield *models.UniqueViolationError;
// every other failure, including a ctx deadline, wraps models.ErrStorageUnavailable.
func (r *SQLUserRepository) InsertUser(ctx context.Context, u *models.User) (uint64, error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: acquire connection: %w", models.ErrStorageUnavailable, err)
	}
	defer conn.Close()

	var id uint64
	switch r.Driver {
	case config.DriverPostgres:
		err = conn.QueryRowContext(ctx, insertUserPostgres,
			u.Username, u.Email, u.PasswordHash, u.Verified, u.CreatedAt, u.LastActiveAt,
		).Scan(&id)
	default:
		var res sql.Result
		res, err = conn.ExecContext(ctx, insertUserMySQL,
			u.Username, u.Email, u.PasswordHash, u.Verified, u.CreatedAt, u.LastActiveAt,
		)
		if err == nil {
			var lastID int64
			lastID, err = res.LastInsertId()
			id = uint64(lastID)
		}
	}
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// CountUsers returns the number of stored users.
func (r *SQLUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, countUsers).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count users: %w", models.ErrStorageUnavailable, err)
	}
	return n, nil
}

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		key := pqErr.Constraint
		if key == "" {
			key = pqErr.Detail
		}
		return &models.UniqueViolationError{Field: fieldForKey(key)}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// "Duplicate entry '<value>' for key '<table>.<key>'"
		key := myErr.Message
		if i := strings.LastIndex(key, "for key "); i >= 0 {
			key = key[i:]
		}
		return &models.UniqueViolationError{Field: fieldForKey(key)}
	}

	return fmt.Errorf("%w: insert user: %w", models.ErrStorageUnavailable, err)
}

func fieldForKey(key string) string {
	switch {
	case strings.Contains(key, "user_name"):
		return models.FieldUsername
	case strings.Contains(key, "email"):
		return models.FieldEmail
	case strings.Contains(key, "pwd_hash"):
		return models.FieldPassword
	default:
		return models.FieldUser
	}
}
