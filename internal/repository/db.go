package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level sentinel errors. Services translate or pass these through;
// handlers map them to HTTP statuses.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrRiderProfileNotFound = errors.New("rider profile not found")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrPhoneTaken           = errors.New("phone number is already taken")
	ErrVehiclePlateTaken    = errors.New("vehicle plate is already taken")
)

// DB is the subset of pgxpool.Pool the repositories need. pgxmock's pool
// satisfies it too, which is what the repository tests run against.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// classifyUniqueViolation maps a PostgreSQL unique-constraint violation to
// the matching sentinel error by inspecting which constraint fired.
// Returns nil when err is not a unique violation.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return ErrPhoneTaken
	case strings.Contains(pgErr.ConstraintName, "vehicle_plate"):
		return ErrVehiclePlateTaken
	}
	return nil
}
