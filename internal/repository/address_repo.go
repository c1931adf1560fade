package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delivery_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const addressColumns = `id, user_id, label, address_text, lat, lng, is_default, created_at`

// AddressRepository defines operations for address data. Every path that
// touches the default flag runs demote-then-promote inside one transaction,
// so no committed state ever holds two defaults for a user.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindByUser(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, id int64) (*model.Address, error)
	SetDefault(ctx context.Context, id int64) (*model.Address, error)
	Update(ctx context.Context, id int64, req model.UpdateAddressRequest) (*model.Address, error)
	Delete(ctx context.Context, id int64) error
}

type addressRepository struct {
	db DB
}

// NewAddressRepository creates a new AddressRepository
func NewAddressRepository(db DB) AddressRepository {
	return &addressRepository{db: db}
}

// lockUserAddresses takes row locks on all of the user's addresses so that
// concurrent default-flag transitions for the same user serialize.
func lockUserAddresses(ctx context.Context, tx pgx.Tx, userID int64) error {
	rows, err := tx.Query(ctx, `SELECT id FROM addresses WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return fmt.Errorf("failed to lock user addresses: %w", err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock user addresses: %w", err)
	}
	return nil
}

func demoteDefault(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear previous default address: %w", err)
	}
	return nil
}

// Create inserts a new address. When the new address is flagged default, the
// user's previous default is demoted first, in the same transaction.
func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if address.IsDefault {
		if err := lockUserAddresses(ctx, tx, address.UserID); err != nil {
			return err
		}
		if err := demoteDefault(ctx, tx, address.UserID); err != nil {
			return err
		}
	}

	sql := `INSERT INTO addresses (user_id, label, address_text, lat, lng, is_default)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err = tx.QueryRow(ctx, sql, address.UserID, address.Label, address.AddressText,
		address.Lat, address.Lng, address.IsDefault).
		Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit address create: %w", err)
	}
	return nil
}

// FindByUser lists a user's addresses, default first, then most recent first
func (r *addressRepository) FindByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	sql := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses by user: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.AddressText, &a.Lat, &a.Lng, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating address rows: %w", err)
	}
	return addresses, nil
}

// FindByID retrieves a single address or ErrAddressNotFound
func (r *addressRepository) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	a := &model.Address{}
	sql := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).
		Scan(&a.ID, &a.UserID, &a.Label, &a.AddressText, &a.Lat, &a.Lng, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to find address by ID: %w", err)
	}
	return a, nil
}

// SetDefault promotes the address to the user's single default, demoting the
// previous one in the same transaction. The last committed transaction wins
// under concurrent calls for the same user.
func (r *addressRepository) SetDefault(ctx context.Context, id int64) (*model.Address, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM addresses WHERE id = $1`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to find owning user: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockUserAddresses(ctx, tx, userID); err != nil {
		return nil, err
	}
	if err := demoteDefault(ctx, tx, userID); err != nil {
		return nil, err
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE addresses SET is_default = TRUE WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set default address: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// row disappeared between lookup and promote
		return nil, ErrAddressNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit default change: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update merges only the supplied fields. When is_default is being set true,
// the previous default for the owning user is demoted first, in the same
// transaction. The updated row is re-selected afterwards; a missing row
// yields ErrAddressNotFound.
func (r *addressRepository) Update(ctx context.Context, id int64, req model.UpdateAddressRequest) (*model.Address, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if req.IsDefault != nil && *req.IsDefault {
		var userID int64
		err := tx.QueryRow(ctx, `SELECT user_id FROM addresses WHERE id = $1`, id).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrAddressNotFound
			}
			return nil, fmt.Errorf("failed to find owning user: %w", err)
		}
		if err := lockUserAddresses(ctx, tx, userID); err != nil {
			return nil, err
		}
		if err := demoteDefault(ctx, tx, userID); err != nil {
			return nil, err
		}
	}

	var setClauses []string
	args := []interface{}{}
	argCount := 1

	if req.Label != nil {
		setClauses = append(setClauses, fmt.Sprintf("label = $%d", argCount))
		args = append(args, *req.Label)
		argCount++
	}
	if req.AddressText != nil {
		setClauses = append(setClauses, fmt.Sprintf("address_text = $%d", argCount))
		args = append(args, *req.AddressText)
		argCount++
	}
	if req.Lat != nil && req.Lng != nil {
		setClauses = append(setClauses, fmt.Sprintf("lat = $%d", argCount), fmt.Sprintf("lng = $%d", argCount+1))
		args = append(args, *req.Lat, *req.Lng)
		argCount += 2
	}
	if req.IsDefault != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_default = $%d", argCount))
		args = append(args, *req.IsDefault)
		argCount++
	}

	if len(setClauses) > 0 {
		sql := fmt.Sprintf("UPDATE addresses SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCount)
		args = append(args, id)
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return nil, fmt.Errorf("failed to update address: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit address update: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Delete removes the address. Deleting the default address does not elect a
// new default; callers must promote one explicitly.
func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
