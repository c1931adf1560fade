package repository

import (
	"context"
	"errors"
	"fmt"

	"delivery_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const riderProfileColumns = `user_id, vehicle_plate, vehicle_model, vehicle_photo_path, rider_photo_path, is_active, created_at, updated_at`

// RiderProfileRepository defines operations for rider vehicle profiles
type RiderProfileRepository interface {
	Upsert(ctx context.Context, profile *model.RiderProfile, isActive *bool) error
	FindByUser(ctx context.Context, userID int64) (*model.RiderProfile, error)
	SetActive(ctx context.Context, userID int64, active bool) (*model.RiderProfile, error)
}

type riderProfileRepository struct {
	db DB
}

// NewRiderProfileRepository creates a new RiderProfileRepository
func NewRiderProfileRepository(db DB) RiderProfileRepository {
	return &riderProfileRepository{db: db}
}

// Upsert inserts or replaces the profile keyed on user_id. A nil isActive
// preserves the existing flag (defaulting to true on first insert).
func (r *riderProfileRepository) Upsert(ctx context.Context, p *model.RiderProfile, isActive *bool) error {
	sql := `INSERT INTO rider_profiles (user_id, vehicle_plate, vehicle_model, vehicle_photo_path, rider_photo_path, is_active)
            VALUES ($1, $2, $3, $4, $5, COALESCE($6, TRUE))
            ON CONFLICT (user_id) DO UPDATE SET
                vehicle_plate = EXCLUDED.vehicle_plate,
                vehicle_model = EXCLUDED.vehicle_model,
                vehicle_photo_path = EXCLUDED.vehicle_photo_path,
                rider_photo_path = EXCLUDED.rider_photo_path,
                is_active = COALESCE($6, rider_profiles.is_active),
                updated_at = NOW()
            RETURNING is_active, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, p.UserID, p.VehiclePlate, p.VehicleModel,
		p.VehiclePhotoPath, p.RiderPhotoPath, isActive).
		Scan(&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if classified := classifyUniqueViolation(err); classified != nil {
			return classified
		}
		return fmt.Errorf("failed to upsert rider profile: %w", err)
	}
	return nil
}

// FindByUser retrieves the profile for a user or ErrRiderProfileNotFound
func (r *riderProfileRepository) FindByUser(ctx context.Context, userID int64) (*model.RiderProfile, error) {
	p := &model.RiderProfile{}
	sql := `SELECT ` + riderProfileColumns + ` FROM rider_profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(
		&p.UserID, &p.VehiclePlate, &p.VehicleModel, &p.VehiclePhotoPath,
		&p.RiderPhotoPath, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRiderProfileNotFound
		}
		return nil, fmt.Errorf("failed to find rider profile: %w", err)
	}
	return p, nil
}

// SetActive flips the activity flag. Idempotent: repeating is a no-op.
func (r *riderProfileRepository) SetActive(ctx context.Context, userID int64, active bool) (*model.RiderProfile, error) {
	p := &model.RiderProfile{}
	sql := `UPDATE rider_profiles SET is_active = $1 WHERE user_id = $2 RETURNING ` + riderProfileColumns
	err := r.db.QueryRow(ctx, sql, active, userID).Scan(
		&p.UserID, &p.VehiclePlate, &p.VehicleModel, &p.VehiclePhotoPath,
		&p.RiderPhotoPath, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRiderProfileNotFound
		}
		return nil, fmt.Errorf("failed to update rider activity: %w", err)
	}
	return p, nil
}
