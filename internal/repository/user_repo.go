package repository

import (
	"context"
	"errors"
	"fmt"

	"delivery_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, role, phone, username, password_hash, name, avatar_path, created_at, updated_at`

// UserRepository defines operations for user data. The registration variants
// perform their multi-table writes inside a single transaction.
type UserRepository interface {
	CreateWithAddress(ctx context.Context, user *model.User, address *model.Address) error
	CreateWithRiderProfile(ctx context.Context, user *model.User, profile *model.RiderProfile) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithAddress inserts a member user together with their initial default
// address, all-or-nothing. A brand-new user has no prior addresses, so the
// address is inserted as default without a demote step.
func (r *userRepository) CreateWithAddress(ctx context.Context, user *model.User, address *model.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	address.UserID = user.ID
	address.IsDefault = true
	sql := `INSERT INTO addresses (user_id, label, address_text, lat, lng, is_default)
            VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING id, created_at`
	err = tx.QueryRow(ctx, sql, address.UserID, address.Label, address.AddressText, address.Lat, address.Lng).
		Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create initial address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// CreateWithRiderProfile inserts a rider user together with their vehicle
// profile, all-or-nothing.
func (r *userRepository) CreateWithRiderProfile(ctx context.Context, user *model.User, profile *model.RiderProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	profile.UserID = user.ID
	profile.IsActive = true
	sql := `INSERT INTO rider_profiles (user_id, vehicle_plate, vehicle_model, vehicle_photo_path, rider_photo_path, is_active)
            VALUES ($1, $2, $3, $4, $5, TRUE) RETURNING created_at, updated_at`
	err = tx.QueryRow(ctx, sql, profile.UserID, profile.VehiclePlate, profile.VehicleModel,
		profile.VehiclePhotoPath, profile.RiderPhotoPath).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if classified := classifyUniqueViolation(err); classified != nil {
			return classified
		}
		return fmt.Errorf("failed to create rider profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func insertUser(ctx context.Context, tx pgx.Tx, user *model.User) error {
	sql := `INSERT INTO users (role, phone, username, password_hash, name, avatar_path)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := tx.QueryRow(ctx, sql, user.Role, user.Phone, user.Username, user.PasswordHash, user.Name, user.AvatarPath).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if classified := classifyUniqueViolation(err); classified != nil {
			return classified
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername retrieves a user by their username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByPhone retrieves a user by their phone number
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *userRepository) findOne(ctx context.Context, sql string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.Role, &user.Phone, &user.Username, &user.PasswordHash,
		&user.Name, &user.AvatarPath, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
