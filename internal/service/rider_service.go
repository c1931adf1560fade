package service

import (
	"context"
	"errors"
	"fmt"

	"delivery_api/internal/model"
	"delivery_api/internal/repository"
)

var ErrNotARider = errors.New("user is not a rider")

// RiderService manages the 1:1 vehicle profile of rider users
type RiderService interface {
	Upsert(ctx context.Context, userID int64, req model.UpsertRiderProfileRequest) (*model.RiderProfile, error)
	Get(ctx context.Context, userID int64) (*model.RiderProfile, error)
	Activate(ctx context.Context, userID int64) (*model.RiderProfile, error)
	Deactivate(ctx context.Context, userID int64) (*model.RiderProfile, error)
}

type riderService struct {
	riderRepo repository.RiderProfileRepository
	userRepo  repository.UserRepository
}

// NewRiderService creates a new RiderService
func NewRiderService(riderRepo repository.RiderProfileRepository, userRepo repository.UserRepository) RiderService {
	return &riderService{riderRepo: riderRepo, userRepo: userRepo}
}

// Upsert creates or replaces the profile of an existing RIDER user.
// is_active is preserved from the current row unless supplied.
func (s *riderService) Upsert(ctx context.Context, userID int64, req model.UpsertRiderProfileRequest) (*model.RiderProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	if user.Role != model.RoleRider {
		return nil, ErrNotARider
	}

	profile := &model.RiderProfile{
		UserID:           userID,
		VehiclePlate:     req.VehiclePlate,
		VehicleModel:     req.VehicleModel,
		VehiclePhotoPath: req.VehiclePhotoPath,
		RiderPhotoPath:   req.RiderPhotoPath,
	}
	if err := s.riderRepo.Upsert(ctx, profile, req.IsActive); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *riderService) Get(ctx context.Context, userID int64) (*model.RiderProfile, error) {
	return s.riderRepo.FindByUser(ctx, userID)
}

func (s *riderService) Activate(ctx context.Context, userID int64) (*model.RiderProfile, error) {
	return s.riderRepo.SetActive(ctx, userID, true)
}

func (s *riderService) Deactivate(ctx context.Context, userID int64) (*model.RiderProfile, error) {
	return s.riderRepo.SetActive(ctx, userID, false)
}
