package service

import (
	"context"
	"fmt"

	"delivery_api/internal/model"
	"delivery_api/internal/repository"
	"delivery_api/internal/utils"
)

// AddressService enforces validation in front of the address store. All
// default-flag maintenance happens inside repository transactions.
type AddressService interface {
	Create(ctx context.Context, userID int64, req model.CreateAddressRequest) (*model.Address, error)
	List(ctx context.Context, userID int64) ([]model.Address, error)
	Get(ctx context.Context, id int64) (*model.Address, error)
	SetDefault(ctx context.Context, id int64) (*model.Address, error)
	Update(ctx context.Context, id int64, req model.UpdateAddressRequest) (*model.Address, error)
	Delete(ctx context.Context, id int64) error
}

type addressService struct {
	repo repository.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) Create(ctx context.Context, userID int64, req model.CreateAddressRequest) (*model.Address, error) {
	if req.Lat == nil || req.Lng == nil {
		return nil, utils.ErrInvalidCoordinate
	}
	lat, lng, err := utils.ValidateLatLng(*req.Lat, *req.Lng)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		UserID:      userID,
		Label:       req.Label,
		AddressText: req.AddressText,
		Lat:         lat,
		Lng:         lng,
		IsDefault:   req.IsDefault,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *addressService) List(ctx context.Context, userID int64) ([]model.Address, error) {
	addresses, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *addressService) Get(ctx context.Context, id int64) (*model.Address, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *addressService) SetDefault(ctx context.Context, id int64) (*model.Address, error) {
	return s.repo.SetDefault(ctx, id)
}

// Update validates new coordinates before any write. Coordinates must come
// as a pair; a lone lat or lng is rejected.
func (s *addressService) Update(ctx context.Context, id int64, req model.UpdateAddressRequest) (*model.Address, error) {
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, utils.ErrInvalidCoordinate
	}
	if req.Lat != nil && req.Lng != nil {
		lat, lng, err := utils.ValidateLatLng(*req.Lat, *req.Lng)
		if err != nil {
			return nil, err
		}
		req.Lat, req.Lng = &lat, &lng
	}
	return s.repo.Update(ctx, id, req)
}

func (s *addressService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
