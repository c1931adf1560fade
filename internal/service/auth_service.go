package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"

	"delivery_api/internal/model"
	"delivery_api/internal/repository"
	"delivery_api/internal/storage"
	"delivery_api/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidUsername    = errors.New("username must be 3-30 characters of a-z, A-Z, 0-9, _")
	ErrInvalidCredentials = errors.New("invalid username/phone or password")
	ErrMissingAvatar      = errors.New("an avatar image is required")
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// AuthService covers registration, login and user lookup
type AuthService interface {
	RegisterMember(ctx context.Context, req model.RegisterMemberRequest, avatar *multipart.FileHeader) (*model.User, *model.Address, error)
	RegisterRider(ctx context.Context, req model.RegisterRiderRequest, avatar, vehiclePhoto *multipart.FileHeader) (*model.User, *model.RiderProfile, error)
	Login(ctx context.Context, identifier, password string) (*model.User, string, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	files    storage.FileStorage
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, files storage.FileStorage, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{userRepo: userRepo, files: files, jwtUtil: jwtUtil}
}

// RegisterMember creates a member account together with its initial default
// address in one transaction. The avatar is stored before the transaction;
// if the transaction rolls back the stored file is deleted as compensation.
func (s *authService) RegisterMember(ctx context.Context, req model.RegisterMemberRequest, avatar *multipart.FileHeader) (*model.User, *model.Address, error) {
	if !usernameRE.MatchString(req.Username) {
		return nil, nil, ErrInvalidUsername
	}
	if req.Lat == nil || req.Lng == nil {
		return nil, nil, utils.ErrInvalidCoordinate
	}
	lat, lng, err := utils.ValidateLatLng(*req.Lat, *req.Lng)
	if err != nil {
		return nil, nil, err
	}
	if avatar == nil {
		return nil, nil, ErrMissingAvatar
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatarPath, err := s.files.Save(avatar, storage.AvatarDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	user := &model.User{
		Role:         model.RoleMember,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		AvatarPath:   &avatarPath,
	}
	address := &model.Address{
		Label:       &req.PlaceName,
		AddressText: req.Address,
		Lat:         lat,
		Lng:         lng,
	}

	if err := s.userRepo.CreateWithAddress(ctx, user, address); err != nil {
		s.deleteOrphanedFiles(avatarPath)
		return nil, nil, err
	}
	return user, address, nil
}

// RegisterRider creates a rider account together with its vehicle profile in
// one transaction. Avatar and vehicle photo are both optional; a plain
// vehicle_photo_path form field is honored when no file is uploaded.
func (s *authService) RegisterRider(ctx context.Context, req model.RegisterRiderRequest, avatar, vehiclePhoto *multipart.FileHeader) (*model.User, *model.RiderProfile, error) {
	if !usernameRE.MatchString(req.Username) {
		return nil, nil, ErrInvalidUsername
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var stored []string
	var avatarPath *string
	if avatar != nil {
		p, err := s.files.Save(avatar, storage.AvatarDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		avatarPath = &p
		stored = append(stored, p)
	}

	vehiclePhotoPath := req.VehiclePhotoPath
	if vehiclePhoto != nil {
		p, err := s.files.Save(vehiclePhoto, storage.VehicleDir)
		if err != nil {
			s.deleteOrphanedFiles(stored...)
			return nil, nil, fmt.Errorf("failed to store vehicle photo: %w", err)
		}
		vehiclePhotoPath = &p
		stored = append(stored, p)
	}

	user := &model.User{
		Role:         model.RoleRider,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		AvatarPath:   avatarPath,
	}
	profile := &model.RiderProfile{
		VehiclePlate:     req.VehiclePlate,
		VehicleModel:     req.VehicleModel,
		VehiclePhotoPath: vehiclePhotoPath,
	}

	if err := s.userRepo.CreateWithRiderProfile(ctx, user, profile); err != nil {
		s.deleteOrphanedFiles(stored...)
		return nil, nil, err
	}
	return user, profile, nil
}

// deleteOrphanedFiles is the compensating action after a rolled-back
// registration. Best-effort: failures are logged, never escalated.
func (s *authService) deleteOrphanedFiles(paths ...string) {
	for _, p := range paths {
		if err := s.files.Delete(p); err != nil {
			utils.Logger.Warn("failed to delete orphaned upload", zap.String("path", p), zap.Error(err))
		}
	}
}

// Login authenticates by username or phone and returns a JWT token.
// Identifiers shaped like a username are looked up as username first with a
// phone fallback, and vice versa.
func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	var user *model.User
	var err error

	if usernameRE.MatchString(identifier) {
		user, err = s.userRepo.FindByUsername(ctx, identifier)
		if err == nil && user == nil {
			user, err = s.userRepo.FindByPhone(ctx, identifier)
		}
	} else {
		user, err = s.userRepo.FindByPhone(ctx, identifier)
		if err == nil && user == nil {
			user, err = s.userRepo.FindByUsername(ctx, identifier)
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetUser returns the public user projection
func (s *authService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}
