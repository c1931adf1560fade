package service

import (
	"context"
	"mime/multipart"
	"testing"

	"delivery_api/internal/model"
	"delivery_api/internal/repository"
	"delivery_api/internal/storage"
	"delivery_api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo *MockUserRepository, files *MockFileStorage) AuthService {
	return NewAuthService(userRepo, files, utils.NewJWTUtil("test-secret", 1))
}

func memberReq() model.RegisterMemberRequest {
	return model.RegisterMemberRequest{
		Username:  "somchai_1",
		Password:  "password123",
		Name:      "Somchai",
		Phone:     "0812345678",
		PlaceName: "Home",
		Address:   "123 Main St",
		Lat:       f64Ptr(13.7563),
		Lng:       f64Ptr(100.5018),
	}
}

func avatarFile() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "avatar.png"}
}

func TestRegisterMember(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	files.On("Save", mock.Anything, storage.AvatarDir).Return("avatars/avatar_x.png", nil)
	userRepo.On("CreateWithAddress", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Address")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 10
			addr := args.Get(2).(*model.Address)
			addr.ID = 1
			addr.UserID = 10
			addr.IsDefault = true
		}).Return(nil)

	user, address, err := svc.RegisterMember(context.Background(), memberReq(), avatarFile())

	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, user.Role)
	assert.Equal(t, int64(10), user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash) // never store plaintext
	require.NotNil(t, user.AvatarPath)
	assert.Equal(t, "avatars/avatar_x.png", *user.AvatarPath)
	assert.True(t, address.IsDefault)
	userRepo.AssertExpectations(t)
}

func TestRegisterMember_UsernamePatternBoundary(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	// 2 chars: too short
	req := memberReq()
	req.Username = "ab"
	_, _, err := svc.RegisterMember(context.Background(), req, avatarFile())
	assert.ErrorIs(t, err, ErrInvalidUsername)

	// 4 chars with underscore: valid
	files.On("Save", mock.Anything, storage.AvatarDir).Return("avatars/avatar_x.png", nil)
	userRepo.On("CreateWithAddress", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	req.Username = "ab_3"
	_, _, err = svc.RegisterMember(context.Background(), req, avatarFile())
	assert.NoError(t, err)
}

func TestRegisterMember_CoordinateOutOfRange(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	req := memberReq()
	req.Lat = f64Ptr(91)
	req.Lng = f64Ptr(0)

	_, _, err := svc.RegisterMember(context.Background(), req, avatarFile())

	assert.ErrorIs(t, err, utils.ErrCoordinateOutOfRange)
	// nothing was written anywhere
	userRepo.AssertNotCalled(t, "CreateWithAddress", mock.Anything, mock.Anything, mock.Anything)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegisterMember_MissingCoordinatesRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	req := memberReq()
	req.Lat = nil
	req.Lng = nil

	_, _, err := svc.RegisterMember(context.Background(), req, avatarFile())

	assert.ErrorIs(t, err, utils.ErrInvalidCoordinate)
	userRepo.AssertNotCalled(t, "CreateWithAddress", mock.Anything, mock.Anything, mock.Anything)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegisterMember_MissingAvatar(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	_, _, err := svc.RegisterMember(context.Background(), memberReq(), nil)

	assert.ErrorIs(t, err, ErrMissingAvatar)
	userRepo.AssertNotCalled(t, "CreateWithAddress", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterMember_DuplicateUsernameDeletesOrphanedFile(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	files.On("Save", mock.Anything, storage.AvatarDir).Return("avatars/avatar_x.png", nil)
	userRepo.On("CreateWithAddress", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrUsernameTaken)
	files.On("Delete", "avatars/avatar_x.png").Return(nil)

	_, _, err := svc.RegisterMember(context.Background(), memberReq(), avatarFile())

	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	files.AssertCalled(t, "Delete", "avatars/avatar_x.png")
}

func TestRegisterRider(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	files.On("Save", mock.Anything, storage.AvatarDir).Return("avatars/avatar_x.png", nil)
	files.On("Save", mock.Anything, storage.VehicleDir).Return("vehicles/vehicle_x.png", nil)
	userRepo.On("CreateWithRiderProfile", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.RiderProfile")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 11
			profile := args.Get(2).(*model.RiderProfile)
			profile.UserID = 11
			profile.IsActive = true
		}).Return(nil)

	req := model.RegisterRiderRequest{
		Username: "rider_1", Password: "password123", Name: "Rider",
		Phone: "0899999999", VehiclePlate: "AB-1234",
	}
	vehiclePhoto := &multipart.FileHeader{Filename: "bike.png"}

	user, profile, err := svc.RegisterRider(context.Background(), req, avatarFile(), vehiclePhoto)

	require.NoError(t, err)
	assert.Equal(t, model.RoleRider, user.Role)
	assert.True(t, profile.IsActive)
	require.NotNil(t, profile.VehiclePhotoPath)
	assert.Equal(t, "vehicles/vehicle_x.png", *profile.VehiclePhotoPath)
}

func TestRegisterRider_DuplicatePlateDeletesAllOrphanedFiles(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	files.On("Save", mock.Anything, storage.AvatarDir).Return("avatars/avatar_x.png", nil)
	files.On("Save", mock.Anything, storage.VehicleDir).Return("vehicles/vehicle_x.png", nil)
	userRepo.On("CreateWithRiderProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrVehiclePlateTaken)
	files.On("Delete", mock.AnythingOfType("string")).Return(nil)

	req := model.RegisterRiderRequest{
		Username: "rider_2", Password: "password123", Name: "Rider",
		Phone: "0888888888", VehiclePlate: "AB-1234",
	}
	vehiclePhoto := &multipart.FileHeader{Filename: "bike.png"}

	_, _, err := svc.RegisterRider(context.Background(), req, avatarFile(), vehiclePhoto)

	assert.ErrorIs(t, err, repository.ErrVehiclePlateTaken)
	files.AssertCalled(t, "Delete", "avatars/avatar_x.png")
	files.AssertCalled(t, "Delete", "vehicles/vehicle_x.png")
}

func TestRegisterRider_NoFilesNoCompensation(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	userRepo.On("CreateWithRiderProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrUsernameTaken)

	req := model.RegisterRiderRequest{
		Username: "rider_3", Password: "password123", Name: "Rider",
		Phone: "0877777777", VehiclePlate: "CD-5678",
	}

	_, _, err := svc.RegisterRider(context.Background(), req, nil, nil)

	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	files.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestLogin(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{ID: 10, Role: model.RoleMember, Username: "somchai_1", Phone: "0812345678", PasswordHash: hash}

	userRepo.On("FindByUsername", mock.Anything, "somchai_1").Return(user, nil)

	got, token, err := svc.Login(context.Background(), "somchai_1", "password123")

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_PhoneFallback(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	hash, _ := utils.HashPassword("password123")
	user := &model.User{ID: 10, Role: model.RoleMember, Username: "somchai_1", Phone: "0812345678", PasswordHash: hash}

	// a digit-only phone still matches the username shape, so username is
	// tried first and phone is the fallback
	userRepo.On("FindByUsername", mock.Anything, "0812345678").Return(nil, nil)
	userRepo.On("FindByPhone", mock.Anything, "0812345678").Return(user, nil)

	got, token, err := svc.Login(context.Background(), "0812345678", "password123")

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	hash, _ := utils.HashPassword("password123")
	user := &model.User{ID: 10, Username: "somchai_1", PasswordHash: hash}
	userRepo.On("FindByUsername", mock.Anything, "somchai_1").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "somchai_1", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	userRepo.On("FindByUsername", mock.Anything, "nobody_1").Return(nil, nil)
	userRepo.On("FindByPhone", mock.Anything, "nobody_1").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), "nobody_1", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	files := new(MockFileStorage)
	svc := newAuthService(userRepo, files)

	userRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.GetUser(context.Background(), 99)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
