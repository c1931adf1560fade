package service

import (
	"context"
	"mime/multipart"

	"delivery_api/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithAddress(ctx context.Context, user *model.User, address *model.Address) error {
	args := m.Called(ctx, user, address)
	return args.Error(0)
}

func (m *MockUserRepository) CreateWithRiderProfile(ctx context.Context, user *model.User, profile *model.RiderProfile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockAddressRepository is a mock implementation of repository.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *model.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) SetDefault(ctx context.Context, id int64) (*model.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, id int64, req model.UpdateAddressRequest) (*model.Address, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRiderProfileRepository is a mock implementation of repository.RiderProfileRepository
type MockRiderProfileRepository struct {
	mock.Mock
}

func (m *MockRiderProfileRepository) Upsert(ctx context.Context, profile *model.RiderProfile, isActive *bool) error {
	args := m.Called(ctx, profile, isActive)
	return args.Error(0)
}

func (m *MockRiderProfileRepository) FindByUser(ctx context.Context, userID int64) (*model.RiderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RiderProfile), args.Error(1)
}

func (m *MockRiderProfileRepository) SetActive(ctx context.Context, userID int64, active bool) (*model.RiderProfile, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RiderProfile), args.Error(1)
}

// MockFileStorage is a mock implementation of storage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(file *multipart.FileHeader, subdir string) (string, error) {
	args := m.Called(file, subdir)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileStorage) FullPath(path string) string {
	args := m.Called(path)
	return args.String(0)
}
