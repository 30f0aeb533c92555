package auth

import (
	"context"
	"testing"

	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u != nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_DefaultsToCustomer(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	mockUsers.On("ExistsByEmail", mock.Anything, "asel@mail.kz").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, mockJWT)

	user, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Asel",
		Email:    "Asel@Mail.KZ",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "asel@mail.kz", user.Email) // lowercased
	assert.Empty(t, user.PasswordHash)
}

func TestService_Register_StudioOwner(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	mockUsers.On("ExistsByEmail", mock.Anything, "aidar@lightpro.kz").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, mockJWT)

	user, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Aidar",
		Email:    "aidar@lightpro.kz",
		Password: "secret123",
		Role:     "studio_owner",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudioOwner, user.Role)
}

func TestService_Register_RejectsAdminRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)
	service := NewService(mockUsers, mockJWT)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Sneaky",
		Email:    "sneaky@mail.kz",
		Password: "secret123",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	mockUsers.On("ExistsByEmail", mock.Anything, "asel@mail.kz").Return(true, nil)

	service := NewService(mockUsers, mockJWT)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Asel",
		Email:    "asel@mail.kz",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	mockUsers.On("GetByEmail", mock.Anything, "asel@mail.kz").Return(&domain.User{
		ID:           42,
		Email:        "asel@mail.kz",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}, nil)
	mockJWT.On("GenerateToken", int64(42), "customer").Return("token-123", nil)

	service := NewService(mockUsers, mockJWT)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "asel@mail.kz",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	mockUsers.On("GetByEmail", mock.Anything, "asel@mail.kz").Return(&domain.User{
		ID:           42,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}, nil)

	service := NewService(mockUsers, mockJWT)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "asel@mail.kz",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockJWT.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	mockUsers.On("GetByEmail", mock.Anything, "nobody@mail.kz").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, mockJWT)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@mail.kz",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
