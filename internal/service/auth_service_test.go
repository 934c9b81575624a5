package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) SetEmailVerified(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) SetEmailNotifications(ctx context.Context, id bson.ObjectID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVerificationMailer struct {
	mock.Mock
}

func (m *mockVerificationMailer) SendVerificationCode(to, name, code string) error {
	args := m.Called(to, name, code)
	return args.Error(0)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ivan@example.com").Return(nil, repository.ErrUserNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	// Письмо уходит в фоне, его отправка не обязана успеть до конца теста.
	mailer.On("SendVerificationCode", "ivan@example.com", "Иван", mock.AnythingOfType("string")).Return(nil).Maybe()

	res, err := svc.Register(ctx, RegisterInput{
		FirstName: "Иван",
		LastName:  "Иванов",
		Email:     "Ivan@Example.com",
		Password:  "Password1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ivan@example.com", res.User.Email)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.True(t, res.User.EmailNotifications)
	assert.Len(t, res.User.EmailVerificationCode, 6)
	assert.False(t, res.User.IsEmailVerified)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	existing := &models.User{ID: bson.NewObjectID(), Email: "ivan@example.com"}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(existing, nil)

	_, err := svc.Register(ctx, RegisterInput{
		FirstName: "Иван",
		LastName:  "Иванов",
		Email:     "ivan@example.com",
		Password:  "Password1",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "",
		LastName:  "Иванов",
		Email:     "not-an-email",
		Password:  "short",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           bson.NewObjectID(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)
	repo.On("TouchLastLogin", ctx, user.ID).Return(nil)

	res, err := svc.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "Password1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           bson.NewObjectID(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "Wrong1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           bson.NewObjectID(),
		Email:        "banned@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}
	repo.On("GetByEmail", ctx, "banned@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "banned@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	user := &models.User{
		ID:                       bson.NewObjectID(),
		Email:                    "ivan@example.com",
		EmailVerificationCode:    "123456",
		EmailVerificationExpires: time.Now().UTC().Add(10 * time.Minute),
	}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)
	repo.On("SetEmailVerified", ctx, user.ID).Return(nil)

	err := svc.VerifyEmail(ctx, "ivan@example.com", "123456")
	assert.NoError(t, err)
	repo.AssertCalled(t, "SetEmailVerified", ctx, user.ID)
}

func TestAuthService_VerifyEmail_WrongCode(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	user := &models.User{
		ID:                       bson.NewObjectID(),
		Email:                    "ivan@example.com",
		EmailVerificationCode:    "123456",
		EmailVerificationExpires: time.Now().UTC().Add(10 * time.Minute),
	}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)

	err := svc.VerifyEmail(ctx, "ivan@example.com", "000000")
	assert.ErrorIs(t, err, ErrBadVerification)
}

func TestAuthService_VerifyEmail_ExpiredCode(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	user := &models.User{
		ID:                       bson.NewObjectID(),
		Email:                    "ivan@example.com",
		EmailVerificationCode:    "123456",
		EmailVerificationExpires: time.Now().UTC().Add(-time.Minute),
	}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)

	err := svc.VerifyEmail(ctx, "ivan@example.com", "123456")
	assert.ErrorIs(t, err, ErrBadVerification)
}

func TestAuthService_VerifyEmail_AlreadyVerified(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockVerificationMailer)
	svc := NewAuthService(repo, NewTokenManager("test-secret", time.Hour), mailer)
	ctx := context.Background()

	user := &models.User{ID: bson.NewObjectID(), Email: "ivan@example.com", IsEmailVerified: true}
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)

	err := svc.VerifyEmail(ctx, "ivan@example.com", "123456")
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "SetEmailVerified", mock.Anything, mock.Anything)
}
