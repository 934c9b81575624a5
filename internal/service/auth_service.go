package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/prokvartiru/review-backend/internal/goroutine"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/validation"
)

// Стоимость bcrypt и срок жизни кода подтверждения.
const (
	bcryptCost             = 12
	verificationCodeExpiry = 15 * time.Minute
)

// AuthUserRepository описывает зависимости AuthService от слоя хранилища.
type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	SetEmailVerified(ctx context.Context, id bson.ObjectID) error
	SetEmailNotifications(ctx context.Context, id bson.ObjectID, enabled bool) error
	TouchLastLogin(ctx context.Context, id bson.ObjectID) error
}

// VerificationMailer отправляет код подтверждения email.
type VerificationMailer interface {
	SendVerificationCode(to, name, code string) error
}

// AuthService инкапсулирует регистрацию, вход и подтверждение email.
type AuthService struct {
	users        AuthUserRepository
	tokenManager *TokenManager
	mailer       VerificationMailer
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User  *models.User
	Token string
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users AuthUserRepository, tokenManager *TokenManager, mailer VerificationMailer) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
		mailer:       mailer,
	}
}

// Register создаёт пользователя, отправляет код подтверждения email
// и сразу выдаёт токен: подтверждение не блокирует работу с сервисом.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var verrs validation.Errors
	verrs.Add("firstName", validation.ValidatePersonName("имя", in.FirstName))
	verrs.Add("lastName", validation.ValidatePersonName("фамилия", in.LastName))
	verrs.Add("email", validation.ValidateEmail(in.Email))
	verrs.Add("password", validation.ValidatePassword(in.Password))
	if verrs.Any() {
		return nil, verrs
	}

	email := validation.NormalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		FirstName:                validation.Sanitize(in.FirstName),
		LastName:                 validation.Sanitize(in.LastName),
		Email:                    email,
		PasswordHash:             string(passHash),
		Role:                     models.RoleUser,
		EmailVerificationCode:    generateCode(),
		EmailVerificationExpires: time.Now().UTC().Add(verificationCodeExpiry),
		EmailNotifications:       true,
		IsActive:                 true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Письмо с кодом уходит в фоне и не влияет на ответ.
	code := user.EmailVerificationCode
	goroutine.SafeGo(func() {
		if err := s.mailer.SendVerificationCode(user.Email, user.FirstName, code); err != nil {
			logger.Log.WithField("email", user.Email).Warnf("auth service: не удалось отправить код подтверждения: %v", err)
		}
	})

	token, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет учётные данные и возвращает токен.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Время последнего входа обновляется по возможности.
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Log.WithField("user_id", user.ID.Hex()).Warnf("auth service: не удалось обновить last_login: %v", err)
	}

	token, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyEmail сверяет код подтверждения и помечает email подтверждённым.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrBadVerification
		}
		return err
	}

	if user.IsEmailVerified {
		return nil
	}
	if user.EmailVerificationCode == "" || user.EmailVerificationCode != code {
		return ErrBadVerification
	}
	if time.Now().UTC().After(user.EmailVerificationExpires) {
		return ErrBadVerification
	}

	return s.users.SetEmailVerified(ctx, user.ID)
}

// TokenTTL возвращает срок жизни выдаваемых токенов.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenManager.TTL()
}

// CurrentUser возвращает пользователя по ID из токена.
func (s *AuthService) CurrentUser(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// SetEmailNotifications обновляет подписку на почтовые уведомления.
func (s *AuthService) SetEmailNotifications(ctx context.Context, id bson.ObjectID, enabled bool) error {
	return s.users.SetEmailNotifications(ctx, id, enabled)
}

// generateCode формирует шестизначный код подтверждения.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "000000"
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}
