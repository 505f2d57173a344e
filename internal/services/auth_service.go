package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mesto/internal/apperrors"
	"mesto/internal/models"
	"mesto/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashes.
const BcryptCost = 10

const (
	MsgSignupCredentialsRequired = "Email и пароль обязательные для регистрации"
	MsgSigninCredentialsRequired = "Email и пароль обязательные для авторизации"
	MsgEmailExists               = "При регистрации указан email, который уже существует на сервере"
	MsgInvalidSignupData         = "Переданы некорректные данные при регистрации пользователя"
	MsgWrongCredentials          = "Неправильный email или пароль"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// dummyHash is compared against when the email is unknown, so both failure
// paths of Login cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("placeholder-password"), BcryptCost)
	return hash
})

// SignupInput carries the fields accepted by registration.
type SignupInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	base
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, opts ...Option) *AuthService {
	return &AuthService{
		base:      newBase(opts),
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register hashes the password and stores a new user.
// The returned user never carries the hash.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperrors.BadRequest(MsgSignupCredentialsRequired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.BadRequest(MsgInvalidSignupData)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		About:    in.About,
		Avatar:   in.Avatar,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch repositories.KindOf(err) {
		case repositories.KindDuplicateKey:
			return nil, apperrors.Conflict(MsgEmailExists)
		case repositories.KindValidation:
			return nil, apperrors.BadRequest(MsgInvalidSignupData)
		}
		return nil, err
	}

	user.Password = ""
	s.log.Info("user registered", zap.String("user_id", user.ID))
	s.publish(EventUserRegistered, user.ID, "")
	return user, nil
}

// Login checks the credentials and returns a signed token.
// Unknown email and wrong password fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.BadRequest(MsgSigninCredentialsRequired)
	}

	user, err := s.userRepo.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if repositories.KindOf(err) != repositories.KindNotFound {
			return "", err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return "", apperrors.Unauthorized(MsgWrongCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Unauthorized(MsgWrongCredentials)
	}

	return s.IssueToken(user.ID)
}

// IssueToken signs a token whose subject is userID.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies signature and expiry and returns the token subject.
// Tokens without an expiry are rejected.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
