package services_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mesto/internal/apperrors"
	"mesto/internal/models"
	"mesto/internal/repositories"
	"mesto/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository, opts ...services.Option) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, 7*24*time.Hour, opts...)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	publisher := new(MockPublisher)
	authService := newAuthService(mockRepo, services.WithEvents(publisher))

	// Register blanks the hash on the returned user, so keep a copy of what was stored.
	var storedHash string
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			user.ID = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
			storedHash = user.Password
		}).
		Return(nil).Once()
	publisher.On("Publish", services.EventsExchange, services.EventUserRegistered, mock.MatchedBy(func(body []byte) bool {
		var ev services.Event
		return json.Unmarshal(body, &ev) == nil && ev.UserID == "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	})).Return(nil).Once()

	user, err := authService.Register(ctx, services.SignupInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Empty(t, user.Password, "the returned user must not carry the hash")

	require.NotEmpty(t, storedHash)
	assert.NotEqual(t, "secret", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret")))
	cost, err := bcrypt.Cost([]byte(storedHash))
	require.NoError(t, err)
	assert.Equal(t, services.BcryptCost, cost)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		_, err := newAuthService(mockRepo).Register(ctx, services.SignupInput{Email: "a@b.com"})
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
		assert.EqualError(t, err, services.MsgSignupCredentialsRequired)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", ctx, mock.Anything).
			Return(&repositories.StoreError{Kind: repositories.KindDuplicateKey, Op: "create user"}).Once()
		_, err := newAuthService(mockRepo).Register(ctx, services.SignupInput{Email: "a@b.com", Password: "secret"})
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		assert.EqualError(t, err, services.MsgEmailExists)
	})

	t.Run("schema violation", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", ctx, mock.Anything).
			Return(&repositories.StoreError{Kind: repositories.KindValidation, Op: "create user"}).Once()
		_, err := newAuthService(mockRepo).Register(ctx, services.SignupInput{Email: "a@b.com", Password: "secret", Name: "A"})
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})

	t.Run("password too long", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		_, err := newAuthService(mockRepo).Register(ctx, services.SignupInput{Email: "a@b.com", Password: strings.Repeat("x", 100)})
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})

	t.Run("unknown store failure passes through", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		storeErr := fmt.Errorf("failed to create user: %w", errors.New("disk full"))
		mockRepo.On("Create", ctx, mock.Anything).Return(storeErr).Once()
		_, err := newAuthService(mockRepo).Register(ctx, services.SignupInput{Email: "a@b.com", Password: "secret"})
		assert.Same(t, storeErr, err)
		assert.Equal(t, apperrors.Kind(0), apperrors.KindOf(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmailWithPassword", ctx, user.Email).Return(user, nil).Once()
	token, err := authService.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.ParseWithClaims(token, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsedToken.Claims.(*jwt.StandardClaims)
	assert.Equal(t, "user-123", claims.Subject)
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), float64(claims.ExpiresAt-claims.IssuedAt), 1)

	// Wrong password and unknown email fail identically
	mockRepo.On("GetByEmailWithPassword", ctx, user.Email).Return(user, nil).Once()
	_, wrongPasswordErr := authService.Login(ctx, "test@example.com", "wrongpassword")

	mockRepo.On("GetByEmailWithPassword", ctx, "nobody@example.com").
		Return(nil, &repositories.StoreError{Kind: repositories.KindNotFound, Op: "get user by email"}).Once()
	_, unknownEmailErr := authService.Login(ctx, "nobody@example.com", "password123")

	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(wrongPasswordErr))
	assert.Equal(t, wrongPasswordErr, unknownEmailErr)
	assert.EqualError(t, unknownEmailErr, services.MsgWrongCredentials)

	// Missing fields
	_, err = authService.Login(ctx, "", "password123")
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	// Store failures are not disguised as bad credentials
	mockRepo.On("GetByEmailWithPassword", ctx, "down@example.com").Return(nil, errors.New("connection refused")).Once()
	_, err = authService.Login(ctx, "down@example.com", "password123")
	assert.EqualError(t, err, "connection refused")

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	validToken, err := authService.IssueToken("user-123")
	require.NoError(t, err)

	subject, err := authService.ValidateToken(validToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)

	// Garbage
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Payload swapped under the original signature
	parts := strings.Split(validToken, ".")
	forged, _ := json.Marshal(jwt.StandardClaims{Subject: "someone-else", ExpiresAt: time.Now().Add(time.Hour).Unix()})
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)
	_, err = authService.ValidateToken(strings.Join(parts, "."))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Signed with another secret
	other := services.NewAuthService(new(MockUserRepository), "other-secret", time.Hour)
	foreignToken, err := other.IssueToken("user-123")
	require.NoError(t, err)
	_, err = authService.ValidateToken(foreignToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "user-123",
		IssuedAt:  time.Now().Add(-8 * 24 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// No subject
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	anonymousTokenString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(anonymousTokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// No expiry
	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:  "user-123",
		IssuedAt: time.Now().Unix(),
	})
	eternalTokenString, _ := eternal.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(eternalTokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
