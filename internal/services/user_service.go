package services

import (
	"context"

	"mesto/internal/apperrors"
	"mesto/internal/models"
	"mesto/internal/repositories"
)

const (
	MsgUserNotFound       = "Пользователь по указанному _id не найден"
	MsgInvalidUserID      = "Передан некорректный _id пользователя"
	MsgInvalidProfileData = "Переданы некорректные данные при обновлении профиля"
	MsgInvalidAvatarData  = "Переданы некорректные данные при обновлении аватара"
)

// UserService handles business logic related to user profiles.
type UserService struct {
	base
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, opts ...Option) *UserService {
	return &UserService{
		base: newBase(opts),
		repo: repo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetUserByID retrieves a single user by its ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		switch repositories.KindOf(err) {
		case repositories.KindNotFound:
			return nil, apperrors.NotFound(MsgUserNotFound)
		case repositories.KindMalformedID:
			return nil, apperrors.BadRequest(MsgInvalidUserID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the name and about of user id.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error) {
	user, err := s.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return nil, classifyUpdate(err, MsgInvalidProfileData)
	}
	return user, nil
}

// UpdateAvatar changes the avatar of user id. Invalid input is a BadRequest,
// the same as UpdateProfile.
func (s *UserService) UpdateAvatar(ctx context.Context, id string, patch models.AvatarPatch) (*models.User, error) {
	user, err := s.repo.UpdateAvatar(ctx, id, patch)
	if err != nil {
		return nil, classifyUpdate(err, MsgInvalidAvatarData)
	}
	return user, nil
}

func classifyUpdate(err error, invalidMsg string) error {
	switch repositories.KindOf(err) {
	case repositories.KindNotFound:
		return apperrors.NotFound(MsgUserNotFound)
	case repositories.KindValidation, repositories.KindMalformedID:
		return apperrors.BadRequest(invalidMsg)
	}
	return err
}
