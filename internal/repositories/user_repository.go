package repositories

import (
	"context"

	"mesto/internal/models"
)

// UserRepository defines the interface for user data access.
// Every read except GetByEmailWithPassword leaves Password empty.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, patch models.AvatarPatch) (*models.User, error)
}
