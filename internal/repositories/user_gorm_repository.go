package repositories

import (
	"context"

	"mesto/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts user. ID, defaults and schema checks come from the model hook.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return classify("create user", err)
	}
	return nil
}

// GetAll retrieves every user.
func (r *GORMUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Omit("password").Order("created_at").Find(&users).Error; err != nil {
		return nil, classify("get all users", err)
	}
	return users, nil
}

// GetByID retrieves a single user by its ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const op = "get user by id"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.WithContext(ctx).Omit("password").First(&user, "id = ?", id).Error; err != nil {
		return nil, classify(op, err)
	}
	return &user, nil
}

// GetByEmailWithPassword retrieves a user together with the password hash.
func (r *GORMUserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, classify("get user by email", err)
	}
	return &user, nil
}

// UpdateProfile sets name and about, then returns the updated user.
func (r *GORMUserRepository) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error) {
	return r.update(ctx, "update user profile", id, patch, map[string]any{
		"name":  patch.Name,
		"about": patch.About,
	})
}

// UpdateAvatar sets the avatar link, then returns the updated user.
func (r *GORMUserRepository) UpdateAvatar(ctx context.Context, id string, patch models.AvatarPatch) (*models.User, error) {
	return r.update(ctx, "update user avatar", id, patch, map[string]any{
		"avatar": patch.Avatar,
	})
}

func (r *GORMUserRepository) update(ctx context.Context, op, id string, patch any, columns map[string]any) (*models.User, error) {
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	if err := models.Validate(patch); err != nil {
		return nil, classify(op, err)
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return classify(op, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound(op)
		}
		if err := tx.Omit("password").First(&user, "id = ?", id).Error; err != nil {
			return classify(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
