package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile defaults assigned to users who sign up without them.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered member.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(30);not null" validate:"min=2,max=30"`
	About     string    `json:"about" gorm:"type:varchar(30);not null" validate:"min=2,max=30"`
	Avatar    string    `json:"avatar" gorm:"type:text;not null" validate:"url"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null" validate:"required"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ApplyDefaults fills empty profile fields with the defaults.
func (u *User) ApplyDefaults() {
	if u.Name == "" {
		u.Name = DefaultUserName
	}
	if u.About == "" {
		u.About = DefaultUserAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultUserAvatar
	}
}

// BeforeCreate assigns the identifier and enforces the user schema.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.ApplyDefaults()
	return Validate(u)
}

// ProfilePatch is the set of fields changed by a profile update.
type ProfilePatch struct {
	Name  string `json:"name" validate:"min=2,max=30"`
	About string `json:"about" validate:"min=2,max=30"`
}

// AvatarPatch is the field changed by an avatar update.
type AvatarPatch struct {
	Avatar string `json:"avatar" validate:"required,url"`
}
