package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card is a picture shared by a user. Owner never changes after creation.
type Card struct {
	ID        string     `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string     `json:"name" gorm:"type:varchar(30);not null" validate:"required,min=2,max=30"`
	Link      string     `json:"link" gorm:"type:text;not null" validate:"required,url"`
	OwnerID   string     `json:"owner" gorm:"type:varchar(36);index;not null" validate:"required,uuid"`
	LikeRows  []CardLike `json:"-" gorm:"foreignKey:CardID"`
	Likes     []string   `json:"likes" gorm:"-"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CardLike records that a user likes a card. The composite key keeps likes a set.
type CardLike struct {
	CardID    string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}

// BeforeCreate assigns the identifier and enforces the card schema.
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return Validate(c)
}

// CollectLikes copies the loaded like rows into Likes.
func (c *Card) CollectLikes() {
	c.Likes = make([]string, 0, len(c.LikeRows))
	for _, like := range c.LikeRows {
		c.Likes = append(c.Likes, like.UserID)
	}
}

// LikedBy reports whether userID is in the card's likes.
func (c *Card) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
