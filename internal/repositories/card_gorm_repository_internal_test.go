package repositories

import (
	"context"
	"fmt"
	"testing"

	"mesto/internal/database"
	"mesto/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMutateLikes_CardDeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)

	users := NewGORMUserRepository(db)
	user := &models.User{Email: "a@b.com", Password: "$2a$10$notarealhash"}
	require.NoError(t, users.Create(ctx, user))

	repo := NewGORMCardRepository(db)
	card := &models.Card{Name: "Байкал", Link: "https://example.com/b.jpg", OwnerID: user.ID}
	require.NoError(t, repo.Create(ctx, card))

	_, err = repo.mutateLikes(ctx, "like card", card.ID, user.ID, func(tx *gorm.DB) error {
		return fmt.Errorf("insert like: %w", gorm.ErrForeignKeyViolated)
	})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = repo.mutateLikes(ctx, "like card", card.ID, user.ID, func(tx *gorm.DB) error {
		return fmt.Errorf("insert like: %w", gorm.ErrInvalidData)
	})
	assert.Equal(t, KindUnknown, KindOf(err))
}
