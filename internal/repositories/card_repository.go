package repositories

import (
	"context"

	"mesto/internal/models"
)

// CardRepository defines the interface for card data access.
// Returned cards always have Likes populated.
type CardRepository interface {
	GetAll(ctx context.Context) ([]models.Card, error)
	GetByID(ctx context.Context, id string) (*models.Card, error)
	Create(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) error
	// AddLike and RemoveLike are idempotent set operations.
	AddLike(ctx context.Context, cardID, userID string) (*models.Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (*models.Card, error)
}
