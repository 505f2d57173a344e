package repositories

import (
	"context"
	"errors"

	"mesto/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCardRepository is a GORM implementation of CardRepository.
type GORMCardRepository struct {
	db *gorm.DB
}

// NewGORMCardRepository creates a new instance of GORMCardRepository.
func NewGORMCardRepository(db *gorm.DB) *GORMCardRepository {
	return &GORMCardRepository{
		db: db,
	}
}

func preloadLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("LikeRows", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at")
	})
}

// GetAll retrieves all cards, oldest first.
func (r *GORMCardRepository) GetAll(ctx context.Context) ([]models.Card, error) {
	cards := []models.Card{}
	if err := preloadLikes(r.db.WithContext(ctx)).Order("created_at").Find(&cards).Error; err != nil {
		return nil, classify("get all cards", err)
	}
	for i := range cards {
		cards[i].CollectLikes()
	}
	return cards, nil
}

// GetByID retrieves a single card by its ID.
func (r *GORMCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	const op = "get card by id"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	return r.load(r.db.WithContext(ctx), op, id)
}

// Create inserts card. ID and schema checks come from the model hook.
func (r *GORMCardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Omit("LikeRows").Create(card).Error; err != nil {
		return classify("create card", err)
	}
	card.CollectLikes()
	return nil
}

// Delete removes a card and its likes.
func (r *GORMCardRepository) Delete(ctx context.Context, id string) error {
	const op = "delete card"
	if err := checkID(op, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.CardLike{}).Error; err != nil {
			return classify(op, err)
		}
		res := tx.Delete(&models.Card{}, "id = ?", id)
		if res.Error != nil {
			return classify(op, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound(op)
		}
		return nil
	})
}

// AddLike puts userID into the card's likes.
func (r *GORMCardRepository) AddLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	const op = "like card"
	return r.mutateLikes(ctx, op, cardID, userID, func(tx *gorm.DB) error {
		like := models.CardLike{CardID: cardID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
	})
}

// RemoveLike takes userID out of the card's likes.
func (r *GORMCardRepository) RemoveLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	const op = "unlike card"
	return r.mutateLikes(ctx, op, cardID, userID, func(tx *gorm.DB) error {
		return tx.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&models.CardLike{}).Error
	})
}

func (r *GORMCardRepository) mutateLikes(ctx context.Context, op, cardID, userID string, mutate func(tx *gorm.DB) error) (*models.Card, error) {
	if err := checkID(op, cardID); err != nil {
		return nil, err
	}
	if err := checkID(op, userID); err != nil {
		return nil, err
	}

	var card *models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Card{}).Where("id = ?", cardID).Count(&count).Error; err != nil {
			return classify(op, err)
		}
		if count == 0 {
			return notFound(op)
		}
		if err := mutate(tx); err != nil {
			// The card was deleted after the count.
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return notFound(op)
			}
			return classify(op, err)
		}
		loaded, err := r.load(tx, op, cardID)
		if err != nil {
			return err
		}
		card = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (r *GORMCardRepository) load(db *gorm.DB, op, id string) (*models.Card, error) {
	var card models.Card
	if err := preloadLikes(db).First(&card, "id = ?", id).Error; err != nil {
		return nil, classify(op, err)
	}
	card.CollectLikes()
	return &card, nil
}
