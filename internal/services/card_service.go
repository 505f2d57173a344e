package services

import (
	"context"

	"mesto/internal/apperrors"
	"mesto/internal/models"
	"mesto/internal/repositories"

	"go.uber.org/zap"
)

const (
	MsgCardNotFound      = "Карточка по указанному _id не найдена"
	MsgInvalidCardID     = "Передан некорректный _id карточки"
	MsgInvalidCardData   = "Переданы некорректные данные при создании карточки"
	MsgInvalidLikeData   = "Переданы некорректные данные для установки лайка на карточке"
	MsgInvalidUnlikeData = "Переданы некорректные данные для снятия лайка с карточки"
	MsgDeleteForbidden   = "Нет прав на удаление"
	MsgCardDeleted       = "Карточка удалена"
)

// CardService handles business logic related to cards.
type CardService struct {
	base
	repo repositories.CardRepository
}

// NewCardService creates a new CardService.
func NewCardService(repo repositories.CardRepository, opts ...Option) *CardService {
	return &CardService{
		base: newBase(opts),
		repo: repo,
	}
}

// GetAllCards retrieves all cards.
func (s *CardService) GetAllCards(ctx context.Context) ([]models.Card, error) {
	return s.repo.GetAll(ctx)
}

// CreateCard stores a card owned by ownerID.
func (s *CardService) CreateCard(ctx context.Context, ownerID, name, link string) (*models.Card, error) {
	card := &models.Card{Name: name, Link: link, OwnerID: ownerID}
	if err := s.repo.Create(ctx, card); err != nil {
		switch repositories.KindOf(err) {
		case repositories.KindValidation, repositories.KindMalformedID:
			return nil, apperrors.BadRequest(MsgInvalidCardData)
		}
		return nil, err
	}
	s.publish(EventCardCreated, ownerID, card.ID)
	return card, nil
}

// DeleteCard removes cardID if requesterID owns it.
func (s *CardService) DeleteCard(ctx context.Context, cardID, requesterID string) error {
	card, err := s.repo.GetByID(ctx, cardID)
	if err != nil {
		return classifyCardLookup(err, MsgInvalidCardID)
	}
	if card.OwnerID != requesterID {
		s.log.Info("card delete refused",
			zap.String("card_id", cardID),
			zap.String("requester_id", requesterID))
		return apperrors.Forbidden(MsgDeleteForbidden)
	}
	if err := s.repo.Delete(ctx, cardID); err != nil {
		return classifyCardLookup(err, MsgInvalidCardID)
	}
	s.publish(EventCardDeleted, requesterID, cardID)
	return nil
}

// LikeCard adds userID to the likes of cardID.
func (s *CardService) LikeCard(ctx context.Context, cardID, userID string) (*models.Card, error) {
	card, err := s.repo.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, classifyCardLookup(err, MsgInvalidLikeData)
	}
	s.publish(EventCardLiked, userID, cardID)
	return card, nil
}

// UnlikeCard removes userID from the likes of cardID.
func (s *CardService) UnlikeCard(ctx context.Context, cardID, userID string) (*models.Card, error) {
	card, err := s.repo.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, classifyCardLookup(err, MsgInvalidUnlikeData)
	}
	s.publish(EventCardUnliked, userID, cardID)
	return card, nil
}

func classifyCardLookup(err error, malformedMsg string) error {
	switch repositories.KindOf(err) {
	case repositories.KindNotFound:
		return apperrors.NotFound(MsgCardNotFound)
	case repositories.KindMalformedID:
		return apperrors.BadRequest(malformedMsg)
	}
	return err
}
