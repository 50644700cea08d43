package services

import (
	"context"
	"time"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/repository"
)

type AwardService struct {
	Tenders repository.TenderRepository
	Bids    repository.BidRepository
}

// NewAwardService создает новый экземпляр AwardService.
func NewAwardService(tenders repository.TenderRepository, bids repository.BidRepository) *AwardService {
	return &AwardService{Tenders: tenders, Bids: bids}
}

// AwardBid выбирает победителя тендера. Операция терминальна: после неё
// невозможны ни повторный выбор, ни публикация, ни подача предложений.
// Выбранное предложение получает статус Awarded, остальные предложения
// тендера - Disqualified, тендер - Awarded; всё в одной транзакции
// хранилища, см. TenderRepository.AwardBid.
func (s *AwardService) AwardBid(ctx context.Context, tenderId, bidId string) (*models.Tender, error) {
	if tenderId == "" || bidId == "" {
		return nil, models.NewValidationError("missing required parameters: tenderId or bidId")
	}

	tender, err := s.Tenders.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}

	switch ResolvePhase(tender, time.Now().UTC()) {
	case models.AwardedPhase:
		return nil, models.NewConflictError("already awarded")
	case models.PendingPhase, models.OpenPhase:
		return nil, models.NewPreconditionError("bidding must be closed before awarding")
	}

	bid, err := s.Bids.GetBidByID(ctx, bidId)
	if err != nil {
		return nil, err
	}
	if bid.TenderID != tenderId {
		return nil, models.NewValidationError("bid does not belong to this tender")
	}

	// Гонка между проверкой фазы и фиксацией разрешается в хранилище:
	// CAS статуса тендера пропускает ровно один вызов.
	return s.Tenders.AwardBid(ctx, tenderId, bidId)
}
