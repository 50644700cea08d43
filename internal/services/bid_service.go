package services

import (
	"context"
	"time"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/repository"
	"github.com/senyabanana/etender-service/internal/utils"
)

type BidService struct {
	Repo    repository.BidRepository
	Tenders repository.TenderRepository
	db      repository.DBPool
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, tenders repository.TenderRepository, db repository.DBPool) *BidService {
	return &BidService{Repo: repo, Tenders: tenders, db: db}
}

// SubmitBid подаёт предложение по тендеру.
// Фаза проверяется по авторитетным часам сервера в момент выполнения,
// а не по снимку клиента: подача возможна только в фазе Open.
func (s *BidService) SubmitBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	if bidReq.TenderID == "" || bidReq.VendorID == "" {
		return nil, models.NewValidationError("missing required fields")
	}
	if bidReq.BidAmount <= 0 {
		return nil, models.NewValidationError("bid amount must be positive")
	}

	vendorExists, err := utils.CheckVendorExists(ctx, s.db, bidReq.VendorID)
	if err != nil {
		return nil, models.NewInternalError("internal server error")
	}
	if !vendorExists {
		return nil, models.NewValidationError("vendor does not exist")
	}

	tender, err := s.Tenders.GetTenderByID(ctx, bidReq.TenderID)
	if err != nil {
		return nil, err
	}
	if ResolvePhase(tender, time.Now().UTC()) != models.OpenPhase {
		return nil, models.NewPreconditionError("bidding is not open for this tender")
	}

	return s.Repo.CreateBid(ctx, bidReq)
}

// GetTenderBids получает список предложений для тендера.
func (s *BidService) GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error) {
	if tenderId == "" {
		return nil, models.NewValidationError("missing required parameter: tenderId")
	}
	tenderExists, err := utils.CheckTenderExists(ctx, s.db, tenderId)
	if err != nil {
		return nil, models.NewInternalError("internal server error")
	}
	if !tenderExists {
		return nil, models.NewNotFoundError("tender not found")
	}
	return s.Repo.GetTenderBids(ctx, tenderId)
}

// GetVendorBids получает список предложений поставщика.
func (s *BidService) GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error) {
	if vendorId == "" {
		return nil, models.NewValidationError("missing required parameter: vendorId")
	}
	vendorExists, err := utils.CheckVendorExists(ctx, s.db, vendorId)
	if err != nil {
		return nil, models.NewInternalError("internal server error")
	}
	if !vendorExists {
		return nil, models.NewValidationError("vendor does not exist")
	}
	return s.Repo.GetVendorBids(ctx, vendorId)
}
