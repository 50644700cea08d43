package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/senyabanana/etender-service/internal/models"

	"github.com/google/uuid"
)

// fakeStore - потокобезопасное хранилище в памяти, реализующее оба
// репозитория. Повторяет контракты Postgres-реализации: уникальность
// пары (tender, vendor) и CAS статуса тендера как точку фиксации.
type fakeStore struct {
	mu      sync.Mutex
	tenders map[string]models.Tender
	bids    map[string]models.Bid
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenders: make(map[string]models.Tender),
		bids:    make(map[string]models.Bid),
	}
}

func (f *fakeStore) addTender(tender models.Tender) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenders[tender.ID] = tender
}

func (f *fakeStore) addBid(bid models.Bid) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bids[bid.ID] = bid
}

func (f *fakeStore) bidStatus(bidId string) models.BidStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bids[bidId].Status
}

func (f *fakeStore) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	tender := models.Tender{
		ID:                 uuid.New().String(),
		TenderNumber:       tenderReq.TenderNumber,
		Title:              tenderReq.Title,
		Description:        tenderReq.Description,
		EstimatedCost:      tenderReq.EstimatedCost,
		Status:             models.DraftTender,
		PublishDate:        now,
		SubmissionDeadline: tenderReq.SubmissionDeadline,
		DepartmentID:       tenderReq.DepartmentID,
		CategoryID:         tenderReq.CategoryID,
		Documents:          tenderReq.Documents,
		CreatedAt:          now,
	}
	f.tenders[tender.ID] = tender
	return &tender, nil
}

func (f *fakeStore) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	allowed := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}
	var tenders []models.Tender
	for _, tender := range f.tenders {
		if len(statuses) > 0 && !allowed[string(tender.Status)] {
			continue
		}
		tenders = append(tenders, tender)
	}
	sort.Slice(tenders, func(i, j int) bool {
		return tenders[i].PublishDate.After(tenders[j].PublishDate)
	})
	if offset >= len(tenders) {
		return nil, nil
	}
	tenders = tenders[offset:]
	if len(tenders) > limit {
		tenders = tenders[:limit]
	}
	return tenders, nil
}

func (f *fakeStore) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tender, ok := f.tenders[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender not found")
	}
	return &tender, nil
}

func (f *fakeStore) GetTenderWithBids(ctx context.Context, tenderId string) (*models.Tender, error) {
	tender, err := f.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	tender.Bids, _ = f.GetTenderBids(ctx, tenderId)
	return tender, nil
}

func (f *fakeStore) GetPublishedTenders(ctx context.Context) ([]models.Tender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tenders []models.Tender
	for _, tender := range f.tenders {
		if tender.Status != models.DraftTender {
			tenders = append(tenders, tender)
		}
	}
	sort.Slice(tenders, func(i, j int) bool {
		return tenders[i].PublishDate.After(tenders[j].PublishDate)
	})
	return tenders, nil
}

func (f *fakeStore) PublishTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tender, ok := f.tenders[tenderId]
	if !ok {
		return nil, models.NewNotFoundError("tender not found")
	}
	if tender.Status != models.DraftTender {
		return nil, models.NewConflictError("tender is already published")
	}
	tender.Status = models.PublishedTender
	f.tenders[tenderId] = tender
	return &tender, nil
}

func (f *fakeStore) AwardBid(ctx context.Context, tenderId, bidId string) (*models.Tender, error) {
	f.mu.Lock()
	tender, ok := f.tenders[tenderId]
	if !ok {
		f.mu.Unlock()
		return nil, models.NewNotFoundError("tender not found")
	}
	if tender.Status == models.AwardedTender {
		f.mu.Unlock()
		return nil, models.NewConflictError("already awarded")
	}
	if tender.Status != models.PublishedTender {
		f.mu.Unlock()
		return nil, models.NewPreconditionError("tender is not published")
	}
	chosen, ok := f.bids[bidId]
	if !ok || chosen.TenderID != tenderId {
		f.mu.Unlock()
		return nil, models.NewValidationError("bid does not belong to this tender")
	}

	tender.Status = models.AwardedTender
	f.tenders[tenderId] = tender
	for id, bid := range f.bids {
		if bid.TenderID != tenderId {
			continue
		}
		if id == bidId {
			bid.Status = models.AwardedBid
		} else {
			bid.Status = models.DisqualifiedBid
		}
		f.bids[id] = bid
	}
	f.mu.Unlock()
	return f.GetTenderWithBids(ctx, tenderId)
}

func (f *fakeStore) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bid := range f.bids {
		if bid.TenderID == bidReq.TenderID && bid.VendorID == bidReq.VendorID {
			return nil, models.NewConflictError("bid already submitted for this tender")
		}
	}
	bid := models.Bid{
		ID:             uuid.New().String(),
		TenderID:       bidReq.TenderID,
		VendorID:       bidReq.VendorID,
		BidAmount:      bidReq.BidAmount,
		Status:         models.SubmittedBid,
		SubmissionDate: time.Now().UTC(),
	}
	f.bids[bid.ID] = bid
	return &bid, nil
}

func (f *fakeStore) GetBidByID(ctx context.Context, bidId string) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[bidId]
	if !ok {
		return nil, models.NewNotFoundError("bid not found")
	}
	return &bid, nil
}

func (f *fakeStore) GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bids []models.Bid
	for _, bid := range f.bids {
		if bid.TenderID == tenderId {
			bids = append(bids, bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].BidAmount != bids[j].BidAmount {
			return bids[i].BidAmount < bids[j].BidAmount
		}
		return bids[i].SubmissionDate.Before(bids[j].SubmissionDate)
	})
	return bids, nil
}

func (f *fakeStore) GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bids []models.Bid
	for _, bid := range f.bids {
		if bid.VendorID == vendorId {
			bids = append(bids, bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].SubmissionDate.After(bids[j].SubmissionDate)
	})
	return bids, nil
}
