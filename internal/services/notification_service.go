package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/repository"
)

const (
	newTenderWindow     = 24 * time.Hour
	deadlineAlertWindow = 3 * 24 * time.Hour
)

type NotificationService struct {
	Tenders repository.TenderRepository
	Bids    repository.BidRepository
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(tenders repository.TenderRepository, bids repository.BidRepository) *NotificationService {
	return &NotificationService{Tenders: tenders, Bids: bids}
}

// DeriveNotifications выводит уведомления для получателя из текущего
// снимка тендеров и предложений. Состояние нигде не меняется и не
// сохраняется: повторный прогон по тому же снимку даёт тот же набор
// с теми же детерминированными ID, новые события первыми.
func (s *NotificationService) DeriveNotifications(ctx context.Context, actorType models.ActorType, actorId string) ([]models.Notification, error) {
	if actorId == "" {
		return nil, models.NewValidationError("missing required parameter: actorId")
	}
	if actorType != models.VendorActor && actorType != models.DepartmentActor {
		return nil, models.NewValidationError("actor type must be 'Vendor' or 'Department'")
	}

	tenders, err := s.Tenders.GetPublishedTenders(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if actorType == models.DepartmentActor {
		return deriveDepartmentNotifications(tenders, actorId, now), nil
	}

	vendorBids, err := s.Bids.GetVendorBids(ctx, actorId)
	if err != nil {
		return nil, err
	}
	return deriveVendorNotifications(tenders, vendorBids, now), nil
}

func deriveVendorNotifications(tenders []models.Tender, vendorBids []models.Bid, now time.Time) []models.Notification {
	bidByTender := make(map[string]models.Bid, len(vendorBids))
	for _, bid := range vendorBids {
		bidByTender[bid.TenderID] = bid
	}

	var notifications []models.Notification
	for _, tender := range tenders {
		phase := ResolvePhase(&tender, now)
		_, hasBid := bidByTender[tender.ID]

		if now.Sub(tender.PublishDate) <= newTenderWindow {
			notifications = append(notifications, models.Notification{
				ID:        fmt.Sprintf("%s-%s", models.NewTenderRule, tender.ID),
				Rule:      models.NewTenderRule,
				TenderID:  tender.ID,
				Message:   fmt.Sprintf("new tender published: %s", tender.Title),
				Priority:  models.MediumPriority,
				CreatedAt: tender.PublishDate,
			})
		}

		remaining := tender.SubmissionDeadline.Sub(now)
		if phase == models.OpenPhase && !hasBid && remaining > 0 && remaining <= deadlineAlertWindow {
			notifications = append(notifications, models.Notification{
				ID:        fmt.Sprintf("%s-%s", models.DeadlineApproachingRule, tender.ID),
				Rule:      models.DeadlineApproachingRule,
				TenderID:  tender.ID,
				Message:   fmt.Sprintf("submission deadline approaching for tender %s", tender.TenderNumber),
				Priority:  models.HighPriority,
				CreatedAt: tender.SubmissionDeadline.Add(-deadlineAlertWindow),
			})
		}

		if (phase == models.ClosedPhase || phase == models.AwardedPhase) && !hasBid {
			notifications = append(notifications, models.Notification{
				ID:        fmt.Sprintf("%s-%s", models.BiddingClosedRule, tender.ID),
				Rule:      models.BiddingClosedRule,
				TenderID:  tender.ID,
				Message:   fmt.Sprintf("bidding closed for tender %s, no bid submitted", tender.TenderNumber),
				Priority:  models.LowPriority,
				IsRead:    true,
				CreatedAt: tender.SubmissionDeadline,
			})
		}
	}

	for _, bid := range vendorBids {
		notification := models.Notification{
			ID:        fmt.Sprintf("%s-%s", models.BidOutcomeRule, bid.ID),
			Rule:      models.BidOutcomeRule,
			TenderID:  bid.TenderID,
			CreatedAt: bid.SubmissionDate,
		}
		switch bid.Status {
		case models.AwardedBid:
			notification.Message = "congratulations, your bid won the tender"
			notification.Priority = models.HighPriority
		case models.DisqualifiedBid:
			notification.Message = "your bid was not selected"
			notification.Priority = models.LowPriority
		default:
			notification.Message = "your bid is awaiting a decision"
			notification.Priority = models.MediumPriority
		}
		notifications = append(notifications, notification)
	}

	return dedupeAndSort(notifications)
}

func deriveDepartmentNotifications(tenders []models.Tender, departmentId string, now time.Time) []models.Notification {
	var notifications []models.Notification
	for _, tender := range tenders {
		if tender.DepartmentID != departmentId {
			continue
		}
		if now.Sub(tender.PublishDate) <= newTenderWindow {
			notifications = append(notifications, models.Notification{
				ID:        fmt.Sprintf("%s-%s", models.NewTenderRule, tender.ID),
				Rule:      models.NewTenderRule,
				TenderID:  tender.ID,
				Message:   fmt.Sprintf("tender published: %s", tender.Title),
				Priority:  models.MediumPriority,
				CreatedAt: tender.PublishDate,
			})
		}
	}
	return dedupeAndSort(notifications)
}

// dedupeAndSort убирает повторы по детерминированному ID и упорядочивает
// уведомления по убыванию времени.
func dedupeAndSort(notifications []models.Notification) []models.Notification {
	seen := make(map[string]bool, len(notifications))
	result := notifications[:0]
	for _, notification := range notifications {
		if seen[notification.ID] {
			continue
		}
		seen[notification.ID] = true
		result = append(result, notification)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
