package services

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/repository"
	"github.com/senyabanana/etender-service/internal/utils"
)

type TenderService struct {
	Repo repository.TenderRepository
	db   repository.DBPool
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(repo repository.TenderRepository, db repository.DBPool) *TenderService {
	return &TenderService{Repo: repo, db: db}
}

// CreateTender создает новый тендер в статусе Draft.
// Дедлайн подачи должен быть строго позже даты публикации, которая
// фиксируется в момент создания.
func (s *TenderService) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if tenderReq.TenderNumber == "" || tenderReq.Title == "" || tenderReq.DepartmentID == "" || tenderReq.CategoryID == "" {
		return nil, models.NewValidationError("missing required fields")
	}
	if tenderReq.EstimatedCost < 0 {
		return nil, models.NewValidationError("estimated cost must not be negative")
	}
	if !tenderReq.SubmissionDeadline.After(time.Now().UTC()) {
		return nil, models.NewValidationError("submission deadline must be after publish date")
	}

	deptExists, err := utils.CheckDepartmentExists(ctx, s.db, tenderReq.DepartmentID)
	if err != nil {
		return nil, models.NewInternalError("internal server error")
	}
	if !deptExists {
		return nil, models.NewValidationError("department does not exist")
	}

	categoryExists, err := utils.CheckCategoryExists(ctx, s.db, tenderReq.CategoryID)
	if err != nil {
		return nil, models.NewInternalError("internal server error")
	}
	if !categoryExists {
		return nil, models.NewValidationError("tender category does not exist")
	}

	return s.Repo.CreateTender(ctx, tenderReq)
}

// FetchTenders получает список тендеров с фильтром по статусу.
func (s *TenderService) FetchTenders(ctx context.Context, limitStr, offsetStr string, statuses []string) ([]models.Tender, error) {
	allowedStatuses := map[models.TenderStatus]bool{
		models.DraftTender:     true,
		models.PublishedTender: true,
		models.AwardedTender:   true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.TenderStatus(status)] {
			return nil, models.NewValidationError(fmt.Sprintf("unsupported status: %s", status))
		}
	}

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.Repo.GetTenders(ctx, limit, offset, statuses)
}

// GetTender получает тендер вместе с его предложениями.
func (s *TenderService) GetTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	if tenderId == "" {
		return nil, models.NewValidationError("missing required parameter: tenderId")
	}
	return s.Repo.GetTenderWithBids(ctx, tenderId)
}

// PublishTender публикует тендер. Переход разрешён только из Draft;
// остаток времени до дедлайна не проверяется, поэтому тендер можно
// опубликовать и после дедлайна - он сразу окажется в фазе Closed.
func (s *TenderService) PublishTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	if tenderId == "" {
		return nil, models.NewValidationError("missing required parameter: tenderId")
	}
	return s.Repo.PublishTender(ctx, tenderId)
}

// GetTenderPhase возвращает вычисленную фазу тендера и остаток времени.
func (s *TenderService) GetTenderPhase(ctx context.Context, tenderId string) (*models.TenderPhaseResponse, error) {
	if tenderId == "" {
		return nil, models.NewValidationError("missing required parameter: tenderId")
	}
	tender, err := s.Repo.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &models.TenderPhaseResponse{
		TenderID:      tender.ID,
		Phase:         ResolvePhase(tender, now),
		TimeRemaining: CalcTimeRemaining(tender, now),
	}, nil
}
