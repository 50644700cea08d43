package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/etender-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// TenderRepository - интерфейс для работы с тендерами.
type TenderRepository interface {
	CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error)
	GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error)
	GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error)
	GetTenderWithBids(ctx context.Context, tenderId string) (*models.Tender, error)
	GetPublishedTenders(ctx context.Context) ([]models.Tender, error)
	PublishTender(ctx context.Context, tenderId string) (*models.Tender, error)
	AwardBid(ctx context.Context, tenderId, bidId string) (*models.Tender, error)
}

// PostgresTenderRepository - реализация TenderRepository для базы данных.
type PostgresTenderRepository struct {
	DB DBPool
}

// NewPostgresTenderRepository создаёт новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db DBPool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

const tenderColumns = `id, tender_number, title, description, estimated_cost, status, publish_date, submission_deadline, department_id, category_id, documents, created_at`

func scanTender(row pgx.Row) (*models.Tender, error) {
	var tender models.Tender
	err := row.Scan(
		&tender.ID,
		&tender.TenderNumber,
		&tender.Title,
		&tender.Description,
		&tender.EstimatedCost,
		&tender.Status,
		&tender.PublishDate,
		&tender.SubmissionDeadline,
		&tender.DepartmentID,
		&tender.CategoryID,
		&tender.Documents,
		&tender.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

// CreateTender создает новый тендер в статусе Draft.
func (r *PostgresTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	now := time.Now().UTC()
	documents := tenderReq.Documents
	if documents == nil {
		documents = []models.TenderDocument{}
	}
	newTender := models.Tender{
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
		Documents:          documents,
		CreatedAt:          now,
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO tender (id, tender_number, title, description, estimated_cost, status, publish_date, submission_deadline, department_id, category_id, documents, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
   `,
		newTender.ID,
		newTender.TenderNumber,
		newTender.Title,
		newTender.Description,
		newTender.EstimatedCost,
		newTender.Status,
		newTender.PublishDate,
		newTender.SubmissionDeadline,
		newTender.DepartmentID,
		newTender.CategoryID,
		newTender.Documents,
		newTender.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError("tender number already exists")
		}
		return nil, fmt.Errorf("failed to insert tender: %w", err)
	}
	return &newTender, nil
}

// GetTenders возвращает список тендеров с опциональным фильтром по статусу.
func (r *PostgresTenderRepository) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY publish_date DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}
	return tenders, rows.Err()
}

// GetTenderByID получает тендер по ID.
func (r *PostgresTenderRepository) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender WHERE id = $1`
	tender, err := scanTender(r.DB.QueryRow(ctx, query, tenderId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("tender not found")
		}
		return nil, err
	}
	return tender, nil
}

// GetTenderWithBids получает тендер вместе с его предложениями.
// Предложения упорядочены по сумме, при равенстве - по дате подачи.
func (r *PostgresTenderRepository) GetTenderWithBids(ctx context.Context, tenderId string) (*models.Tender, error) {
	tender, err := r.GetTenderByID(ctx, tenderId)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, tender_id, vendor_id, bid_amount, bid_status, submission_date
		FROM bid WHERE tender_id = $1
		ORDER BY bid_amount ASC, submission_date ASC`, tenderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.TenderID,
			&bid.VendorID,
			&bid.BidAmount,
			&bid.Status,
			&bid.SubmissionDate); err != nil {
			return nil, err
		}
		tender.Bids = append(tender.Bids, bid)
	}
	return tender, rows.Err()
}

// GetPublishedTenders возвращает все опубликованные и завершённые тендеры,
// новые первыми. Используется движком уведомлений.
func (r *PostgresTenderRepository) GetPublishedTenders(ctx context.Context) ([]models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender WHERE status <> $1 ORDER BY publish_date DESC`
	rows, err := r.DB.Query(ctx, query, models.DraftTender)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}
	return tenders, rows.Err()
}

// PublishTender переводит тендер Draft -> Published.
// Условие по статусу входит в сам UPDATE, поэтому повторная публикация
// и публикация завершённого тендера отсекаются атомарно.
func (r *PostgresTenderRepository) PublishTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	updateQuery := `UPDATE tender SET status = $1 WHERE id = $2 AND status = $3`
	tag, err := r.DB.Exec(ctx, updateQuery, models.PublishedTender, tenderId, models.DraftTender)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		current, err := r.GetTenderByID(ctx, tenderId)
		if err != nil {
			return nil, err
		}
		return nil, models.NewConflictError(fmt.Sprintf("tender is already %s", strings.ToLower(string(current.Status))))
	}
	return r.GetTenderByID(ctx, tenderId)
}

// AwardBid выполняет атомарный выбор победителя в одной транзакции.
// Точка фиксации - compare-and-swap статуса тендера Published -> Awarded;
// статусы предложений меняются только после успешного CAS, поэтому из двух
// конкурирующих вызовов ровно один фиксирует результат, а второй получает
// конфликт. Частично применённое состояние снаружи не наблюдаемо.
func (r *PostgresTenderRepository) AwardBid(ctx context.Context, tenderId, bidId string) (*models.Tender, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE tender SET status = $1 WHERE id = $2 AND status = $3`,
		models.AwardedTender, tenderId, models.PublishedTender)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var status models.TenderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM tender WHERE id = $1`, tenderId).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.NewNotFoundError("tender not found")
			}
			return nil, err
		}
		if status == models.AwardedTender {
			return nil, models.NewConflictError("already awarded")
		}
		return nil, models.NewPreconditionError("tender is not published")
	}

	tag, err = tx.Exec(ctx, `UPDATE bid SET bid_status = $1 WHERE id = $2 AND tender_id = $3`,
		models.AwardedBid, bidId, tenderId)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewValidationError("bid does not belong to this tender")
	}

	_, err = tx.Exec(ctx, `UPDATE bid SET bid_status = $1 WHERE tender_id = $2 AND id <> $3 AND bid_status <> $1`,
		models.DisqualifiedBid, tenderId, bidId)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetTenderWithBids(ctx, tenderId)
}
