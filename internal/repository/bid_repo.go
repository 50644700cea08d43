package repository

import (
	"context"
	"errors"
	"time"

	"github.com/senyabanana/etender-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error)
	GetBidByID(ctx context.Context, bidId string) (*models.Bid, error)
	GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error)
	GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB DBPool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db DBPool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// isUniqueViolation распознаёт нарушение уникального ограничения Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateBid создает новое предложение в статусе Submitted.
// Повторная подача той же парой (tender, vendor) упирается в уникальный
// индекс и возвращается как конфликт, существующее предложение не трогается.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	newBid := models.Bid{
		ID:             uuid.New().String(),
		TenderID:       bidReq.TenderID,
		VendorID:       bidReq.VendorID,
		BidAmount:      bidReq.BidAmount,
		Status:         models.SubmittedBid,
		SubmissionDate: time.Now().UTC(),
	}
	insertQuery := `INSERT INTO bid (id, tender_id, vendor_id, bid_amount, bid_status, submission_date)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.TenderID,
		newBid.VendorID,
		newBid.BidAmount,
		newBid.Status,
		newBid.SubmissionDate)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError("bid already submitted for this tender")
		}
		return nil, err
	}
	return &newBid, nil
}

// GetBidByID получает предложение по ID.
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidId string) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT id, tender_id, vendor_id, bid_amount, bid_status, submission_date
	          FROM bid WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, bidId).Scan(
		&bid.ID,
		&bid.TenderID,
		&bid.VendorID,
		&bid.BidAmount,
		&bid.Status,
		&bid.SubmissionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("bid not found")
		}
		return nil, err
	}
	return &bid, nil
}

// GetTenderBids возвращает предложения тендера по возрастанию суммы,
// при равных суммах раньше идёт более раннее предложение.
func (r *PostgresBidRepository) GetTenderBids(ctx context.Context, tenderId string) ([]models.Bid, error) {
	query := `SELECT id, tender_id, vendor_id, bid_amount, bid_status, submission_date
	          FROM bid WHERE tender_id = $1
	          ORDER BY bid_amount ASC, submission_date ASC`
	return r.queryBids(ctx, query, tenderId)
}

// GetVendorBids возвращает все предложения поставщика, новые первыми.
func (r *PostgresBidRepository) GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error) {
	query := `SELECT id, tender_id, vendor_id, bid_amount, bid_status, submission_date
	          FROM bid WHERE vendor_id = $1
	          ORDER BY submission_date DESC`
	return r.queryBids(ctx, query, vendorId)
}

func (r *PostgresBidRepository) queryBids(ctx context.Context, query string, args ...interface{}) ([]models.Bid, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
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
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
