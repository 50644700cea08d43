package repository

import (
	"context"
	"testing"
	"time"

	"github.com/senyabanana/etender-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenderRowColumns = []string{
	"id", "tender_number", "title", "description", "estimated_cost", "status",
	"publish_date", "submission_deadline", "department_id", "category_id", "documents", "created_at",
}

func tenderRow(id string, status models.TenderStatus) *pgxmock.Rows {
	now := time.Now().UTC()
	return pgxmock.NewRows(tenderRowColumns).AddRow(
		id, "TN-001", "road construction", "asphalt works", float64(100000), status,
		now, now.Add(14*24*time.Hour), "dept-1", "cat-1", []models.TenderDocument{}, now,
	)
}

func newTenderRepoForTest(t *testing.T) (*PostgresTenderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresTenderRepository(mock), mock
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok, "expected *models.ErrorResponse, got %T", err)
	assert.Equal(t, kind, errorResponse.Kind)
}

func TestCreateTenderDuplicateNumber(t *testing.T) {
	repo, mock := newTenderRepoForTest(t)
	mock.ExpectExec(`INSERT INTO tender`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateTender(context.Background(), models.TenderRequest{
		TenderNumber: "TN-001",
		Title:        "road construction",
		DepartmentID: "dept-1",
		CategoryID:   "cat-1",
	})
	requireKind(t, err, models.ConflictError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTenderByIDNotFound(t *testing.T) {
	repo, mock := newTenderRepoForTest(t)
	mock.ExpectQuery(`SELECT (.+) FROM tender WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetTenderByID(context.Background(), "missing")
	requireKind(t, err, models.NotFoundError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishTender(t *testing.T) {
	ctx := context.Background()
	updatePattern := `UPDATE tender SET status = \$1 WHERE id = \$2 AND status = \$3`

	t.Run("publishes draft", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectExec(updatePattern).
			WithArgs(models.PublishedTender, "t1", models.DraftTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`SELECT (.+) FROM tender WHERE id = \$1`).
			WithArgs("t1").
			WillReturnRows(tenderRow("t1", models.PublishedTender))

		tender, err := repo.PublishTender(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, models.PublishedTender, tender.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already published", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectExec(updatePattern).
			WithArgs(models.PublishedTender, "t1", models.DraftTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT (.+) FROM tender WHERE id = \$1`).
			WithArgs("t1").
			WillReturnRows(tenderRow("t1", models.PublishedTender))

		_, err := repo.PublishTender(ctx, "t1")
		requireKind(t, err, models.ConflictError)
		assert.EqualError(t, err, "tender is already published")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectExec(updatePattern).
			WithArgs(models.PublishedTender, "missing", models.DraftTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT (.+) FROM tender WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.PublishTender(ctx, "missing")
		requireKind(t, err, models.NotFoundError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAwardBidTransaction(t *testing.T) {
	ctx := context.Background()
	casPattern := `UPDATE tender SET status = \$1 WHERE id = \$2 AND status = \$3`

	t.Run("commits winner and disqualifies the rest", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		now := time.Now().UTC()

		mock.ExpectBegin()
		mock.ExpectExec(casPattern).
			WithArgs(models.AwardedTender, "t1", models.PublishedTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bid SET bid_status = \$1 WHERE id = \$2 AND tender_id = \$3`).
			WithArgs(models.AwardedBid, "b2", "t1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bid SET bid_status = \$1 WHERE tender_id = \$2 AND id <> \$3 AND bid_status <> \$1`).
			WithArgs(models.DisqualifiedBid, "t1", "b2").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()
		mock.ExpectQuery(`SELECT (.+) FROM tender WHERE id = \$1`).
			WithArgs("t1").
			WillReturnRows(tenderRow("t1", models.AwardedTender))
		mock.ExpectQuery(`SELECT (.+) FROM bid WHERE tender_id = \$1`).
			WithArgs("t1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "tender_id", "vendor_id", "bid_amount", "bid_status", "submission_date"}).
				AddRow("b2", "t1", "v2", float64(8000), models.AwardedBid, now).
				AddRow("b1", "t1", "v1", float64(10000), models.DisqualifiedBid, now))
		mock.ExpectRollback()

		tender, err := repo.AwardBid(ctx, "t1", "b2")
		require.NoError(t, err)
		assert.Equal(t, models.AwardedTender, tender.Status)
		require.Len(t, tender.Bids, 2)
		assert.Equal(t, models.AwardedBid, tender.Bids[0].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already awarded", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(casPattern).
			WithArgs(models.AwardedTender, "t1", models.PublishedTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT status FROM tender WHERE id = \$1`).
			WithArgs("t1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.AwardedTender))
		mock.ExpectRollback()

		_, err := repo.AwardBid(ctx, "t1", "b1")
		requireKind(t, err, models.ConflictError)
		assert.EqualError(t, err, "already awarded")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tender still draft", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(casPattern).
			WithArgs(models.AwardedTender, "t1", models.PublishedTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT status FROM tender WHERE id = \$1`).
			WithArgs("t1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(models.DraftTender))
		mock.ExpectRollback()

		_, err := repo.AwardBid(ctx, "t1", "b1")
		requireKind(t, err, models.PreconditionError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tender not found", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(casPattern).
			WithArgs(models.AwardedTender, "missing", models.PublishedTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT status FROM tender WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.AwardBid(ctx, "missing", "b1")
		requireKind(t, err, models.NotFoundError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	// CAS проходит, но предложение чужое - транзакция откатывается целиком,
	// статус тендера снаружи не меняется.
	t.Run("bid from another tender rolls back", func(t *testing.T) {
		repo, mock := newTenderRepoForTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(casPattern).
			WithArgs(models.AwardedTender, "t1", models.PublishedTender).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bid SET bid_status = \$1 WHERE id = \$2 AND tender_id = \$3`).
			WithArgs(models.AwardedBid, "foreign", "t1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		_, err := repo.AwardBid(ctx, "t1", "foreign")
		requireKind(t, err, models.ValidationError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
