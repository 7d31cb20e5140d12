package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/internal/domains/booking/model"
	gDto "pms/shared/dto"
	gRepo "pms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	// MarkPostedTx reports false when the booking was already posted or cancelled concurrently.
	MarkPostedTx(ctx context.Context, sqltx *sqlx.Tx, posting model.Posting) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// The night audit is the only writer of the posting columns.
var markPostedQuery = fmt.Sprintf(`UPDATE %s
SET posted_date = :posted_date, posted_amount = :posted_amount, night_audit_run_id = :night_audit_run_id,
	modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND posted_date IS NULL AND status != '%s'`, model.TableName, model.StatusCancelled)

func (repo *repositoryImpl) MarkPostedTx(ctx context.Context, sqltx *sqlx.Tx, posting model.Posting) (bool, error) {
	affected, err := repo.ExecTx(ctx, sqltx, "MarkPostedTx", markPostedQuery, posting)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking %s posted: %w", posting.BookingID, err)
	}

	return affected == 1, nil
}
