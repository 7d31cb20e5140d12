package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/internal/domains/nightaudit/model"
	"pms/shared/constant"
	gDto "pms/shared/dto"
	"pms/shared/logger"
	gRepo "pms/shared/repository"
	"pms/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type NightAudit interface {
	Insert(ctx context.Context, run model.NightAuditRun) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, run model.NightAuditRun) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.NightAuditRun, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.NightAuditRun, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.NightAuditRun, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// LockAuditDateTx serialises runs of the same date until sqltx ends.
	LockAuditDateTx(ctx context.Context, sqltx *sqlx.Tx, auditDate time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.NightAuditRun]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) NightAudit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.NightAuditRun](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

const lockAuditDateQuery = "SELECT pg_advisory_xact_lock(hashtext('night_audit:' || $1))"

func (repo *repositoryImpl) LockAuditDateTx(ctx context.Context, sqltx *sqlx.Tx, auditDate time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".nightaudit.LockAuditDateTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockAuditDateQuery)

	if _, err := sqltx.ExecContext(ctx, lockAuditDateQuery, timezone.FormatDate(auditDate)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock audit date: %w", err)
	}

	return nil
}
