package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/internal/domains/auditlog/model"
	gRepo "pms/shared/repository"
)

type AuditLog interface {
	Insert(ctx context.Context, log model.AuditLog) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AuditLog]
}

func New(db *postgres.Connection, otel otel.Otel) AuditLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AuditLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
