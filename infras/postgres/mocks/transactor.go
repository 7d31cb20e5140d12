package mocks

import (
	"context"
	"pms/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
	commitErr error
}

// WithinTx implements postgres.Transactor. fn receives a nil transaction.
func (t *transactorImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	if err := fn(ctx, nil); err != nil {
		return err
	}

	return t.commitErr
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}

// NewFailingTransactor runs fn and then reports commitErr as if the commit had failed.
func NewFailingTransactor(commitErr error) postgres.Transactor {
	return &transactorImpl{commitErr: commitErr}
}
