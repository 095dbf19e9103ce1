package repository

import (
	"context"

	"loan-manager/domain"
)

// LoanStore persists loan records. Implementations must hand out ids from
// NextID atomically so concurrent creates never share an id.
type LoanStore interface {
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, loan domain.Loan) error
	FindAll(ctx context.Context) ([]domain.Loan, error)
	FindByID(ctx context.Context, id int64) (domain.Loan, error)
	Find(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
