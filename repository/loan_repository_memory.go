package repository

import (
	"context"
	"sync"

	"loan-manager/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanStore.
type LoanRepositoryMemory struct {
	mu   sync.RWMutex
	seq  int64
	data []domain.Loan
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []domain.Loan{},
	}
}

// NextID returns the next value of the loan sequence.
func (r *LoanRepositoryMemory) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

// Insert stores the loan in memory.
func (r *LoanRepositoryMemory) Insert(ctx context.Context, loan domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, loan)
	return nil
}

func (r *LoanRepositoryMemory) FindAll(ctx context.Context) ([]domain.Loan, error) {
	return r.Find(ctx, domain.LoanFilter{})
}

func (r *LoanRepositoryMemory) FindByID(ctx context.Context, id int64) (domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.data {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Loan{}, domain.ErrLoanNotFound
}

func (r *LoanRepositoryMemory) Find(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Loan, 0, len(r.data))
	for _, l := range r.data {
		if filter.Matches(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// DeleteByID removes the first loan with the given id and reports how many
// records were removed.
func (r *LoanRepositoryMemory) DeleteByID(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.data {
		if l.ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *LoanRepositoryMemory) Ping(ctx context.Context) error { return nil }

func (r *LoanRepositoryMemory) Close(ctx context.Context) error { return nil }
