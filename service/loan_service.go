package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"loan-manager/domain"
	"loan-manager/repository"
)

type LoanService struct {
	store repository.LoanStore
}

// NewLoanService creates a new LoanService backed by the given store.
func NewLoanService(store repository.LoanStore) *LoanService {
	return &LoanService{store: store}
}

// Create assigns the next id, computes the monthly payment and persists the loan.
func (s *LoanService) Create(ctx context.Context, input domain.LoanCreate) (domain.Loan, error) {
	payment := MonthlyPayment(input.Amount, input.InterestRate, input.Term)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return domain.Loan{}, fmt.Errorf("%w: no finite payment for term %d", domain.ErrInvalidLoan, input.Term)
	}

	id, err := s.store.NextID(ctx)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("assign loan id: %w", err)
	}

	loan := domain.Loan{
		ID:             id,
		Amount:         input.Amount,
		InterestRate:   input.InterestRate,
		Term:           input.Term,
		LoanType:       input.LoanType,
		MonthlyPayment: payment,
	}
	if err := s.store.Insert(ctx, loan); err != nil {
		return domain.Loan{}, fmt.Errorf("save loan %d: %w", id, err)
	}
	return loan, nil
}

// List returns every stored loan in store order.
func (s *LoanService) List(ctx context.Context) ([]domain.Loan, error) {
	return s.store.FindAll(ctx)
}

func (s *LoanService) Get(ctx context.Context, id int64) (domain.Loan, error) {
	return s.store.FindByID(ctx, id)
}

func (s *LoanService) Filter(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	return s.store.Find(ctx, filter)
}

// Delete removes the loan with the given id, or returns domain.ErrLoanNotFound.
func (s *LoanService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete loan %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

// Preview calculates the payment breakdown without storing anything.
func (s *LoanService) Preview(input domain.LoanCreate) (domain.PaymentSummary, error) {
	if input.Amount <= 0 {
		return domain.PaymentSummary{}, errors.New("invalid amount")
	}
	if input.Amount > MaxLoanAmount {
		return domain.PaymentSummary{}, fmt.Errorf("amount exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return domain.PaymentSummary{}, errors.New("invalid interest rate")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.PaymentSummary{}, fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.Term < MinTermMonths {
		return domain.PaymentSummary{}, errors.New("invalid term")
	}
	if input.Term > MaxTermMonths {
		return domain.PaymentSummary{}, fmt.Errorf("term exceeds the maximum of %d months", MaxTermMonths)
	}

	return Summarize(input.Amount, input.InterestRate, input.Term), nil
}

// Ping reports whether the backing store is reachable.
func (s *LoanService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
