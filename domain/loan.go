package domain

import "errors"

var (
	// ErrLoanNotFound is returned when no loan matches the requested id.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrInvalidLoan is returned when a loan's inputs yield no finite payment.
	ErrInvalidLoan = errors.New("invalid loan")
)

// LoanCreate holds the client-supplied fields of a loan.
type LoanCreate struct {
	Amount       float64
	InterestRate float64
	Term         int
	LoanType     string
}

// Loan is a persisted loan record. MonthlyPayment is computed once on
// creation and never recomputed on read.
type Loan struct {
	ID             int64   `json:"id" bson:"id"`
	Amount         float64 `json:"amount" bson:"amount"`
	InterestRate   float64 `json:"interest_rate" bson:"interest_rate"`
	Term           int     `json:"term" bson:"term"`
	LoanType       string  `json:"loan_type" bson:"loan_type"`
	MonthlyPayment float64 `json:"monthly_payment" bson:"monthly_payment"`
}

// LoanFilter narrows a loan query. Nil fields are ignored; set fields are
// combined with AND.
type LoanFilter struct {
	LoanType        *string
	MaxInterestRate *float64
}

// Matches reports whether l satisfies every set field of f.
func (f LoanFilter) Matches(l Loan) bool {
	if f.LoanType != nil && l.LoanType != *f.LoanType {
		return false
	}
	if f.MaxInterestRate != nil && l.InterestRate > *f.MaxInterestRate {
		return false
	}
	return true
}

// PaymentSummary is the rounded breakdown returned by a payment preview.
type PaymentSummary struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}
