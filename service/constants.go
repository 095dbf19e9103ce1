package service

// Limits enforced by the payment preview. Stored loans are only checked for
// positivity.
const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per year
	MaxTermMonths   = 600    // 50 years
	MinTermMonths   = 1

	monthsPerYear = 12
)
