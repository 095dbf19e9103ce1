package service

import (
	"math"

	"loan-manager/domain"
)

// roundTo2Decimals rounds value to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// MonthlyPayment returns the fixed installment that repays amount over term
// monthly periods at annualRatePercent. A zero rate divides the principal
// evenly. Inputs are not validated: a zero term yields Inf or NaN.
func MonthlyPayment(amount, annualRatePercent float64, term int) float64 {
	n := float64(term)
	if annualRatePercent == 0 {
		return amount / n
	}

	r := annualRatePercent / 100 / monthsPerYear
	growth := math.Pow(1+r, n)
	return amount * (r * growth) / (growth - 1)
}

// Summarize returns the rounded monthly, total and interest amounts for a loan.
func Summarize(amount, annualRatePercent float64, term int) domain.PaymentSummary {
	payment := MonthlyPayment(amount, annualRatePercent, term)
	total := payment * float64(term)

	return domain.PaymentSummary{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - amount),
	}
}
