package http

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"loan-manager/domain"
)

// flexFloat accepts a JSON number or a string holding one.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	v, err := parseJSONNumber(b)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts a JSON integer, an integral float, or a string holding one.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	v, err := parseJSONNumber(b)
	if err != nil {
		return err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return errors.New("value is not a valid integer")
	}
	*n = flexInt(v)
	return nil
}

func parseJSONNumber(b []byte) (float64, error) {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("value is not a valid number")
	}
	return v, nil
}

type loanCreateRequest struct {
	Amount       *flexFloat `json:"amount" binding:"required,gt=0"`
	InterestRate *flexFloat `json:"interest_rate" binding:"required,gte=0"`
	Term         *flexInt   `json:"term" binding:"required,gt=0"`
	LoanType     *string    `json:"loan_type" binding:"required"`
}

func (r loanCreateRequest) toDomain() domain.LoanCreate {
	return domain.LoanCreate{
		Amount:       float64(*r.Amount),
		InterestRate: float64(*r.InterestRate),
		Term:         int(*r.Term),
		LoanType:     *r.LoanType,
	}
}

// calculateRequest leaves range checks to LoanService.Preview.
type calculateRequest struct {
	Amount       flexFloat `json:"amount"`
	InterestRate flexFloat `json:"interest_rate"`
	Term         flexInt   `json:"term"`
}

func (r calculateRequest) toDomain() domain.LoanCreate {
	return domain.LoanCreate{
		Amount:       float64(r.Amount),
		InterestRate: float64(r.InterestRate),
		Term:         int(r.Term),
	}
}
