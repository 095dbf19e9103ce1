package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loan-manager/domain"
	"loan-manager/service"
)

const (
	detailNotFound = "Loan not found"
	detailDeleted  = "Loan deleted successfully"
	detailInternal = "Internal Server Error"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req loanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	loan, err := h.service.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	loan, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// FilterLoans handles ?loan_type=&max_interest_rate=. Both are optional and
// an empty loan_type is ignored.
func (h *LoanHandler) FilterLoans(c *gin.Context) {
	var filter domain.LoanFilter

	if loanType := c.Query("loan_type"); loanType != "" {
		filter.LoanType = &loanType
	}
	if raw := c.Query("max_interest_rate"); raw != "" {
		maxRate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "max_interest_rate must be a number"})
			return
		}
		filter.MaxInterestRate = &maxRate
	}

	loans, err := h.service.Filter(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": detailDeleted})
}

// CalculateLoan previews the payment breakdown without storing a loan.
func (h *LoanHandler) CalculateLoan(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	result, err := h.service.Preview(req.toDomain())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LoanHandler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		log.Printf("[%s] health check failed: %v", requestID(c), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func loanIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "loan_id must be an integer"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
	case errors.Is(err, domain.ErrInvalidLoan):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	default:
		log.Printf("[%s] %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": detailInternal})
	}
}
