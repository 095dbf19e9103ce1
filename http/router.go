package http

import (
	"github.com/gin-gonic/gin"

	"loan-manager/service"
)

// Deps is everything NewRouter needs to build the HTTP entry point.
type Deps struct {
	Service     *service.LoanService
	CORSOrigins []string
	// RateLimiter guards /loans/calculate. Nil disables limiting.
	RateLimiter *RateLimiter
	// Quiet skips the access log.
	Quiet bool
}

// NewRouter builds the gin engine with its middleware chain and loan routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(RequestIDMiddleware())
	if !deps.Quiet {
		r.Use(AccessLogMiddleware())
	}
	r.Use(RecoveryMiddleware())

	r.Use(CORSMiddleware(deps.CORSOrigins))

	h := NewLoanHandler(deps.Service)

	r.GET("/healthz", h.Health)

	loans := r.Group("/loans")
	{
		loans.POST("/", h.CreateLoan)
		loans.GET("/", h.ListLoans)
		loans.GET("/filter/", h.FilterLoans)
		loans.GET("/:loan_id", h.GetLoan)
		loans.DELETE("/:loan_id", h.DeleteLoan)

		calculate := []gin.HandlerFunc{h.CalculateLoan}
		if deps.RateLimiter != nil {
			calculate = append([]gin.HandlerFunc{RateLimitMiddleware(deps.RateLimiter)}, calculate...)
		}
		loans.POST("/calculate", calculate...)
	}

	return r
}
