package dto

import (
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// CreateFiscalYearRequest defines the JSON body for creating a fiscal year.
type CreateFiscalYearRequest struct {
	Name      string    `json:"name" binding:"required,max=50"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

// CreateFiscalPeriodRequest defines the JSON body for creating a fiscal period.
type CreateFiscalPeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=50"`
	Code      string    `json:"code" binding:"required,max=20"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsClosed     bool      `json:"isClosed"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	IsLocked       bool      `json:"isLocked"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its response DTO.
func ToFiscalYearResponse(y *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: y.FiscalYearID,
		Name:         y.Name,
		StartDate:    y.StartDate,
		EndDate:      y.EndDate,
		IsActive:     y.IsActive,
		IsClosed:     y.IsClosed,
	}
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its response DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		FiscalPeriodID: p.FiscalPeriodID,
		FiscalYearID:   p.FiscalYearID,
		Name:           p.Name,
		Code:           p.Code,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		IsActive:       p.IsActive,
		IsLocked:       p.IsLocked,
	}
}

// ToFiscalPeriodResponses converts a slice of domain.FiscalPeriod.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	responses := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return responses
}

// ToFiscalYearResponses converts a slice of domain.FiscalYear.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	responses := make([]FiscalYearResponse, len(years))
	for i := range years {
		responses[i] = ToFiscalYearResponse(&years[i])
	}
	return responses
}
