package dto

import (
	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=20"`
	Name            string             `json:"name" binding:"required,max=100"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,accounttype"`
	ParentAccountID string             `json:"parentAccountID" binding:"omitempty,uuid"`
	DisplayOrder    int                `json:"displayOrder" binding:"omitempty,gte=0"`
	Description     string             `json:"description" binding:"max=255"`
}

// UpdateAccountRequest defines the JSON body for updating mutable account
// fields. Nil fields are left untouched.
type UpdateAccountRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=255"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,gte=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	DisplayOrder    int                `json:"displayOrder"`
	Description     string             `json:"description,omitempty"`
	IsActive        bool               `json:"isActive"`
	DebitNormal     bool               `json:"debitNormal"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		DisplayOrder:    a.DisplayOrder,
		Description:     a.Description,
		IsActive:        a.IsActive,
		DebitNormal:     a.IsDebitNormal(),
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
