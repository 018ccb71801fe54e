package services

import (
	"context"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// AccountService manages the chart of accounts for a tenant.
type AccountService interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}
