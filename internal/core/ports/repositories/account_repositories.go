package repositories

import (
	"context"
	"time"

	"github.com/erpcore/sales_settlement_app/internal/core/domain"
)

// LedgerAccountReader defines read operations for the chart of accounts.
type LedgerAccountReader interface {
	FindAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error)

	// ListChildCodes returns the codes of all direct and indirect children of
	// the given parent code (every code with the parent code as prefix). The
	// sub-account allocator filters these down to direct numeric children.
	ListChildCodes(ctx context.Context, parentCode string) ([]string, error)
}

// LedgerAccountWriter defines write operations for the chart of accounts.
type LedgerAccountWriter interface {
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// MarkHasSubAccounts flags the parent account once its first sub-account
	// is allocated.
	MarkHasSubAccounts(ctx context.Context, code string, userID string, now time.Time) error

	// DeleteAccount removes an account. Used both by the compensating path
	// when a registry-entity write fails and by registry-entity deletion.
	DeleteAccount(ctx context.Context, accountID string) error
}

// LedgerAccountRepositoryFacade combines all chart-of-accounts interfaces.
type LedgerAccountRepositoryFacade interface {
	LedgerAccountReader
	LedgerAccountWriter
}
