package pgsql

import (
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		StockRepo:    newPgxStockRepository(dbPool),
		ItemRepo:     newPgxItemRepository(dbPool),
		BranchRepo:   newPgxBranchRepository(dbPool),
		AccountRepo:  newPgxLedgerAccountRepository(dbPool),
		RegistryRepo: newPgxRegistryRepository(dbPool),
	}
}
