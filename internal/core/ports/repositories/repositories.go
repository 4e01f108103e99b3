package repositories

// RepositoryProvider aggregates all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	InvoiceRepo  InvoiceRepositoryFacade
	StockRepo    StockDocumentReader
	ItemRepo     ItemRepositoryFacade
	BranchRepo   BranchRepositoryFacade
	AccountRepo  LedgerAccountRepositoryFacade
	RegistryRepo RegistryRepositoryFacade
}
