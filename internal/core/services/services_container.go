package services

import (
	portsrepo "github.com/erpcore/sales_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/erpcore/sales_settlement_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Stock first: the invoice service gates lines through it.
	container.Stock = NewStockService(repos.StockRepo, repos.ItemRepo)

	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		WithBranchRepository(repos.BranchRepo),
		WithStockService(container.Stock),
	)

	container.Registry = NewRegistryService(repos.RegistryRepo, repos.AccountRepo)
	container.Item = NewItemService(repos.ItemRepo)
	container.Branch = NewBranchService(repos.BranchRepo)

	return container
}
