package services

// ServiceContainer holds instances of all the application services. Handlers
// receive their dependencies through it.
type ServiceContainer struct {
	Invoice  InvoiceSvcFacade
	Stock    StockSvcFacade
	Registry RegistrySvcFacade
	Item     ItemSvcFacade
	Branch   BranchSvcFacade
}
