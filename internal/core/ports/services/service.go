package services

// ServiceContainer holds all service facades for dependency injection into
// the handler layer.
type ServiceContainer struct {
	Member       MemberSvcFacade
	Ledger       ResourceLedgerSvcFacade
	Capacity     CapacitySvcFacade
	Branch       BranchSvcFacade
	Reporting    ReportingSvcFacade
	Sales        SalesSvcFacade
	Transactions TransactionSvcFacade
}
