package services

import (
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/lock"
)

// NewServiceContainer wires every service facade with its dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, clk clock.Clock, locker lock.Locker) *portssvc.ServiceContainer {
	ledger := NewResourceLedgerService(repos.MemberRepo, clk)
	capacity := NewCapacityService(repos.BranchRepo, repos.MemberRepo, clk)

	return &portssvc.ServiceContainer{
		Member:       NewMembershipService(repos.MemberRepo, repos.BranchRepo, ledger, capacity, clk, locker),
		Ledger:       ledger,
		Capacity:     capacity,
		Branch:       NewBranchService(repos.BranchRepo, clk),
		Reporting:    NewReportingService(repos.ReportingRepo, repos.BranchRepo),
		Sales:        NewSalesService(repos.TransactionRepo, repos.BranchRepo, clk),
		Transactions: NewTransactionService(repos.TransactionRepo),
	}
}
