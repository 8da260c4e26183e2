package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories over a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:      newPgxMemberRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BranchRepo:      newPgxBranchRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
