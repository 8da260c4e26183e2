package repositories

import (
	"context"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// ListTransactionsByBranch retrieves a branch's ledger entries, newest
	// first, with limit/offset paging.
	ListTransactionsByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Transaction, error)

	// ListTransactionsByMember retrieves a member's ledger entries, newest first.
	ListTransactionsByMember(ctx context.Context, memberID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries. Entries are
// immutable once written; the only deletion paths are member removal and the
// administrative plan reset.
type TransactionWriter interface {
	// SaveTransactions inserts a batch of ledger entries with all-or-nothing
	// semantics.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// DeleteTransactionsForMembers deletes entries of the given types for the
	// given members.
	DeleteTransactionsForMembers(ctx context.Context, memberIDs []string, types []domain.TransactionType) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
