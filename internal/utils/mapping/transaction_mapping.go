package mapping

import (
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		BranchID:      d.BranchID,
		MemberID:      d.MemberID,
		TxnType:       string(d.Type),
		Amount:        d.Amount,
		PaymentMode:   string(d.PaymentMode),
		CashAmount:    d.CashAmount,
		UpiAmount:     d.UpiAmount,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		BranchID:      m.BranchID,
		MemberID:      m.MemberID,
		Type:          domain.TransactionType(m.TxnType),
		Amount:        m.Amount,
		PaymentMode:   domain.PaymentMode(m.PaymentMode),
		CashAmount:    m.CashAmount,
		UpiAmount:     m.UpiAmount,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
