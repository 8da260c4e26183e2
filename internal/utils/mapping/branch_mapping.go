package mapping

import (
	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/shelfdesk/shelfdesk_backend/internal/models"
)

// ToModelBranch converts a domain Branch to a model Branch.
func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:     d.BranchID,
		Name:         d.Name,
		TotalCards:   d.TotalCards,
		TotalLockers: d.TotalLockers,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch.
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:     m.BranchID,
		Name:         m.Name,
		TotalCards:   m.TotalCards,
		TotalLockers: m.TotalLockers,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
