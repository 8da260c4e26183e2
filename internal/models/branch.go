package models

// Branch mirrors the branches table row.
type Branch struct {
	BranchID     string
	Name         string
	TotalCards   int
	TotalLockers int
	AuditFields
}
