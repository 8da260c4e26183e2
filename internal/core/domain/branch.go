package domain

// Branch is a physical library branch with fixed card and locker stock.
// Stock counts are mutable only through an explicit capacity edit, never
// implicitly by issue or return.
type Branch struct {
	BranchID     string `json:"branchID"` // Primary Key (UUID)
	Name         string `json:"name"`
	TotalCards   int    `json:"totalCards"`
	TotalLockers int    `json:"totalLockers"`
	AuditFields
}
