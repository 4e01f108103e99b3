package domain

// Branch is a sales branch. Older records carry the branch code in Number
// rather than Code, so resolution goes through DisplayCode.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Number   string `json:"number"` // legacy synonym for Code
	AuditFields
}

// DisplayCode resolves the code used in invoice numbers: the first non-empty
// of Code and Number, defaulting to "1". The default also covers an unknown
// branch; that is an intentional fallback, not an error.
func (b *Branch) DisplayCode() string {
	if b == nil {
		return "1"
	}
	if b.Code != "" {
		return b.Code
	}
	if b.Number != "" {
		return b.Number
	}
	return "1"
}
