package domain

import "context"

// Branch maps an IFSC code to its branch display name.
type Branch struct {
	IFSCCode string
	BankName string
}

// BranchRepository supplies the branch directory. Registration treats it
// as read-only: membership checks only, no runtime additions.
type BranchRepository interface {
	GetAll(ctx context.Context) ([]Branch, error)
}
