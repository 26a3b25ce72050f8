package flatfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bankofdiddy/account-registry/src/internal/domain"
)

// seedBranches is the fixed branch directory. Membership checks during
// registration run against this in-memory set only; the file written at
// construction exists for external consumers and is never read back.
var seedBranches = []domain.Branch{
	{IFSCCode: "BODD0000001", BankName: "Bank of Diddy - Main Branch"},
	{IFSCCode: "BODD0000002", BankName: "Bank of Diddy - North Branch"},
	{IFSCCode: "BODD0000003", BankName: "Bank of Diddy - South Branch"},
	{IFSCCode: "BODD0000004", BankName: "Bank of Diddy - East Branch"},
	{IFSCCode: "BODD0000005", BankName: "Bank of Diddy - West Branch"},
	{IFSCCode: "HDFC0000001", BankName: "HDFC Bank - Sample Branch"},
	{IFSCCode: "ICIC0000001", BankName: "ICICI Bank - Sample Branch"},
	{IFSCCode: "SBIN0000001", BankName: "State Bank of India - Sample Branch"},
}

type BranchRepository struct {
	path     string
	branches []domain.Branch
}

// NewBranchRepository seeds the directory and overwrites its backing
// file with the seed set, two "|"-joined fields per line.
func NewBranchRepository(path string) (*BranchRepository, error) {
	var sb strings.Builder
	for _, branch := range seedBranches {
		sb.WriteString(branch.IFSCCode)
		sb.WriteString("|")
		sb.WriteString(branch.BankName)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write branch file %q: %w", path, err)
	}

	return &BranchRepository{path: path, branches: seedBranches}, nil
}

func (r *BranchRepository) GetAll(_ context.Context) ([]domain.Branch, error) {
	branches := make([]domain.Branch, len(r.branches))
	copy(branches, r.branches)
	return branches, nil
}
