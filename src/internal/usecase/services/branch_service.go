package services

import (
	"context"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/commons"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/logger"
)

type BranchService struct {
	branchRepo domain.BranchRepository
}

func NewBranchService(branchRepo domain.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

func (s *BranchService) GetBranches(ctx context.Context) (commons.Response[[]models.BranchResponse], error) {
	logger.Info("branch service get branches request", nil)

	branches, err := s.branchRepo.GetAll(ctx)
	if err != nil {
		logger.Error("branch service get branches failed", err, nil)
		return commons.ErrorResponse[[]models.BranchResponse]("failed to fetch branches", "Unable to fetch branches right now"), err
	}

	resp := make([]models.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		resp = append(resp, models.BranchResponse{
			IFSCCode: branch.IFSCCode,
			BankName: branch.BankName,
		})
	}

	logger.Info("branch service get branches success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("branches fetched successfully", resp), nil
}
