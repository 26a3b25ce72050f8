package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/commons"
)

type BranchService interface {
	GetBranches(ctx context.Context) (commons.Response[[]models.BranchResponse], error)
}

type BranchController struct {
	service BranchService
}

func NewBranchController(service BranchService) *BranchController {
	return &BranchController{service: service}
}

func (c *BranchController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.HandlerFunc(c.getBranches)
	if authMiddleware != nil {
		handler = authMiddleware(handler).ServeHTTP
	}
	mux.Handle("/branches", http.HandlerFunc(handler))
}

func (c *BranchController) getBranches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.BranchResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.service.GetBranches(r.Context())
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
