package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/commons"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
)

type RegistryService interface {
	Register(ctx context.Context, req models.SignupRequest) (domain.RegistrationResult, error)
	Authenticate(ctx context.Context, username, password string) domain.LoginResult
	Lookup(ctx context.Context, username string) (domain.UserRecord, error)
	BankName(ifscCode string) string
}

type RegistryController struct {
	service RegistryService
}

func NewRegistryController(service RegistryService) *RegistryController {
	return &RegistryController{service: service}
}

func (c *RegistryController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	signupHandler := http.HandlerFunc(c.signup)
	loginHandler := http.HandlerFunc(c.login)
	if authMiddleware != nil {
		signupHandler = authMiddleware(signupHandler).ServeHTTP
		loginHandler = authMiddleware(loginHandler).ServeHTTP
	}
	mux.Handle("/signup", http.HandlerFunc(signupHandler))
	mux.Handle("/login", http.HandlerFunc(loginHandler))
}

func (c *RegistryController) signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.SignupResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.SignupResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	result, err := c.service.Register(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.SignupResponse]("failed to create account", "Unable to create account right now")
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	if result != domain.RegistrationSuccess {
		response := commons.ErrorResponse[models.SignupResponse](businessMessage(result.Message()))
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response := commons.SuccessResponse("Account created successfully!", models.SignupResponse{
		AccountNumber: req.AccountNumber,
		Username:      req.Username,
		BankName:      c.service.BankName(req.IFSCCode),
	})
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *RegistryController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.LoginResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoginResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	result := c.service.Authenticate(r.Context(), req.Username, req.Password)
	switch result {
	case domain.LoginEmptyFields:
		response := commons.ErrorResponse[models.LoginResponse](businessMessage(result.Message()))
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	case domain.LoginInvalidCredentials:
		response := commons.ErrorResponse[models.LoginResponse](businessMessage(result.Message()))
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	record, err := c.service.Lookup(r.Context(), req.Username)
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoginResponse]("failed to fetch account", "Unable to fetch account right now")
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	response := commons.SuccessResponse("Login successful!", models.LoginResponse{
		FullName:      record.FullName,
		AccountNumber: record.AccountNumber,
		Balance:       record.Balance.StringFixed(2),
	})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// businessMessage strips the CLI's "ERROR: " prefix; HTTP clients get
// the message body only, the status code already says it failed.
func businessMessage(message string) string {
	return strings.TrimPrefix(message, "ERROR: ")
}
