package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/logger"
	"github.com/shopspring/decimal"
)

var (
	accountNumberPattern = regexp.MustCompile(`^[0-9]{10,12}$`)
	ifscCodePattern      = regexp.MustCompile(`^[A-Z]{4}[0-9]{7}$`)
	emailPattern         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// RegistryService owns the in-memory record set and the branch directory.
// All operations serialize on one mutex: a registration's uniqueness
// checks and its append are a single critical section, so two concurrent
// registrations can never both pass the checks against the same
// not-yet-persisted username, account number or email.
type RegistryService struct {
	mu       sync.Mutex
	store    domain.RecordStore
	branches map[string]string
	records  []domain.UserRecord
	now      func() time.Time
}

// NewRegistryService loads the record set from the store (a missing
// backing file yields an empty set) and materializes the branch map.
func NewRegistryService(ctx context.Context, store domain.RecordStore, branchRepo domain.BranchRepository) (*RegistryService, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load record set: %w", err)
	}

	branches, err := branchRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load branch directory: %w", err)
	}

	branchMap := make(map[string]string, len(branches))
	for _, branch := range branches {
		branchMap[branch.IFSCCode] = branch.BankName
	}

	logger.Info("registry service initialized", logger.Fields{
		"records":  len(records),
		"branches": len(branchMap),
	})

	return &RegistryService{
		store:    store,
		branches: branchMap,
		records:  records,
		now:      time.Now,
	}, nil
}

// Register runs the validation chain in fixed order and stops at the
// first failing rule. On success the record is stamped with the current
// local time, persisted via the store, and appended to the in-memory
// set. A non-nil error means persistence failed after all rules passed;
// the record is then not retained in memory either.
func (s *RegistryService) Register(ctx context.Context, req models.SignupRequest) (domain.RegistrationResult, error) {
	logger.Info("registry service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.AccountNumber == "" || req.IFSCCode == "" || req.FullName == "" ||
		req.Email == "" || req.Username == "" || req.Password == "" {
		return domain.RegistrationEmptyFields, nil
	}

	if !accountNumberPattern.MatchString(req.AccountNumber) {
		return domain.RegistrationInvalidAccountNumber, nil
	}

	// The upper-cased code is what gets stored and checked thereafter.
	ifscCode := strings.ToUpper(req.IFSCCode)
	if !ifscCodePattern.MatchString(ifscCode) {
		return domain.RegistrationInvalidIFSCCode, nil
	}

	if !emailPattern.MatchString(req.Email) {
		return domain.RegistrationInvalidEmail, nil
	}

	for _, record := range s.records {
		if record.AccountNumber == req.AccountNumber {
			return domain.RegistrationAccountNumberExists, nil
		}
	}
	for _, record := range s.records {
		if record.Username == req.Username {
			return domain.RegistrationUsernameExists, nil
		}
	}
	for _, record := range s.records {
		if record.Email == req.Email {
			return domain.RegistrationEmailExists, nil
		}
	}

	if _, ok := s.branches[ifscCode]; !ok {
		return domain.RegistrationIFSCNotFound, nil
	}

	record := domain.NewUserRecord(req.AccountNumber, ifscCode, req.FullName, req.Email, req.Username, req.Password, s.now())

	if err := s.store.Append(ctx, record); err != nil {
		logger.Error("registry service register persist failed", err, logger.Fields{
			"username": record.Username,
		})
		return "", fmt.Errorf("persist record: %w", err)
	}
	s.records = append(s.records, record)

	logger.Info("registry service register success", logger.Fields{
		"accountNumber": record.AccountNumber,
		"username":      record.Username,
		"ifscCode":      record.IFSCCode,
	})

	return domain.RegistrationSuccess, nil
}

// Authenticate scans the record set in load order. Unknown username,
// wrong password and inactive account are indistinguishable to the
// caller.
func (s *RegistryService) Authenticate(_ context.Context, username, password string) domain.LoginResult {
	if username == "" || password == "" {
		return domain.LoginEmptyFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Username == username && record.Password == password && record.IsActive {
			logger.Info("registry service login success", logger.Fields{
				"username": username,
			})
			return domain.LoginSuccess
		}
	}

	logger.Info("registry service login rejected", logger.Fields{
		"username": username,
	})
	return domain.LoginInvalidCredentials
}

// Lookup returns the record for a username, or ErrRecordNotFound.
func (s *RegistryService) Lookup(_ context.Context, username string) (domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Username == username {
			return record, nil
		}
	}

	return domain.UserRecord{}, domain.ErrRecordNotFound
}

// BankName resolves an IFSC code to its branch display name.
func (s *RegistryService) BankName(ifscCode string) string {
	name, ok := s.branches[strings.ToUpper(ifscCode)]
	if !ok {
		return "Unknown Bank"
	}
	return name
}

// Users returns a snapshot of the record set in load order.
func (s *RegistryService) Users(_ context.Context) []domain.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.UserRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// UpdateBalance sets a user's balance in memory and in the store.
func (s *RegistryService) UpdateBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, record := range s.records {
		if record.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrRecordNotFound
	}

	if err := s.store.UpdateBalance(ctx, username, balance); err != nil {
		logger.Error("registry service update balance persist failed", err, logger.Fields{
			"username": username,
		})
		return fmt.Errorf("persist balance: %w", err)
	}
	s.records[idx].Balance = balance

	logger.Info("registry service update balance success", logger.Fields{
		"username": username,
		"balance":  balance.String(),
	})

	return nil
}
