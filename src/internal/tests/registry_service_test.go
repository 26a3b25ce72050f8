package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type recordStoreStub struct {
	loadFn          func(ctx context.Context) ([]domain.UserRecord, error)
	appendFn        func(ctx context.Context, record domain.UserRecord) error
	updateBalanceFn func(ctx context.Context, username string, balance decimal.Decimal) error
}

func (s recordStoreStub) Load(ctx context.Context) ([]domain.UserRecord, error) {
	if s.loadFn != nil {
		return s.loadFn(ctx)
	}
	return nil, nil
}

func (s recordStoreStub) Append(ctx context.Context, record domain.UserRecord) error {
	if s.appendFn != nil {
		return s.appendFn(ctx, record)
	}
	return nil
}

func (s recordStoreStub) UpdateBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	if s.updateBalanceFn != nil {
		return s.updateBalanceFn(ctx, username, balance)
	}
	return nil
}

type branchRepoStub struct {
	getAllFn func(ctx context.Context) ([]domain.Branch, error)
}

func (s branchRepoStub) GetAll(ctx context.Context) ([]domain.Branch, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return []domain.Branch{
		{IFSCCode: "BODD0000001", BankName: "Bank of Diddy - Main Branch"},
		{IFSCCode: "HDFC0000001", BankName: "HDFC Bank - Sample Branch"},
	}, nil
}

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		AccountNumber: "1234567890",
		IFSCCode:      "bodd0000001",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Username:      "jdoe",
		Password:      "pw123",
	}
}

func newService(t *testing.T, store recordStoreStub) *services.RegistryService {
	t.Helper()

	svc, err := services.NewRegistryService(context.Background(), store, branchRepoStub{})
	if err != nil {
		t.Fatalf("new registry service: %v", err)
	}
	return svc
}

func preloaded(records ...domain.UserRecord) recordStoreStub {
	return recordStoreStub{
		loadFn: func(context.Context) ([]domain.UserRecord, error) {
			return records, nil
		},
	}
}

func existingRecord() domain.UserRecord {
	return domain.UserRecord{
		AccountNumber: "9999999999",
		IFSCCode:      "BODD0000001",
		FullName:      "John Smith",
		Email:         "john@example.com",
		Username:      "jsmith",
		Password:      "secret",
		DateCreated:   "2024-01-15 10:00:00",
		IsActive:      true,
		Balance:       decimal.Zero,
	}
}

func TestRegisterSuccessAppendsStampedRecord(t *testing.T) {
	var appended []domain.UserRecord
	store := recordStoreStub{
		appendFn: func(_ context.Context, record domain.UserRecord) error {
			appended = append(appended, record)
			return nil
		},
	}
	svc := newService(t, store)

	result, err := svc.Register(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationSuccess {
		t.Fatalf("expected SUCCESS, got %s", result)
	}
	if result.Message() != "SUCCESS" {
		t.Fatalf("unexpected message %q", result.Message())
	}

	if len(appended) != 1 {
		t.Fatalf("expected exactly one append, got %d", len(appended))
	}
	record := appended[0]
	if record.IFSCCode != "BODD0000001" {
		t.Fatalf("expected upper-cased IFSC to be stored, got %q", record.IFSCCode)
	}
	if !record.IsActive {
		t.Fatal("expected new record to be active")
	}
	if !record.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", record.Balance)
	}
	if _, err := time.Parse(domain.DateCreatedLayout, record.DateCreated); err != nil {
		t.Fatalf("dateCreated %q not in expected layout: %v", record.DateCreated, err)
	}
}

func TestRegisterEmptyFields(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	req := validSignup()
	req.Password = ""

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationEmptyFields {
		t.Fatalf("expected EMPTY_FIELDS, got %s", result)
	}
	if result.Message() != "ERROR: All fields are required." {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestRegisterInvalidAccountNumberFormats(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	for _, accountNumber := range []string{"123456789", "1234567890123", "12345abcde", "12.34567890"} {
		req := validSignup()
		req.AccountNumber = accountNumber

		result, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("register %q: %v", accountNumber, err)
		}
		if result != domain.RegistrationInvalidAccountNumber {
			t.Fatalf("account number %q: expected INVALID_ACCOUNT_NUMBER, got %s", accountNumber, result)
		}
	}
}

func TestRegisterFormatCheckRunsBeforeUniqueness(t *testing.T) {
	// A stored record with the same malformed account number must not
	// turn the format failure into a uniqueness failure.
	existing := existingRecord()
	existing.AccountNumber = "12345"
	svc := newService(t, preloaded(existing))

	req := validSignup()
	req.AccountNumber = "12345"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationInvalidAccountNumber {
		t.Fatalf("expected INVALID_ACCOUNT_NUMBER, got %s", result)
	}
}

func TestRegisterInvalidIFSCFormats(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	for _, code := range []string{"BOD0000001", "BODD000001", "12340000001", "BODD00000012"} {
		req := validSignup()
		req.IFSCCode = code

		result, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("register %q: %v", code, err)
		}
		if result != domain.RegistrationInvalidIFSCCode {
			t.Fatalf("ifsc %q: expected INVALID_IFSC_CODE, got %s", code, result)
		}
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	req := validSignup()
	req.Email = "not-an-email"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationInvalidEmail {
		t.Fatalf("expected INVALID_EMAIL, got %s", result)
	}
	if result.Message() != "ERROR: Invalid email format." {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestRegisterDuplicateAccountNumber(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	req := validSignup()
	req.AccountNumber = "9999999999"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationAccountNumberExists {
		t.Fatalf("expected ACCOUNT_NUMBER_EXISTS, got %s", result)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	req := validSignup()
	req.Username = "jsmith"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationUsernameExists {
		t.Fatalf("expected USERNAME_EXISTS, got %s", result)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	req := validSignup()
	req.Email = "john@example.com"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationEmailExists {
		t.Fatalf("expected EMAIL_EXISTS, got %s", result)
	}
}

func TestRegisterIFSCNotInDirectory(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	req := validSignup()
	req.IFSCCode = "ZZZZ0000000"

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result != domain.RegistrationIFSCNotFound {
		t.Fatalf("expected IFSC_NOT_FOUND, got %s", result)
	}
	if result.Message() != "ERROR: IFSC code not found in our bank network." {
		t.Fatalf("unexpected message %q", result.Message())
	}
}

func TestRegisterIFSCCaseInsensitive(t *testing.T) {
	for _, code := range []string{"bodd0000001", "BODD0000001"} {
		svc := newService(t, recordStoreStub{})

		req := validSignup()
		req.IFSCCode = code

		result, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("register %q: %v", code, err)
		}
		if result != domain.RegistrationSuccess {
			t.Fatalf("ifsc %q: expected SUCCESS, got %s", code, result)
		}
	}
}

func TestRegisterPersistFailureDropsRecord(t *testing.T) {
	appendErr := errors.New("disk full")
	failing := true
	store := recordStoreStub{
		appendFn: func(context.Context, domain.UserRecord) error {
			if failing {
				return appendErr
			}
			return nil
		},
	}
	svc := newService(t, store)

	if _, err := svc.Register(context.Background(), validSignup()); !errors.Is(err, appendErr) {
		t.Fatalf("expected persist error, got %v", err)
	}

	// The rejected record must not linger in memory: the same signup
	// succeeds once the store recovers.
	failing = false
	result, err := svc.Register(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("register after recovery: %v", err)
	}
	if result != domain.RegistrationSuccess {
		t.Fatalf("expected SUCCESS after recovery, got %s", result)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	if result := svc.Authenticate(context.Background(), "jsmith", "secret"); result != domain.LoginSuccess {
		t.Fatalf("expected SUCCESS, got %s", result)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	wrongPassword := svc.Authenticate(context.Background(), "jsmith", "wrong")
	unknownUser := svc.Authenticate(context.Background(), "nobody", "secret")

	if wrongPassword != domain.LoginInvalidCredentials || unknownUser != domain.LoginInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS for both, got %s and %s", wrongPassword, unknownUser)
	}
	if wrongPassword.Message() != unknownUser.Message() {
		t.Fatalf("messages must match: %q vs %q", wrongPassword.Message(), unknownUser.Message())
	}
	if wrongPassword.Message() != "ERROR: Credentials not correct" {
		t.Fatalf("unexpected message %q", wrongPassword.Message())
	}
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	record := existingRecord()
	record.IsActive = false
	svc := newService(t, preloaded(record))

	if result := svc.Authenticate(context.Background(), "jsmith", "secret"); result != domain.LoginInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS for inactive account, got %s", result)
	}
}

func TestAuthenticateEmptyFieldsTakePrecedence(t *testing.T) {
	// Even with no records at all, empty credentials report
	// EMPTY_FIELDS rather than INVALID_CREDENTIALS.
	svc := newService(t, recordStoreStub{})

	if result := svc.Authenticate(context.Background(), "", "pw"); result != domain.LoginEmptyFields {
		t.Fatalf("expected EMPTY_FIELDS, got %s", result)
	}
	if result := svc.Authenticate(context.Background(), "jdoe", ""); result != domain.LoginEmptyFields {
		t.Fatalf("expected EMPTY_FIELDS, got %s", result)
	}
}

func TestRegisterThenLoginScenario(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	result, err := svc.Register(context.Background(), models.SignupRequest{
		AccountNumber: "1234567890",
		IFSCCode:      "bodd0000001",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Username:      "jdoe",
		Password:      "pw123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Message() != "SUCCESS" {
		t.Fatalf("unexpected registration message %q", result.Message())
	}

	if login := svc.Authenticate(context.Background(), "jdoe", "pw123"); login.Message() != "SUCCESS" {
		t.Fatalf("unexpected login message %q", login.Message())
	}
	if login := svc.Authenticate(context.Background(), "jdoe", "wrong"); login.Message() != "ERROR: Credentials not correct" {
		t.Fatalf("unexpected login message %q", login.Message())
	}
}

func TestLookup(t *testing.T) {
	svc := newService(t, preloaded(existingRecord()))

	record, err := svc.Lookup(context.Background(), "jsmith")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if record.FullName != "John Smith" {
		t.Fatalf("unexpected record %+v", record)
	}

	if _, err := svc.Lookup(context.Background(), "nobody"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestBankName(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	if name := svc.BankName("bodd0000001"); name != "Bank of Diddy - Main Branch" {
		t.Fatalf("unexpected bank name %q", name)
	}
	if name := svc.BankName("ZZZZ0000000"); name != "Unknown Bank" {
		t.Fatalf("unexpected fallback %q", name)
	}
}

func TestUpdateBalance(t *testing.T) {
	var storedUsername string
	var storedBalance decimal.Decimal
	store := preloaded(existingRecord())
	store.updateBalanceFn = func(_ context.Context, username string, balance decimal.Decimal) error {
		storedUsername = username
		storedBalance = balance
		return nil
	}
	svc := newService(t, store)

	newBalance := decimal.RequireFromString("250.50")
	if err := svc.UpdateBalance(context.Background(), "jsmith", newBalance); err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if storedUsername != "jsmith" || !storedBalance.Equal(newBalance) {
		t.Fatalf("store saw %q %s", storedUsername, storedBalance)
	}

	users := svc.Users(context.Background())
	if len(users) != 1 || !users[0].Balance.Equal(newBalance) {
		t.Fatalf("in-memory balance not updated: %+v", users)
	}
}

func TestUpdateBalanceUnknownUser(t *testing.T) {
	svc := newService(t, recordStoreStub{})

	err := svc.UpdateBalance(context.Background(), "nobody", decimal.RequireFromString("10"))
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUsersReturnsLoadOrderSnapshot(t *testing.T) {
	first := existingRecord()
	second := existingRecord()
	second.AccountNumber = "8888888888"
	second.Username = "second"
	second.Email = "second@example.com"
	svc := newService(t, preloaded(first, second))

	users := svc.Users(context.Background())
	if len(users) != 2 || users[0].Username != "jsmith" || users[1].Username != "second" {
		t.Fatalf("unexpected snapshot %+v", users)
	}

	// Mutating the snapshot must not touch the engine's set.
	users[0].Username = "mutated"
	again := svc.Users(context.Background())
	if again[0].Username != "jsmith" {
		t.Fatal("snapshot mutation leaked into the record set")
	}
}
