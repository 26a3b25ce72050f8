package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateCreatedLayout is the timestamp format stored in the dateCreated field.
const DateCreatedLayout = "2006-01-02 15:04:05"

const (
	recordDelimiter  = "|"
	recordFieldCount = 9
)

// UserRecord is one bank customer. String fields must not contain the
// record delimiter; the codec does not check this.
type UserRecord struct {
	AccountNumber string
	IFSCCode      string
	FullName      string
	Email         string
	Username      string
	Password      string
	DateCreated   string
	IsActive      bool
	Balance       decimal.Decimal
}

// NewUserRecord builds a record for a freshly registered customer. The
// creation timestamp is stamped once here and never changes.
func NewUserRecord(accountNumber, ifscCode, fullName, email, username, password string, now time.Time) UserRecord {
	return UserRecord{
		AccountNumber: accountNumber,
		IFSCCode:      ifscCode,
		FullName:      fullName,
		Email:         email,
		Username:      username,
		Password:      password,
		DateCreated:   now.Format(DateCreatedLayout),
		IsActive:      true,
		Balance:       decimal.Zero,
	}
}

// Encode renders the record as one line of the flat-file format: nine
// fields joined by "|", the active flag as "1"/"0".
func (r UserRecord) Encode() string {
	active := "0"
	if r.IsActive {
		active = "1"
	}

	return strings.Join([]string{
		r.AccountNumber,
		r.IFSCCode,
		r.FullName,
		r.Email,
		r.Username,
		r.Password,
		r.DateCreated,
		active,
		r.Balance.String(),
	}, recordDelimiter)
}

// DecodeUserRecord parses one flat-file line. A line with fewer than nine
// fields yields ErrShortRecord; a non-numeric balance yields
// ErrCorruptRecord. Extra trailing fields are ignored.
func DecodeUserRecord(line string) (UserRecord, error) {
	tokens := strings.Split(line, recordDelimiter)
	if len(tokens) < recordFieldCount {
		return UserRecord{}, fmt.Errorf("%w: got %d fields, want %d", ErrShortRecord, len(tokens), recordFieldCount)
	}

	balance, err := decimal.NewFromString(tokens[8])
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: balance %q: %v", ErrCorruptRecord, tokens[8], err)
	}

	return UserRecord{
		AccountNumber: tokens[0],
		IFSCCode:      tokens[1],
		FullName:      tokens[2],
		Email:         tokens[3],
		Username:      tokens[4],
		Password:      tokens[5],
		DateCreated:   tokens[6],
		IsActive:      tokens[7] == "1",
		Balance:       balance,
	}, nil
}
