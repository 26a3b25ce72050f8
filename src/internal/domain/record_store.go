package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// RecordStore is the durable home of the user record set. Load returns
// records in file order; a missing backing file is not an error. Append
// must be called exactly once per accepted registration, with the record
// as an explicit argument, so storage and the in-memory set never
// diverge. UpdateBalance reports ErrRecordNotFound for an unknown
// username.
type RecordStore interface {
	Load(ctx context.Context) ([]UserRecord, error)
	Append(ctx context.Context, record UserRecord) error
	UpdateBalance(ctx context.Context, username string, balance decimal.Decimal) error
}
