package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/shopspring/decimal"
)

// RecordStore is the Postgres-backed alternative to the flat file. The
// registry engine still enforces uniqueness by scanning its in-memory
// set, so behavior matches the flat-file backend; the unique indexes on
// bank_users are a second line of defense only.
type RecordStore struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	const query = `
SELECT account_number, ifsc_code, full_name, email, username, password, date_created, is_active, balance
FROM bank_users
ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	var records []domain.UserRecord
	for rows.Next() {
		var record domain.UserRecord
		if err := scanRecord(rows, &record); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

func (s *RecordStore) Append(ctx context.Context, record domain.UserRecord) error {
	const query = `
INSERT INTO bank_users (
	account_number,
	ifsc_code,
	full_name,
	email,
	username,
	password,
	date_created,
	is_active,
	balance
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := s.db.ExecContext(
		ctx,
		query,
		record.AccountNumber,
		record.IFSCCode,
		record.FullName,
		record.Email,
		record.Username,
		record.Password,
		record.DateCreated,
		record.IsActive,
		record.Balance,
	); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

func (s *RecordStore) UpdateBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	const query = `
UPDATE bank_users
SET balance = $2
WHERE username = $1`

	result, err := s.db.ExecContext(ctx, query, username, balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanRecord(row rowScanner, record *domain.UserRecord) error {
	return row.Scan(
		&record.AccountNumber,
		&record.IFSCCode,
		&record.FullName,
		&record.Email,
		&record.Username,
		&record.Password,
		&record.DateCreated,
		&record.IsActive,
		&record.Balance,
	)
}
