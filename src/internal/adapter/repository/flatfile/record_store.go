package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/logger"
	"github.com/shopspring/decimal"
)

// RecordStore keeps user records in a line-oriented, "|"-delimited text
// file, one record per line, no header. It is not safe for concurrent
// use; the registry engine serializes access.
type RecordStore struct {
	path    string
	records []domain.UserRecord
}

func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Load reads the backing file in order. A missing file means an empty
// set. Short lines (fewer than nine fields) are logged and skipped;
// a record with an unparseable balance aborts the load so a corrupt
// file is never half-read into service.
func (s *RecordStore) Load(_ context.Context) ([]domain.UserRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.records = nil
			return nil, nil
		}
		return nil, fmt.Errorf("open record file %q: %w", s.path, err)
	}
	defer file.Close()

	var records []domain.UserRecord
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		record, err := domain.DecodeUserRecord(line)
		if err != nil {
			if errors.Is(err, domain.ErrShortRecord) {
				logger.Warn("record store skipping malformed line", logger.Fields{
					"file": s.path,
					"line": lineNo,
				})
				continue
			}
			return nil, fmt.Errorf("record file %q line %d: %w", s.path, lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read record file %q: %w", s.path, err)
	}

	s.records = append(s.records[:0], records...)
	return records, nil
}

// Append writes the encoded record as one new line at the end of the
// file, creating it if needed.
func (s *RecordStore) Append(_ context.Context, record domain.UserRecord) error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open record file %q for append: %w", s.path, err)
	}

	if _, err := file.WriteString(record.Encode() + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("append record to %q: %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close record file %q: %w", s.path, err)
	}

	s.records = append(s.records, record)
	return nil
}

// UpdateBalance rewrites the whole file; append-only writes cannot
// express an in-place change.
func (s *RecordStore) UpdateBalance(_ context.Context, username string, balance decimal.Decimal) error {
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

	updated := make([]domain.UserRecord, len(s.records))
	copy(updated, s.records)
	updated[idx].Balance = balance

	var sb strings.Builder
	for _, record := range updated {
		sb.WriteString(record.Encode())
		sb.WriteString("\n")
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("rewrite record file %q: %w", s.path, err)
	}

	s.records = updated
	return nil
}
