package invoice

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type sequenceRepository struct{}

// NewSequences returns the gorm-backed invoice sequence counter.
func NewSequences() Sequences {
	return sequenceRepository{}
}

// Next upserts the per-year counter row and reads the incremented value back
// under the same transaction's row lock. The upsert form works on both
// postgres and sqlite.
func (sequenceRepository) Next(ctx context.Context, tx *gorm.DB, year int) (int64, error) {
	if tx == nil {
		return 0, errors.New("invoice_sequence_requires_transaction")
	}

	now := time.Now().UTC()
	if err := tx.WithContext(ctx).Exec(
		`INSERT INTO invoice_sequences (year, last_value, updated_at)
		 VALUES (?, 1, ?)
		 ON CONFLICT (year) DO UPDATE
		 SET last_value = invoice_sequences.last_value + 1, updated_at = ?`,
		year,
		now,
		now,
	).Error; err != nil {
		return 0, err
	}

	var value int64
	if err := tx.WithContext(ctx).Raw(
		`SELECT last_value FROM invoice_sequences WHERE year = ?`,
		year,
	).Scan(&value).Error; err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, errors.New("invoice_sequence_not_found")
	}
	return value, nil
}
