package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service re-derives a customer's denormalized financial aggregates from the
// committed payment set. It is the only writer of total_revenue and
// outstanding_balance.
//
// Recalculate is idempotent: it always computes from source rows, never from
// an incremental delta, so concurrent invocations converge on the same final
// value. A missing customer is a no-op, not an error; the payment mutation
// that triggered the call has already been committed.
type Service interface {
	Recalculate(ctx context.Context, customerID snowflake.ID) error
}
