package invoice

import (
	"context"
	"fmt"

	"github.com/studiokit/atelier/internal/clock"
	"gorm.io/gorm"
)

// Sequences hands out the next value of the per-year invoice counter. The
// increment must be atomic within the caller's transaction; a plain
// count-then-use read admits duplicate numbers under concurrent creation.
type Sequences interface {
	Next(ctx context.Context, tx *gorm.DB, year int) (int64, error)
}

// Generator derives invoice numbers of the form INV<year><5-digit sequence>.
type Generator struct {
	sequences Sequences
	clock     clock.Clock
}

func NewGenerator(sequences Sequences, clk clock.Clock) *Generator {
	return &Generator{sequences: sequences, clock: clk}
}

// Next allocates the next invoice number inside tx. The sequence only moves
// forward, so numbers freed by deleted payments are never reissued.
func (g *Generator) Next(ctx context.Context, tx *gorm.DB) (string, error) {
	year := g.clock.Now().Year()
	seq, err := g.sequences.Next(ctx, tx, year)
	if err != nil {
		return "", err
	}
	return Format(year, seq), nil
}

// Format renders an invoice number. Sequences beyond 99999 widen naturally.
func Format(year int, seq int64) string {
	return fmt.Sprintf("INV%d%05d", year, seq)
}
