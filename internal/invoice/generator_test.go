package invoice

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/studiokit/atelier/internal/clock"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceTest(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&paymentdomain.InvoiceSequence{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestFormat(t *testing.T) {
	cases := []struct {
		year int
		seq  int64
		want string
	}{
		{2025, 1, "INV202500001"},
		{2025, 42, "INV202500042"},
		{2025, 99999, "INV202599999"},
		{2026, 100000, "INV2026100000"},
	}
	for _, tc := range cases {
		if got := Format(tc.year, tc.seq); got != tc.want {
			t.Fatalf("Format(%d, %d) = %q, want %q", tc.year, tc.seq, got, tc.want)
		}
	}
}

func TestNextIncrementsWithinYear(t *testing.T) {
	db := setupInvoiceTest(t)
	gen := NewGenerator(NewSequences(), clock.Fixed{At: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)})

	for i := 1; i <= 3; i++ {
		var number string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			number, err = gen.Next(context.Background(), tx)
			return err
		})
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := Format(2025, int64(i)); number != want {
			t.Fatalf("number = %q, want %q", number, want)
		}
	}
}

func TestNextResetsPerYear(t *testing.T) {
	db := setupInvoiceTest(t)
	sequences := NewSequences()

	allocate := func(year int) string {
		t.Helper()
		var number string
		err := db.Transaction(func(tx *gorm.DB) error {
			seq, err := sequences.Next(context.Background(), tx, year)
			if err != nil {
				return err
			}
			number = Format(year, seq)
			return nil
		})
		if err != nil {
			t.Fatalf("allocate %d: %v", year, err)
		}
		return number
	}

	if got := allocate(2025); got != "INV202500001" {
		t.Fatalf("first 2025 number = %q", got)
	}
	if got := allocate(2025); got != "INV202500002" {
		t.Fatalf("second 2025 number = %q", got)
	}
	// A new year starts its own counter at 1.
	if got := allocate(2026); got != "INV202600001" {
		t.Fatalf("first 2026 number = %q", got)
	}
	if got := allocate(2025); got != "INV202500003" {
		t.Fatalf("third 2025 number = %q", got)
	}
}

func TestNextRequiresTransaction(t *testing.T) {
	sequences := NewSequences()
	if _, err := sequences.Next(context.Background(), nil, 2025); err == nil {
		t.Fatal("expected error without transaction")
	}
}

func TestRolledBackAllocationLeavesNoOrphan(t *testing.T) {
	db := setupInvoiceTest(t)
	gen := NewGenerator(NewSequences(), clock.Fixed{At: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)})

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := gen.Next(context.Background(), tx); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatal("expected forced rollback error")
	}

	var count int64
	if err := db.Model(&paymentdomain.InvoiceSequence{}).Count(&count).Error; err != nil {
		t.Fatalf("count sequences: %v", err)
	}
	if count != 0 {
		t.Fatalf("sequence row survived rollback: %d rows", count)
	}

	var number string
	if err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = gen.Next(context.Background(), tx)
		return err
	}); err != nil {
		t.Fatalf("next after rollback: %v", err)
	}
	if number != "INV202500001" {
		t.Fatalf("number after rollback = %q, want INV202500001", number)
	}
}
