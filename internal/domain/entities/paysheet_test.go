package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodOf(t *testing.T) {
	got := PeriodOf(time.Date(2026, 1, 31, 23, 30, 0, 0, time.UTC))
	if got != "January 2026" {
		t.Fatalf("unexpected period %q", got)
	}
	// 2026-02-01 01:00 at +03:00 is still January in UTC.
	loc := time.FixedZone("plus3", 3*3600)
	got = PeriodOf(time.Date(2026, 2, 1, 1, 0, 0, 0, loc))
	if got != "January 2026" {
		t.Fatalf("expected UTC period, got %q", got)
	}
}

func TestContribution(t *testing.T) {
	a := Assignment{ClientPrice: 100, WriterPrice: 60}
	if got := Contribution(a, PaysheetKindWriter); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("writer contribution = %s", got)
	}
	if got := Contribution(a, PaysheetKindAdmin); !got.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("admin contribution = %s", got)
	}

	loss := Assignment{ClientPrice: 50, WriterPrice: 60}
	if got := Contribution(loss, PaysheetKindAdmin); got.IsPositive() {
		t.Fatalf("expected non-positive profit, got %s", got)
	}
	if got := Contribution(Assignment{ClientPrice: 80}, PaysheetKindAdmin); !got.IsZero() {
		t.Fatalf("expected zero without writer price, got %s", got)
	}

	frac := Assignment{ClientPrice: 0.3, WriterPrice: 0.1}
	if got := Contribution(frac, PaysheetKindAdmin); !got.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("expected exact 0.2, got %s", got)
	}
}

func TestPaysheetHelpers(t *testing.T) {
	p := Paysheet{Kind: PaysheetKindWriter, OwnerID: "w1", Period: "March 2026", AssignmentIDs: []string{"a1"}}
	if p.LedgerKey() != "writer#w1#March 2026" {
		t.Fatalf("unexpected ledger key %q", p.LedgerKey())
	}
	if !p.Contains("a1") || p.Contains("a2") {
		t.Fatalf("unexpected membership")
	}
}
