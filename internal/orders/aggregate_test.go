package orders

import (
	"testing"
	"time"

	"github.com/tapnserve/pos/internal/menu"
)

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return &parsed
}

func TestEnrich(t *testing.T) {
	list := []Order{
		{
			ID:          "o1",
			TableNumber: "2",
			Status:      StatusInProgress,
			Items: []OrderItem{
				{ProductID: "p1", Extra: "Cheese"},
				{ProductID: "ghost"},
			},
		},
	}
	items := []menu.MenuItem{{ID: "p1", Name: "Burger"}}

	enriched := Enrich(list, items)
	if len(enriched) != 1 {
		t.Fatalf("len(enriched) = %d, want 1", len(enriched))
	}

	got := enriched[0]
	if got.Items[0].ProductName != "Burger" {
		t.Errorf("Items[0].ProductName = %q, want Burger", got.Items[0].ProductName)
	}
	if got.Items[0].Extra != "Cheese" {
		t.Errorf("Items[0].Extra = %q, want Cheese", got.Items[0].Extra)
	}
	// Items referencing a deleted product still render.
	if got.Items[1].ProductName != UnknownProduct {
		t.Errorf("Items[1].ProductName = %q, want %q", got.Items[1].ProductName, UnknownProduct)
	}
}

func TestActiveByTable(t *testing.T) {
	list := []EnrichedOrder{
		{ID: "o1", TableNumber: "9", Status: StatusInProgress},
		{ID: "o2", TableNumber: "2", Status: StatusInProgress},
		{ID: "o3", TableNumber: "2", Status: StatusInProgress},
		{ID: "o4", TableNumber: "5", Status: StatusCompleted},
	}

	groups := ActiveByTable(list)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	// Tables ascending.
	if groups[0].TableNumber != "2" || groups[1].TableNumber != "9" {
		t.Errorf("group order = [%s, %s], want [2, 9]", groups[0].TableNumber, groups[1].TableNumber)
	}
	if len(groups[0].Orders) != 2 {
		t.Errorf("table 2 orders = %d, want 2", len(groups[0].Orders))
	}
}

func TestCompletedByTable(t *testing.T) {
	list := []EnrichedOrder{
		{ID: "old", TableNumber: "1", Status: StatusCompleted, CreatedAt: ts(t, "2026-08-01T10:00:00Z")},
		{ID: "new", TableNumber: "1", Status: StatusCompleted, CreatedAt: ts(t, "2026-08-20T10:00:00Z")},
		{ID: "other", TableNumber: "4", Status: StatusCompleted, CreatedAt: ts(t, "2026-08-25T10:00:00Z")},
		{ID: "active", TableNumber: "1", Status: StatusInProgress},
	}

	groups := CompletedByTable(list)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}

	// Groups sorted by most recent completed order.
	if groups[0].TableNumber != "4" || groups[1].TableNumber != "1" {
		t.Errorf("group order = [%s, %s], want [4, 1]", groups[0].TableNumber, groups[1].TableNumber)
	}

	// Orders inside a group newest first.
	table1 := groups[1]
	if table1.Orders[0].ID != "new" || table1.Orders[1].ID != "old" {
		t.Errorf("table 1 order ids = [%s, %s], want [new, old]", table1.Orders[0].ID, table1.Orders[1].ID)
	}
}

func TestCompletedByTableMissingTimestamps(t *testing.T) {
	list := []EnrichedOrder{
		{ID: "undated", TableNumber: "1", Status: StatusCompleted},
		{ID: "dated", TableNumber: "1", Status: StatusCompleted, CreatedAt: ts(t, "2026-08-20T10:00:00Z")},
	}

	groups := CompletedByTable(list)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	// Orders without a timestamp sort after dated ones.
	if groups[0].Orders[0].ID != "dated" {
		t.Errorf("first order = %s, want dated", groups[0].Orders[0].ID)
	}
}

func TestSnapshot(t *testing.T) {
	snapshot := NewSnapshot([]Order{
		{TableNumber: "3", Status: StatusInProgress},
		{TableNumber: "7", Status: StatusCompleted},
	})

	if !snapshot.HasActiveOrder("3") {
		t.Error("HasActiveOrder(3) = false, want true")
	}
	if !snapshot.HasActiveOrder(" 3 ") {
		t.Error("HasActiveOrder with surrounding spaces = false, want true")
	}
	if snapshot.HasActiveOrder("7") {
		t.Error("HasActiveOrder(7) = true for a completed order")
	}
	if snapshot.HasActiveOrder("99") {
		t.Error("HasActiveOrder(99) = true for an unknown table")
	}
	if snapshot.FetchedAt().IsZero() {
		t.Error("FetchedAt() is zero")
	}

	var nilSnapshot *Snapshot
	if nilSnapshot.HasActiveOrder("3") {
		t.Error("nil snapshot reports an active order")
	}
}
