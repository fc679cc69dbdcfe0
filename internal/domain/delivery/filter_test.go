package delivery

import (
	"testing"
	"time"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func amountPtr(v types.MinorUnits) *types.MinorUnits {
	return &v
}

func testNotes() []Note {
	return []Note{
		{
			ID:           id.New(),
			NoteNo:       "DN-2024-001",
			OrderNo:      "PO-1001",
			SupplierName: "Acme Industrial",
			Status:       StatusPendingReceive,
			TotalAmount:  100000, // 1000.00
			DeliveryDate: date(2024, 1, 5),
		},
		{
			ID:           id.New(),
			NoteNo:       "DN-2024-002",
			OrderNo:      "PO-1002",
			SupplierName: "Beta Logistics",
			Status:       StatusPendingInspection,
			TotalAmount:  500000, // 5000.00
			DeliveryDate: date(2024, 1, 10),
			ReceivedDate: datePtr(2024, 1, 12),
		},
		{
			ID:           id.New(),
			NoteNo:       "DN-2024-003",
			OrderNo:      "PO-1003",
			SupplierName: "Acme Industrial",
			Status:       StatusCompleted,
			TotalAmount:  1200000, // 12000.00
			DeliveryDate: date(2024, 1, 20),
			ReceivedDate: datePtr(2024, 1, 22),
		},
	}
}

func noteNos(notes []Note) []string {
	nos := make([]string, len(notes))
	for i, n := range notes {
		nos[i] = n.NoteNo
	}
	return nos
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "empty criteria matches everything in order",
			criteria: Criteria{},
			want:     []string{"DN-2024-001", "DN-2024-002", "DN-2024-003"},
		},
		{
			name:     "keyword matches note number case-insensitively",
			criteria: Criteria{Keyword: "dn-2024-002"},
			want:     []string{"DN-2024-002"},
		},
		{
			name:     "keyword matches order number",
			criteria: Criteria{Keyword: "PO-1003"},
			want:     []string{"DN-2024-003"},
		},
		{
			name:     "keyword is trimmed before matching",
			criteria: Criteria{Keyword: "  po-1001  "},
			want:     []string{"DN-2024-001"},
		},
		{
			name:     "supplier substring",
			criteria: Criteria{Supplier: "acme"},
			want:     []string{"DN-2024-001", "DN-2024-003"},
		},
		{
			name:     "status is exact",
			criteria: Criteria{Status: StatusPendingInspection},
			want:     []string{"DN-2024-002"},
		},
		{
			name: "delivery date range is inclusive",
			criteria: Criteria{
				DeliveryFrom: datePtr(2024, 1, 5),
				DeliveryTo:   datePtr(2024, 1, 10),
			},
			want: []string{"DN-2024-001", "DN-2024-002"},
		},
		{
			name: "received range excludes notes without a received date",
			criteria: Criteria{
				ReceivedFrom: datePtr(2024, 1, 1),
				ReceivedTo:   datePtr(2024, 1, 31),
			},
			want: []string{"DN-2024-002", "DN-2024-003"},
		},
		{
			name: "amount range keeps only the middle note",
			criteria: Criteria{
				AmountMin: amountPtr(200000),  // 2000.00
				AmountMax: amountPtr(1100000), // 11000.00
			},
			want: []string{"DN-2024-002"},
		},
		{
			name:     "open-ended amount minimum",
			criteria: Criteria{AmountMin: amountPtr(400000)},
			want:     []string{"DN-2024-002", "DN-2024-003"},
		},
		{
			name: "criteria combine with AND",
			criteria: Criteria{
				Supplier:  "Acme",
				AmountMin: amountPtr(200000),
			},
			want: []string{"DN-2024-003"},
		},
		{
			name:     "no match yields empty result",
			criteria: Criteria{Keyword: "does-not-exist"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := noteNos(Filter(testNotes(), tt.criteria))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter returned %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter order mismatch at %d\nwant: %v\ngot:  %v", i, tt.want, got)
					break
				}
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	notes := testNotes()
	_ = Filter(notes, Criteria{Supplier: "Acme"})

	if len(notes) != 3 {
		t.Fatalf("input slice length changed: %d", len(notes))
	}
	if notes[0].NoteNo != "DN-2024-001" || notes[2].NoteNo != "DN-2024-003" {
		t.Error("input slice contents changed")
	}
}
