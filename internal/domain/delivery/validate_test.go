package delivery

import (
	"strings"
	"testing"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

func TestValidateAmountRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *types.MinorUnits
		wantMsg  string
	}{
		{"both nil passes", nil, nil, ""},
		{"valid pair passes", amountPtr(100), amountPtr(200), ""},
		{"equal bounds pass", amountPtr(100), amountPtr(100), ""},
		{"negative min", amountPtr(-1), nil, "minimum amount must not be negative"},
		{"negative max", nil, amountPtr(-1), "maximum amount must not be negative"},
		{"min above max", amountPtr(300), amountPtr(200), "minimum amount must not exceed maximum amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAmountRange(tt.min, tt.max); got != tt.wantMsg {
				t.Errorf("ValidateAmountRange() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateReceiptHeader(t *testing.T) {
	valid := HeaderForm{
		ReceivedDate: datePtr(2024, 1, 12),
		Receiver:     "J. Smith",
		Department:   "Warehouse",
	}

	t.Run("valid form has no errors", func(t *testing.T) {
		if errs := ValidateReceiptHeader(valid); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("accumulates every violation", func(t *testing.T) {
		errs := ValidateReceiptHeader(HeaderForm{Receiver: "   ", Department: "\t"})
		if len(errs) != 3 {
			t.Fatalf("want 3 errors, got %d: %v", len(errs), errs)
		}
	})

	t.Run("blank after trim is missing", func(t *testing.T) {
		form := valid
		form.Receiver = "  "
		errs := ValidateReceiptHeader(form)
		if len(errs) != 1 || !strings.Contains(errs[0], "receiver") {
			t.Errorf("want one receiver error, got %v", errs)
		}
	})
}

func receiveTestNote() (Note, id.ID, id.ID) {
	line1 := id.New()
	line2 := id.New()
	note := Note{
		ID:     id.New(),
		NoteNo: "DN-2024-001",
		Status: StatusPendingReceive,
		Items: []Item{
			{
				LineID:            line1,
				LineNo:            1,
				ItemCode:          "ITEM-1",
				ItemName:          "Hex bolts M8",
				OrderedQuantity:   types.NewQuantityFromInt(10),
				DeliveredQuantity: types.NewQuantityFromInt(5),
			},
			{
				LineID:          line2,
				LineNo:          2,
				ItemCode:        "ITEM-2",
				ItemName:        "Steel washers",
				OrderedQuantity: types.NewQuantityFromInt(20),
				// no delivered quantity recorded: ordered acts as ceiling
			},
		},
	}
	return note, line1, line2
}

func decision(q int64, status ItemStatus) Decision {
	return Decision{
		Quantity:    types.NewQuantityFromInt(q),
		HasQuantity: true,
		Status:      status,
	}
}

func TestValidateReceiveItems(t *testing.T) {
	t.Run("clean decisions update every line", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: decision(5, ItemStatusReceived),
			line2: decision(0, ItemStatusRejected),
		})

		if !result.OK() {
			t.Fatalf("unexpected errors: %v", result.Errors)
		}
		if len(result.Items) != 2 {
			t.Fatalf("want 2 updated items, got %d", len(result.Items))
		}
		if result.Items[0].ReceivedQuantity != types.NewQuantityFromInt(5) {
			t.Errorf("received quantity = %v", result.Items[0].ReceivedQuantity)
		}
		if !result.Items[1].ReceivedQuantity.IsZero() {
			t.Errorf("rejected line must end at zero, got %v", result.Items[1].ReceivedQuantity)
		}
		if result.Summary.Received != 1 || result.Summary.Rejected != 1 {
			t.Errorf("summary = %+v", result.Summary)
		}
	})

	t.Run("quantity above delivered ceiling", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: decision(7, ItemStatusReceived), // delivered is 5
			line2: decision(0, ItemStatusRejected),
		})

		if len(result.Errors) != 1 {
			t.Fatalf("want exactly one error, got %v", result.Errors)
		}
		if !strings.Contains(result.Errors[0], "Hex bolts M8") ||
			!strings.Contains(result.Errors[0], "exceeds delivered quantity") {
			t.Errorf("error does not name the item and rule: %q", result.Errors[0])
		}
		// The failing line must not appear among updated items.
		for _, item := range result.Items {
			if item.LineID == line1 {
				t.Error("invalid line leaked into updated items")
			}
		}
	})

	t.Run("ordered quantity is the ceiling without delivered", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: decision(5, ItemStatusReceived),
			line2: decision(21, ItemStatusReceived), // ordered is 20
		})

		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Steel washers") {
			t.Fatalf("want one washers error, got %v", result.Errors)
		}
	})

	t.Run("accumulates one error per bad line", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: {HasQuantity: true, Quantity: types.NewQuantityFromInt(3)}, // no status
			line2: decision(5, ItemStatusRejected),                           // rejected must be zero
		})

		if len(result.Errors) != 2 {
			t.Fatalf("want 2 errors, got %v", result.Errors)
		}
	})

	t.Run("missing decision and missing quantity", func(t *testing.T) {
		note, line1, _ := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: {Status: ItemStatusReceived}, // quantity never entered
		})

		if len(result.Errors) != 2 {
			t.Fatalf("want 2 errors (no quantity, no decision), got %v", result.Errors)
		}
	})

	t.Run("received with zero quantity", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: decision(0, ItemStatusReceived),
			line2: decision(0, ItemStatusRejected),
		})

		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "positive") {
			t.Fatalf("want one positivity error, got %v", result.Errors)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		note, line1, line2 := receiveTestNote()
		result := ValidateReceiveItems(note, map[id.ID]Decision{
			line1: decision(-1, ItemStatusReceived),
			line2: decision(0, ItemStatusRejected),
		})

		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "negative") {
			t.Fatalf("want one negativity error, got %v", result.Errors)
		}
	})
}
