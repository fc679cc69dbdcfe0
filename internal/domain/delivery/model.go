// Package delivery provides delivery note records, their receiving
// workflow, and the pure filtering/validation logic around them.
package delivery

import (
	"time"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

// Note records goods arriving against a purchase order.
type Note struct {
	ID     id.ID  `db:"id" json:"id"`
	NoteNo string `db:"note_no" json:"noteNo"`

	// OrderNo references the purchase order this delivery fulfills
	OrderNo string `db:"order_no" json:"orderNo"`

	SupplierID   string `db:"supplier_id" json:"supplierId"`
	SupplierName string `db:"supplier_name" json:"supplierName"`

	Status Status `db:"status" json:"status"`

	TotalAmount types.MinorUnits `db:"total_amount" json:"totalAmount"`

	// DeliveryDate is when the supplier shipped
	DeliveryDate time.Time `db:"delivery_date" json:"deliveryDate"`

	// ReceivedDate is set by the receive step; nil until then
	ReceivedDate *time.Time `db:"received_date" json:"receivedDate,omitempty"`

	Receiver   string `db:"receiver" json:"receiver,omitempty"`
	Department string `db:"department" json:"department,omitempty"`

	// QualityPassed is set by the inspection step and gates archiving
	QualityPassed bool `db:"quality_passed" json:"qualityPassed"`

	Remark string `db:"remark" json:"remark,omitempty"`

	Items []Item `db:"-" json:"items"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ItemStatus is the per-line receiving decision.
type ItemStatus string

const (
	// ItemStatusNone - no decision recorded yet
	ItemStatusNone ItemStatus = ""
	// ItemStatusReceived - line accepted into stock
	ItemStatusReceived ItemStatus = "received"
	// ItemStatusRejected - line refused, nothing taken
	ItemStatusRejected ItemStatus = "rejected"
)

// Item is one line of a delivery note.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ItemCode string `db:"item_code" json:"itemCode"`
	ItemName string `db:"item_name" json:"itemName"`
	Unit     string `db:"unit" json:"unit,omitempty"`

	OrderedQuantity   types.Quantity `db:"ordered_quantity" json:"orderedQuantity"`
	DeliveredQuantity types.Quantity `db:"delivered_quantity" json:"deliveredQuantity"`
	ReceivedQuantity  types.Quantity `db:"received_quantity" json:"receivedQuantity"`

	Status ItemStatus `db:"status" json:"status,omitempty"`
}

// ceiling returns the maximum quantity a line may be received at:
// the delivered quantity, or the ordered quantity when no delivered
// quantity was recorded.
func (i Item) ceiling() types.Quantity {
	if i.DeliveredQuantity.IsPositive() {
		return i.DeliveredQuantity
	}
	return i.OrderedQuantity
}
