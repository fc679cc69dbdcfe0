// Package batch provides the stock batch entity and its lifecycle classification.
package batch

import (
	"time"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

// Batch represents a physical lot of one item at one warehouse location.
// Quantity reflects what currently remains in the lot; it only ever
// decreases as allocations against the batch are applied.
type Batch struct {
	ID      id.ID  `db:"id" json:"id"`
	BatchNo string `db:"batch_no" json:"batchNo"`

	ItemCode string `db:"item_code" json:"itemCode"`
	ItemName string `db:"item_name" json:"itemName"`

	WarehouseID string `db:"warehouse_id" json:"warehouseId"`
	Location    string `db:"location" json:"location,omitempty"`

	InboundDate    time.Time  `db:"inbound_date" json:"inboundDate"`
	ProductionDate *time.Time `db:"production_date" json:"productionDate,omitempty"`
	ExpiryDate     *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	Quantity  types.Quantity   `db:"quantity" json:"quantity"`
	UnitPrice types.MinorUnits `db:"unit_price" json:"unitPrice"`

	SupplierID string `db:"supplier_id" json:"supplierId,omitempty"`
	Remark     string `db:"remark" json:"remark,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Status is the lifecycle state of a batch, derived from its dates and
// remaining quantity. It is never stored; Classify computes it on demand.
type Status string

const (
	// StatusNormal - batch has stock and no expiry concern
	StatusNormal Status = "normal"
	// StatusWarning - batch expires within the warning window
	StatusWarning Status = "warning"
	// StatusExpired - expiry date is in the past (and stock remains)
	StatusExpired Status = "expired"
	// StatusExhausted - remaining quantity is zero
	StatusExhausted Status = "exhausted"
)

// StatusInfo pairs the derived status with presentation hints.
// Severity is a display concern only (maps to a UI tag color).
type StatusInfo struct {
	Status   Status `json:"status"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// Classified is a batch together with its derived status.
type Classified struct {
	Batch
	StatusInfo
}
