package dto

import (
	"time"

	"stockpick/internal/domain/batch"
)

// BatchResponse represents a classified batch in API responses.
type BatchResponse struct {
	ID             string     `json:"id"`
	BatchNo        string     `json:"batchNo"`
	ItemCode       string     `json:"itemCode"`
	ItemName       string     `json:"itemName"`
	WarehouseID    string     `json:"warehouseId"`
	Location       string     `json:"location,omitempty"`
	InboundDate    time.Time  `json:"inboundDate"`
	ProductionDate *time.Time `json:"productionDate,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	Quantity       float64    `json:"quantity"`
	UnitPrice      string     `json:"unitPrice"`
	SupplierID     string     `json:"supplierId,omitempty"`
	Remark         string     `json:"remark,omitempty"`

	AgeDays  int    `json:"ageDays"`
	Status   string `json:"status"`
	Label    string `json:"statusLabel"`
	Severity string `json:"statusSeverity"`
}

// FromClassifiedBatch converts a classified batch to a response DTO.
// now anchors the age calculation to the same moment the classification
// used.
func FromClassifiedBatch(c batch.Classified, now time.Time) BatchResponse {
	return BatchResponse{
		ID:             c.ID.String(),
		BatchNo:        c.BatchNo,
		ItemCode:       c.ItemCode,
		ItemName:       c.ItemName,
		WarehouseID:    c.WarehouseID,
		Location:       c.Location,
		InboundDate:    c.InboundDate,
		ProductionDate: c.ProductionDate,
		ExpiryDate:     c.ExpiryDate,
		Quantity:       c.Quantity.Float64(),
		UnitPrice:      FormatAmount(c.UnitPrice),
		SupplierID:     c.SupplierID,
		Remark:         c.Remark,
		AgeDays:        batch.Age(c.InboundDate, now),
		Status:         string(c.Status),
		Label:          c.Label,
		Severity:       c.Severity,
	}
}

// BatchListResponse wraps a batch listing.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}
