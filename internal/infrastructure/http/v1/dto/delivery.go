package dto

import (
	"time"

	"stockpick/internal/core/types"
	"stockpick/internal/domain/delivery"
)

// DeliveryItemResponse represents one note line.
type DeliveryItemResponse struct {
	LineID            string  `json:"lineId"`
	LineNo            int     `json:"lineNo"`
	ItemCode          string  `json:"itemCode"`
	ItemName          string  `json:"itemName"`
	Unit              string  `json:"unit,omitempty"`
	OrderedQuantity   float64 `json:"orderedQuantity"`
	DeliveredQuantity float64 `json:"deliveredQuantity"`
	ReceivedQuantity  float64 `json:"receivedQuantity"`
	Status            string  `json:"status,omitempty"`
}

// DeliveryNoteResponse represents a delivery note.
type DeliveryNoteResponse struct {
	ID            string                 `json:"id"`
	NoteNo        string                 `json:"noteNo"`
	OrderNo       string                 `json:"orderNo"`
	SupplierID    string                 `json:"supplierId"`
	SupplierName  string                 `json:"supplierName"`
	Status        string                 `json:"status"`
	TotalAmount   string                 `json:"totalAmount"`
	DeliveryDate  time.Time              `json:"deliveryDate"`
	ReceivedDate  *time.Time             `json:"receivedDate,omitempty"`
	Receiver      string                 `json:"receiver,omitempty"`
	Department    string                 `json:"department,omitempty"`
	QualityPassed bool                   `json:"qualityPassed"`
	Remark        string                 `json:"remark,omitempty"`
	Items         []DeliveryItemResponse `json:"items"`
}

// FromDeliveryNote converts a note to a response DTO.
func FromDeliveryNote(n delivery.Note) DeliveryNoteResponse {
	items := make([]DeliveryItemResponse, len(n.Items))
	for i, item := range n.Items {
		items[i] = DeliveryItemResponse{
			LineID:            item.LineID.String(),
			LineNo:            item.LineNo,
			ItemCode:          item.ItemCode,
			ItemName:          item.ItemName,
			Unit:              item.Unit,
			OrderedQuantity:   item.OrderedQuantity.Float64(),
			DeliveredQuantity: item.DeliveredQuantity.Float64(),
			ReceivedQuantity:  item.ReceivedQuantity.Float64(),
			Status:            string(item.Status),
		}
	}

	return DeliveryNoteResponse{
		ID:            n.ID.String(),
		NoteNo:        n.NoteNo,
		OrderNo:       n.OrderNo,
		SupplierID:    n.SupplierID,
		SupplierName:  n.SupplierName,
		Status:        string(n.Status),
		TotalAmount:   FormatAmount(n.TotalAmount),
		DeliveryDate:  n.DeliveryDate,
		ReceivedDate:  n.ReceivedDate,
		Receiver:      n.Receiver,
		Department:    n.Department,
		QualityPassed: n.QualityPassed,
		Remark:        n.Remark,
		Items:         items,
	}
}

// DeliveryNoteListResponse wraps a note listing.
type DeliveryNoteListResponse struct {
	Items []DeliveryNoteResponse `json:"items"`
}

// ReceiveItemRequest is one line decision of a receive call.
type ReceiveItemRequest struct {
	LineID   string          `json:"lineId" binding:"required"`
	Quantity *types.Quantity `json:"quantity"`
	Status   string          `json:"status"`
}

// ReceiveRequest carries the receiving form.
type ReceiveRequest struct {
	ReceivedDate *time.Time           `json:"receivedDate"`
	Receiver     string               `json:"receiver"`
	Department   string               `json:"department"`
	Items        []ReceiveItemRequest `json:"items"`
}

// InspectRequest records the quality check outcome.
type InspectRequest struct {
	Passed bool `json:"passed"`
}

// RejectRequest carries the rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}
