package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stockpick/internal/domain/batch"
	"stockpick/internal/infrastructure/http/v1/dto"
)

// BatchHandler handles stock batch endpoints.
type BatchHandler struct {
	*BaseHandler
	service *batch.Service
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(service *batch.Service) *BatchHandler {
	return &BatchHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// List handles GET /api/v1/batches.
// Batches are returned with their lifecycle status evaluated at request time.
func (h *BatchHandler) List(c *gin.Context) {
	filter := batch.ListFilter{
		ItemCode:     strings.TrimSpace(c.Query("itemCode")),
		WarehouseID:  strings.TrimSpace(c.Query("warehouseId")),
		ExcludeEmpty: c.Query("excludeEmpty") == "true",
		Limit:        h.ParseIntQuery(c, "limit", 100),
		Offset:       h.ParseIntQuery(c, "offset", 0),
	}

	now := time.Now()
	classified, err := h.service.List(c.Request.Context(), filter, now)
	if err != nil {
		h.Error(c, err)
		return
	}
	classified = batch.FilterByStatus(classified, batch.Status(c.Query("status")))

	resp := dto.BatchListResponse{
		Items: make([]dto.BatchResponse, 0, len(classified)),
	}
	for _, cb := range classified {
		resp.Items = append(resp.Items, dto.FromClassifiedBatch(cb, now))
	}
	h.OK(c, resp)
}

// GetByNumber handles GET /api/v1/batches/:batchNo.
func (h *BatchHandler) GetByNumber(c *gin.Context) {
	batchNo := c.Param("batchNo")

	now := time.Now()
	cb, err := h.service.GetByNumber(c.Request.Context(), batchNo, now)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromClassifiedBatch(*cb, now))
}

// ListExpiring handles GET /api/v1/batches/expiring.
// Returns batches whose remaining shelf life is within the warning window,
// nearest expiry first.
func (h *BatchHandler) ListExpiring(c *gin.Context) {
	warningDays := h.ParseIntQuery(c, "warningDays", batch.DefaultWarningDays)
	filter := batch.ListFilter{
		WarehouseID:  strings.TrimSpace(c.Query("warehouseId")),
		ExcludeEmpty: true,
		Limit:        h.ParseIntQuery(c, "limit", 100),
		Offset:       h.ParseIntQuery(c, "offset", 0),
	}

	now := time.Now()
	classified, err := h.service.ListExpiring(c.Request.Context(), filter, warningDays, now)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.BatchListResponse{
		Items: make([]dto.BatchResponse, 0, len(classified)),
	}
	for _, cb := range classified {
		resp.Items = append(resp.Items, dto.FromClassifiedBatch(cb, now))
	}
	h.OK(c, resp)
}
