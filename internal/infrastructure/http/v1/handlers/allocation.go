package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpick/internal/domain/allocation"
	"stockpick/internal/infrastructure/http/v1/dto"
)

// AllocationHandler handles batch allocation endpoints.
type AllocationHandler struct {
	*BaseHandler
	service *allocation.Service
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(service *allocation.Service) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Plan handles POST /api/v1/allocations/plan.
// Produces a fulfillment plan without touching stock.
func (h *AllocationHandler) Plan(c *gin.Context) {
	var req dto.PlanAllocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Plan(c.Request.Context(), toPlanRequest(req))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAllocationResult(result))
}

// Apply handles POST /api/v1/allocations/apply.
// Plans and consumes stock in one transaction.
func (h *AllocationHandler) Apply(c *gin.Context) {
	var req dto.PlanAllocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Apply(c.Request.Context(), toPlanRequest(req), req.AllowPartial)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAllocationResult(result))
}

func toPlanRequest(req dto.PlanAllocationRequest) allocation.PlanRequest {
	planReq := allocation.PlanRequest{
		ItemCode:    req.ItemCode,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
	}
	if req.AsOf != nil {
		planReq.Now = *req.AsOf
	}
	return planReq
}
