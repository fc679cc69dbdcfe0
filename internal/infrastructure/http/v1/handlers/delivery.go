package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockpick/internal/core/apperror"
	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
	"stockpick/internal/domain/delivery"
	"stockpick/internal/infrastructure/http/v1/dto"
)

// DeliveryHandler handles delivery note endpoints.
type DeliveryHandler struct {
	*BaseHandler
	service *delivery.Service
}

// NewDeliveryHandler creates a new delivery note handler.
func NewDeliveryHandler(service *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// List handles GET /api/v1/delivery-notes. All query parameters are
// optional and AND-combined.
func (h *DeliveryHandler) List(c *gin.Context) {
	criteria, ok := h.parseCriteria(c)
	if !ok {
		return
	}
	page := delivery.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	notes, err := h.service.List(c.Request.Context(), criteria, page)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.DeliveryNoteListResponse{
		Items: make([]dto.DeliveryNoteResponse, 0, len(notes)),
	}
	for _, n := range notes {
		resp.Items = append(resp.Items, dto.FromDeliveryNote(n))
	}
	h.OK(c, resp)
}

// Get handles GET /api/v1/delivery-notes/:id.
func (h *DeliveryHandler) Get(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.service.GetByID(c.Request.Context(), noteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

// Receive handles POST /api/v1/delivery-notes/:id/receive.
func (h *DeliveryHandler) Receive(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	var req dto.ReceiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	form := delivery.HeaderForm{
		ReceivedDate: req.ReceivedDate,
		Receiver:     req.Receiver,
		Department:   req.Department,
	}

	decisions := make(map[id.ID]delivery.Decision, len(req.Items))
	for _, item := range req.Items {
		lineID, err := id.Parse(item.LineID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid line id").WithDetail("line_id", item.LineID))
			return
		}
		d := delivery.Decision{Status: delivery.ItemStatus(item.Status)}
		if item.Quantity != nil {
			d.Quantity = *item.Quantity
			d.HasQuantity = true
		}
		decisions[lineID] = d
	}

	note, err := h.service.Receive(c.Request.Context(), noteID, form, decisions)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

// Inspect handles POST /api/v1/delivery-notes/:id/inspect.
func (h *DeliveryHandler) Inspect(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	var req dto.InspectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	note, err := h.service.Inspect(c.Request.Context(), noteID, req.Passed)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

// Archive handles POST /api/v1/delivery-notes/:id/archive.
func (h *DeliveryHandler) Archive(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.service.Archive(c.Request.Context(), noteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

// Warehouse handles POST /api/v1/delivery-notes/:id/warehouse.
func (h *DeliveryHandler) Warehouse(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.service.Warehouse(c.Request.Context(), noteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

// Reject handles POST /api/v1/delivery-notes/:id/reject.
func (h *DeliveryHandler) Reject(c *gin.Context) {
	noteID, ok := h.parseNoteID(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	note, err := h.service.Reject(c.Request.Context(), noteID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDeliveryNote(*note))
}

func (h *DeliveryHandler) parseNoteID(c *gin.Context) (id.ID, bool) {
	noteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid note id").WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return noteID, true
}

func (h *DeliveryHandler) parseCriteria(c *gin.Context) (delivery.Criteria, bool) {
	criteria := delivery.Criteria{
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Supplier: strings.TrimSpace(c.Query("supplier")),
		Status:   delivery.Status(c.Query("status")),
	}

	if criteria.Status != "" && !criteria.Status.Valid() {
		h.Error(c, apperror.NewValidation("unknown status").WithDetail("status", c.Query("status")))
		return criteria, false
	}

	var ok bool
	if criteria.DeliveryFrom, ok = h.ParseDateQuery(c, "deliveryFrom"); !ok {
		return criteria, false
	}
	if criteria.DeliveryTo, ok = h.ParseDateQuery(c, "deliveryTo"); !ok {
		return criteria, false
	}
	if criteria.ReceivedFrom, ok = h.ParseDateQuery(c, "receivedFrom"); !ok {
		return criteria, false
	}
	if criteria.ReceivedTo, ok = h.ParseDateQuery(c, "receivedTo"); !ok {
		return criteria, false
	}

	if criteria.AmountMin, ok = h.parseAmountQuery(c, "amountMin"); !ok {
		return criteria, false
	}
	if criteria.AmountMax, ok = h.parseAmountQuery(c, "amountMax"); !ok {
		return criteria, false
	}
	if msg := delivery.ValidateAmountRange(criteria.AmountMin, criteria.AmountMax); msg != "" {
		h.Error(c, apperror.NewValidation(msg))
		return criteria, false
	}

	return criteria, true
}

func (h *DeliveryHandler) parseAmountQuery(c *gin.Context, key string) (*types.MinorUnits, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	amount, err := dto.ParseAmount(val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid amount").WithDetail("parameter", key))
		return nil, false
	}
	return &amount, true
}
