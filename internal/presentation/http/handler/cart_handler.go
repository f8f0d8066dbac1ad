package handler

import (
	"strconv"

	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/presentation/http/dto/request"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles the active order
type CartHandler struct {
	till *service.TillService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(till *service.TillService) *CartHandler {
	return &CartHandler{till: till}
}

// Get returns the active order with totals and payment state
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved successfully", h.till.Cart())
}

// AddItem adds one unit of a menu item or of a named ad-hoc item
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if req.MenuItemID != "" {
		view, err := h.till.AddMenuItem(uuid.MustParse(req.MenuItemID))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Item added to order", view)
		return
	}

	price := entity.ParseMoney(req.Price.String())
	response.OK(c, "Item added to order", h.till.AddItem(req.Name, price))
}

// UpdateQuantity changes the quantity of the line at :index by delta
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid line index")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.till.UpdateQuantity(index, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

// SetPacking toggles the packing surcharge
func (h *CartHandler) SetPacking(c *gin.Context) {
	var req request.PackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	response.OK(c, "Packing updated", h.till.SetPacking(*req.Enabled))
}

// SetCustomer records the optional customer details
func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	response.OK(c, "Customer updated", h.till.SetCustomer(req.Name, req.Phone))
}

// Clear discards the order. A non-empty order needs ?confirm=true.
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.till.ClearCart(isConfirmed(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cleared", view)
}
