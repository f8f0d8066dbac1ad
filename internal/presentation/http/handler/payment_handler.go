package handler

import (
	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/presentation/http/dto/request"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment capture for the active order
type PaymentHandler struct {
	till *service.TillService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(till *service.TillService) *PaymentHandler {
	return &PaymentHandler{till: till}
}

// SelectMethod chooses cash or upi
func (h *PaymentHandler) SelectMethod(c *gin.Context) {
	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.till.SelectPaymentMethod(req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment method selected", view)
}

// SetAmount records the cash tendered
func (h *PaymentHandler) SetAmount(c *gin.Context) {
	var req request.AmountTenderedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	response.OK(c, "Amount updated", h.till.SetAmountTendered(req.Amount.String()))
}

// Change returns the advisory change for the current total
func (h *PaymentHandler) Change(c *gin.Context) {
	response.OK(c, "Change calculated", h.till.Change())
}
