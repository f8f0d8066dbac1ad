package handler

import (
	"net/http"

	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/presentation/http/dto/request"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// BillHandler finalizes orders into bills and serves their receipts
type BillHandler struct {
	till    *service.TillService
	printer *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(till *service.TillService, printer *service.PrinterService) *BillHandler {
	return &BillHandler{till: till, printer: printer}
}

// Process validates the payment, books the bill and prints its receipt.
// A printer failure is reported as a warning; the bill stays booked.
func (h *BillHandler) Process(c *gin.Context) {
	result, err := h.till.ProcessPayment(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.printer.Print(result.Receipt); err != nil {
		response.Created(c, "Bill processed but printing failed", gin.H{
			"bill":    result.Bill,
			"receipt": result.Receipt,
			"warning": err.Error(),
		})
		return
	}
	response.Created(c, "Bill processed successfully", result)
}

// Save books the bill without printing
func (h *BillHandler) Save(c *gin.Context) {
	var req request.SaveBillRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	result, err := h.till.SaveBillOnly(c.Request.Context(), req.ConfirmPending)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Bill saved successfully", result)
}

// Preview renders the receipt of the in-progress order
func (h *BillHandler) Preview(c *gin.Context) {
	receipt, err := h.till.PreviewReceipt()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderReceipt(c, receipt)
}

// Receipt renders the receipt of one of today's bills
func (h *BillHandler) Receipt(c *gin.Context) {
	receipt, err := h.till.Receipt(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.renderReceipt(c, receipt)
}

// Print sends the receipt of one of today's bills to the printer
func (h *BillHandler) Print(c *gin.Context) {
	receipt, err := h.till.PrintBill(c.Request.Context(), c.Param("number"))
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}

func (h *BillHandler) renderReceipt(c *gin.Context, receipt *entity.Receipt) {
	var q request.ReceiptQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	switch q.Format {
	case "html":
		page, err := service.FormatReceiptHTML(receipt)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	case "text":
		c.String(http.StatusOK, service.FormatReceiptText(receipt, 0))
	default:
		response.OK(c, "Receipt generated", receipt)
	}
}
