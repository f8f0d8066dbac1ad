package handler

import (
	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/presentation/http/dto/request"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the EOD ledger and product analytics
type ReportHandler struct {
	till *service.TillService
}

// NewReportHandler creates a new report handler
func NewReportHandler(till *service.TillService) *ReportHandler {
	return &ReportHandler{till: till}
}

// Summary returns today's EOD figures
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.till.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "EOD summary retrieved successfully", summary)
}

// Bills lists today's bills, newest first
func (h *ReportHandler) Bills(c *gin.Context) {
	result, err := h.till.ListBills(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Reset clears today's ledger. It needs {"confirm": true}.
func (h *ReportHandler) Reset(c *gin.Context) {
	var req request.ConfirmRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	summary, err := h.till.ResetEOD(c.Request.Context(), req.Confirm || isConfirmed(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "EOD data reset successfully", summary)
}

// Products aggregates product sales for ?period=daily|weekly
func (h *ReportHandler) Products(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")
	report, err := h.till.ProductReport(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product report generated", gin.H{
		"period":   period,
		"products": report,
	})
}
