package handler

import (
	"strconv"

	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const csvContentType = "text/csv; charset=utf-8"

// ExportHandler serves CSV exports and the saved export history
type ExportHandler struct {
	till *service.TillService
}

// NewExportHandler creates a new export handler
func NewExportHandler(till *service.TillService) *ExportHandler {
	return &ExportHandler{till: till}
}

// Create renders a CSV export of :kind and downloads it
func (h *ExportHandler) Create(c *gin.Context) {
	kind, ok := enum.ParseExportKind(c.Param("kind"))
	if !ok || kind == enum.ExportKindAutoSaveBills {
		response.BadRequest(c, "Invalid export type. Use bills, eod, product_report or all_data")
		return
	}

	file, err := h.till.Export(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, file)
}

// List returns the saved export history
func (h *ExportHandler) List(c *gin.Context) {
	entries, err := h.till.ListExports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Exports retrieved successfully", entries)
}

// Download returns a saved export by its history index
func (h *ExportHandler) Download(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid export index")
		return
	}

	file, err := h.till.GetExport(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendCSV(c, file)
}

func sendCSV(c *gin.Context, file *entity.ExportFile) {
	c.Header("X-Export-Rows", strconv.Itoa(file.Rows))
	response.Attachment(c, csvContentType, file.FileName, []byte(file.Content))
}
