package handler

import (
	reportapp "github.com/erp/console/internal/application/report"
	"github.com/erp/console/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves report exports
type ReportHandler struct {
	BaseHandler
	exportService *reportapp.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(exportService *reportapp.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// ExportKindRequest is the :kind path parameter of an export
type ExportKindRequest struct {
	Kind string `uri:"kind" binding:"required"`
}

// ExportKindsResponse lists what can be exported
type ExportKindsResponse struct {
	Kinds   []string `json:"kinds"`
	Enabled bool     `json:"enabled"`
}

// Kinds lists the exportable record kinds
func (h *ReportHandler) Kinds(c *gin.Context) {
	h.Success(c, ExportKindsResponse{
		Kinds:   reportapp.ExportKinds(),
		Enabled: h.exportService.Enabled(),
	})
}

// Export renders the current snapshot of a kind as CSV and stores it
func (h *ReportHandler) Export(c *gin.Context) {
	var req ExportKindRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.exportService.Export(c.Request.Context(), req.Kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp, resp.Meta, resp.Rows)
}

// ReportRoutes creates the route group for report endpoints
func ReportRoutes(h *ReportHandler) *router.DomainGroup {
	group := router.NewDomainGroup("report", "/reports")

	group.GET("/kinds", h.Kinds).Describe("exportable record kinds")
	group.POST("/:kind/export", h.Export).Describe("export snapshot as CSV to object storage")

	return group
}
