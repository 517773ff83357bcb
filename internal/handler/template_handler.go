package handler

import (
	"github.com/gin-gonic/gin"

	"docverify/internal/service"
)

// TemplateHandler exposes the configured document templates.
type TemplateHandler struct {
	comparisonService service.ComparisonService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(comparisonService service.ComparisonService) *TemplateHandler {
	return &TemplateHandler{comparisonService: comparisonService}
}

// List handles GET /api/v1/templates
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {object} APIResponse{data=[]string} "Template ids"
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	ids, err := h.comparisonService.ListTemplates(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"templates": ids})
}

// Get handles GET /api/v1/templates/:id
// @Summary Get a template definition
// @Tags templates
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} APIResponse{data=domain.Template} "Template"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.comparisonService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tpl)
}
