package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docverify/internal/csvexport"
	"docverify/internal/document"
	"docverify/internal/domain"
	"docverify/internal/middleware"
	"docverify/internal/service"
	"docverify/internal/xlsxexport"
)

// ComparisonHandler handles document comparison endpoints.
type ComparisonHandler struct {
	comparisonService service.ComparisonService
	maxUploadBytes    int64
}

// NewComparisonHandler creates a new ComparisonHandler. maxUploadBytes of
// zero disables the upload size check.
func NewComparisonHandler(comparisonService service.ComparisonService, maxUploadBytes int64) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService, maxUploadBytes: maxUploadBytes}
}

// CompareRequest is the JSON body of a comparison.
type CompareRequest struct {
	TemplateID   string                 `json:"template_id"`
	SystemData   map[string]interface{} `json:"system_data"`
	DocumentPath string                 `json:"document_path"`
	DocumentText string                 `json:"document_text"`
}

// FieldResult is one field of a comparison response.
type FieldResult struct {
	Required        bool    `json:"required"`
	ExtractedValue  *string `json:"extracted_value"`
	NormalizedValue *string `json:"normalized_value"`
	ExpectedValue   *string `json:"expected_value"`
	Passed          bool    `json:"passed"`
	Score           float64 `json:"score"`
	Message         string  `json:"message"`
	Confidence      float64 `json:"confidence"`
	RawMatch        *string `json:"raw_match"`
}

// ReportResponse is a comparison report with fields keyed by field name.
// FieldOrder lists the names in template order.
type ReportResponse struct {
	ReportID    string                 `json:"report_id"`
	TemplateID  string                 `json:"template_id"`
	Description string                 `json:"description"`
	Status      domain.ReportStatus    `json:"status"`
	Summary     domain.ReportSummary   `json:"summary"`
	GeneratedAt time.Time              `json:"generated_at"`
	FieldOrder  []string               `json:"field_order"`
	Fields      map[string]FieldResult `json:"fields"`
}

// NewReportResponse converts a report to its API shape.
func NewReportResponse(r *domain.ComparisonReport) *ReportResponse {
	resp := &ReportResponse{
		ReportID:    r.ReportID.String(),
		TemplateID:  r.TemplateID,
		Description: r.Description,
		Status:      r.Status,
		Summary:     r.Summary,
		GeneratedAt: r.GeneratedAt,
		FieldOrder:  make([]string, 0, len(r.Fields)),
		Fields:      make(map[string]FieldResult, len(r.Fields)),
	}
	for _, f := range r.Fields {
		resp.FieldOrder = append(resp.FieldOrder, f.FieldName)
		resp.Fields[f.FieldName] = FieldResult{
			Required:        f.Required,
			ExtractedValue:  f.ExtractedValue,
			NormalizedValue: f.NormalizedValue,
			ExpectedValue:   f.ExpectedValue,
			Passed:          f.Passed,
			Score:           f.Score,
			Message:         f.Message,
			Confidence:      f.Confidence,
			RawMatch:        f.RawMatch,
		}
	}
	return resp
}

// Compare handles POST /api/v1/comparisons
// @Summary Compare a document against system data
// @Description Extracts template fields from the document text or referenced document and compares them with system_data
// @Tags comparisons
// @Accept json
// @Produce json
// @Param body body CompareRequest true "Comparison request"
// @Success 200 {object} APIResponse{data=ReportResponse} "Comparison report"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 404 {object} APIResponse "Template not found"
// @Failure 422 {object} APIResponse "Document or template configuration error"
// @Router /comparisons [post]
func (h *ComparisonHandler) Compare(c *gin.Context) {
	input, ok := h.bindCompareInput(c)
	if !ok {
		return
	}
	report, err := h.comparisonService.Compare(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, NewReportResponse(report))
}

// Upload handles POST /api/v1/comparisons/upload
// @Summary Compare an uploaded document against system data
// @Tags comparisons
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document (txt, pdf, docx, doc, odt, rtf, html, jpg, png, tiff)"
// @Param system_data formData string true "JSON object of expected field values"
// @Param template_id formData string false "Template id"
// @Success 200 {object} APIResponse{data=ReportResponse} "Comparison report"
// @Failure 400 {object} APIResponse "Missing file or invalid system_data"
// @Failure 413 {object} APIResponse "File too large"
// @Router /comparisons/upload [post]
func (h *ComparisonHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	systemData, err := service.DecodeSystemData([]byte(c.PostForm("system_data")))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "failed to read uploaded file")
		return
	}

	report, err := h.comparisonService.Compare(c.Request.Context(), service.CompareInput{
		TemplateID: c.PostForm("template_id"),
		SystemData: systemData,
		Document:   document.Source{Content: content, Filename: header.Filename},
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, NewReportResponse(report))
}

// Export handles POST /api/v1/comparisons/export
// @Summary Compare and download the report
// @Tags comparisons
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param body body CompareRequest true "Comparison request"
// @Success 200 {file} file "Report file"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /comparisons/export [post]
func (h *ComparisonHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	input, ok := h.bindCompareInput(c)
	if !ok {
		return
	}
	report, err := h.comparisonService.Compare(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(report.TemplateID, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := xlsxexport.Write(c.Writer, report); err != nil {
			logExportError(c, format, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := writeCSV(c.Writer, report); err != nil {
		logExportError(c, format, err)
	}
}

// writeCSV writes the BOM, the header row and one row per field.
func writeCSV(w io.Writer, report *domain.ComparisonReport) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteReport(report); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// logExportError records a failed download. Headers are already sent, so the
// client only sees a truncated body.
func logExportError(c *gin.Context, format string, err error) {
	requestID, _ := c.Get(middleware.RequestIDKey)
	log.Printf("[%s] comparisonHandler.Export: writing %s report: %v", requestID, format, err)
}

func (h *ComparisonHandler) bindCompareInput(c *gin.Context) (service.CompareInput, bool) {
	var req CompareRequest
	if err := decodeJSON(c.Request.Body, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return service.CompareInput{}, false
	}
	if req.SystemData == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "system_data is required")
		return service.CompareInput{}, false
	}
	if req.DocumentPath == "" && req.DocumentText == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "one of document_path or document_text is required")
		return service.CompareInput{}, false
	}
	systemData, err := service.SystemData(req.SystemData)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return service.CompareInput{}, false
	}
	return service.CompareInput{
		TemplateID: req.TemplateID,
		SystemData: systemData,
		Document:   document.Source{Text: req.DocumentText, Path: req.DocumentPath},
	}, true
}

// decodeJSON keeps numbers as json.Number so long identifiers sent as JSON
// numbers are not rounded through float64.
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}
