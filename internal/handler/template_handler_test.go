package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/handler"
	"docverify/mocks"
)

func TestTemplateHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockComparisonService)
	h := handler.NewTemplateHandler(mockSvc)
	mockSvc.On("ListTemplates", mock.Anything).Return([]string{"loan_contract", "promise_letter"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/templates", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"loan_contract", "promise_letter"}, data["templates"])
	mockSvc.AssertExpectations(t)
}

func TestTemplateHandler_List_StoreError(t *testing.T) {
	mockSvc := new(mocks.MockComparisonService)
	h := handler.NewTemplateHandler(mockSvc)
	mockSvc.On("ListTemplates", mock.Anything).Return(nil, errors.New("bucket unreachable"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/templates", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTemplateHandler_Get(t *testing.T) {
	mockSvc := new(mocks.MockComparisonService)
	h := handler.NewTemplateHandler(mockSvc)

	tpl, err := domain.NewTemplate("promise_letter", "Customer promise letter", []domain.FieldSpec{
		{
			Name:       "customer_name",
			Required:   true,
			Extraction: domain.StrategyConfig{Strategy: "regex", Params: map[string]any{"pattern": `姓名[:：]\s*(\S+)`}},
			Comparison: domain.StrategyConfig{Strategy: "exact"},
		},
	})
	require.NoError(t, err)
	mockSvc.On("GetTemplate", mock.Anything, "promise_letter").Return(tpl, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/templates/promise_letter", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "promise_letter"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "promise_letter", data["template_id"])
	fields := data["fields"].([]interface{})
	require.Len(t, fields, 1)
	field := fields[0].(map[string]interface{})
	assert.Equal(t, "customer_name", field["name"])
	assert.Equal(t, "regex", field["extractor"].(map[string]interface{})["strategy"])
}

func TestTemplateHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockComparisonService)
	h := handler.NewTemplateHandler(mockSvc)
	mockSvc.On("GetTemplate", mock.Anything, "nope").
		Return(nil, fmt.Errorf("%w: nope", domain.ErrTemplateNotFound))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/templates/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", decodeResponse(t, w).Error.Code)
}
