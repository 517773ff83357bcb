package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docverify/internal/handler"
	"docverify/internal/router"
	"docverify/mocks"
)

func setup(svc *mocks.MockComparisonService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(
		[]string{"http://localhost:3000"},
		handler.NewComparisonHandler(svc, 0),
		handler.NewTemplateHandler(svc),
		handler.NewHealthHandler(nil),
	)
}

func TestRouter_Routes(t *testing.T) {
	svc := new(mocks.MockComparisonService)
	svc.On("ListTemplates", mock.Anything).Return([]string{"promise_letter"}, nil)
	r := setup(svc)

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/templates"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := setup(new(mocks.MockComparisonService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/files", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Preflight(t *testing.T) {
	r := setup(new(mocks.MockComparisonService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/comparisons", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
