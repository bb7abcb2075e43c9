package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSegmentTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSegmentService(emptySalesRepo{}, emptyCatalogRepo{})
	handler := NewSegmentHandler(svc)

	router := gin.New()
	router.GET("/api/sales/segment-distribution", handler.GetSegmentDistribution)
	router.POST("/api/sales/segment-distribution", handler.GetSegmentDistribution)
	router.POST("/api/sales/segment-evolution", handler.GetSegmentEvolution)
	router.POST("/api/sellin/by-segment", handler.GetSellinBySegment)
	router.POST("/api/stock/by-segment", handler.GetStockBySegment)
	return router
}

func TestGetSegmentDistributionQueryTransport(t *testing.T) {
	router := newSegmentTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/api/sales/segment-distribution?startDate=2024-01-01&endDate=2024-01-31&segmentType=category&code13refs=111,222&pharmacyIds=ph1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Distributions []json.RawMessage `json:"distributions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Distributions)
	assert.Empty(t, body.Distributions)
}

func TestGetSegmentDistributionQueryMissingDatesReturns400(t *testing.T) {
	router := newSegmentTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/sales/segment-distribution?segmentType=category", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSegmentDistributionBodyTransport(t *testing.T) {
	router := newSegmentTestRouter()

	rec := postJSON(t, router, "/api/sales/segment-distribution",
		`{"startDate":"2024-01-01","endDate":"2024-01-31","segmentType":"category"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSegmentEvolutionWithoutComparisonReturns400(t *testing.T) {
	router := newSegmentTestRouter()

	rec := postJSON(t, router, "/api/sales/segment-evolution",
		`{"startDate":"2024-01-01","endDate":"2024-01-31","segmentType":"category"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "comparison start and end date are required", body["error"])
}

func TestGetSellinBySegmentEmptyScope(t *testing.T) {
	router := newSegmentTestRouter()

	rec := postJSON(t, router, "/api/sellin/by-segment",
		`{"startDate":"2024-01-01","endDate":"2024-01-31","segmentType":"universe"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"distributions":[]}`, rec.Body.String())
}

func TestGetStockBySegmentNeedsNoPeriod(t *testing.T) {
	router := newSegmentTestRouter()

	rec := postJSON(t, router, "/api/stock/by-segment", `{"segmentType":"category"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"distributions":[]}`, rec.Body.String())
}

func TestParseStringListForms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got []string
	router := gin.New()
	router.GET("/t", func(c *gin.Context) {
		got = parseStringList(c, "codes")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t?codes=a&codes=b,c&codes=%20d%20", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	req = httptest.NewRequest(http.MethodGet, "/t", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, got)
}
