package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	testCases := map[int]string{
		200: "2xx",
		201: "2xx",
		304: "3xx",
		404: "4xx",
		429: "4xx",
		500: "5xx",
		99:  "unknown",
		600: "unknown",
	}
	for code, want := range testCases {
		assert.Equal(t, want, classifyStatus(code), "status %d", code)
	}
}

func TestRecordRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRequest("GET", "GET /products/{$}", 200, 10*time.Millisecond)
	m.RecordRequest("GET", "GET /products/{$}", 200, 20*time.Millisecond)
	m.RecordRequest("POST", "POST /review/add_review", 403, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "GET /products/{$}", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "POST /review/add_review", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordRequest("GET", "GET /{$}", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"))
	assert.True(t, strings.Contains(body, `status="2xx"`))
}
