package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func newRouter(p Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"}))

	r := gin.New()
	NewHandler(p, reg).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r := newRouter(stubPinger{})
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/health/live").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/health/ready").Code)

	w := get(r, "/api/v1/health/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "probe_total")
}

func TestHealth_NotReadyWithoutDatabase(t *testing.T) {
	r := newRouter(stubPinger{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/v1/health/ready").Code)
}
