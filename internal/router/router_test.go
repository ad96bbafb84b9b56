package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/auth"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

type fakePublic struct{}

func (fakePublic) RegisterRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc) {
	r.POST("/patients/login", limiter, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"token": "t"}) })
}

type fakeOps struct{}

func (fakeOps) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health/live", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
}

type fakeProtected struct{}

func (fakeProtected) RegisterRoutes(r *gin.RouterGroup, a *middleware.AuthMiddleware) {
	r.GET("/patients/profile", a.Authenticate(), func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
}

func newTestRouter(jwtSvc auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		fakePublic{},
		fakeOps{},
		[]Handler{fakeProtected{}},
		metrics.New("test"),
		zerolog.Nop(),
		RouterConfig{
			RateLimit:    rate.Every(time.Hour),
			RateBurst:    2,
			CORSConfig:   middleware.DefaultCORSConfig(nil),
			MaxBodyBytes: 1 << 10,
		},
	)
	r.Setup()
	return r.Engine()
}

func serve(e http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndHeaders(t *testing.T) {
	e := newTestRouter(auth.NewJWTService("s", time.Hour))

	w := serve(e, http.MethodGet, "/api/v1/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	e := newTestRouter(auth.NewJWTService("s", time.Hour))

	w := serve(e, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	jwtSvc := auth.NewJWTService("s", time.Hour)
	e := newTestRouter(jwtSvc)

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/api/v1/patients/profile", nil).Code)

	token, _, _ := jwtSvc.GenerateAccessToken(model.RolePatient, 1)
	w := serve(e, http.MethodGet, "/api/v1/patients/profile", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	e := newTestRouter(auth.NewJWTService("s", time.Hour))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/v1/patients/login", nil).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/v1/patients/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/api/v1/patients/login", nil).Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	e := newTestRouter(auth.NewJWTService("s", time.Hour))

	w := serve(e, http.MethodGet, "/api/v1/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
