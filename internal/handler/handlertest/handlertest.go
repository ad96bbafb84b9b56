// Package handlertest drives handlers through a real gin engine with signed tokens.
package handlertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/auth"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Server struct {
	t      *testing.T
	engine *gin.Engine
	jwt    auth.JWTService
}

// New mounts routes under /api/v1 with the same auth middleware the router uses.
func New(t *testing.T, mount func(r *gin.RouterGroup, auth *middleware.AuthMiddleware)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	engine := gin.New()
	mount(engine.Group("/api/v1"), middleware.NewAuthMiddleware(jwtSvc))
	return &Server{t: t, engine: engine, jwt: jwtSvc}
}

// Do sends a request as actor; a nil actor sends no Authorization header.
func (s *Server) Do(method, path, body string, actor *model.Actor) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if actor != nil {
		token, _, err := s.jwt.GenerateAccessToken(actor.Role, actor.ID)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the response envelope, decoding data into out when out is non-nil.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) httputil.Response {
	t.Helper()
	var raw struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return httputil.Response{Status: raw.Status, Message: raw.Message}
}

func Patient(id int64) *model.Actor { return &model.Actor{Role: model.RolePatient, ID: id} }
func Doctor(id int64) *model.Actor  { return &model.Actor{Role: model.RoleDoctor, ID: id} }
func Admin() *model.Actor           { return &model.Actor{Role: model.RoleAdmin} }
