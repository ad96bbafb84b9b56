package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Patient)
	return p, args.Error(1)
}

func (m *mockService) RegisterDoctor(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(*model.Doctor)
	return d, args.Error(1)
}

func (m *mockService) RegisterPharmacy(ctx context.Context, req *model.RegisterPharmacyRequest) (*model.Pharmacy, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Pharmacy)
	return p, args.Error(1)
}

func (m *mockService) login(args mock.Arguments) (*model.LoginResponse, error) {
	resp, _ := args.Get(0).(*model.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockService) LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *mockService) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *mockService) LoginPharmacy(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func (m *mockService) LoginAdmin(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error) {
	return m.login(m.Called(ctx, req))
}

func setup() (*gin.Engine, *mockService) {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
	svc := &mockService{}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r, svc
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterPatient(t *testing.T) {
	r, svc := setup()
	svc.On("RegisterPatient", mock.Anything, mock.MatchedBy(func(req *model.RegisterPatientRequest) bool {
		return req.Email == "ann@example.com"
	})).Return(&model.Patient{ID: 1, Name: "Ann", Email: "ann@example.com", PasswordHash: "hash"}, nil)

	w := post(r, "/api/v1/patients/register", `{"name":"Ann","email":"ann@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	svc.AssertExpectations(t)
}

func TestRegisterPatient_InvalidBody(t *testing.T) {
	r, svc := setup()

	w := post(r, "/api/v1/patients/register", `{"name":"Ann","email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RegisterPatient", mock.Anything, mock.Anything)
}

func TestRegisterDoctor_Conflict(t *testing.T) {
	r, svc := setup()
	svc.On("RegisterDoctor", mock.Anything, mock.Anything).Return(nil, apperrors.Conflict("email already registered"))

	w := post(r, "/api/v1/doctors/register", `{"name":"Dr B","email":"b@example.com","specialization":"cardiology","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginDoctor_NotApprovedCarriesStatus(t *testing.T) {
	r, svc := setup()
	svc.On("LoginDoctor", mock.Anything, mock.Anything).Return(nil, apperrors.NotApproved("PENDING"))

	w := post(r, "/api/v1/doctors/login", `{"email":"b@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]interface{}{"status": "PENDING"}, resp.Data)
}

func TestLoginPatient(t *testing.T) {
	r, svc := setup()
	svc.On("LoginPatient", mock.Anything, &model.LoginRequest{Email: "ann@example.com", Password: "secret123"}).
		Return(&model.LoginResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), Role: model.RolePatient}, nil)

	w := post(r, "/api/v1/patients/login", `{"email":"ann@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)
}

func TestLoginAdmin_InvalidCredentials(t *testing.T) {
	r, svc := setup()
	svc.On("LoginAdmin", mock.Anything, mock.Anything).Return(nil, apperrors.InvalidCredentials())

	w := post(r, "/api/v1/admin/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
