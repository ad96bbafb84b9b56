package patient

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/handler/handlertest"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetProfile(ctx context.Context, actor model.Actor) (*model.Patient, error) {
	args := m.Called(ctx, actor)
	p, _ := args.Get(0).(*model.Patient)
	return p, args.Error(1)
}

func (m *mockService) UpdateProfile(ctx context.Context, actor model.Actor, update model.PatientUpdate) (*model.Patient, error) {
	args := m.Called(ctx, actor, update)
	p, _ := args.Get(0).(*model.Patient)
	return p, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context, actor model.Actor) ([]*model.Patient, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]*model.Patient)
	return list, args.Error(1)
}

func (m *mockService) AddCaregiver(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.CaregiverRequest) (*model.Caregiver, error) {
	args := m.Called(ctx, actor, patientID, req)
	cg, _ := args.Get(0).(*model.Caregiver)
	return cg, args.Error(1)
}

func (m *mockService) ListCaregivers(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.Caregiver, error) {
	args := m.Called(ctx, actor, patientID)
	list, _ := args.Get(0).([]*model.Caregiver)
	return list, args.Error(1)
}

func (m *mockService) UpdateCaregiver(ctx context.Context, actor model.Actor, id model.CaregiverID, update model.CaregiverUpdate) (*model.Caregiver, error) {
	args := m.Called(ctx, actor, id, update)
	cg, _ := args.Get(0).(*model.Caregiver)
	return cg, args.Error(1)
}

func (m *mockService) AddChronicDisease(ctx context.Context, actor model.Actor, patientID model.PatientID, req *model.ChronicDiseaseRequest) (*model.ChronicDisease, error) {
	args := m.Called(ctx, actor, patientID, req)
	d, _ := args.Get(0).(*model.ChronicDisease)
	return d, args.Error(1)
}

func (m *mockService) ListChronicDiseases(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.ChronicDisease, error) {
	args := m.Called(ctx, actor, patientID)
	list, _ := args.Get(0).([]*model.ChronicDisease)
	return list, args.Error(1)
}

func (m *mockService) UpdateChronicDisease(ctx context.Context, actor model.Actor, id model.ChronicDiseaseID, update model.ChronicDiseaseUpdate) (*model.ChronicDisease, error) {
	args := m.Called(ctx, actor, id, update)
	d, _ := args.Get(0).(*model.ChronicDisease)
	return d, args.Error(1)
}

func (m *mockService) Tips(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]string, error) {
	args := m.Called(ctx, actor, patientID)
	tips, _ := args.Get(0).([]string)
	return tips, args.Error(1)
}

func setup(t *testing.T) (*handlertest.Server, *mockService) {
	svc := &mockService{}
	srv := handlertest.New(t, func(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
		NewHandler(svc).RegisterRoutes(r, auth)
	})
	return srv, svc
}

func TestGetProfile(t *testing.T) {
	srv, svc := setup(t)
	svc.On("GetProfile", mock.Anything, *handlertest.Patient(5)).
		Return(&model.Patient{ID: 5, Name: "Ann", PasswordHash: "secret-hash"}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/patients/profile", "", handlertest.Patient(5))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")

	w = srv.Do(http.MethodGet, "/api/v1/patients/profile", "", handlertest.Doctor(5))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateProfile_RejectsBlankName(t *testing.T) {
	srv, svc := setup(t)

	w := srv.Do(http.MethodPut, "/api/v1/patients/profile", `{"name":"  "}`, handlertest.Patient(5))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddCaregiver(t *testing.T) {
	srv, svc := setup(t)
	svc.On("AddCaregiver", mock.Anything, *handlertest.Patient(5), model.PatientID(5), mock.AnythingOfType("*model.CaregiverRequest")).
		Return(&model.Caregiver{ID: 1, PatientID: 5, Name: "Bob"}, nil)

	w := srv.Do(http.MethodPost, "/api/v1/caregivers/5", `{"name":"Bob","relation":"brother"}`, handlertest.Patient(5))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListCaregivers_Forbidden(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListCaregivers", mock.Anything, *handlertest.Doctor(2), model.PatientID(5)).
		Return(nil, apperrors.Forbidden(""))

	w := srv.Do(http.MethodGet, "/api/v1/caregivers/5", "", handlertest.Doctor(2))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateChronicDisease(t *testing.T) {
	srv, svc := setup(t)
	svc.On("UpdateChronicDisease", mock.Anything, *handlertest.Doctor(2), model.ChronicDiseaseID(8), mock.AnythingOfType("model.ChronicDiseaseUpdate")).
		Return(&model.ChronicDisease{ID: 8, DiseaseName: "asthma"}, nil)

	w := srv.Do(http.MethodPut, "/api/v1/chronic-diseases/update/8", `{"disease_name":"asthma"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetTips(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Tips", mock.Anything, *handlertest.Patient(5), model.PatientID(5)).
		Return([]string{"Drink water"}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/tips/5", "", handlertest.Patient(5))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tips []string `json:"tips"`
	}
	handlertest.Decode(t, w, &body)
	assert.Equal(t, []string{"Drink water"}, body.Tips)
}

func TestListAllPatients_Admin(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListAll", mock.Anything, *handlertest.Admin()).
		Return([]*model.Patient{{ID: 5, Name: "Ann", PasswordHash: "secret-hash"}}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/admin/patients", "", handlertest.Admin())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ann")
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestListAllPatients_RejectsNonAdmins(t *testing.T) {
	srv, svc := setup(t)

	for _, actor := range []*model.Actor{handlertest.Patient(5), handlertest.Doctor(2)} {
		w := srv.Do(http.MethodGet, "/api/v1/admin/patients", "", actor)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
	w := srv.Do(http.MethodGet, "/api/v1/admin/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
}
