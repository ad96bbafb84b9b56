package doctor

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

func doctorResult(args mock.Arguments) (*model.Doctor, error) {
	d, _ := args.Get(0).(*model.Doctor)
	return d, args.Error(1)
}

func doctorsResult(args mock.Arguments) ([]*model.Doctor, error) {
	d, _ := args.Get(0).([]*model.Doctor)
	return d, args.Error(1)
}

func (m *mockService) ListApproved(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	return doctorsResult(m.Called(ctx, specialization))
}

func (m *mockService) GetDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.Doctor, error) {
	return doctorResult(m.Called(ctx, actor, id))
}

func (m *mockService) Me(ctx context.Context, actor model.Actor) (*model.Doctor, error) {
	return doctorResult(m.Called(ctx, actor))
}

func (m *mockService) UpdateMe(ctx context.Context, actor model.Actor, update model.DoctorUpdate) (*model.Doctor, error) {
	return doctorResult(m.Called(ctx, actor, update))
}

func (m *mockService) AdminList(ctx context.Context, status model.DoctorStatus) ([]*model.Doctor, error) {
	return doctorsResult(m.Called(ctx, status))
}

func (m *mockService) SetStatus(ctx context.Context, actor model.Actor, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error) {
	return doctorResult(m.Called(ctx, actor, id, status))
}

func (m *mockService) UpsertProfile(ctx context.Context, actor model.Actor, req *model.UpsertDoctorProfileRequest) (*model.DoctorProfile, error) {
	args := m.Called(ctx, actor, req)
	p, _ := args.Get(0).(*model.DoctorProfile)
	return p, args.Error(1)
}

func (m *mockService) GetProfile(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.DoctorProfile, error) {
	args := m.Called(ctx, actor, id)
	p, _ := args.Get(0).(*model.DoctorProfile)
	return p, args.Error(1)
}

func setup(t *testing.T) (*handlertest.Server, *mockService) {
	svc := &mockService{}
	srv := handlertest.New(t, func(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
		NewHandler(svc).RegisterRoutes(r, auth)
	})
	return srv, svc
}

func TestListDoctors(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListApproved", mock.Anything, "cardiology").
		Return([]*model.Doctor{{ID: 1, Name: "Dr A", Status: model.DoctorStatusApproved}}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/doctors?specialization=cardiology", "", handlertest.Patient(1))
	require.Equal(t, http.StatusOK, w.Code)

	var doctors []model.Doctor
	handlertest.Decode(t, w, &doctors)
	assert.Len(t, doctors, 1)
}

func TestListDoctors_RequiresToken(t *testing.T) {
	srv, _ := setup(t)
	w := srv.Do(http.MethodGet, "/api/v1/doctors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDoctor_HiddenIsNotFound(t *testing.T) {
	srv, svc := setup(t)
	svc.On("GetDoctor", mock.Anything, *handlertest.Patient(1), model.DoctorID(9)).
		Return(nil, apperrors.NotFound("doctor", nil))

	w := srv.Do(http.MethodGet, "/api/v1/doctors/9", "", handlertest.Patient(1))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDoctor_BadID(t *testing.T) {
	srv, _ := setup(t)
	w := srv.Do(http.MethodGet, "/api/v1/doctors/abc", "", handlertest.Patient(1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMe_DoctorOnly(t *testing.T) {
	srv, svc := setup(t)

	w := srv.Do(http.MethodPut, "/api/v1/doctors/me", `{"name":"New"}`, handlertest.Patient(1))
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.On("UpdateMe", mock.Anything, *handlertest.Doctor(2), mock.AnythingOfType("model.DoctorUpdate")).
		Return(&model.Doctor{ID: 2, Name: "New"}, nil)
	w = srv.Do(http.MethodPut, "/api/v1/doctors/me", `{"name":"New"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminSetStatus(t *testing.T) {
	srv, svc := setup(t)
	svc.On("SetStatus", mock.Anything, *handlertest.Admin(), model.DoctorID(3), model.DoctorStatusApproved).
		Return(&model.Doctor{ID: 3, Status: model.DoctorStatusApproved}, nil)

	w := srv.Do(http.MethodPut, "/api/v1/admin/doctors/3/status", `{"status":"APPROVED"}`, handlertest.Admin())
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.Do(http.MethodPut, "/api/v1/admin/doctors/3/status", `{"status":"APPROVED"}`, handlertest.Doctor(3))
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNumberOfCalls(t, "SetStatus", 1)
}

func TestAdminListDoctors_RejectsUnknownStatus(t *testing.T) {
	srv, svc := setup(t)

	w := srv.Do(http.MethodGet, "/api/v1/admin/doctors?status=maybe", "", handlertest.Admin())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("AdminList", mock.Anything, model.DoctorStatusPending).Return([]*model.Doctor{}, nil)
	w = srv.Do(http.MethodGet, "/api/v1/admin/doctors?status=pending", "", handlertest.Admin())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProfile(t *testing.T) {
	srv, svc := setup(t)
	svc.On("GetProfile", mock.Anything, *handlertest.Patient(1), model.DoctorID(4)).Return(&model.DoctorProfile{DoctorID: 4}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/doctor-profiles/4", "", handlertest.Patient(1))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProfile_UnapprovedDoctorNotFound(t *testing.T) {
	srv, svc := setup(t)
	svc.On("GetProfile", mock.Anything, *handlertest.Patient(1), model.DoctorID(4)).Return(nil, apperrors.NotFound("doctor", nil))

	w := srv.Do(http.MethodGet, "/api/v1/doctor-profiles/4", "", handlertest.Patient(1))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
