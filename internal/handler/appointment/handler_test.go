package appointment

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

func (m *mockService) Book(ctx context.Context, actor model.Actor, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	args := m.Called(ctx, actor, req)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockService) ListForPatient(ctx context.Context, id model.PatientID) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]*model.AppointmentView)
	return list, args.Error(1)
}

func (m *mockService) ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]*model.AppointmentView)
	return list, args.Error(1)
}

func (m *mockService) SetStatus(ctx context.Context, actor model.Actor, id model.AppointmentID, status model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, actor, id, status)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context, actor model.Actor) ([]*model.AppointmentView, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]*model.AppointmentView)
	return list, args.Error(1)
}

func setup(t *testing.T) (*handlertest.Server, *mockService) {
	svc := &mockService{}
	srv := handlertest.New(t, func(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
		NewHandler(svc).RegisterRoutes(r, auth)
	})
	return srv, svc
}

func TestBook(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Book", mock.Anything, *handlertest.Patient(5), mock.MatchedBy(func(req *model.BookAppointmentRequest) bool {
		return req.DoctorID == 2 && req.Department == "cardiology"
	})).Return(&model.Appointment{ID: 10, PatientID: 5, DoctorID: 2, Status: model.AppointmentStatusPending}, nil)

	w := srv.Do(http.MethodPost, "/api/v1/patient/appointments/book", `{"doctor_id":2,"department":"cardiology"}`, handlertest.Patient(5))
	require.Equal(t, http.StatusCreated, w.Code)

	var apt model.Appointment
	handlertest.Decode(t, w, &apt)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
}

func TestBook_DoctorsCannotBook(t *testing.T) {
	srv, _ := setup(t)
	w := srv.Do(http.MethodPost, "/api/v1/patient/appointments/book", `{"doctor_id":2,"department":"x"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListForDoctor_UsesTokenIdentity(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListForDoctor", mock.Anything, model.DoctorID(2)).Return([]*model.AppointmentView{}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/doctor/appointments", "", handlertest.Doctor(2))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSetStatus_ConflictOnSecondDecision(t *testing.T) {
	srv, svc := setup(t)
	svc.On("SetStatus", mock.Anything, *handlertest.Doctor(2), model.AppointmentID(10), model.AppointmentStatusAccepted).
		Return(nil, apperrors.Conflict("appointment has already been decided"))

	w := srv.Do(http.MethodPut, "/api/v1/doctor/appointments/10", `{"status":"ACCEPTED"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	srv, svc := setup(t)
	svc.On("SetStatus", mock.Anything, *handlertest.Doctor(2), model.AppointmentID(10), model.AppointmentStatus("DONE")).
		Return(nil, apperrors.BadRequest("status must be ACCEPTED or REJECTED", nil))

	w := srv.Do(http.MethodPut, "/api/v1/doctor/appointments/10", `{"status":"DONE"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAll_Admin(t *testing.T) {
	srv, svc := setup(t)
	doctorName, patientName := "Dr. Perera", "Asha"
	svc.On("ListAll", mock.Anything, *handlertest.Admin()).Return([]*model.AppointmentView{
		{Appointment: model.Appointment{ID: 4, PatientID: 5, DoctorID: 2}, DoctorName: &doctorName, PatientName: &patientName},
	}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/admin/appointments", "", handlertest.Admin())
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.AppointmentView
	handlertest.Decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Dr. Perera", *list[0].DoctorName)
	assert.Equal(t, "Asha", *list[0].PatientName)
}

func TestListAll_DoctorForbidden(t *testing.T) {
	srv, svc := setup(t)

	w := srv.Do(http.MethodGet, "/api/v1/admin/appointments", "", handlertest.Doctor(2))
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
}
