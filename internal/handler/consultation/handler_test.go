package consultation

import (
	"context"
	"errors"
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

func one(args mock.Arguments) (*model.Consultation, error) {
	c, _ := args.Get(0).(*model.Consultation)
	return c, args.Error(1)
}

func many(args mock.Arguments) ([]*model.Consultation, error) {
	list, _ := args.Get(0).([]*model.Consultation)
	return list, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, actor model.Actor, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	return one(m.Called(ctx, actor, req))
}

func (m *mockService) ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.Consultation, error) {
	return many(m.Called(ctx, id))
}

func (m *mockService) ListForPatient(ctx context.Context, id model.PatientID) ([]*model.Consultation, error) {
	return many(m.Called(ctx, id))
}

func (m *mockService) Get(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error) {
	return one(m.Called(ctx, actor, id))
}

func (m *mockService) Accept(ctx context.Context, actor model.Actor, id model.ConsultationID, req *model.AcceptConsultationRequest) (*model.Consultation, error) {
	return one(m.Called(ctx, actor, id, req))
}

func (m *mockService) Reject(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error) {
	return one(m.Called(ctx, actor, id))
}

func setup(t *testing.T) (*handlertest.Server, *mockService) {
	svc := &mockService{}
	srv := handlertest.New(t, func(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
		NewHandler(svc).RegisterRoutes(r, auth)
	})
	return srv, svc
}

func TestCreate(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Create", mock.Anything, *handlertest.Patient(5), mock.AnythingOfType("*model.CreateConsultationRequest")).
		Return(&model.Consultation{ID: 1, PatientID: 5, DoctorID: 2, Status: model.ConsultationStatusPending}, nil)

	body := `{"doctor_id":2,"reason":"checkup","preferred_datetime":"2024-05-01T10:00:00Z"}`
	w := srv.Do(http.MethodPost, "/api/v1/consultants", body, handlertest.Patient(5))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreate_MissingReason(t *testing.T) {
	srv, svc := setup(t)

	w := srv.Do(http.MethodPost, "/api/v1/consultants", `{"doctor_id":2,"preferred_datetime":"2024-05-01T10:00:00Z"}`, handlertest.Patient(5))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept(t *testing.T) {
	srv, svc := setup(t)
	link := "https://meet.google.com/abc-defg-hij"
	svc.On("Accept", mock.Anything, *handlertest.Doctor(2), model.ConsultationID(1), &model.AcceptConsultationRequest{
		StartTime: "2024-05-01 10:00",
		EndTime:   "2024-05-01 10:30",
	}).Return(&model.Consultation{ID: 1, Status: model.ConsultationStatusAccepted, MeetingLink: &link}, nil)

	w := srv.Do(http.MethodPut, "/api/v1/consultants/1/accept", `{"start_time":"2024-05-01 10:00","end_time":"2024-05-01 10:30"}`, handlertest.Doctor(2))
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Consultation
	handlertest.Decode(t, w, &got)
	require.NotNil(t, got.MeetingLink)
	assert.Equal(t, link, *got.MeetingLink)
}

func TestAccept_CalendarFailureIsBadGateway(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Accept", mock.Anything, mock.Anything, model.ConsultationID(1), mock.Anything).
		Return(nil, apperrors.ExternalService("calendar", errors.New("timeout")))

	w := srv.Do(http.MethodPut, "/api/v1/consultants/1/accept", `{"start_time":"2024-05-01 10:00","end_time":"2024-05-01 10:30"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestReject_PatientForbidden(t *testing.T) {
	srv, svc := setup(t)
	w := srv.Do(http.MethodPut, "/api/v1/consultants/1/reject", "", handlertest.Patient(5))
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything)
}

func TestListForPatient(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListForPatient", mock.Anything, model.PatientID(5)).Return([]*model.Consultation{{ID: 1}}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/consultants/patient", "", handlertest.Patient(5))
	assert.Equal(t, http.StatusOK, w.Code)
}
