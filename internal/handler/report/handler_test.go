package report

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

func reports(args mock.Arguments) ([]*model.TestReport, error) {
	list, _ := args.Get(0).([]*model.TestReport)
	return list, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, actor model.Actor, req *model.CreateTestReportRequest) (*model.ReportCreation, error) {
	args := m.Called(ctx, actor, req)
	rc, _ := args.Get(0).(*model.ReportCreation)
	return rc, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, actor model.Actor, id model.TestReportID) (*model.TestReport, error) {
	args := m.Called(ctx, actor, id)
	r, _ := args.Get(0).(*model.TestReport)
	return r, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, actor model.Actor, id model.TestReportID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockService) ListForPatient(ctx context.Context, actor model.Actor, id model.PatientID) ([]*model.TestReport, error) {
	return reports(m.Called(ctx, actor, id))
}

func (m *mockService) ListForDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) ([]*model.TestReport, error) {
	return reports(m.Called(ctx, actor, id))
}

func (m *mockService) ListNotifications(ctx context.Context, actor model.Actor, status *model.NotificationStatus) ([]*model.LabNotificationView, error) {
	args := m.Called(ctx, actor, status)
	list, _ := args.Get(0).([]*model.LabNotificationView)
	return list, args.Error(1)
}

func (m *mockService) UpdateNotificationStatus(ctx context.Context, actor model.Actor, id model.NotificationID, status model.NotificationStatus) (*model.LabNotification, error) {
	args := m.Called(ctx, actor, id, status)
	n, _ := args.Get(0).(*model.LabNotification)
	return n, args.Error(1)
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
	created := &model.ReportCreation{
		Report:       &model.TestReport{ID: 1, PatientID: 5, DoctorID: 2, Title: "CBC", UploadedBy: model.UploadedByPatient},
		Notification: &model.LabNotification{ID: 7, ReportID: 1, Title: "New Patient Report: CBC", Status: model.NotificationStatusPending},
		Event:        &model.OutboxEvent{EventType: model.EventLabReportCreated},
	}
	svc.On("Create", mock.Anything, *handlertest.Patient(5), mock.AnythingOfType("*model.CreateTestReportRequest")).Return(created, nil)

	body := `{"patient_id":5,"doctor_id":2,"title":"CBC","description":"blood","result":"normal","uploaded_by":"patient"}`
	w := srv.Do(http.MethodPost, "/api/v1/test-reports", body, handlertest.Patient(5))
	require.Equal(t, http.StatusCreated, w.Code)

	var got createResponse
	handlertest.Decode(t, w, &got)
	assert.Equal(t, model.NotificationID(7), got.Notification.ID)
	assert.NotContains(t, w.Body.String(), "lab_report.created")
}

func TestCreate_NotAssigned(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.NotAssigned())

	body := `{"patient_id":5,"doctor_id":2,"title":"CBC","description":"blood","result":"normal","uploaded_by":"patient"}`
	w := srv.Do(http.MethodPost, "/api/v1/test-reports", body, handlertest.Patient(5))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotifications_AdminAndDoctorOnly(t *testing.T) {
	srv, svc := setup(t)
	svc.On("ListNotifications", mock.Anything, *handlertest.Admin(), (*model.NotificationStatus)(nil)).
		Return([]*model.LabNotificationView{}, nil)

	assert.Equal(t, http.StatusOK, srv.Do(http.MethodGet, "/api/v1/test-reports/lab/notifications", "", handlertest.Admin()).Code)
	assert.Equal(t, http.StatusForbidden, srv.Do(http.MethodGet, "/api/v1/test-reports/lab/notifications", "", handlertest.Patient(5)).Code)
}

func TestNotifications_StatusFilter(t *testing.T) {
	srv, svc := setup(t)
	processed := model.NotificationStatusProcessed
	svc.On("ListNotifications", mock.Anything, *handlertest.Doctor(2), &processed).
		Return([]*model.LabNotificationView{}, nil)

	w := srv.Do(http.MethodGet, "/api/v1/test-reports/lab/notifications?status=processed", "", handlertest.Doctor(2))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateNotificationStatus_Backwards(t *testing.T) {
	srv, svc := setup(t)
	svc.On("UpdateNotificationStatus", mock.Anything, *handlertest.Doctor(2), model.NotificationID(7), model.NotificationStatusPending).
		Return(nil, apperrors.Conflict("notification status cannot move backwards"))

	w := srv.Do(http.MethodPut, "/api/v1/test-reports/lab/notifications/7", `{"status":"PENDING"}`, handlertest.Doctor(2))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDelete(t *testing.T) {
	srv, svc := setup(t)
	svc.On("Delete", mock.Anything, *handlertest.Doctor(2), model.TestReportID(1)).Return(nil)

	w := srv.Do(http.MethodDelete, "/api/v1/test-reports/1", "", handlertest.Doctor(2))
	assert.Equal(t, http.StatusOK, w.Code)
}
