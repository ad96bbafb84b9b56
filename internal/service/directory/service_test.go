package directory

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/internal/repository/mocks"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

type recordingAuditor struct {
	entries []audit.Entry
}

func (r *recordingAuditor) Record(_ context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func newService() (*Service, *mocks.DoctorRepository, *mocks.DoctorProfileRepository, *recordingAuditor) {
	doctors, profiles, auditor := &mocks.DoctorRepository{}, &mocks.DoctorProfileRepository{}, &recordingAuditor{}
	svc := NewService(doctors, profiles, time.Minute, time.Minute, auditor, metrics.New("test"), zerolog.Nop())
	return svc, doctors, profiles, auditor
}

func TestListApproved_CachesUntilStatusChange(t *testing.T) {
	svc, doctors, _, _ := newService()
	filter := model.DoctorFilter{Specialization: "Cardiology", Status: model.DoctorStatusApproved}
	doctors.On("List", mock.Anything, filter).Return([]*model.Doctor{{ID: 1}}, nil).Twice()
	doctors.On("GetByID", mock.Anything, model.DoctorID(2)).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusPending}, nil)
	doctors.On("UpdateStatus", mock.Anything, model.DoctorID(2), model.DoctorStatusApproved).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusApproved}, nil)

	ctx := context.Background()
	_, err := svc.ListApproved(ctx, "Cardiology")
	require.NoError(t, err)
	_, err = svc.ListApproved(ctx, "cardiology ")
	require.NoError(t, err)
	doctors.AssertNumberOfCalls(t, "List", 1)

	_, err = svc.SetStatus(ctx, model.Actor{Role: model.RoleAdmin}, 2, model.DoctorStatusApproved)
	require.NoError(t, err)

	_, err = svc.ListApproved(ctx, "Cardiology")
	require.NoError(t, err)
	doctors.AssertNumberOfCalls(t, "List", 2)
}

func TestGetDoctor_HidesPendingFromPatients(t *testing.T) {
	svc, doctors, _, _ := newService()
	doctors.On("GetByID", mock.Anything, model.DoctorID(2)).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusPending}, nil)

	_, err := svc.GetDoctor(context.Background(), model.Actor{Role: model.RolePatient, ID: 1}, 2)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	doctor, err := svc.GetDoctor(context.Background(), model.Actor{Role: model.RoleDoctor, ID: 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorID(2), doctor.ID)
}

func TestSetStatus_AuditsTransition(t *testing.T) {
	svc, doctors, _, auditor := newService()
	doctors.On("GetByID", mock.Anything, model.DoctorID(2)).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusPending}, nil)
	doctors.On("UpdateStatus", mock.Anything, model.DoctorID(2), model.DoctorStatusRejected).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusRejected}, nil)

	_, err := svc.SetStatus(context.Background(), model.Actor{Role: model.RoleAdmin}, 2, model.DoctorStatusRejected)
	require.NoError(t, err)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "PENDING", auditor.entries[0].From)
	assert.Equal(t, "REJECTED", auditor.entries[0].To)
}

func TestSetStatus_RejectsPending(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.SetStatus(context.Background(), model.Actor{Role: model.RoleAdmin}, 2, model.DoctorStatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetProfile_EmptyWhenMissing(t *testing.T) {
	svc, doctors, profiles, _ := newService()
	doctors.On("GetByID", mock.Anything, model.DoctorID(2)).Return(&model.Doctor{ID: 2, Status: model.DoctorStatusApproved}, nil)
	profiles.On("GetByDoctorID", mock.Anything, model.DoctorID(2)).Return(nil, repository.ErrNotFound)

	profile, err := svc.GetProfile(context.Background(), model.Actor{Role: model.RolePatient, ID: 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorID(2), profile.DoctorID)
	assert.Empty(t, profile.LanguagesSpoken)
	assert.Nil(t, profile.Bio)
}

func TestGetProfile_UnapprovedDoctorVisibility(t *testing.T) {
	for _, status := range []model.DoctorStatus{model.DoctorStatusPending, model.DoctorStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			svc, doctors, profiles, _ := newService()
			doctors.On("GetByID", mock.Anything, model.DoctorID(2)).Return(&model.Doctor{ID: 2, Status: status}, nil)
			profiles.On("GetByDoctorID", mock.Anything, model.DoctorID(2)).Return(&model.DoctorProfile{DoctorID: 2}, nil)
			ctx := context.Background()

			for _, actor := range []model.Actor{
				{Role: model.RolePatient, ID: 1},
				{Role: model.RoleDoctor, ID: 3},
				{Role: model.RolePharmacy, ID: 2},
			} {
				_, err := svc.GetProfile(ctx, actor, 2)
				assert.ErrorIs(t, err, ErrDoctorNotFound, "role %s", actor.Role)
			}

			for _, actor := range []model.Actor{{Role: model.RoleAdmin}, {Role: model.RoleDoctor, ID: 2}} {
				profile, err := svc.GetProfile(ctx, actor, 2)
				require.NoError(t, err)
				assert.Equal(t, model.DoctorID(2), profile.DoctorID)
			}
		})
	}
}

func TestUpsertProfile_TrimsLanguages(t *testing.T) {
	svc, _, profiles, _ := newService()
	profiles.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.DoctorProfile) bool {
		return p.DoctorID == 2 && len(p.LanguagesSpoken) == 2
	})).Return(nil)

	_, err := svc.UpsertProfile(context.Background(), model.Actor{Role: model.RoleDoctor, ID: 2}, &model.UpsertDoctorProfileRequest{
		LanguagesSpoken: []string{" English", "", "Sinhala"},
	})
	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestUpdateMe_EmptyUpdate(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.UpdateMe(context.Background(), model.Actor{Role: model.RoleDoctor, ID: 2}, model.DoctorUpdate{})
	assert.ErrorIs(t, err, ErrNothingToSave)
}
