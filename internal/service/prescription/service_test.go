package prescription

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/internal/repository/mocks"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, audit.Entry) {}

func newService() (*Service, *mocks.PrescriptionRepository, *mocks.AppointmentRepository) {
	repo, appointments := &mocks.PrescriptionRepository{}, &mocks.AppointmentRepository{}
	return NewService(repo, appointments, nopAuditor{}, zerolog.Nop()), repo, appointments
}

var (
	doctorD  = model.Actor{Role: model.RoleDoctor, ID: 7}
	patientP = model.Actor{Role: model.RolePatient, ID: 3}
	patientQ = model.Actor{Role: model.RolePatient, ID: 4}
)

func appointmentWith(status model.AppointmentStatus) *model.Appointment {
	return &model.Appointment{ID: 1, PatientID: 3, DoctorID: 7, Status: status}
}

func view() *model.PrescriptionView {
	return &model.PrescriptionView{Prescription: model.Prescription{ID: 5, AppointmentID: 1, DoctorID: 7, PatientID: 3}}
}

func TestCreate_AcceptedAppointment(t *testing.T) {
	svc, repo, appointments := newService()
	notes := "take rest"
	appointments.On("GetByID", mock.Anything, model.AppointmentID(1)).Return(appointmentWith(model.AppointmentStatusAccepted), nil)
	repo.On("GetByAppointmentID", mock.Anything, model.AppointmentID(1)).Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Prescription) bool {
		return p.PatientID == 3 && p.DoctorID == 7 && *p.Notes == "take rest"
	})).Return(nil)

	p, err := svc.Create(context.Background(), doctorD, &model.CreatePrescriptionRequest{AppointmentID: 1, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, model.PatientID(3), p.PatientID)
}

func TestCreate_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		actor   model.Actor
		status  model.AppointmentStatus
		wantErr error
	}{
		{"pending", doctorD, model.AppointmentStatusPending, ErrInvalidAppointmentState},
		{"rejected", doctorD, model.AppointmentStatusRejected, ErrInvalidAppointmentState},
		{"other doctor", model.Actor{Role: model.RoleDoctor, ID: 8}, model.AppointmentStatusAccepted, ErrForbidden},
		{"patient with same id", model.Actor{Role: model.RolePatient, ID: 7}, model.AppointmentStatusAccepted, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, appointments := newService()
			appointments.On("GetByID", mock.Anything, model.AppointmentID(1)).Return(appointmentWith(tt.status), nil)

			_, err := svc.Create(context.Background(), tt.actor, &model.CreatePrescriptionRequest{AppointmentID: 1})
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_Duplicate(t *testing.T) {
	svc, repo, appointments := newService()
	appointments.On("GetByID", mock.Anything, model.AppointmentID(1)).Return(appointmentWith(model.AppointmentStatusAccepted), nil)
	repo.On("GetByAppointmentID", mock.Anything, model.AppointmentID(1)).Return(&model.Prescription{ID: 5}, nil)

	_, err := svc.Create(context.Background(), doctorD, &model.CreatePrescriptionRequest{AppointmentID: 1})
	assert.ErrorIs(t, err, ErrDuplicatePrescription)
}

func TestCreate_DuplicateFromIndex(t *testing.T) {
	svc, repo, appointments := newService()
	appointments.On("GetByID", mock.Anything, model.AppointmentID(1)).Return(appointmentWith(model.AppointmentStatusAccepted), nil)
	repo.On("GetByAppointmentID", mock.Anything, model.AppointmentID(1)).Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Create(context.Background(), doctorD, &model.CreatePrescriptionRequest{AppointmentID: 1})
	assert.ErrorIs(t, err, ErrDuplicatePrescription)
}

func TestGet_PatientAccess(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, model.PrescriptionID(5)).Return(view(), nil)

	_, err := svc.Get(context.Background(), patientP, 5)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), patientQ, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddMedicine(t *testing.T) {
	svc, repo, _ := newService()
	dosage := "500mg"
	repo.On("GetByID", mock.Anything, model.PrescriptionID(5)).Return(view(), nil)
	repo.On("AddMedicine", mock.Anything, mock.MatchedBy(func(l *model.MedicineLine) bool {
		return l.Name == "Paracetamol" && *l.Dosage == "500mg" && l.PrescriptionID == 5
	})).Return(nil)

	_, err := svc.AddMedicine(context.Background(), doctorD, 5, &model.AddMedicineRequest{Name: " Paracetamol ", Dosage: &dosage})
	require.NoError(t, err)

	_, err = svc.AddMedicine(context.Background(), doctorD, 5, &model.AddMedicineRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrBlankMedicineName)

	_, err = svc.AddMedicine(context.Background(), model.Actor{Role: model.RoleDoctor, ID: 8}, 5, &model.AddMedicineRequest{Name: "Ibuprofen"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateMedicine(t *testing.T) {
	svc, repo, _ := newService()
	freq := "twice daily"
	repo.On("GetMedicine", mock.Anything, model.MedicineID(9)).Return(&model.MedicineLine{ID: 9, PrescriptionID: 5}, nil)
	repo.On("GetByID", mock.Anything, model.PrescriptionID(5)).Return(view(), nil)
	repo.On("UpdateMedicine", mock.Anything, model.MedicineID(9), model.MedicineUpdate{Frequency: &freq}).
		Return(&model.MedicineLine{ID: 9, Frequency: &freq}, nil)

	line, err := svc.UpdateMedicine(context.Background(), doctorD, 9, model.MedicineUpdate{Frequency: &freq})
	require.NoError(t, err)
	assert.Equal(t, "twice daily", *line.Frequency)
}

func TestUpdateMedicine_EmptyIsNotFound(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.UpdateMedicine(context.Background(), doctorD, 9, model.MedicineUpdate{})
	assert.ErrorIs(t, err, ErrMedicineNotFound)
	repo.AssertNotCalled(t, "UpdateMedicine", mock.Anything, mock.Anything, mock.Anything)
}

func TestListForPatient_OtherPatient(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.ListForPatient(context.Background(), patientQ, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}
