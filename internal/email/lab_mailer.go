package email

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/pkg/messaging"
)

// LabMailer tells the laboratory about every uploaded test report.
type LabMailer struct {
	broker     messaging.MessageBroker
	mail       Service
	labAddress string
	patients   repository.PatientRepository
	doctors    repository.DoctorRepository
	logger     zerolog.Logger
}

func NewLabMailer(
	broker messaging.MessageBroker,
	mail Service,
	labAddress string,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	logger zerolog.Logger,
) *LabMailer {
	return &LabMailer{
		broker:     broker,
		mail:       mail,
		labAddress: labAddress,
		patients:   patients,
		doctors:    doctors,
		logger:     logger.With().Str("component", "lab-mailer").Logger(),
	}
}

// Start subscribes to lab_report.created; messages are handled until ctx is done.
func (m *LabMailer) Start(ctx context.Context) error {
	topic := messaging.Topic(model.EventLabReportCreated)
	if err := m.broker.Subscribe(ctx, topic, func(payload []byte) error {
		return m.Handle(ctx, payload)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	m.logger.Info().Str("topic", topic).Msg("lab mailer started")
	return nil
}

func (m *LabMailer) Handle(ctx context.Context, payload []byte) error {
	var event model.LabReportCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("invalid lab report event: %w", err)
	}

	subject := fmt.Sprintf("[Lab] %s", event.Title)
	if err := m.mail.SendCustom(ctx, m.labAddress, subject, m.body(ctx, &event)); err != nil {
		return err
	}
	m.logger.Info().
		Int64("report_id", int64(event.ReportID)).
		Int64("notification_id", int64(event.NotificationID)).
		Msg("lab notified")
	return nil
}

// body falls back to ids when a name lookup fails; the mail still goes out.
func (m *LabMailer) body(ctx context.Context, e *model.LabReportCreatedEvent) string {
	patient := fmt.Sprintf("patient #%d", e.PatientID)
	if p, err := m.patients.GetByID(ctx, e.PatientID); err == nil {
		patient = fmt.Sprintf("%s <%s>", p.Name, p.Email)
	}
	doctor := fmt.Sprintf("doctor #%d", e.DoctorID)
	if d, err := m.doctors.GetByID(ctx, e.DoctorID); err == nil {
		doctor = fmt.Sprintf("Dr. %s (%s)", d.Name, d.Specialization)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A new test report was uploaded by the %s.\n\n", e.UploadedBy)
	fmt.Fprintf(&b, "Report:       %s (#%d)\n", e.ReportTitle, e.ReportID)
	fmt.Fprintf(&b, "Patient:      %s\n", patient)
	fmt.Fprintf(&b, "Doctor:       %s\n", doctor)
	fmt.Fprintf(&b, "Notification: #%d\n", e.NotificationID)
	fmt.Fprintf(&b, "Uploaded at:  %s\n", e.CreatedAt.Format("2006-01-02 15:04 MST"))
	return b.String()
}
