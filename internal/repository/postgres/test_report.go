package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const (
	testReportColumns   = `report_id, patient_id, doctor_id, doctor_patient_id, title, description, result, uploaded_by, created_at`
	notificationColumns = `notification_id, report_id, patient_id, doctor_id, title, status, created_at, updated_at`
)

type testReportRepository struct {
	BaseRepository
}

func NewTestReportRepository(db *sqlx.DB) repository.TestReportRepository {
	return &testReportRepository{NewBaseRepository(db)}
}

// CreateWithNotification fills in the generated ids of the report and notification
// and records the lab_report.created event in the same transaction.
func (r *testReportRepository) CreateWithNotification(ctx context.Context, c *model.ReportCreation) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		report := c.Report
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO test_reports (patient_id, doctor_id, doctor_patient_id, title, description, result, uploaded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING report_id, created_at
		`,
			report.PatientID,
			report.DoctorID,
			report.AssignmentID,
			report.Title,
			report.Description,
			report.Result,
			report.UploadedBy,
		).Scan(&report.ID, &report.CreatedAt)
		if err != nil {
			return mapError(err, "create test report")
		}

		n := c.Notification
		n.ReportID = report.ID
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO lab_notifications (report_id, patient_id, doctor_id, title, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING notification_id, created_at, updated_at
		`, n.ReportID, n.PatientID, n.DoctorID, n.Title, n.Status).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return mapError(err, "create lab notification")
		}

		event, err := model.NewLabReportCreatedEvent(report, n)
		if err != nil {
			return err
		}
		if err := insertOutboxEvent(ctx, tx, event); err != nil {
			return err
		}
		c.Event = event
		return nil
	})
}

func (r *testReportRepository) GetByID(ctx context.Context, id model.TestReportID) (*model.TestReport, error) {
	var report model.TestReport
	if err := r.db.GetContext(ctx, &report, `SELECT `+testReportColumns+` FROM test_reports WHERE report_id = $1`, id); err != nil {
		return nil, mapError(err, "get test report")
	}
	return &report, nil
}

func (r *testReportRepository) ListByPatient(ctx context.Context, patientID model.PatientID) ([]*model.TestReport, error) {
	var out []*model.TestReport
	query := `SELECT ` + testReportColumns + ` FROM test_reports WHERE patient_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, patientID); err != nil {
		return nil, mapError(err, "list patient test reports")
	}
	return nonNil(out), nil
}

func (r *testReportRepository) ListByDoctor(ctx context.Context, doctorID model.DoctorID) ([]*model.TestReport, error) {
	var out []*model.TestReport
	query := `SELECT ` + testReportColumns + ` FROM test_reports WHERE doctor_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, doctorID); err != nil {
		return nil, mapError(err, "list doctor test reports")
	}
	return nonNil(out), nil
}

// Delete removes the report; its lab notification goes with it through the foreign key cascade.
func (r *testReportRepository) Delete(ctx context.Context, id model.TestReportID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM test_reports WHERE report_id = $1`, id)
	if err != nil {
		return mapError(err, "delete test report")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete test report: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *testReportRepository) ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]*model.LabNotificationView, error) {
	ds := r.dialect.From(goqu.T("lab_notifications").As("n")).
		Select(
			goqu.I("n.notification_id"), goqu.I("n.report_id"), goqu.I("n.patient_id"), goqu.I("n.doctor_id"),
			goqu.I("n.title"), goqu.I("n.status"), goqu.I("n.created_at"), goqu.I("n.updated_at"),
			goqu.I("r.title").As("report_title"),
			goqu.I("r.result").As("report_result"),
			goqu.I("p.name").As("patient_name"),
			goqu.I("p.email").As("patient_email"),
			goqu.I("d.name").As("doctor_name"),
		).
		LeftJoin(goqu.T("test_reports").As("r"), goqu.On(goqu.I("n.report_id").Eq(goqu.I("r.report_id")))).
		LeftJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("n.patient_id").Eq(goqu.I("p.patient_id")))).
		LeftJoin(goqu.T("doctors").As("d"), goqu.On(goqu.I("n.doctor_id").Eq(goqu.I("d.doctor_id")))).
		Order(goqu.I("n.created_at").Desc()).
		Prepared(true)

	if filter.DoctorID != nil {
		ds = ds.Where(goqu.I("n.doctor_id").Eq(*filter.DoctorID))
	}
	if filter.Status != nil {
		ds = ds.Where(goqu.I("n.status").Eq(*filter.Status))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build notification query: %w", err)
	}

	var out []*model.LabNotificationView
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, mapError(err, "list lab notifications")
	}
	return nonNil(out), nil
}

func (r *testReportRepository) GetNotification(ctx context.Context, id model.NotificationID) (*model.LabNotification, error) {
	var n model.LabNotification
	query := `SELECT ` + notificationColumns + ` FROM lab_notifications WHERE notification_id = $1`
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return nil, mapError(err, "get lab notification")
	}
	return &n, nil
}

func (r *testReportRepository) UpdateNotificationStatus(ctx context.Context, id model.NotificationID, from []model.NotificationStatus, to model.NotificationStatus) (*model.LabNotification, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	query := `
		UPDATE lab_notifications
		SET status = $1, updated_at = NOW()
		WHERE notification_id = $2 AND status = ANY($3)
		RETURNING ` + notificationColumns
	var n model.LabNotification
	if err := r.db.GetContext(ctx, &n, query, to, id, pq.Array(states)); err != nil {
		return nil, mapTransitionError(err, "update lab notification status")
	}
	return &n, nil
}
