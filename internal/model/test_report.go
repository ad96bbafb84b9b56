package model

import (
	"fmt"
	"time"
)

type UploadedBy string

const (
	UploadedByPatient UploadedBy = "patient"
	UploadedByDoctor  UploadedBy = "doctor"
)

func (u UploadedBy) Valid() bool {
	return u == UploadedByPatient || u == UploadedByDoctor
}

// NotificationTitle is the title given to the lab notification spawned by a report.
func (u UploadedBy) NotificationTitle(reportTitle string) string {
	who := "Patient"
	if u == UploadedByDoctor {
		who = "Doctor"
	}
	return fmt.Sprintf("New %s Report: %s", who, reportTitle)
}

type TestReport struct {
	ID           TestReportID  `db:"report_id" json:"report_id"`
	PatientID    PatientID     `db:"patient_id" json:"patient_id"`
	DoctorID     DoctorID      `db:"doctor_id" json:"doctor_id"`
	AssignmentID *AssignmentID `db:"doctor_patient_id" json:"doctor_patient_id,omitempty"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description" json:"description"`
	Result       string        `db:"result" json:"result"`
	UploadedBy   UploadedBy    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

type CreateTestReportRequest struct {
	PatientID   PatientID  `json:"patient_id" binding:"required"`
	DoctorID    DoctorID   `json:"doctor_id" binding:"required"`
	Title       string     `json:"title" binding:"required,notblank"`
	Description string     `json:"description" binding:"required"`
	Result      string     `json:"result" binding:"required"`
	UploadedBy  UploadedBy `json:"uploaded_by" binding:"required"`
}

// ReportCreation is the atomic unit written when a report is uploaded.
// Event is populated by the repository once the generated ids are known.
type ReportCreation struct {
	Report       *TestReport
	Notification *LabNotification
	Event        *OutboxEvent
}
