package model

import (
	"time"
)

type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "PENDING"
	NotificationStatusProcessed NotificationStatus = "PROCESSED"
	NotificationStatusCompleted NotificationStatus = "COMPLETED"
)

var notificationRank = map[NotificationStatus]int{
	NotificationStatusPending:   0,
	NotificationStatusProcessed: 1,
	NotificationStatusCompleted: 2,
}

func (s NotificationStatus) Valid() bool {
	_, ok := notificationRank[s]
	return ok
}

// ReachableFrom lists the statuses from which s may be entered: itself and every earlier stage.
func (s NotificationStatus) ReachableFrom() []NotificationStatus {
	rank, ok := notificationRank[s]
	if !ok {
		return nil
	}
	var out []NotificationStatus
	for _, st := range []NotificationStatus{NotificationStatusPending, NotificationStatusProcessed, NotificationStatusCompleted} {
		if notificationRank[st] <= rank {
			out = append(out, st)
		}
	}
	return out
}

type LabNotification struct {
	ID        NotificationID     `db:"notification_id" json:"notification_id"`
	ReportID  TestReportID       `db:"report_id" json:"report_id"`
	PatientID PatientID          `db:"patient_id" json:"patient_id"`
	DoctorID  DoctorID           `db:"doctor_id" json:"doctor_id"`
	Title     string             `db:"title" json:"title"`
	Status    NotificationStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// LabNotificationView joins the report and both parties.
type LabNotificationView struct {
	LabNotification
	ReportTitle  *string `db:"report_title" json:"report_title,omitempty"`
	ReportResult *string `db:"report_result" json:"report_result,omitempty"`
	PatientName  *string `db:"patient_name" json:"patient_name,omitempty"`
	PatientEmail *string `db:"patient_email" json:"patient_email,omitempty"`
	DoctorName   *string `db:"doctor_name" json:"doctor_name,omitempty"`
}

type NotificationFilter struct {
	DoctorID *DoctorID
	Status   *NotificationStatus
}

type UpdateNotificationStatusRequest struct {
	Status NotificationStatus `json:"status" binding:"required"`
}

// LabReportCreatedEvent is published once a report and its notification are committed.
type LabReportCreatedEvent struct {
	NotificationID NotificationID `json:"notification_id"`
	ReportID       TestReportID   `json:"report_id"`
	PatientID      PatientID      `json:"patient_id"`
	DoctorID       DoctorID       `json:"doctor_id"`
	Title          string         `json:"title"`
	ReportTitle    string         `json:"report_title"`
	UploadedBy     UploadedBy     `json:"uploaded_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

const EventLabReportCreated = "lab_report.created"

// NewLabReportCreatedEvent builds the outbox event announcing a committed report.
func NewLabReportCreatedEvent(report *TestReport, n *LabNotification) (*OutboxEvent, error) {
	return NewOutboxEvent(EventLabReportCreated, LabReportCreatedEvent{
		NotificationID: n.ID,
		ReportID:       report.ID,
		PatientID:      report.PatientID,
		DoctorID:       report.DoctorID,
		Title:          n.Title,
		ReportTitle:    report.Title,
		UploadedBy:     report.UploadedBy,
		CreatedAt:      report.CreatedAt,
	})
}
