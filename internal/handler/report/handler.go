package report

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreateTestReportRequest) (*model.ReportCreation, error)
	Get(ctx context.Context, actor model.Actor, id model.TestReportID) (*model.TestReport, error)
	Delete(ctx context.Context, actor model.Actor, id model.TestReportID) error
	ListForPatient(ctx context.Context, actor model.Actor, id model.PatientID) ([]*model.TestReport, error)
	ListForDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) ([]*model.TestReport, error)
	ListNotifications(ctx context.Context, actor model.Actor, status *model.NotificationStatus) ([]*model.LabNotificationView, error)
	UpdateNotificationStatus(ctx context.Context, actor model.Actor, id model.NotificationID, status model.NotificationStatus) (*model.LabNotification, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	uploaders := handler.Roles(auth, model.RolePatient, model.RoleDoctor)
	reviewers := handler.Roles(auth, model.RoleAdmin, model.RoleDoctor)

	reports := r.Group("/test-reports", auth.Authenticate())
	{
		reports.POST("", uploaders, h.Create)
		reports.GET("/patient/:patientId", h.ListForPatient)
		reports.GET("/doctor/:doctorId", h.ListForDoctor)
		reports.GET("/lab/notifications", reviewers, h.ListNotifications)
		reports.PUT("/lab/notifications/:id", reviewers, h.UpdateNotificationStatus)
		reports.GET("/:id", h.Get)
		reports.DELETE("/:id", uploaders, h.Delete)
	}
}

type createResponse struct {
	Report       *model.TestReport      `json:"report"`
	Notification *model.LabNotification `json:"notification"`
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.CreateTestReportRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, createResponse{Report: created.Report, Notification: created.Notification})
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	report, err := h.service.Get(c.Request.Context(), actor, model.TestReportID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, report)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, model.TestReportID(id)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"report_id": id, "deleted": true})
}

func (h *Handler) ListForPatient(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}

	reports, err := h.service.ListForPatient(c.Request.Context(), actor, model.PatientID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reports)
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "doctorId")
	if !ok {
		return
	}

	reports, err := h.service.ListForDoctor(c.Request.Context(), actor, model.DoctorID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reports)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var status *model.NotificationStatus
	if raw := c.Query("status"); raw != "" {
		s := model.NotificationStatus(strings.ToUpper(raw))
		status = &s
	}

	list, err := h.service.ListNotifications(c.Request.Context(), actor, status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) UpdateNotificationStatus(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateNotificationStatusRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	n, err := h.service.UpdateNotificationStatus(c.Request.Context(), actor, model.NotificationID(id), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, n)
}
