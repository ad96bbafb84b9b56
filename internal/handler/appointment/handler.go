package appointment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	Book(ctx context.Context, actor model.Actor, req *model.BookAppointmentRequest) (*model.Appointment, error)
	ListForPatient(ctx context.Context, id model.PatientID) ([]*model.AppointmentView, error)
	ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.AppointmentView, error)
	SetStatus(ctx context.Context, actor model.Actor, id model.AppointmentID, status model.AppointmentStatus) (*model.Appointment, error)
	ListAll(ctx context.Context, actor model.Actor) ([]*model.AppointmentView, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patients := r.Group("/patient/appointments", auth.Authenticate(), handler.Roles(auth, model.RolePatient))
	{
		patients.POST("/book", h.Book)
		patients.GET("", h.ListForPatient)
	}

	doctors := r.Group("/doctor/appointments", auth.Authenticate(), handler.Roles(auth, model.RoleDoctor))
	{
		doctors.GET("", h.ListForDoctor)
		doctors.PUT("/:id", h.SetStatus)
	}

	r.GET("/admin/appointments", auth.Authenticate(), handler.Roles(auth, model.RoleAdmin), h.ListAll)
}

func (h *Handler) Book(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.BookAppointmentRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	apt, err := h.service.Book(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) ListForPatient(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}

	list, err := h.service.ListForPatient(c.Request.Context(), model.PatientID(actor.ID))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}

	list, err := h.service.ListForDoctor(c.Request.Context(), model.DoctorID(actor.ID))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) SetStatus(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAppointmentStatusRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	apt, err := h.service.SetStatus(c.Request.Context(), actor, model.AppointmentID(id), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) ListAll(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}

	list, err := h.service.ListAll(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}
