package assignment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	Assign(ctx context.Context, actor model.Actor, req *model.AssignRequest) (*model.Assignment, bool, error)
	ListPatients(ctx context.Context, actor model.Actor, doctorID model.DoctorID) ([]*model.Patient, error)
	ListDoctors(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]*model.Doctor, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	links := r.Group("/doctor-patients", auth.Authenticate())
	{
		links.POST("", h.Assign)
		links.GET("/doctors/:doctorId/patients", h.ListPatients)
		links.GET("/patients/:patientId/doctors", h.ListDoctors)
	}
}

// Assign answers 201 for a new link and 200 when the pair was already linked.
func (h *Handler) Assign(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.AssignRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	link, created, err := h.service.Assign(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if created {
		httputil.RespondWithCreated(c, link)
		return
	}
	httputil.RespondWithSuccess(c, link)
}

func (h *Handler) ListPatients(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "doctorId")
	if !ok {
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), actor, model.DoctorID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), actor, model.PatientID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}
