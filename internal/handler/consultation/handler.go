package consultation

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreateConsultationRequest) (*model.Consultation, error)
	ListForDoctor(ctx context.Context, id model.DoctorID) ([]*model.Consultation, error)
	ListForPatient(ctx context.Context, id model.PatientID) ([]*model.Consultation, error)
	Get(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error)
	Accept(ctx context.Context, actor model.Actor, id model.ConsultationID, req *model.AcceptConsultationRequest) (*model.Consultation, error)
	Reject(ctx context.Context, actor model.Actor, id model.ConsultationID) (*model.Consultation, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patientOnly := handler.Roles(auth, model.RolePatient)
	doctorOnly := handler.Roles(auth, model.RoleDoctor)

	consultants := r.Group("/consultants", auth.Authenticate())
	{
		consultants.POST("", patientOnly, h.Create)
		consultants.GET("/doctor", doctorOnly, h.ListForDoctor)
		consultants.GET("/patient", patientOnly, h.ListForPatient)
		consultants.GET("/:id", h.Get)
		consultants.PUT("/:id/accept", doctorOnly, h.Accept)
		consultants.PUT("/:id/reject", doctorOnly, h.Reject)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.CreateConsultationRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	consultation, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, consultation)
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

func (h *Handler) Get(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	consultation, err := h.service.Get(c.Request.Context(), actor, model.ConsultationID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, consultation)
}

func (h *Handler) Accept(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.AcceptConsultationRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	consultation, err := h.service.Accept(c.Request.Context(), actor, model.ConsultationID(id), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, consultation)
}

func (h *Handler) Reject(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	consultation, err := h.service.Reject(c.Request.Context(), actor, model.ConsultationID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, consultation)
}
