package doctor

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	ListApproved(ctx context.Context, specialization string) ([]*model.Doctor, error)
	GetDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.Doctor, error)
	Me(ctx context.Context, actor model.Actor) (*model.Doctor, error)
	UpdateMe(ctx context.Context, actor model.Actor, update model.DoctorUpdate) (*model.Doctor, error)
	AdminList(ctx context.Context, status model.DoctorStatus) ([]*model.Doctor, error)
	SetStatus(ctx context.Context, actor model.Actor, id model.DoctorID, status model.DoctorStatus) (*model.Doctor, error)
	UpsertProfile(ctx context.Context, actor model.Actor, req *model.UpsertDoctorProfileRequest) (*model.DoctorProfile, error)
	GetProfile(ctx context.Context, actor model.Actor, id model.DoctorID) (*model.DoctorProfile, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	doctorOnly := handler.Roles(auth, model.RoleDoctor)
	adminOnly := handler.Roles(auth, model.RoleAdmin)

	doctors := r.Group("/doctors", auth.Authenticate())
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/me", doctorOnly, h.GetMe)
		doctors.PUT("/me", doctorOnly, h.UpdateMe)
		doctors.GET("/:id", h.GetDoctor)
	}

	admin := r.Group("/admin/doctors", auth.Authenticate(), adminOnly)
	{
		admin.GET("", h.AdminListDoctors)
		admin.PUT("/:id/status", h.SetStatus)
	}

	profiles := r.Group("/doctor-profiles", auth.Authenticate())
	{
		profiles.PUT("", doctorOnly, h.UpsertProfile)
		profiles.GET("/:doctorId", h.GetProfile)
	}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListApproved(c.Request.Context(), strings.TrimSpace(c.Query("specialization")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), actor, model.DoctorID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}

	doctor, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var update model.DoctorUpdate
	if !httputil.BindJSON(c, &update) {
		return
	}

	doctor, err := h.service.UpdateMe(c.Request.Context(), actor, update)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) AdminListDoctors(c *gin.Context) {
	status := model.DoctorStatus(strings.ToUpper(c.Query("status")))
	switch status {
	case "", model.DoctorStatusPending, model.DoctorStatusApproved, model.DoctorStatusRejected:
	default:
		httputil.RespondWithError(c, apperrors.BadRequest("invalid status filter", nil))
		return
	}

	doctors, err := h.service.AdminList(c.Request.Context(), status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
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
	var req model.UpdateDoctorStatusRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	doctor, err := h.service.SetStatus(c.Request.Context(), actor, model.DoctorID(id), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.UpsertDoctorProfileRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpsertProfile(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "doctorId")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), actor, model.DoctorID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}
