package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error)
	RegisterDoctor(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error)
	RegisterPharmacy(ctx context.Context, req *model.RegisterPharmacyRequest) (*model.Pharmacy, error)
	LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	LoginPharmacy(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *model.UsernameLoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public registration and login endpoints. limiter guards the logins.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc) {
	r.POST("/patients/register", h.RegisterPatient)
	r.POST("/patients/login", limiter, h.LoginPatient)

	r.POST("/doctors/register", h.RegisterDoctor)
	r.POST("/doctors/login", limiter, h.LoginDoctor)

	r.POST("/pharmacies/register", h.RegisterPharmacy)
	r.POST("/pharmacies/login", limiter, h.LoginPharmacy)

	r.POST("/admin/login", limiter, h.LoginAdmin)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	patient, err := h.svc.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, patient)
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	doctor, err := h.svc.RegisterDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, doctor)
}

func (h *Handler) RegisterPharmacy(c *gin.Context) {
	var req model.RegisterPharmacyRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	pharmacy, err := h.svc.RegisterPharmacy(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, pharmacy)
}

func (h *Handler) LoginPatient(c *gin.Context) {
	var req model.LoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	respond(c)(h.svc.LoginPatient(c.Request.Context(), &req))
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	var req model.LoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	respond(c)(h.svc.LoginDoctor(c.Request.Context(), &req))
}

func (h *Handler) LoginPharmacy(c *gin.Context) {
	var req model.UsernameLoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	respond(c)(h.svc.LoginPharmacy(c.Request.Context(), &req))
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	var req model.UsernameLoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	respond(c)(h.svc.LoginAdmin(c.Request.Context(), &req))
}

func respond(c *gin.Context) func(*model.LoginResponse, error) {
	return func(resp *model.LoginResponse, err error) {
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, resp)
	}
}
