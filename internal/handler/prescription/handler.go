package prescription

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Service interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	Get(ctx context.Context, actor model.Actor, id model.PrescriptionID) (*model.PrescriptionView, error)
	ListForPatient(ctx context.Context, actor model.Actor, id model.PatientID) ([]*model.PrescriptionView, error)
	ListForDoctor(ctx context.Context, actor model.Actor, id model.DoctorID) ([]*model.PrescriptionView, error)
	AddMedicine(ctx context.Context, actor model.Actor, id model.PrescriptionID, req *model.AddMedicineRequest) (*model.MedicineLine, error)
	ListMedicines(ctx context.Context, actor model.Actor, id model.PrescriptionID) ([]*model.MedicineLine, error)
	UpdateMedicine(ctx context.Context, actor model.Actor, id model.MedicineID, update model.MedicineUpdate) (*model.MedicineLine, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	doctorOnly := handler.Roles(auth, model.RoleDoctor)

	prescriptions := r.Group("/prescriptions", auth.Authenticate())
	{
		prescriptions.POST("", doctorOnly, h.Create)
		prescriptions.GET("/:id", h.Get)
		prescriptions.GET("/patient/:patientId", h.ListForPatient)
		prescriptions.GET("/doctor/:doctorId", h.ListForDoctor)
		prescriptions.POST("/:id/medicines", doctorOnly, h.AddMedicine)
		prescriptions.GET("/:id/medicines", h.ListMedicines)
	}

	r.PUT("/medicines/:medicineId", auth.Authenticate(), doctorOnly, h.UpdateMedicine)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var req model.CreatePrescriptionRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, p)
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

	view, err := h.service.Get(c.Request.Context(), actor, model.PrescriptionID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view)
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

	list, err := h.service.ListForPatient(c.Request.Context(), actor, model.PatientID(id))
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
	id, ok := httputil.ParamID(c, "doctorId")
	if !ok {
		return
	}

	list, err := h.service.ListForDoctor(c.Request.Context(), actor, model.DoctorID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) AddMedicine(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var req model.AddMedicineRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	line, err := h.service.AddMedicine(c.Request.Context(), actor, model.PrescriptionID(id), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, line)
}

func (h *Handler) ListMedicines(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.ListMedicines(c.Request.Context(), actor, model.PrescriptionID(id))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, lines)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "medicineId")
	if !ok {
		return
	}
	var update model.MedicineUpdate
	if !httputil.BindJSON(c, &update) {
		return
	}

	line, err := h.service.UpdateMedicine(c.Request.Context(), actor, model.MedicineID(id), update)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, line)
}
