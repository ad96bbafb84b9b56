package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/service/patient"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patientOnly := handler.Roles(auth, model.RolePatient)
	authenticated := auth.Authenticate()

	patients := r.Group("/patients", authenticated)
	{
		patients.GET("/profile", patientOnly, h.GetProfile)
		patients.PUT("/profile", patientOnly, h.UpdateProfile)
	}

	caregivers := r.Group("/caregivers", authenticated)
	{
		caregivers.POST("/:patientId", h.AddCaregiver)
		caregivers.GET("/:patientId", h.ListCaregivers)
		caregivers.PUT("/update/:id", h.UpdateCaregiver)
	}

	diseases := r.Group("/chronic-diseases", authenticated)
	{
		diseases.POST("/:patientId", h.AddChronicDisease)
		diseases.GET("/:patientId", h.ListChronicDiseases)
		diseases.PUT("/update/:id", h.UpdateChronicDisease)
	}

	r.GET("/tips/:patientId", authenticated, h.GetTips)
	r.GET("/admin/patients", authenticated, handler.Roles(auth, model.RoleAdmin), h.ListAll)
}

func (h *Handler) GetProfile(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
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

func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	var update model.PatientUpdate
	if !httputil.BindJSON(c, &update) {
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), actor, update)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) AddCaregiver(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	patientID, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}
	var req model.CaregiverRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	caregiver, err := h.service.AddCaregiver(c.Request.Context(), actor, model.PatientID(patientID), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, caregiver)
}

func (h *Handler) ListCaregivers(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	patientID, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}

	caregivers, err := h.service.ListCaregivers(c.Request.Context(), actor, model.PatientID(patientID))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, caregivers)
}

func (h *Handler) UpdateCaregiver(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var update model.CaregiverUpdate
	if !httputil.BindJSON(c, &update) {
		return
	}

	caregiver, err := h.service.UpdateCaregiver(c.Request.Context(), actor, model.CaregiverID(id), update)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, caregiver)
}

func (h *Handler) AddChronicDisease(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	patientID, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}
	var req model.ChronicDiseaseRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	disease, err := h.service.AddChronicDisease(c.Request.Context(), actor, model.PatientID(patientID), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, disease)
}

func (h *Handler) ListChronicDiseases(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	patientID, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}

	diseases, err := h.service.ListChronicDiseases(c.Request.Context(), actor, model.PatientID(patientID))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, diseases)
}

func (h *Handler) UpdateChronicDisease(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	id, ok := httputil.ParamID(c, "id")
	if !ok {
		return
	}
	var update model.ChronicDiseaseUpdate
	if !httputil.BindJSON(c, &update) {
		return
	}

	disease, err := h.service.UpdateChronicDisease(c.Request.Context(), actor, model.ChronicDiseaseID(id), update)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, disease)
}

func (h *Handler) GetTips(c *gin.Context) {
	actor, ok := handler.Actor(c)
	if !ok {
		return
	}
	patientID, ok := httputil.ParamID(c, "patientId")
	if !ok {
		return
	}

	tips, err := h.service.Tips(c.Request.Context(), actor, model.PatientID(patientID))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"patient_id": patientID, "tips": tips})
}
