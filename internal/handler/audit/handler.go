package audit

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/handler"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

const defaultLimit = 100

type Service interface {
	List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	audit := r.Group("/admin/audit-logs", auth.Authenticate(), handler.Roles(auth, model.RoleAdmin))
	{
		audit.GET("", h.ListLogs)
		audit.GET("/export", h.ExportLogs)
	}
}

func (h *Handler) ListLogs(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	logs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, logs)
}

// ExportLogs writes the same selection as ListLogs as CSV.
func (h *Handler) ExportLogs(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	logs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=audit-logs.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "created_at", "entity_type", "entity_id", "action", "actor_role", "actor_id", "from_status", "to_status"})
	for _, l := range logs {
		_ = w.Write([]string{
			l.ID.String(),
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.EntityType,
			strconv.FormatInt(l.EntityID, 10),
			l.Action,
			string(l.ActorRole),
			strconv.FormatInt(l.ActorID, 10),
			deref(l.FromStatus),
			deref(l.ToStatus),
		})
	}
	w.Flush()
}

func parseFilter(c *gin.Context) (model.AuditFilter, bool) {
	filter := model.AuditFilter{
		EntityType: c.Query("entity_type"),
		Limit:      defaultLimit,
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid entity_id", err))
			return filter, false
		}
		filter.EntityID = id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid limit", err))
			return filter, false
		}
		filter.Limit = limit
	}
	return filter, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
