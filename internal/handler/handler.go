package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/model"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

// Actor returns the authenticated caller. It writes a 401 when the route is not behind Authenticate.
func Actor(c *gin.Context) (model.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.InvalidToken(errors.New("no authenticated caller")))
		return model.Actor{}, false
	}
	return actor, true
}

// Roles is a shorthand for the route guards.
func Roles(auth *middleware.AuthMiddleware, roles ...model.Role) gin.HandlerFunc {
	return auth.RequireRole(roles...)
}
