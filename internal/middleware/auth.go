package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/auth"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
)

const ContextActor = "actor"

type AuthMiddleware struct {
	jwtService auth.JWTService
}

func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate verifies the bearer token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.InvalidToken(errors.New("missing authorization header")))
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httputil.RespondWithError(c, apperrors.InvalidToken(errors.New("invalid authorization format")))
			return
		}

		actor, err := m.jwtService.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			httputil.RespondWithError(c, apperrors.InvalidToken(errors.New("no authenticated caller")))
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		httputil.RespondWithError(c, apperrors.Forbidden("role "+string(actor.Role)+" may not access this resource"))
	}
}

func SetActor(c *gin.Context, actor model.Actor) {
	c.Set(ContextActor, actor)
}

func ActorFrom(c *gin.Context) (model.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := v.(model.Actor)
	return actor, ok
}
