package server

import (
	"strings"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	obscontext "github.com/auroradigital/billingdesk/internal/observability/context"
	"github.com/gin-gonic/gin"
)

// HeaderActorRole identifies the console actor. The console is a
// trusted two-persona tool, so the header is taken at face value.
const HeaderActorRole = "X-Actor-Role"

const actorRoleKey = "actor_role"

// ActorContext resolves the actor role header and stashes it on the
// request. A missing header defaults to the employee persona; an
// unrecognized value rejects the request.
func (s *Server) ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorRole)))
		role := catalogdomain.RoleEmployee
		if raw != "" {
			role = catalogdomain.Role(raw)
			if !role.Valid() {
				AbortWithError(c, newValidationError("actorRole", "invalid_role", "unknown actor role"))
				return
			}
		}

		c.Set(actorRoleKey, role)
		ctx := obscontext.WithActorRole(c.Request.Context(), string(role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func actorRole(c *gin.Context) catalogdomain.Role {
	if v, ok := c.Get(actorRoleKey); ok {
		if role, ok := v.(catalogdomain.Role); ok {
			return role
		}
	}
	return catalogdomain.RoleEmployee
}

// RequireRole gates a route to the listed personas.
func (s *Server) RequireRole(roles ...catalogdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorRole(c)
		for _, role := range roles {
			if actor == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}
