package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"github.com/intellious/hrms/internal/requestctx"
)

const contextActorKey = "actor"

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// AuthRequired validates the bearer token and places the resolved actor in
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.signer.Verify(strings.TrimSpace(raw))
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !claims.IsActive {
			AbortWithError(c, ErrForbidden)
			return
		}

		id, err := snowflake.ParseString(claims.EmployeeID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor := employeedomain.Actor{ID: id, Role: claims.Role}
		c.Set(contextActorKey, actor)

		ctx := c.Request.Context()
		ctx = requestctx.WithIPAddress(ctx, c.ClientIP())
		ctx = requestctx.WithUserAgent(ctx, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route to the given roles. Runs after AuthRequired.
func (s *Server) RequireRole(roles ...employeedomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func actorFromContext(c *gin.Context) (employeedomain.Actor, bool) {
	value, exists := c.Get(contextActorKey)
	if !exists {
		return employeedomain.Actor{}, false
	}
	actor, ok := value.(employeedomain.Actor)
	return actor, ok
}
