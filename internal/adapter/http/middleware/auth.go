package middleware

import (
	"net/http"
	"strings"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	errRoleForbidden   = pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed for this role", http.StatusForbidden)
)

type AuthMiddleware struct {
	tokens interfaces.ITokenManager
}

func NewAuthMiddleware(tokens interfaces.ITokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token. With roles given,
// the caller must hold one of them.
func (m *AuthMiddleware) RequireAuth(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		viewer, err := m.tokens.Verify(raw)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Debug("[auth][middleware] token rejected")
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		if len(roles) > 0 && !hasRole(viewer.Role, roles) {
			c.AbortWithStatusJSON(errRoleForbidden.HTTPStatus, errRoleForbidden.ToHTTPError())
			return
		}
		setViewer(c, viewer)
		c.Next()
	}
}

// OptionalAuth attaches the viewer when a valid token is present and lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if viewer, err := m.tokens.Verify(raw); err == nil {
				setViewer(c, viewer)
			}
		}
		c.Next()
	}
}

// ViewerFrom returns the caller stored by RequireAuth or OptionalAuth.
func ViewerFrom(c *gin.Context) (entities.Viewer, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return entities.Viewer{}, false
	}
	role, _ := c.Get(ContextRole)
	r, _ := role.(entities.Role)
	return entities.Viewer{UserID: id, Role: r}, true
}

func setViewer(c *gin.Context, v entities.Viewer) {
	c.Set(ContextUserID, v.UserID)
	c.Set(ContextRole, v.Role)
}

// bearerToken reads the Authorization header, falling back to the token query
// parameter used by websocket clients.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(c.Query("token"))
}

func hasRole(role entities.Role, allowed []entities.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
