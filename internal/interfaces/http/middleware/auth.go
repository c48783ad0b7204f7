package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/interfaces/http/response"
	"ico-admin.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// RoleIDHeader carries the caller's declared role
	RoleIDHeader = "roleid"
	// UserIDHeader carries the caller's declared admin id
	UserIDHeader = "userid"
	// IPAddressHeader carries the caller's declared IP address
	IPAddressHeader = "ipaddress"

	// AuthContextKey is the context key for the authenticated admin
	AuthContextKey = "authContext"
	// AdminIDKey is the context key for the admin ID
	AdminIDKey = "adminId"
	// RoleIDKey is the context key for the admin role
	RoleIDKey = "roleId"
)

// Authenticator resolves the admin behind a protected request
type Authenticator interface {
	Authenticate(ctx context.Context, headers entities.AuthHeaders, skipSession bool) (*entities.AuthContext, error)
}

// AuthMiddleware gates a route group behind admin authentication.
// sessionlessRoutes are gin route patterns that accept any signed token without a stored session.
func AuthMiddleware(auth Authenticator, sessionlessRoutes ...string) gin.HandlerFunc {
	sessionless := make(map[string]struct{}, len(sessionlessRoutes))
	for _, route := range sessionlessRoutes {
		sessionless[route] = struct{}{}
	}

	return func(c *gin.Context) {
		headers := entities.AuthHeaders{
			Token:     bearerToken(c.GetHeader(AuthorizationHeader)),
			RoleID:    c.GetHeader(RoleIDHeader),
			UserID:    c.GetHeader(UserIDHeader),
			IPAddress: c.GetHeader(IPAddressHeader),
		}
		_, skip := sessionless[c.FullPath()]

		authCtx, err := auth.Authenticate(c.Request.Context(), headers, skip)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(AuthContextKey, authCtx)
		c.Set(AdminIDKey, authCtx.AdminID)
		c.Set(RoleIDKey, authCtx.RoleID)
		c.Request = c.Request.WithContext(logger.WithAdminID(c.Request.Context(), authCtx.AdminID.String()))

		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

// GetAuthContext gets the authenticated admin from context
func GetAuthContext(c *gin.Context) (*entities.AuthContext, bool) {
	v, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}
	authCtx, ok := v.(*entities.AuthContext)
	return authCtx, ok
}

// GetAdminID gets the admin ID from context
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(AdminIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
