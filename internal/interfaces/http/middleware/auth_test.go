package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/pkg/logger"
)

type stubAuthenticator struct {
	headers     entities.AuthHeaders
	skipSession bool
	result      *entities.AuthContext
	err         error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, headers entities.AuthHeaders, skipSession bool) (*entities.AuthContext, error) {
	s.headers = headers
	s.skipSession = skipSession
	return s.result, s.err
}

func newAuthRouter(auth Authenticator, sessionless ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(auth, sessionless...))
	handler := func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		adminID, _ := GetAdminID(c)
		logged, _ := c.Request.Context().Value(logger.AdminIDKey).(string)
		c.JSON(http.StatusOK, gin.H{"admin": adminID.String(), "role": authCtx.RoleID, "logged": logged})
	}
	r.GET("/users/userList", handler)
	r.POST("/auth/adminlogout", handler)
	return r
}

func TestAuthMiddleware_PassesHeadersAndSetsContext(t *testing.T) {
	adminID := uuid.New()
	stub := &stubAuthenticator{result: &entities.AuthContext{AdminID: adminID, RoleID: 3}}
	r := newAuthRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/userList", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("roleid", "3")
	req.Header.Set("userid", adminID.String())
	req.Header.Set("ipaddress", "10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.AuthHeaders{Token: "tok-1", RoleID: "3", UserID: adminID.String(), IPAddress: "10.0.0.1"}, stub.headers)
	assert.False(t, stub.skipSession)
	assert.JSONEq(t, `{"admin":"`+adminID.String()+`","role":3,"logged":"`+adminID.String()+`"}`, w.Body.String())
}

func TestAuthMiddleware_RejectsWithAppError(t *testing.T) {
	stub := &stubAuthenticator{err: domainerrors.Unauthorized("Authorization Token not valid.")}
	r := newAuthRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/userList", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":"UNAUTHORIZED","message":"Authorization Token not valid."}`, w.Body.String())
}

func TestAuthMiddleware_SessionlessRoutes(t *testing.T) {
	stub := &stubAuthenticator{result: &entities.AuthContext{AdminID: uuid.New(), RoleID: 1}}
	r := newAuthRouter(stub, "/auth/adminlogout")

	req := httptest.NewRequest(http.MethodPost, "/auth/adminlogout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.skipSession)

	req = httptest.NewRequest(http.MethodGet, "/users/userList", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, stub.skipSession)
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"tok":             "",
		"Basic abc":       "",
		"Bearer abc":      "abc",
		"  Bearer  abc  ": "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, bearerToken(in), in)
	}
}

func TestGetAuthContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetAuthContext(c)
	assert.False(t, ok)
	_, ok = GetAdminID(c)
	assert.False(t, ok)
}
