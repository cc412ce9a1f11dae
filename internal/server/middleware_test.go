package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intellious/hrms/internal/auth/token"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T, roles ...employeedomain.Role) (*gin.Engine, *token.Signer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer := token.NewSignerAt("middleware_secret", time.Now)
	srv := &Server{signer: signer}

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	handlers := []gin.HandlerFunc{srv.AuthRequired()}
	if len(roles) > 0 {
		handlers = append(handlers, srv.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"actor_id": actor.ID.String(), "role": string(actor.Role)})
	})
	r.GET("/protected", handlers...)

	return r, signer
}

func get(r *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer ").Code)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not.a.token").Code)
}

func TestAuthRequiredRejectsForeignSecret(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	foreign := token.NewSignerAt("other_secret", time.Now)
	signed, _, err := foreign.Sign("100", employeedomain.RoleEmployee, true)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+signed).Code)
}

func TestAuthRequiredRejectsInactive(t *testing.T) {
	r, signer := newAuthTestRouter(t)

	signed, _, err := signer.Sign("100", employeedomain.RoleEmployee, false)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+signed).Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	r, signer := newAuthTestRouter(t)

	signed, _, err := signer.Sign("100", employeedomain.RoleEmployee, true)
	require.NoError(t, err)

	w := get(r, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor_id":"100"`)
}

func TestRequireRoleGatesByRole(t *testing.T) {
	r, signer := newAuthTestRouter(t, employeedomain.RoleAdmin, employeedomain.RoleHR)

	employee, _, err := signer.Sign("100", employeedomain.RoleEmployee, true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+employee).Code)

	hr, _, err := signer.Sign("200", employeedomain.RoleHR, true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+hr).Code)
}
