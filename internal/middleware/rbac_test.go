package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hkn-dev/tutoring-api/internal/models"
)

func rbacContext(t *testing.T, role models.UserRole, withClaims bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/tutoring/api/availability", nil)
	require.NoError(t, err)
	c.Request = req
	if withClaims {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: 1, Role: role})
	}
	return c, w
}

func TestRequireStaffAllowsStaffAndAdmin(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleStaff, models.RoleAdmin} {
		c, w := rbacContext(t, role, true)
		RequireStaff()(c)
		require.False(t, c.IsAborted(), string(role))
		require.Equal(t, http.StatusOK, w.Code, string(role))
	}
}

func TestRequireStaffForbidsOfficer(t *testing.T) {
	c, w := rbacContext(t, models.RoleOfficer, true)
	RequireStaff()(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireStaffWithoutClaims(t *testing.T) {
	c, w := rbacContext(t, "", false)
	RequireStaff()(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
