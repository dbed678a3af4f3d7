package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateJWT(userID, "USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := AuthMiddleware(func(c echo.Context) error {
		called = true
		gotID, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		role, err := GetUserRole(c)
		require.NoError(t, err)
		assert.Equal(t, "USER", role)
		return nil
	})

	require.NoError(t, handler(c))
	assert.True(t, called)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := AuthMiddleware(func(c echo.Context) error { return nil })
	err := handler(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := AuthMiddleware(func(c echo.Context) error { return nil })
	err := handler(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAdminMiddleware(t *testing.T) {
	e := echo.New()

	newCtx := func(role string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if role != "" {
			c.Set("role", role)
		}
		return c
	}

	handler := AdminMiddleware(func(c echo.Context) error { return nil })

	assert.NoError(t, handler(newCtx("ADMIN")))

	var httpErr *echo.HTTPError
	err := handler(newCtx("USER"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	err = handler(newCtx(""))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
