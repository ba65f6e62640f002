package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boardhub/boardhub/internal/constants"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WithSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, userID.String())
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		got, ok := GetUserID(c)
		require.True(t, ok)
		require.Equal(t, userID, got)
		c.Status(http.StatusOK)
	})

	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserID_Types(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(constants.ContextKeyUserID, userID)
	got, ok := GetUserID(c)
	require.True(t, ok)
	require.Equal(t, userID, got)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set(constants.ContextKeyUserID, userID.String())
	got, ok = GetUserID(c)
	require.True(t, ok)
	require.Equal(t, userID, got)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set(constants.ContextKeyUserID, "not-a-uuid")
	_, ok = GetUserID(c)
	require.False(t, ok)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	_, ok = GetUserID(c)
	require.False(t, ok)
}
