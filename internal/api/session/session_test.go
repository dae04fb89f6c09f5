package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CbIpok/energos/internal/api/session"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("energos_session", store))

	return engine
}

func TestContextRoundTrip(t *testing.T) {
	engine := newSessionRouter()

	engine.GET("/set", func(ctx *gin.Context) {
		sess := session.Context{
			Code:      "abc123",
			Username:  "alice",
			Drink:     "energetik3",
			LikesUsed: 1,
		}
		require.NoError(t, sess.Save(ctx))
		ctx.Status(http.StatusOK)
	})

	var got session.Context
	engine.GET("/get", func(ctx *gin.Context) {
		got = session.FromGin(ctx)
		ctx.Status(http.StatusOK)
	})

	set := httptest.NewRecorder()
	engine.ServeHTTP(set, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusOK, set.Code)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}
	engine.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc123", got.Code)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "energetik3", got.Drink)
	assert.Equal(t, 1, got.LikesUsed)
	assert.False(t, got.AdminLoggedIn)
	assert.True(t, got.HasCode())
}

func TestFromGin_EmptySession(t *testing.T) {
	engine := newSessionRouter()

	var got session.Context
	engine.GET("/get", func(ctx *gin.Context) {
		got = session.FromGin(ctx)
		ctx.Status(http.StatusOK)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/get", nil))

	assert.False(t, got.HasCode())
	assert.False(t, got.AdminLoggedIn)
	assert.Zero(t, got.LikesUsed)
}

func TestFlashes_DrainOnRead(t *testing.T) {
	engine := newSessionRouter()

	engine.GET("/flash", func(ctx *gin.Context) {
		require.NoError(t, session.AddFlash(ctx, "success", "Лайк учтён"))
		ctx.Status(http.StatusOK)
	})

	var first, second []session.Flash
	engine.GET("/read", func(ctx *gin.Context) {
		first = session.Flashes(ctx)
		ctx.Status(http.StatusOK)
	})
	engine.GET("/read-again", func(ctx *gin.Context) {
		second = session.Flashes(ctx)
		ctx.Status(http.StatusOK)
	})

	flash := httptest.NewRecorder()
	engine.ServeHTTP(flash, httptest.NewRequest(http.MethodGet, "/flash", nil))
	require.Equal(t, http.StatusOK, flash.Code)

	read := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, c := range flash.Result().Cookies() {
		req.AddCookie(c)
	}
	engine.ServeHTTP(read, req)

	require.Len(t, first, 1)
	assert.Equal(t, "success", first[0].Level)
	assert.Equal(t, "Лайк учтён", first[0].Text)

	// The drained flash must not resurface on the next page.
	reqAgain := httptest.NewRequest(http.MethodGet, "/read-again", nil)
	for _, c := range read.Result().Cookies() {
		reqAgain.AddCookie(c)
	}
	engine.ServeHTTP(httptest.NewRecorder(), reqAgain)

	assert.Empty(t, second)
}
