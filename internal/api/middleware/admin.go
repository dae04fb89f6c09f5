package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CbIpok/energos/internal/api/session"
)

// RequireAdmin gates admin-only pages. Unauthenticated visitors are sent to
// the login form instead of getting an error page.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !session.FromGin(ctx).AdminLoggedIn {
			ctx.Redirect(http.StatusFound, "/admin/login")
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}
