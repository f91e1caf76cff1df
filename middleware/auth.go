package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/utils"
)

// CtxUser is the gin context key holding the authenticated models.User.
const CtxUser = "user"

// RequireSession verifies the session cookie, loads the user row, and injects
// it into the request context. Any failure redirects to the login page; no
// protected handler runs without a valid session.
func RequireSession(identity *services.IdentityService, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookie)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		userID, err := utils.VerifySessionToken(secret, token)
		if err != nil {
			redirectToLogin(c)
			return
		}

		user, err := identity.UserByID(userID)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
