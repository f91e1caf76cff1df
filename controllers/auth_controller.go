package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/utils"
)

type AuthController struct {
	identity   *services.IdentityService
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthController(identity *services.IdentityService, secret []byte, sessionTTL time.Duration) *AuthController {
	return &AuthController{identity: identity, secret: secret, sessionTTL: sessionTTL}
}

func (ctl *AuthController) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.tmpl", nil)
}

func (ctl *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if _, err := ctl.identity.Register(username, password); err != nil {
		handleError(c, err, "/register")
		return
	}

	utils.SetFlash(c, "success", "User created successfully. Please login.")
	c.Redirect(http.StatusFound, "/login")
}

func (ctl *AuthController) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.tmpl", nil)
}

func (ctl *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ctl.identity.Authenticate(username, password)
	if err != nil {
		handleError(c, err, "/login")
		return
	}

	token, err := utils.NewSessionToken(ctl.secret, user.ID, ctl.sessionTTL)
	if err != nil {
		handleError(c, err, "/login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookie, token, int(ctl.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/main")
}

func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
