package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/middleware"
	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/utils"
)

// render draws an HTML page, attaching the pending flash notice and the
// current user when present.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if f, ok := utils.PopFlash(c); ok {
		data["Flash"] = f
	}
	if u, ok := c.Get(middleware.CtxUser); ok {
		data["CurrentUser"] = u
	}
	c.HTML(status, page, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "not_found.tmpl", gin.H{})
}

// handleError maps a service failure onto the HTML surface: recoverable
// errors flash and redirect back to the originating form, missing entities
// render the 404 page, anything else becomes a logged 500.
func handleError(c *gin.Context, err error, backTo string) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.CodeNotFound:
			renderNotFound(c)
		case services.CodeUnauthorized:
			c.Redirect(http.StatusFound, "/login")
		default:
			utils.SetFlash(c, "danger", se.Message)
			c.Redirect(http.StatusFound, backTo)
		}
		return
	}

	slog.Error("request failed",
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(middleware.CtxRequestID),
	)
	render(c, http.StatusInternalServerError, "error.tmpl", gin.H{})
}

// uintParam parses a numeric path parameter. A malformed id renders the 404
// page and returns false.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		renderNotFound(c)
		return 0, false
	}
	return uint(id), true
}
