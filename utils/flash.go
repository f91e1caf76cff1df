package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string // "success", "danger", "info"
	Message  string
}

// SetFlash stores a notice in a short-lived cookie. It survives exactly one
// redirect; PopFlash clears it on the next render.
func SetFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+"|"+message, 60, "/", "", false, true)
}

// PopFlash reads and clears the pending notice, if any.
func PopFlash(c *gin.Context) (Flash, bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return Flash{}, false
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	category, message, found := strings.Cut(raw, "|")
	if !found {
		return Flash{Category: "info", Message: raw}, true
	}
	return Flash{Category: category, Message: message}, true
}
