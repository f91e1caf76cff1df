package controllers

import "github.com/gin-gonic/gin"

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	renderNotFound(c)
}
