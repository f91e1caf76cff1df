package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/services"
)

type PageController struct {
	templates   *services.TemplateService
	assessments *services.AssessmentService
}

func NewPageController(templates *services.TemplateService, assessments *services.AssessmentService) *PageController {
	return &PageController{templates: templates, assessments: assessments}
}

func (ctl *PageController) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/main")
}

// Main shows the dashboard with template and assessment counts.
func (ctl *PageController) Main(c *gin.Context) {
	templatesCount, err := ctl.templates.Count()
	if err != nil {
		handleError(c, err, "/main")
		return
	}
	assessmentsCount, err := ctl.assessments.Count()
	if err != nil {
		handleError(c, err, "/main")
		return
	}

	render(c, http.StatusOK, "index.tmpl", gin.H{
		"TemplatesCount":   templatesCount,
		"AssessmentsCount": assessmentsCount,
	})
}
