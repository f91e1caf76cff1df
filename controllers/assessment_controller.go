package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/utils"
)

type AssessmentController struct {
	templates   *services.TemplateService
	assessments *services.AssessmentService
}

func NewAssessmentController(templates *services.TemplateService, assessments *services.AssessmentService) *AssessmentController {
	return &AssessmentController{templates: templates, assessments: assessments}
}

func (ctl *AssessmentController) List(c *gin.Context) {
	assessments, err := ctl.assessments.List()
	if err != nil {
		handleError(c, err, "/assessments")
		return
	}
	render(c, http.StatusOK, "assessments_list.tmpl", gin.H{"Assessments": assessments})
}

// NewForm renders a blank answer form built from the template's questions.
func (ctl *AssessmentController) NewForm(c *gin.Context) {
	templateID, ok := uintParam(c, "templateId")
	if !ok {
		return
	}

	t, questions, err := ctl.templates.Get(templateID)
	if err != nil {
		handleError(c, err, "/templates")
		return
	}
	render(c, http.StatusOK, "assessment_new.tmpl", gin.H{
		"Template":  t,
		"Questions": questions,
	})
}

// Create collects one submitted value per question field and stores the
// assessment with its answers. Field names follow the question id, so the
// mapping is rebuilt against the template's known question set rather than
// trusting arbitrary form keys.
func (ctl *AssessmentController) Create(c *gin.Context) {
	templateID, ok := uintParam(c, "templateId")
	if !ok {
		return
	}

	_, questions, err := ctl.templates.Get(templateID)
	if err != nil {
		handleError(c, err, "/templates")
		return
	}

	answers := make(map[uint]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = c.PostForm(fmt.Sprintf("question_%d", q.ID))
	}

	a, err := ctl.assessments.Create(templateID,
		c.PostForm("assessment_name"),
		c.PostForm("vendor_name"),
		c.PostForm("product_name"),
		answers,
	)
	if err != nil {
		handleError(c, err, fmt.Sprintf("/assessments/new/%d", templateID))
		return
	}

	utils.SetFlash(c, "success", "Assessment saved.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/assessments/%d", a.ID))
}

func (ctl *AssessmentController) View(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctl.assessments.Get(id)
	if err != nil {
		handleError(c, err, "/assessments")
		return
	}
	render(c, http.StatusOK, "assessment_view.tmpl", gin.H{
		"Assessment":        detail.Assessment,
		"Template":          detail.Template,
		"Questions":         detail.Questions,
		"AnswersByQuestion": detail.AnswersByQuestion,
	})
}

// Export streams the assessment as a CSV download.
func (ctl *AssessmentController) Export(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	// Probe first so a missing assessment still renders the 404 page instead
	// of a half-written download.
	if _, err := ctl.assessments.Get(id); err != nil {
		handleError(c, err, "/assessments")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=assessment_%d.csv", id))
	if err := ctl.assessments.ExportCSV(id, c.Writer); err != nil {
		// Headers are already out; nothing to render.
		_ = c.Error(err)
	}
}

func (ctl *AssessmentController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.assessments.Delete(id); err != nil {
		handleError(c, err, "/assessments")
		return
	}

	utils.SetFlash(c, "info", "Assessment deleted.")
	c.Redirect(http.StatusFound, "/assessments")
}
