package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/utils"
)

type TemplateController struct {
	templates *services.TemplateService
}

func NewTemplateController(templates *services.TemplateService) *TemplateController {
	return &TemplateController{templates: templates}
}

func (ctl *TemplateController) List(c *gin.Context) {
	templates, err := ctl.templates.List()
	if err != nil {
		handleError(c, err, "/templates")
		return
	}
	render(c, http.StatusOK, "templates_list.tmpl", gin.H{"Templates": templates})
}

func (ctl *TemplateController) NewForm(c *gin.Context) {
	render(c, http.StatusOK, "template_edit.tmpl", nil)
}

func (ctl *TemplateController) Create(c *gin.Context) {
	t, err := ctl.templates.Create(
		c.PostForm("name"),
		c.PostForm("template_type"),
		c.PostForm("description"),
	)
	if err != nil {
		handleError(c, err, "/templates/new")
		return
	}

	utils.SetFlash(c, "success", "Template created.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/templates/%d", t.ID))
}

// Edit shows the template with its questions and the add-question form.
func (ctl *TemplateController) Edit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	t, questions, err := ctl.templates.Get(id)
	if err != nil {
		handleError(c, err, "/templates")
		return
	}
	render(c, http.StatusOK, "template_edit.tmpl", gin.H{
		"Template":  t,
		"Questions": questions,
	})
}

// AddQuestion appends a question from the edit form. A blank text field is
// tolerated as a no-op and redirects back without a notice.
func (ctl *TemplateController) AddQuestion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	text := c.PostForm("question_text")
	err := ctl.templates.AddQuestion(id, text, c.PostForm("help_text"), c.PostForm("question_type"))
	if err != nil {
		handleError(c, err, fmt.Sprintf("/templates/%d", id))
		return
	}

	if strings.TrimSpace(text) != "" {
		utils.SetFlash(c, "success", "Question added.")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/templates/%d", id))
}

func (ctl *TemplateController) DeleteQuestion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	qid, ok := uintParam(c, "qid")
	if !ok {
		return
	}

	if err := ctl.templates.DeleteQuestion(qid); err != nil {
		handleError(c, err, fmt.Sprintf("/templates/%d", id))
		return
	}

	utils.SetFlash(c, "info", "Question deleted.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/templates/%d", id))
}

func (ctl *TemplateController) EditQuestionForm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	qid, ok := uintParam(c, "qid")
	if !ok {
		return
	}

	t, _, err := ctl.templates.Get(id)
	if err != nil {
		handleError(c, err, "/templates")
		return
	}
	q, err := ctl.templates.Question(qid)
	if err != nil {
		handleError(c, err, fmt.Sprintf("/templates/%d", id))
		return
	}

	render(c, http.StatusOK, "question_edit.tmpl", gin.H{
		"Template": t,
		"Question": q,
	})
}

func (ctl *TemplateController) UpdateQuestion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	qid, ok := uintParam(c, "qid")
	if !ok {
		return
	}

	err := ctl.templates.EditQuestion(qid,
		c.PostForm("text"),
		c.PostForm("help_text"),
		c.PostForm("question_type"),
	)
	if err != nil {
		handleError(c, err, fmt.Sprintf("/templates/%d", id))
		return
	}

	utils.SetFlash(c, "success", "Question updated.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/templates/%d", id))
}

// Delete removes the template and its questions. Assessments created from it
// stay in the ledger.
func (ctl *TemplateController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.templates.Delete(id); err != nil {
		handleError(c, err, "/templates")
		return
	}

	utils.SetFlash(c, "info", "Template deleted.")
	c.Redirect(http.StatusFound, "/templates")
}
