package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
	"github.com/vendorisk/assessment-server/store"
)

// AssessmentService manages filled-out questionnaire instances.
type AssessmentService struct {
	store *store.Store
}

func NewAssessmentService(st *store.Store) *AssessmentService {
	return &AssessmentService{store: st}
}

// AssessmentSummary is one row of the assessment list view. TemplateName is
// empty when the template has since been deleted.
type AssessmentSummary struct {
	models.Assessment
	TemplateName string
}

// AssessmentDetail is everything the view page needs: the assessment, its
// template (nil when deleted), the template's current questions, and the
// recorded answers keyed by question id.
type AssessmentDetail struct {
	Assessment        models.Assessment
	Template          *models.Template
	Questions         []models.Question
	AnswersByQuestion map[uint]models.Answer
}

// Create snapshots the template's current questions and stores the assessment
// with exactly one answer per question, atomically. Submitted values are
// matched by question id; questions without a submitted value get an empty
// answer row.
func (s *AssessmentService) Create(templateID uint, name, vendorName, productName string, answersByQuestion map[uint]string) (models.Assessment, error) {
	_, err := s.store.TemplateByID(templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Assessment{}, NewNotFoundError("Template not found")
	}
	if err != nil {
		return models.Assessment{}, fmt.Errorf("load template: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return models.Assessment{}, NewValidationError("Assessment name is required.")
	}

	questions, err := s.store.QuestionsByTemplate(templateID)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("load questions: %w", err)
	}

	a := models.Assessment{
		TemplateID:  templateID,
		Name:        strings.TrimSpace(name),
		VendorName:  strings.TrimSpace(vendorName),
		ProductName: strings.TrimSpace(productName),
	}
	answers := make([]models.Answer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, models.Answer{
			QuestionID: q.ID,
			AnswerText: answersByQuestion[q.ID],
		})
	}

	if err := s.store.CreateAssessmentWithAnswers(&a, answers); err != nil {
		return models.Assessment{}, fmt.Errorf("create assessment: %w", err)
	}
	return a, nil
}

// List returns all assessments, newest first. Assessments whose template was
// deleted still list, with an empty template name.
func (s *AssessmentService) List() ([]AssessmentSummary, error) {
	assessments, err := s.store.ListAssessments()
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	templates, err := s.store.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	nameByID := make(map[uint]string, len(templates))
	for _, t := range templates {
		nameByID[t.ID] = t.Name
	}

	summaries := make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		summaries = append(summaries, AssessmentSummary{Assessment: a, TemplateName: nameByID[a.TemplateID]})
	}
	return summaries, nil
}

// Get loads the assessment view. A question whose answer row is missing
// simply has no entry in AnswersByQuestion; the page renders "no answer".
func (s *AssessmentService) Get(id uint) (AssessmentDetail, error) {
	a, err := s.store.AssessmentByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AssessmentDetail{}, NewNotFoundError("Assessment not found")
	}
	if err != nil {
		return AssessmentDetail{}, fmt.Errorf("load assessment: %w", err)
	}

	detail := AssessmentDetail{Assessment: a}

	t, err := s.store.TemplateByID(a.TemplateID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Template deleted after the assessment was created; render without it.
	case err != nil:
		return AssessmentDetail{}, fmt.Errorf("load template: %w", err)
	default:
		detail.Template = &t
		detail.Questions, err = s.store.QuestionsByTemplate(t.ID)
		if err != nil {
			return AssessmentDetail{}, fmt.Errorf("load questions: %w", err)
		}
	}

	answers, err := s.store.AnswersByAssessment(a.ID)
	if err != nil {
		return AssessmentDetail{}, fmt.Errorf("load answers: %w", err)
	}
	detail.AnswersByQuestion = make(map[uint]models.Answer, len(answers))
	for _, ans := range answers {
		detail.AnswersByQuestion[ans.QuestionID] = ans
	}
	return detail, nil
}

func (s *AssessmentService) Count() (int64, error) {
	return s.store.CountAssessments()
}

// ExportCSV streams the assessment's question/answer pairs as CSV. Questions
// deleted since creation export with an empty question column; answers whose
// question is gone still export by id.
func (s *AssessmentService) ExportCSV(id uint, w io.Writer) error {
	detail, err := s.Get(id)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"question_id", "question", "answer"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	textByQuestion := make(map[uint]string, len(detail.Questions))
	for _, q := range detail.Questions {
		textByQuestion[q.ID] = q.QuestionText
	}

	seen := make(map[uint]bool, len(detail.Questions))
	for _, q := range detail.Questions {
		seen[q.ID] = true
		record := []string{strconv.FormatUint(uint64(q.ID), 10), q.QuestionText, detail.AnswersByQuestion[q.ID].AnswerText}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	for qid, ans := range detail.AnswersByQuestion {
		if seen[qid] {
			continue
		}
		record := []string{strconv.FormatUint(uint64(qid), 10), textByQuestion[qid], ans.AnswerText}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Delete removes the assessment and its answers in one transaction.
func (s *AssessmentService) Delete(id uint) error {
	_, err := s.store.AssessmentByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Assessment not found")
	}
	if err != nil {
		return fmt.Errorf("load assessment: %w", err)
	}

	if err := s.store.DeleteAssessmentCascade(id); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}
