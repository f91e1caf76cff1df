package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
	"github.com/vendorisk/assessment-server/store"
)

// TemplateService manages questionnaire definitions and their questions.
type TemplateService struct {
	store *store.Store
}

func NewTemplateService(st *store.Store) *TemplateService {
	return &TemplateService{store: st}
}

// TemplateSummary is one row of the template list view.
type TemplateSummary struct {
	models.Template
	QuestionCount int64
}

func (s *TemplateService) Create(name, templateType, description string) (models.Template, error) {
	name = strings.TrimSpace(name)
	templateType = strings.TrimSpace(templateType)
	if name == "" || templateType == "" {
		return models.Template{}, NewValidationError("Name and type are required.")
	}

	t := models.Template{
		Name:         name,
		TemplateType: templateType,
		Description:  strings.TrimSpace(description),
	}
	if err := s.store.CreateTemplate(&t); err != nil {
		return models.Template{}, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// List returns all templates, newest first, each with its question count.
func (s *TemplateService) List() ([]TemplateSummary, error) {
	templates, err := s.store.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	counts, err := s.store.QuestionCountsByTemplate()
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, TemplateSummary{Template: t, QuestionCount: counts[t.ID]})
	}
	return summaries, nil
}

// Get returns the template and its questions in insertion order.
func (s *TemplateService) Get(id uint) (models.Template, []models.Question, error) {
	t, err := s.store.TemplateByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Template{}, nil, NewNotFoundError("Template not found")
	}
	if err != nil {
		return models.Template{}, nil, fmt.Errorf("load template: %w", err)
	}

	questions, err := s.store.QuestionsByTemplate(t.ID)
	if err != nil {
		return models.Template{}, nil, fmt.Errorf("load questions: %w", err)
	}
	return t, questions, nil
}

func (s *TemplateService) Count() (int64, error) {
	return s.store.CountTemplates()
}

// AddQuestion appends a question to the template. Blank text is a silent
// no-op: an empty add-question form submission is tolerated, not rejected.
func (s *TemplateService) AddQuestion(templateID uint, text, helpText, questionType string) error {
	_, err := s.store.TemplateByID(templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Template not found")
	}
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}
	if questionType == "" {
		questionType = "text"
	}

	q := models.Question{
		TemplateID:   templateID,
		QuestionText: text,
		HelpText:     helpText,
		QuestionType: questionType,
		Required:     true,
	}
	if err := s.store.CreateQuestion(&q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *TemplateService) Question(id uint) (models.Question, error) {
	q, err := s.store.QuestionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Question{}, NewNotFoundError("Question not found")
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("load question: %w", err)
	}
	return q, nil
}

// EditQuestion overwrites the question's editable fields unconditionally,
// matching a full form resubmission: omitted fields come back empty.
func (s *TemplateService) EditQuestion(questionID uint, text, helpText, questionType string) error {
	q, err := s.store.QuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Question not found")
	}
	if err != nil {
		return fmt.Errorf("load question: %w", err)
	}

	q.QuestionText = text
	q.HelpText = helpText
	q.QuestionType = questionType
	if err := s.store.SaveQuestion(&q); err != nil {
		return fmt.Errorf("save question: %w", err)
	}
	return nil
}

// DeleteQuestion removes the question. Answers already recorded against it
// stay untouched.
func (s *TemplateService) DeleteQuestion(questionID uint) error {
	_, err := s.store.QuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Question not found")
	}
	if err != nil {
		return fmt.Errorf("load question: %w", err)
	}

	if err := s.store.DeleteQuestion(questionID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// Delete removes the template and its questions in one transaction.
// Assessments created from it are left in the ledger, now pointing at a
// missing template.
func (s *TemplateService) Delete(id uint) error {
	_, err := s.store.TemplateByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("Template not found")
	}
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}

	if err := s.store.DeleteTemplateCascade(id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
