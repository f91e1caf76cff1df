package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
)

// Store wraps the database handle behind explicit query functions. Every
// "load related rows" step is a separate call; nothing is lazy-loaded.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

/* ===== users ===== */

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

// UserByUsername returns gorm.ErrRecordNotFound when the username is unknown.
func (s *Store) UserByUsername(username string) (models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	return user, err
}

func (s *Store) UserByID(id uint) (models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return user, err
}

func (s *Store) CountUsersByUsername(username string) (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

/* ===== templates + questions ===== */

func (s *Store) CreateTemplate(t *models.Template) error {
	return s.db.Create(t).Error
}

// ListTemplates returns all templates, newest first.
func (s *Store) ListTemplates() ([]models.Template, error) {
	var templates []models.Template
	err := s.db.Order("id DESC").Find(&templates).Error
	return templates, err
}

func (s *Store) TemplateByID(id uint) (models.Template, error) {
	var t models.Template
	err := s.db.First(&t, id).Error
	return t, err
}

func (s *Store) CountTemplates() (int64, error) {
	var count int64
	err := s.db.Model(&models.Template{}).Count(&count).Error
	return count, err
}

// QuestionCountsByTemplate returns how many questions each template carries,
// keyed by template id. Templates with no questions are absent from the map.
func (s *Store) QuestionCountsByTemplate() (map[uint]int64, error) {
	type row struct {
		TemplateID uint
		N          int64
	}
	var rows []row
	err := s.db.Model(&models.Question{}).
		Select("template_id, COUNT(*) AS n").
		Group("template_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.TemplateID] = r.N
	}
	return counts, nil
}

func (s *Store) CreateQuestion(q *models.Question) error {
	return s.db.Create(q).Error
}

// QuestionsByTemplate returns the template's questions in insertion order.
func (s *Store) QuestionsByTemplate(templateID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("template_id = ?", templateID).Order("id ASC").Find(&questions).Error
	return questions, err
}

func (s *Store) QuestionByID(id uint) (models.Question, error) {
	var q models.Question
	err := s.db.First(&q, id).Error
	return q, err
}

// SaveQuestion overwrites the full row, zero values included.
func (s *Store) SaveQuestion(q *models.Question) error {
	return s.db.Save(q).Error
}

func (s *Store) DeleteQuestion(id uint) error {
	return s.db.Delete(&models.Question{}, id).Error
}

// DeleteTemplateCascade removes the template's questions, then the template,
// in one transaction. Assessments referencing the template are left alone.
func (s *Store) DeleteTemplateCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := tx.Delete(&models.Template{}, id).Error; err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		return nil
	})
}

/* ===== assessments + answers ===== */

// CreateAssessmentWithAnswers persists the assessment and all its answer rows
// as one atomic unit; readers never observe a partial write.
func (s *Store) CreateAssessmentWithAnswers(a *models.Assessment, answers []models.Answer) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("create assessment: %w", err)
		}
		for i := range answers {
			answers[i].AssessmentID = a.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return fmt.Errorf("create answer for question %d: %w", answers[i].QuestionID, err)
			}
		}
		return nil
	})
}

// ListAssessments returns all assessments, newest first.
func (s *Store) ListAssessments() ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := s.db.Order("created_at DESC, id DESC").Find(&assessments).Error
	return assessments, err
}

func (s *Store) AssessmentByID(id uint) (models.Assessment, error) {
	var a models.Assessment
	err := s.db.First(&a, id).Error
	return a, err
}

func (s *Store) CountAssessments() (int64, error) {
	var count int64
	err := s.db.Model(&models.Assessment{}).Count(&count).Error
	return count, err
}

func (s *Store) AnswersByAssessment(assessmentID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("assessment_id = ?", assessmentID).Order("id ASC").Find(&answers).Error
	return answers, err
}

// DeleteAssessmentCascade removes the answers, then the assessment, in one
// transaction.
func (s *Store) DeleteAssessmentCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}
		if err := tx.Delete(&models.Assessment{}, id).Error; err != nil {
			return fmt.Errorf("delete assessment: %w", err)
		}
		return nil
	})
}
