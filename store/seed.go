package store

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/models"
)

type seedTemplate struct {
	name         string
	templateType string
	description  string
	questions    []string
}

var defaultTemplates = []seedTemplate{
	{
		name:         "Third-Party Due Diligence Assessment",
		templateType: "Due Diligence",
		description:  "Basic vendor due diligence questionnaire.",
		questions: []string{
			"What is the legal name of the vendor?",
			"Describe the services the vendor will provide.",
			"Will the vendor process personal data?",
			"Will the vendor process special categories of personal data?",
			"Where will the data be stored and processed?",
			"Does the vendor have security certifications?",
		},
	},
	{
		name:         "Data Protection Impact Assessment (DPIA)",
		templateType: "DPIA",
		description:  "High-level DPIA for internal products.",
		questions: []string{
			"Describe the processing activity.",
			"What types of personal data are processed?",
			"Who are the data subjects?",
			"What risks exist?",
			"What safeguards are implemented?",
			"Any data transfer outside the EEA?",
		},
	},
}

// SeedDefaultTemplates inserts the two stock templates on an empty database.
// It is idempotent: any existing template, default or not, skips the seed.
func (s *Store) SeedDefaultTemplates() error {
	count, err := s.CountTemplates()
	if err != nil {
		return fmt.Errorf("count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, seed := range defaultTemplates {
			t := models.Template{
				Name:         seed.name,
				TemplateType: seed.templateType,
				Description:  seed.description,
			}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("seed template %q: %w", seed.name, err)
			}
			for _, text := range seed.questions {
				q := models.Question{
					TemplateID:   t.ID,
					QuestionText: text,
					QuestionType: "textarea",
					Required:     true,
				}
				if err := tx.Create(&q).Error; err != nil {
					return fmt.Errorf("seed question for %q: %w", seed.name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("seeded default templates", "templates", len(defaultTemplates))
	return nil
}
