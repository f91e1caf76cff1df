package models

import "time"

// Template is a reusable questionnaire definition. Assessments reference it
// by ID only; deleting a template leaves its assessments in place.
type Template struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	TemplateType string    `gorm:"column:template_type;size:120;not null" json:"template_type"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:TemplateID" json:"questions,omitempty"`
}

func (Template) TableName() string {
	return "templates"
}
