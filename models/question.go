package models

import "time"

type Question struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemplateID   uint      `gorm:"column:template_id;index;not null" json:"template_id"`
	QuestionText string    `gorm:"column:question_text;type:text;not null" json:"question_text"`
	HelpText     string    `gorm:"column:help_text;type:text" json:"help_text"`
	QuestionType string    `gorm:"column:question_type;size:50;not null;default:text" json:"question_type"`
	Required     bool      `gorm:"column:required;default:true" json:"required"`
	OptionsJSON  string    `gorm:"column:options_json;type:text" json:"options_json"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}
