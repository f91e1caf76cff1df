package models

// Answer records the text typed for one question within one assessment.
// It is a frozen snapshot: editing or deleting the question later never
// rewrites the answer row.
type Answer struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AssessmentID uint   `gorm:"column:assessment_id;index;not null" json:"assessment_id"`
	QuestionID   uint   `gorm:"column:question_id;index;not null" json:"question_id"`
	AnswerText   string `gorm:"column:answer_text;type:text" json:"answer_text"`
}

func (Answer) TableName() string {
	return "answers"
}
