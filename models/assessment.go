package models

import "time"

// Assessment is a filled-out instance of a Template against a vendor/product.
// TemplateID is a plain reference, not a constrained foreign key: deleting the
// template afterwards leaves the assessment in place (known gap, kept as-is).
type Assessment struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemplateID  uint      `gorm:"column:template_id;index;not null" json:"template_id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	VendorName  string    `gorm:"column:vendor_name;size:255" json:"vendor_name"`
	ProductName string    `gorm:"column:product_name;size:255" json:"product_name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Answers []Answer `gorm:"foreignKey:AssessmentID" json:"answers,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}
