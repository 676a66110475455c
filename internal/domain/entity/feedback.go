package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxFeedbackComment = 1000

type Feedback struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID    *uuid.UUID `gorm:"type:uuid;index"`
	Rating        int        `gorm:"not null"`
	Comment       string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
