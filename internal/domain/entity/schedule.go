package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule is a weekly recurring working window of one employee.
// DayOfWeek follows time.Weekday (0 = Sunday).
type Schedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	DayOfWeek  int       `gorm:"not null"`
	StartTime  string    `gorm:"type:varchar(5);not null"`
	EndTime    string    `gorm:"type:varchar(5);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	// Relationships
	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

func (Schedule) TableName() string {
	return "schedules"
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidWindow reports whether the day is in [0,6] and start comes before end.
// Times are zero-padded HH:MM, so string order is clock order.
func (s *Schedule) ValidWindow() bool {
	return s.DayOfWeek >= 0 && s.DayOfWeek <= 6 && s.StartTime < s.EndTime
}
