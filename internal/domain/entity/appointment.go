package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "Scheduled"
	AppointmentStatusInProgress AppointmentStatus = "In Progress"
	AppointmentStatusCompleted  AppointmentStatus = "Completed"
	AppointmentStatusCancelled  AppointmentStatus = "Cancelled"
)

// appointmentTransitions is the forward lifecycle. Completed and Cancelled
// have no outgoing edges.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled:  {AppointmentStatusInProgress, AppointmentStatusCancelled},
	AppointmentStatusInProgress: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	return status, status.Valid()
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusInProgress, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanAdvanceTo reports whether next is a forward edge of the lifecycle.
func (s AppointmentStatus) CanAdvanceTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentSync returns the payment status implied by moving an appointment
// into s, if any.
func (s AppointmentStatus) PaymentSync() (PaymentStatus, bool) {
	switch s {
	case AppointmentStatusCompleted:
		return PaymentStatusCompleted, true
	case AppointmentStatusCancelled:
		return PaymentStatusFailed, true
	}
	return "", false
}

// Appointment is a booked service for a customer. EndsAt is derived from
// AppointmentDate and the service duration so that overlap checks and the
// storage exclusion constraint can work on plain columns.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	EmployeeID      *uuid.UUID        `gorm:"type:uuid;index"`
	ServiceID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	AppointmentDate time.Time         `gorm:"not null;index"`
	EndsAt          time.Time         `gorm:"not null"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Employee *Employee `gorm:"foreignKey:EmployeeID"`
	Service  *Service  `gorm:"foreignKey:ServiceID"`
	Payment  *Payment  `gorm:"foreignKey:AppointmentID"`
	Feedback *Feedback `gorm:"foreignKey:AppointmentID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

func (a *Appointment) IsAssignedTo(employeeID uuid.UUID) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// Reschedule moves the window to start at start for a service of the given length.
func (a *Appointment) Reschedule(start time.Time, duration time.Duration) {
	a.AppointmentDate = NormalizeInstant(start)
	a.EndsAt = a.AppointmentDate.Add(duration)
}

func (a *Appointment) Window() Window {
	return Window{Start: a.AppointmentDate, End: a.EndsAt}
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start time.Time, duration time.Duration) Window {
	start = NormalizeInstant(start)
	return Window{Start: start, End: start.Add(duration)}
}

// Overlaps reports whether the two half-open intervals share any instant.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// NormalizeInstant stores instants in UTC at second precision.
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
