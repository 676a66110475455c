package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "Credit Card"
	PaymentMethodDebitCard  PaymentMethod = "Debit Card"
	PaymentMethodPayPal     PaymentMethod = "PayPal"
	PaymentMethodCash       PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPayPal, PaymentMethodCash:
		return true
	}
	return false
}

// Payment is the single payment record of an appointment.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
