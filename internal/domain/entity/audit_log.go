package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a mutation, written in the same
// transaction as the mutation itself.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorRole Role       `gorm:"type:varchar(20);index" json:"actor_role,omitempty"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions
const (
	AuditActionAccountRegister   = "account.register"
	AuditActionAccountUpdate     = "account.update"
	AuditActionAccountDelete     = "account.delete"
	AuditActionServiceCreate     = "service.create"
	AuditActionServiceUpdate     = "service.update"
	AuditActionServiceDelete     = "service.delete"
	AuditActionScheduleCreate    = "schedule.create"
	AuditActionScheduleUpdate    = "schedule.update"
	AuditActionScheduleDelete    = "schedule.delete"
	AuditActionAppointmentCreate = "appointment.create"
	AuditActionAppointmentUpdate = "appointment.update"
	AuditActionAppointmentDelete = "appointment.delete"
	AuditActionPaymentCreate     = "payment.create"
	AuditActionPaymentUpdate     = "payment.update"
	AuditActionPaymentSync       = "payment.sync"
	AuditActionPaymentDelete     = "payment.delete"
	AuditActionFeedbackCreate    = "feedback.create"
	AuditActionFeedbackUpdate    = "feedback.update"
	AuditActionFeedbackDelete    = "feedback.delete"
)
