package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account holds the columns shared by every login-capable record.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Login     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	FirstName string    `gorm:"type:varchar(50);not null"`
	LastName  string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Admin struct {
	Account `gorm:"embedded"`
}

func (Admin) TableName() string {
	return "admins"
}

type Customer struct {
	Account     `gorm:"embedded"`
	PhoneNumber string `gorm:"type:varchar(20)"`
	Address     string `gorm:"type:text"`
}

func (Customer) TableName() string {
	return "customers"
}

// StaffRole is the HR classification of an employee, unrelated to the actor role.
type StaffRole string

const (
	StaffRoleEmployee StaffRole = "Employee"
	StaffRoleManager  StaffRole = "Manager"
	StaffRoleHR       StaffRole = "HR"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleEmployee, StaffRoleManager, StaffRoleHR:
		return true
	}
	return false
}

type Employee struct {
	Account     `gorm:"embedded"`
	PhoneNumber string    `gorm:"type:varchar(20)"`
	Role        StaffRole `gorm:"type:varchar(20);not null;default:'Employee'"`
}

func (Employee) TableName() string {
	return "employees"
}
