package testfixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plaintext behind every seeded account.
const Password = "password123"

var (
	loginCounter   uint64
	serviceCounter uint64

	passwordHash = func() string {
		hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		return string(hash)
	}()
)

func nextLogin(prefix string) string {
	return fmt.Sprintf("%s%04d", prefix, atomic.AddUint64(&loginCounter, 1))
}

func account(prefix string) entity.Account {
	return entity.Account{
		Login:     nextLogin(prefix),
		Password:  passwordHash,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
}

func mustCreate(tb testing.TB, db *gorm.DB, value interface{}) {
	tb.Helper()
	if err := db.Create(value).Error; err != nil {
		tb.Fatalf("failed to seed %T: %v", value, err)
	}
}

func SeedAdmin(tb testing.TB, db *gorm.DB) *entity.Admin {
	tb.Helper()
	admin := &entity.Admin{Account: account("admin")}
	mustCreate(tb, db, admin)
	return admin
}

func SeedCustomer(tb testing.TB, db *gorm.DB) *entity.Customer {
	tb.Helper()
	customer := &entity.Customer{
		Account:     account("customer"),
		PhoneNumber: gofakeit.Numerify("+1 (###) ###-####"),
		Address:     gofakeit.Street(),
	}
	mustCreate(tb, db, customer)
	return customer
}

// SeedEmployee creates an employee with the given name; empty names are
// filled in with fake ones.
func SeedEmployee(tb testing.TB, db *gorm.DB, firstName, lastName string) *entity.Employee {
	tb.Helper()
	acc := account("employee")
	if firstName != "" {
		acc.FirstName = firstName
	}
	if lastName != "" {
		acc.LastName = lastName
	}
	employee := &entity.Employee{
		Account:     acc,
		PhoneNumber: gofakeit.Numerify("##########"),
		Role:        entity.StaffRoleEmployee,
	}
	mustCreate(tb, db, employee)
	return employee
}

func SeedService(tb testing.TB, db *gorm.DB, durationMinutes int, price string) *entity.Service {
	tb.Helper()
	service := &entity.Service{
		Name:        fmt.Sprintf("%s Cleaning %d", gofakeit.Word(), atomic.AddUint64(&serviceCounter, 1)),
		Description: gofakeit.Word() + " " + gofakeit.Word(),
		Price:       decimal.RequireFromString(price),
		Duration:    durationMinutes,
	}
	mustCreate(tb, db, service)
	return service
}

// SeedAppointment books service for customer with employee at start,
// bypassing business rules.
func SeedAppointment(tb testing.TB, db *gorm.DB, customer *entity.Customer, employee *entity.Employee, service *entity.Service, start time.Time, status entity.AppointmentStatus) *entity.Appointment {
	tb.Helper()
	appointment := &entity.Appointment{
		CustomerID: customer.ID,
		ServiceID:  service.ID,
		Status:     status,
	}
	if employee != nil {
		id := employee.ID
		appointment.EmployeeID = &id
	}
	appointment.Reschedule(start, service.DurationTime())
	mustCreate(tb, db, appointment)
	return appointment
}

func SeedPayment(tb testing.TB, db *gorm.DB, appointmentID uuid.UUID, amount string, status entity.PaymentStatus) *entity.Payment {
	tb.Helper()
	payment := &entity.Payment{
		AppointmentID: appointmentID,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: entity.PaymentMethodCash,
		Status:        status,
	}
	mustCreate(tb, db, payment)
	return payment
}
