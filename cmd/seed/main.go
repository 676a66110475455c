package main

import (
	"flag"
	"fmt"
	"time"

	"cleaning-service-scheduler/cmd/bootstrap"
	"cleaning-service-scheduler/config"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Every seeded account shares this password.
const demoPassword = "password123"

var serviceNames = []string{
	"Standard Home Cleaning",
	"Deep Cleaning",
	"Move-Out Cleaning",
	"Office Cleaning",
	"Window Washing",
	"Carpet Shampoo",
	"Post-Renovation Cleanup",
}

var staffRoles = []entity.StaffRole{entity.StaffRoleEmployee, entity.StaffRoleEmployee, entity.StaffRoleManager, entity.StaffRoleHR}

func main() {
	customers := flag.Int("customers", 50, "number of customers")
	employees := flag.Int("employees", 10, "number of employees")
	flag.Parse()

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	log.Info("seed starting")

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, string(hash)); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := seedCustomers(tx, string(hash), *customers); err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
		staff, err := seedEmployees(tx, string(hash), *employees)
		if err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
		if err := seedSchedules(tx, staff); err != nil {
			return fmt.Errorf("seed schedules: %w", err)
		}
		return seedServices(tx)
	})
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Infof("seed complete, every account uses password %q", demoPassword)
}

func account(login, hash string) entity.Account {
	return entity.Account{
		Login:     login,
		Password:  hash,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
}

// seedAdmin creates the "admin" login unless an admin already exists.
func seedAdmin(tx *gorm.DB, hash string) error {
	count, err := repository.NewAdminRepository().Count(tx)
	if err != nil || count > 0 {
		return err
	}
	return repository.NewAdminRepository().Create(tx, &entity.Admin{Account: account("admin", hash)})
}

func seedCustomers(tx *gorm.DB, hash string, count int) error {
	repo := repository.NewCustomerRepository()
	for i := 0; i < count; i++ {
		customer := &entity.Customer{
			Account:     account(fmt.Sprintf("customer%03d_%s", i, gofakeit.Numerify("####")), hash),
			PhoneNumber: gofakeit.Numerify("+1 (###) ###-####"),
			Address:     gofakeit.Street(),
		}
		if err := repo.Create(tx, customer); err != nil {
			return err
		}
	}
	return nil
}

func seedEmployees(tx *gorm.DB, hash string, count int) ([]entity.Employee, error) {
	repo := repository.NewEmployeeRepository()
	staff := make([]entity.Employee, 0, count)
	for i := 0; i < count; i++ {
		employee := entity.Employee{
			Account:     account(fmt.Sprintf("employee%03d_%s", i, gofakeit.Numerify("####")), hash),
			PhoneNumber: gofakeit.Numerify("##########"),
			Role:        staffRoles[gofakeit.Number(0, len(staffRoles)-1)],
		}
		if err := repo.Create(tx, &employee); err != nil {
			return nil, err
		}
		staff = append(staff, employee)
	}
	return staff, nil
}

// seedSchedules gives every employee a weekday shift.
func seedSchedules(tx *gorm.DB, staff []entity.Employee) error {
	repo := repository.NewScheduleRepository()
	for _, employee := range staff {
		start := gofakeit.Number(7, 10)
		for day := 1; day <= 5; day++ {
			schedule := &entity.Schedule{
				EmployeeID: employee.ID,
				DayOfWeek:  day,
				StartTime:  fmt.Sprintf("%02d:00", start),
				EndTime:    fmt.Sprintf("%02d:00", start+8),
			}
			if err := repo.Create(tx, schedule); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedServices skips names that already exist so the command can be rerun.
func seedServices(tx *gorm.DB) error {
	repo := repository.NewServiceRepository()
	for _, name := range serviceNames {
		existing, err := repo.FindByName(tx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		svc := &entity.Service{
			Name:        name,
			Description: fmt.Sprintf("%s and %s surfaces included", gofakeit.Word(), gofakeit.Word()),
			Price:       decimal.NewFromInt(int64(gofakeit.Number(40, 300))),
			Duration:    gofakeit.Number(2, 8) * 30,
		}
		if err := repo.Create(tx, svc); err != nil {
			return err
		}
	}
	return nil
}
