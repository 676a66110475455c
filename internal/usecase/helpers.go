package usecase

import (
	"context"
	"errors"
	"time"

	"cleaning-service-scheduler/internal/domain/entity"
	repoImpl "cleaning-service-scheduler/internal/repository"
	"cleaning-service-scheduler/internal/service"
	"cleaning-service-scheduler/pkg/optional"

	"golang.org/x/crypto/bcrypt"
)

// Clock returns the current instant. Tests substitute a fixed one.
type Clock func() time.Time

// localMinuteLayout is the HTML datetime-local form, read as UTC.
const localMinuteLayout = "2006-01-02T15:04"

// ParseInstant accepts RFC3339 or YYYY-MM-DDTHH:MM (UTC) and returns a
// normalized instant.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return entity.NormalizeInstant(t), nil
	}
	if t, err := time.ParseInLocation(localMinuteLayout, s, time.UTC); err == nil {
		return entity.NormalizeInstant(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func actorFrom(ctx context.Context) (entity.Actor, error) {
	actor, ok := entity.ActorFromContext(ctx)
	if !ok {
		return entity.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

// bookingError turns storage and lock failures of a booking write into
// domain errors.
func bookingError(err error) error {
	switch {
	case errors.Is(err, service.ErrLockNotAcquired):
		return ErrEmployeeLocked
	case repoImpl.IsExclusionViolation(err):
		return ErrEmployeeBusy
	}
	return err
}

// passwordCost is lowered by tests.
var passwordCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// applyAccountPatch copies the present account fields of a partial update
// onto acc, re-hashing a new password.
func applyAccountPatch(acc *entity.Account, login, password, firstName, lastName optional.Value[string]) error {
	if login.HasValue() {
		acc.Login = login.Value
	}
	if firstName.HasValue() {
		acc.FirstName = firstName.Value
	}
	if lastName.HasValue() {
		acc.LastName = lastName.Value
	}
	if password.HasValue() {
		hashed, err := hashPassword(password.Value)
		if err != nil {
			return err
		}
		acc.Password = hashed
	}
	return nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
