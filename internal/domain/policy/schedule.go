package policy

import "cleaning-service-scheduler/internal/domain/entity"

func CanViewSchedule(actor entity.Actor, s *entity.Schedule) bool {
	return actor.IsAdmin() || actor.Is(entity.RoleEmployee, s.EmployeeID)
}

func AuthorizeScheduleRead(actor entity.Actor, s *entity.Schedule) error {
	if CanViewSchedule(actor, s) {
		return nil
	}
	return ErrForbidden
}

// ScheduleScope gives customers an empty list rather than an error.
func ScheduleScope(actor entity.Actor) entity.Scope {
	switch actor.Role {
	case entity.RoleAdmin:
		return entity.ScopeAll()
	case entity.RoleEmployee:
		return entity.ScopeEmployee(actor.ID)
	}
	return entity.ScopeNothing()
}

// AuthorizeScheduleUpdate: the owning employee may change day and hours but
// cannot hand the schedule to someone else.
func AuthorizeScheduleUpdate(actor entity.Actor, s *entity.Schedule, reassign bool) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Is(entity.RoleEmployee, s.EmployeeID) && !reassign {
		return nil
	}
	return ErrForbidden
}
