package converter

import (
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
)

func ListQueryToFilter(q dto.ListQuery) entity.ListFilter {
	return entity.ListFilter{
		Page:       q.Page,
		Limit:      q.Limit,
		Status:     q.Status,
		ServiceID:  q.ServiceID,
		EmployeeID: q.EmployeeID,
		CustomerID: q.CustomerID,
	}
}

func AuditLogQueryToFilter(q dto.AuditLogQuery) entity.AuditLogFilter {
	return entity.AuditLogFilter{
		Page:    q.Page,
		Limit:   q.Limit,
		Action:  q.Action,
		ActorID: q.ActorID,
	}
}
