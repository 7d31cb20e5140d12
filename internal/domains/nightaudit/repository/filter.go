package repository

import (
	"time"

	"pms/internal/domains/nightaudit/model"
	gDto "pms/shared/dto"
	"pms/shared/timezone"
)

// CompletedOn matches the completed run of auditDate, there is at most one.
func CompletedOn(auditDate time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAuditDate,
				Value:    timezone.FormatDate(auditDate),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCompleted,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// ByIDAndStatus keeps failed runs out of lookups by id unless asked for.
func ByIDAndStatus(id, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func ByStatus(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Page orders runs newest audit date first.
func Page(page, pageSize int) gDto.QueryParams {
	return gDto.QueryParams{
		Page:    page,
		Limit:   pageSize,
		SortBy:  model.TableName + "." + model.FieldAuditDate + " DESC, " + model.TableName + "." + model.FieldRunAt,
		SortDir: gDto.SortDirDesc,
	}
}
