package repository

import (
	"time"

	"pms/internal/domains/booking/model"
	roomModel "pms/internal/domains/room/model"
	gDto "pms/shared/dto"
	"pms/shared/timezone"
)

// Calendar dates are bound as YYYY-MM-DD text so postgres compares them as DATE
// without a session timezone cast.

// ActiveAsOf selects bookings the occupancy resolver may care about on asOf: every in-house
// booking plus pending/confirmed bookings whose stay has not ended.
func ActiveAsOf(asOf time.Time, roomIDs ...string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "active_status",
				Field:    model.FieldStatus,
				Value:    []string{model.StatusPending, model.StatusConfirmed, model.StatusCheckedIn},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  "in_house_status",
						Field:    model.FieldStatus,
						Value:    model.StatusCheckedIn,
						Operator: gDto.FilterOperatorEq,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "as_of_date",
						Field:    model.FieldCheckOutDate,
						Value:    timezone.FormatDate(asOf),
						Operator: gDto.FilterOperatorGreaterEq,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	if len(roomIDs) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomIDs,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	return filter
}

// EligibleForPosting narrows the candidates for a night audit of date. It is the SQL
// counterpart of the in-memory eligibility predicate, which stays authoritative.
func EligibleForPosting(date time.Time) gDto.FilterGroup {
	auditDate := timezone.FormatDate(date)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPostedDate,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "cancelled_status",
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "audit_date_check_in",
				Field:    model.FieldCheckInDate,
				Value:    auditDate,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "audit_date_check_out",
				Field:    model.FieldCheckOutDate,
				Value:    auditDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}
}

func PostedByRun(runID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldNightAuditRunID,
				Value:    runID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// OrderForPosting is the stable order used when posting, matching row lock order.
func OrderForPosting() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirAsc,
	}
}

// OrderForDetails lists posted bookings by room then arrival.
func OrderForDetails() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  roomModel.TableName + "." + roomModel.FieldRoomNumber + " ASC, " + model.TableName + "." + model.FieldCheckInDate,
		SortDir: gDto.SortDirAsc,
	}
}
