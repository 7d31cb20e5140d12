package repository

import (
	"pms/internal/domains/room/model"
	gDto "pms/shared/dto"
)

func ByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// OrderByRoomNumber lists rooms the way the front desk reads its board.
func OrderByRoomNumber() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}
}
