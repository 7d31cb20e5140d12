package model

import (
	"pms/shared/model"
	"time"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID                 = "id"
	FieldRoomNumber         = "room_number"
	FieldRoomType           = "room_type"
	FieldAvailable          = "available"
	FieldStatusOverride     = "status_override"
	FieldHousekeepingStatus = "housekeeping_status"
)

// Operator set overrides. Any of these wins over booking derived state.
const (
	OverrideMaintenance = "maintenance"
	OverrideCleaning    = "cleaning"
	OverrideReserved    = "reserved"
	OverrideOccupied    = "occupied"
)

const (
	HousekeepingClean      = "clean"
	HousekeepingDirty      = "dirty"
	HousekeepingOutOfOrder = "out_of_order"
)

type Room struct {
	ID                 string     `db:"id"`
	RoomNumber         string     `db:"room_number"`
	RoomType           string     `db:"room_type"`
	Available          bool       `db:"available"`
	StatusOverride     *string    `db:"status_override"`
	HousekeepingStatus string     `db:"housekeeping_status"`
	MaintenanceStart   *time.Time `db:"maintenance_start"`
	MaintenanceEnd     *time.Time `db:"maintenance_end"`
	CleaningStart      *time.Time `db:"cleaning_start"`
	CleaningEnd        *time.Time `db:"cleaning_end"`
	ReservedStart      *time.Time `db:"reserved_start"`
	ReservedEnd        *time.Time `db:"reserved_end"`
	Notes              *string    `db:"notes"`
	model.Metadata
}

// Override returns the operator override, or "" when none or unrecognised.
func (r Room) Override() string {
	if r.StatusOverride == nil {
		return ""
	}

	switch *r.StatusOverride {
	case OverrideMaintenance, OverrideCleaning, OverrideReserved, OverrideOccupied:
		return *r.StatusOverride
	default:
		return ""
	}
}

// OverrideWindow returns the informational date range attached to an override.
func (r Room) OverrideWindow() (start, end *time.Time) {
	switch r.Override() {
	case OverrideMaintenance:
		return r.MaintenanceStart, r.MaintenanceEnd
	case OverrideCleaning:
		return r.CleaningStart, r.CleaningEnd
	case OverrideReserved:
		return r.ReservedStart, r.ReservedEnd
	default:
		return nil, nil
	}
}
