package model

import (
	roomModel "pms/internal/domains/room/model"
	"pms/shared/model"
	"pms/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldStatus          = "status"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldPostedDate      = "posted_date"
	FieldPostedAmount    = "posted_amount"
	FieldNightAuditRunID = "night_audit_run_id"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCheckedIn = "checked_in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID              string              `db:"id"`
	BookingNumber   string              `db:"booking_number"`
	RoomID          string              `db:"room_id"`
	RoomNumber      string              `db:"room_number"        table:"rooms"`
	RoomType        string              `db:"room_type"          table:"rooms"`
	GuestID         string              `db:"guest_id"`
	GuestName       string              `db:"guest_name"`
	CheckInDate     time.Time           `db:"check_in_date"`
	CheckOutDate    time.Time           `db:"check_out_date"`
	Status          string              `db:"status"`
	TotalAmount     decimal.Decimal     `db:"total_amount"`
	PaymentMethod   *string             `db:"payment_method"`
	Source          *string             `db:"source"`
	PostedDate      *time.Time          `db:"posted_date"`
	PostedAmount    decimal.NullDecimal `db:"posted_amount"`
	NightAuditRunID *string             `db:"night_audit_run_id"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN " + roomModel.TableName + " ON " + roomModel.TableName + "." + roomModel.FieldID + " = " + TableName + "." + FieldRoomID
}

func (b Booking) IsPosted() bool {
	return b.PostedDate != nil
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return timezone.DaysBetween(b.CheckInDate, b.CheckOutDate)
}

// Posting is the audit linkage written onto a booking when a night audit posts it.
type Posting struct {
	BookingID       string          `db:"id"`
	PostedDate      time.Time       `db:"posted_date"`
	PostedAmount    decimal.Decimal `db:"posted_amount"`
	NightAuditRunID string          `db:"night_audit_run_id"`
	ModifiedAt      time.Time       `db:"modified_at"`
	ModifiedBy      string          `db:"modified_by"`
}
