package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pms/shared/failure"
	"pms/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "night_audit_runs"
	EntityName = "night audit run"

	FieldID        = "id"
	FieldAuditDate = "audit_date"
	FieldRunAt     = "run_at"
	FieldStatus    = "status"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// UnknownCategory groups bookings without a payment method or channel.
const UnknownCategory = "Unknown"

// CategoryOf names the breakdown category of an optional booking attribute. Blank values
// fall under UnknownCategory.
func CategoryOf(value *string) string {
	if value == nil {
		return UnknownCategory
	}

	if name := strings.TrimSpace(*value); name != "" {
		return name
	}

	return UnknownCategory
}

var errBreakdownType = errors.New("unsupported breakdown column type")

// NightAuditRun is written once per run and never updated.
type NightAuditRun struct {
	ID                      string          `db:"id"`
	AuditDate               time.Time       `db:"audit_date"`
	RunAt                   time.Time       `db:"run_at"`
	RunBy                   string          `db:"run_by"`
	Status                  string          `db:"status"`
	TotalBookingsPosted     int             `db:"total_bookings_posted"`
	TotalCheckins           int             `db:"total_checkins"`
	TotalCheckouts          int             `db:"total_checkouts"`
	TotalRevenue            decimal.Decimal `db:"total_revenue"`
	OccupancyRate           decimal.Decimal `db:"occupancy_rate"`
	RoomsTotal              int             `db:"rooms_total"`
	RoomsAvailable          int             `db:"rooms_available"`
	RoomsOccupied           int             `db:"rooms_occupied"`
	RoomsReserved           int             `db:"rooms_reserved"`
	RoomsCleaning           int             `db:"rooms_cleaning"`
	RoomsMaintenance        int             `db:"rooms_maintenance"`
	RoomsDirty              int             `db:"rooms_dirty"`
	RoomsOutOfOrder         int             `db:"rooms_out_of_order"`
	PaymentMethodBreakdown  Breakdown       `db:"payment_method_breakdown"`
	BookingChannelBreakdown Breakdown       `db:"booking_channel_breakdown"`
	Notes                   *string         `db:"notes"`
	ErrorMessage            *string         `db:"error_message"`
	CreatedAt               time.Time       `db:"created_at"`
}

func (r NightAuditRun) IsCompleted() bool {
	return r.Status == StatusCompleted
}

type BreakdownItem struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// Breakdown is stored as a jsonb array.
type Breakdown []BreakdownItem

func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	return raw, nil
}

func (b *Breakdown) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*b = Breakdown{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("%w: %T", errBreakdownType, src)
	}

	if err := json.Unmarshal(raw, b); err != nil {
		return fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}

	return nil
}

// Total sums the amounts of all groups.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b {
		total = total.Add(item.Amount)
	}

	return total
}

// DuplicateAuditError reports a completed run already existing for the audit date.
// It unwraps to a conflict failure so the transport layer maps it to 409.
type DuplicateAuditError struct {
	AuditDate time.Time
	RunID     string
}

func (e *DuplicateAuditError) Error() string {
	if e.RunID == "" {
		return fmt.Sprintf("night audit already run for %s", timezone.FormatDate(e.AuditDate))
	}

	return fmt.Sprintf("night audit already run for %s (run %s)", timezone.FormatDate(e.AuditDate), e.RunID)
}

func (e *DuplicateAuditError) Unwrap() error {
	return failure.Conflict(e.Error())
}

// ErrorDetails lets clients navigate to the run that already audited the date.
func (e *DuplicateAuditError) ErrorDetails() map[string]any {
	return map[string]any{
		"audit_date":      timezone.FormatDate(e.AuditDate),
		"existing_run_id": e.RunID,
	}
}

// CompletedEvent is published after a run commits.
type CompletedEvent struct {
	RunID               string          `json:"run_id"`
	AuditDate           string          `json:"audit_date"`
	RunAt               time.Time       `json:"run_at"`
	RunBy               string          `json:"run_by"`
	TotalBookingsPosted int             `json:"total_bookings_posted"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	OccupancyRate       decimal.Decimal `json:"occupancy_rate"`
}

func (r NightAuditRun) CompletedEvent() CompletedEvent {
	return CompletedEvent{
		RunID:               r.ID,
		AuditDate:           timezone.FormatDate(r.AuditDate),
		RunAt:               r.RunAt,
		RunBy:               r.RunBy,
		TotalBookingsPosted: r.TotalBookingsPosted,
		TotalRevenue:        r.TotalRevenue,
		OccupancyRate:       r.OccupancyRate,
	}
}
