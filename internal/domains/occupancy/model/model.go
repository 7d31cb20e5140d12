package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived operational state of a room. It is never persisted.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusReserved    Status = "reserved"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
	StatusDirty       Status = "dirty"
	StatusOutOfOrder  Status = "out_of_order"
)

// Rule names the resolution rule that produced a status.
type Rule string

const (
	RuleOverride            Rule = "override"
	RuleCurrentOccupancy    Rule = "current_occupancy"
	RuleOverstay            Rule = "overstay"
	RuleTodayArrival        Rule = "today_arrival"
	RuleFutureReservation   Rule = "future_reservation"
	RuleUnavailableFallback Rule = "unavailable_fallback"
	RuleDefault             Rule = "default"
)

type Occupant struct {
	BookingID     string
	BookingNumber string
	BookingStatus string
	GuestName     string
	CheckInDate   time.Time
	CheckOutDate  time.Time
}

// IntegrityWarning flags booking data the resolver had to disambiguate.
type IntegrityWarning struct {
	RoomID     string
	RoomNumber string
	Rule       Rule
	BookingIDs []string
	Message    string
}

type Resolution struct {
	RoomID        string
	RoomNumber    string
	RoomType      string
	Status        Status
	Rule          Rule
	Occupant      *Occupant
	NextCheckIn   *time.Time
	OverrideStart *time.Time
	OverrideEnd   *time.Time
	Warnings      []IntegrityWarning
}

type LateCheckout struct {
	RoomID       string
	RoomNumber   string
	BookingID    string
	GuestName    string
	CheckOutDate time.Time
	HoursLate    int
}

// NoShow is a pending or confirmed booking whose arrival date passed without check-in.
type NoShow struct {
	RoomID       string
	RoomNumber   string
	BookingID    string
	GuestName    string
	CheckInDate  time.Time
	CheckOutDate time.Time
	DaysOverdue  int
}

type Report struct {
	AsOf              time.Time
	LateCheckouts     []LateCheckout
	NoShows           []NoShow
	IntegrityWarnings []IntegrityWarning
}

// Snapshot counts rooms per resolved status.
type Snapshot struct {
	Total       int
	Available   int
	Occupied    int
	Reserved    int
	Cleaning    int
	Maintenance int
	Dirty       int
	OutOfOrder  int
}

func (s *Snapshot) Add(status Status) {
	s.Total++

	switch status {
	case StatusAvailable:
		s.Available++
	case StatusOccupied:
		s.Occupied++
	case StatusReserved:
		s.Reserved++
	case StatusCleaning:
		s.Cleaning++
	case StatusMaintenance:
		s.Maintenance++
	case StatusDirty:
		s.Dirty++
	case StatusOutOfOrder:
		s.OutOfOrder++
	}
}

// OccupancyRate is occupied rooms over all rooms as a percentage with two decimals.
func (s Snapshot) OccupancyRate() decimal.Decimal {
	if s.Total == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(s.Occupied)).
		Mul(decimal.NewFromInt(100)). //nolint:mnd
		Div(decimal.NewFromInt(int64(s.Total))).
		Round(2) //nolint:mnd
}
