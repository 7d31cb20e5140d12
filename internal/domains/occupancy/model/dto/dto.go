package dto

import (
	"time"

	"pms/internal/domains/occupancy/model"
	"pms/shared/constant"
	"pms/shared/timezone"
)

type OccupantResponse struct {
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	BookingStatus string `json:"booking_status"`
	GuestName     string `json:"guest_name"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
}

type WarningResponse struct {
	RoomID     string   `json:"room_id"`
	RoomNumber string   `json:"room_number"`
	Rule       string   `json:"rule"`
	BookingIDs []string `json:"booking_ids"`
	Message    string   `json:"message"`
}

func (w *WarningResponse) FromModel(m model.IntegrityWarning) {
	w.RoomID = m.RoomID
	w.RoomNumber = m.RoomNumber
	w.Rule = string(m.Rule)
	w.BookingIDs = m.BookingIDs
	w.Message = m.Message
}

type RoomStatusResponse struct {
	RoomID        string            `json:"room_id"`
	RoomNumber    string            `json:"room_number"`
	RoomType      string            `json:"room_type"`
	Status        string            `json:"status"`
	Rule          string            `json:"rule"`
	Occupant      *OccupantResponse `json:"occupant,omitempty"`
	NextCheckIn   *string           `json:"next_check_in"`
	OverrideStart *string           `json:"override_start,omitempty"`
	OverrideEnd   *string           `json:"override_end,omitempty"`
	Warnings      []WarningResponse `json:"warnings,omitempty"`
}

func (r *RoomStatusResponse) FromModel(m model.Resolution) {
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.RoomType = m.RoomType
	r.Status = string(m.Status)
	r.Rule = string(m.Rule)
	r.NextCheckIn = timezone.FormatDatePtr(m.NextCheckIn)
	r.OverrideStart = timezone.FormatDatePtr(m.OverrideStart)
	r.OverrideEnd = timezone.FormatDatePtr(m.OverrideEnd)

	if m.Occupant != nil {
		r.Occupant = &OccupantResponse{
			BookingID:     m.Occupant.BookingID,
			BookingNumber: m.Occupant.BookingNumber,
			BookingStatus: m.Occupant.BookingStatus,
			GuestName:     m.Occupant.GuestName,
			CheckInDate:   timezone.FormatDate(m.Occupant.CheckInDate),
			CheckOutDate:  timezone.FormatDate(m.Occupant.CheckOutDate),
		}
	}

	for _, warning := range m.Warnings {
		var res WarningResponse
		res.FromModel(warning)
		r.Warnings = append(r.Warnings, res)
	}
}

type SnapshotResponse struct {
	Total         int    `json:"total"`
	Available     int    `json:"available"`
	Occupied      int    `json:"occupied"`
	Reserved      int    `json:"reserved"`
	Cleaning      int    `json:"cleaning"`
	Maintenance   int    `json:"maintenance"`
	Dirty         int    `json:"dirty"`
	OutOfOrder    int    `json:"out_of_order"`
	OccupancyRate string `json:"occupancy_rate"`
}

func (s *SnapshotResponse) FromModel(m model.Snapshot) {
	s.Total = m.Total
	s.Available = m.Available
	s.Occupied = m.Occupied
	s.Reserved = m.Reserved
	s.Cleaning = m.Cleaning
	s.Maintenance = m.Maintenance
	s.Dirty = m.Dirty
	s.OutOfOrder = m.OutOfOrder
	s.OccupancyRate = m.OccupancyRate().StringFixed(constant.MoneyDecimals)
}

type BoardResponse struct {
	AsOf    string               `json:"as_of"`
	Rooms   []RoomStatusResponse `json:"rooms"`
	Summary SnapshotResponse     `json:"summary"`
}

func (b *BoardResponse) FromModels(asOf time.Time, resolutions []model.Resolution, snapshot model.Snapshot) {
	b.AsOf = asOf.Format(constant.DateFormat)
	b.Summary.FromModel(snapshot)

	b.Rooms = make([]RoomStatusResponse, len(resolutions))
	for i, res := range resolutions {
		b.Rooms[i].FromModel(res)
	}
}

type LateCheckoutResponse struct {
	RoomID       string `json:"room_id"`
	RoomNumber   string `json:"room_number"`
	BookingID    string `json:"booking_id"`
	GuestName    string `json:"guest_name"`
	CheckOutDate string `json:"check_out_date"`
	HoursLate    int    `json:"hours_late"`
}

func (l *LateCheckoutResponse) FromModel(m model.LateCheckout) {
	l.RoomID = m.RoomID
	l.RoomNumber = m.RoomNumber
	l.BookingID = m.BookingID
	l.GuestName = m.GuestName
	l.CheckOutDate = timezone.FormatDate(m.CheckOutDate)
	l.HoursLate = m.HoursLate
}

type LateCheckoutsResponse struct {
	AsOf          string                 `json:"as_of"`
	LateCheckouts []LateCheckoutResponse `json:"late_checkouts"`
}

func (l *LateCheckoutsResponse) FromModels(asOf time.Time, models []model.LateCheckout) {
	l.AsOf = asOf.Format(constant.DateFormat)

	l.LateCheckouts = make([]LateCheckoutResponse, len(models))
	for i, m := range models {
		l.LateCheckouts[i].FromModel(m)
	}
}

type NoShowResponse struct {
	RoomID       string `json:"room_id"`
	RoomNumber   string `json:"room_number"`
	BookingID    string `json:"booking_id"`
	GuestName    string `json:"guest_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	DaysOverdue  int    `json:"days_overdue"`
}

type AnomalyReportResponse struct {
	AsOf              string                 `json:"as_of"`
	LateCheckouts     []LateCheckoutResponse `json:"late_checkouts"`
	NoShows           []NoShowResponse       `json:"no_shows"`
	IntegrityWarnings []WarningResponse      `json:"integrity_warnings"`
}

func (a *AnomalyReportResponse) FromModel(m model.Report) {
	a.AsOf = m.AsOf.Format(constant.DateFormat)

	a.LateCheckouts = make([]LateCheckoutResponse, len(m.LateCheckouts))
	for i, late := range m.LateCheckouts {
		a.LateCheckouts[i].FromModel(late)
	}

	a.NoShows = make([]NoShowResponse, len(m.NoShows))
	for i, noShow := range m.NoShows {
		a.NoShows[i] = NoShowResponse{
			RoomID:       noShow.RoomID,
			RoomNumber:   noShow.RoomNumber,
			BookingID:    noShow.BookingID,
			GuestName:    noShow.GuestName,
			CheckInDate:  timezone.FormatDate(noShow.CheckInDate),
			CheckOutDate: timezone.FormatDate(noShow.CheckOutDate),
			DaysOverdue:  noShow.DaysOverdue,
		}
	}

	a.IntegrityWarnings = make([]WarningResponse, len(m.IntegrityWarnings))
	for i, warning := range m.IntegrityWarnings {
		a.IntegrityWarnings[i].FromModel(warning)
	}
}
