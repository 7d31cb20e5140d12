// Package resolver derives room occupancy from the room registry and the booking ledger.
//
// Everything here is a pure function of its arguments. The caller passes the as-of instant
// explicitly and all booking date comparisons are calendar-date only.
package resolver

import (
	"fmt"
	"slices"
	"strings"
	"time"

	bookingModel "pms/internal/domains/booking/model"
	"pms/internal/domains/occupancy/model"
	roomModel "pms/internal/domains/room/model"
	"pms/shared/timezone"
)

type input struct {
	room     roomModel.Room
	bookings []bookingModel.Booking
	today    time.Time
}

type outcome struct {
	status  model.Status
	matches []bookingModel.Booking
	// ambiguous is set by rules where more than one match means the ledger is inconsistent.
	ambiguous bool
}

type rule struct {
	name  model.Rule
	apply func(in input) (outcome, bool)
}

// rules is evaluated top to bottom, the first rule that applies decides the status.
var rules = []rule{
	{name: model.RuleOverride, apply: applyOverride},
	{name: model.RuleCurrentOccupancy, apply: applyCurrentOccupancy},
	{name: model.RuleOverstay, apply: applyOverstay},
	{name: model.RuleTodayArrival, apply: applyTodayArrival},
	{name: model.RuleFutureReservation, apply: applyFutureReservation},
	{name: model.RuleUnavailableFallback, apply: applyUnavailableFallback},
	{name: model.RuleDefault, apply: applyDefault},
}

// Resolve computes the status of one room. bookings may contain bookings of other rooms,
// they are ignored.
func Resolve(room roomModel.Room, bookings []bookingModel.Booking, asOf time.Time) model.Resolution {
	own := make([]bookingModel.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.RoomID == room.ID {
			own = append(own, booking)
		}
	}

	return resolve(room, own, timezone.DateOnly(asOf))
}

// ResolveAll resolves every room, indexing bookings by room once. Order follows rooms.
func ResolveAll(rooms []roomModel.Room, bookings []bookingModel.Booking, asOf time.Time) []model.Resolution {
	byRoom := make(map[string][]bookingModel.Booking, len(rooms))
	for _, booking := range bookings {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
	}

	today := timezone.DateOnly(asOf)
	resolutions := make([]model.Resolution, 0, len(rooms))

	for _, room := range rooms {
		resolutions = append(resolutions, resolve(room, byRoom[room.ID], today))
	}

	return resolutions
}

func resolve(room roomModel.Room, bookings []bookingModel.Booking, today time.Time) model.Resolution {
	sorted := slices.Clone(bookings)
	slices.SortFunc(sorted, func(a, b bookingModel.Booking) int {
		return strings.Compare(a.ID, b.ID)
	})

	in := input{room: room, bookings: sorted, today: today}

	res := model.Resolution{
		RoomID:      room.ID,
		RoomNumber:  room.RoomNumber,
		RoomType:    room.RoomType,
		NextCheckIn: nextCheckIn(in),
	}

	for _, r := range rules {
		out, ok := r.apply(in)
		if !ok {
			continue
		}

		res.Status = out.status
		res.Rule = r.name

		if len(out.matches) > 0 {
			res.Occupant = occupantOf(out.matches[0])
		}

		if out.ambiguous && len(out.matches) > 1 {
			res.Warnings = append(res.Warnings, ambiguityWarning(room, r.name, out.matches))
		}

		break
	}

	if res.Rule == model.RuleOverride {
		res.OverrideStart, res.OverrideEnd = room.OverrideWindow()
	}

	return res
}

func applyOverride(in input) (outcome, bool) {
	override := in.room.Override()
	if override == "" {
		return outcome{}, false
	}

	return outcome{status: model.Status(override)}, true
}

func applyCurrentOccupancy(in input) (outcome, bool) {
	matches := filter(in.bookings, func(b bookingModel.Booking) bool {
		return b.Status == bookingModel.StatusCheckedIn &&
			!dateOf(b.CheckInDate).After(in.today) &&
			in.today.Before(dateOf(b.CheckOutDate))
	})

	return outcome{status: model.StatusOccupied, matches: matches, ambiguous: true}, len(matches) > 0
}

// applyOverstay keeps a room occupied while a checked in guest is past the scheduled
// checkout, so the late checkout detector can see it.
func applyOverstay(in input) (outcome, bool) {
	matches := filter(in.bookings, func(b bookingModel.Booking) bool {
		return b.Status == bookingModel.StatusCheckedIn &&
			!dateOf(b.CheckOutDate).After(in.today)
	})

	return outcome{status: model.StatusOccupied, matches: matches, ambiguous: true}, len(matches) > 0
}

func applyTodayArrival(in input) (outcome, bool) {
	matches := filter(in.bookings, func(b bookingModel.Booking) bool {
		return isUpcoming(b) && dateOf(b.CheckInDate).Equal(in.today)
	})

	return outcome{status: model.StatusReserved, matches: matches, ambiguous: true}, len(matches) > 0
}

func applyFutureReservation(in input) (outcome, bool) {
	matches := filter(in.bookings, func(b bookingModel.Booking) bool {
		return isUpcoming(b) && dateOf(b.CheckInDate).After(in.today)
	})

	if len(matches) == 0 {
		return outcome{}, false
	}

	// Bookings are already in id order, a stable sort keeps the lowest id on equal dates.
	slices.SortStableFunc(matches, func(a, b bookingModel.Booking) int {
		return dateOf(a.CheckInDate).Compare(dateOf(b.CheckInDate))
	})

	return outcome{status: model.StatusReserved, matches: matches}, true
}

func applyUnavailableFallback(in input) (outcome, bool) {
	if in.room.Available {
		return outcome{}, false
	}

	switch in.room.HousekeepingStatus {
	case roomModel.HousekeepingOutOfOrder:
		return outcome{status: model.StatusOutOfOrder}, true
	case roomModel.HousekeepingDirty:
		return outcome{status: model.StatusDirty}, true
	default:
		return outcome{status: model.StatusMaintenance}, true
	}
}

func applyDefault(in input) (outcome, bool) {
	if in.room.HousekeepingStatus == roomModel.HousekeepingDirty {
		return outcome{status: model.StatusDirty}, true
	}

	return outcome{status: model.StatusAvailable}, true
}

// nextCheckIn is informational and computed regardless of which rule decided the status.
func nextCheckIn(in input) *time.Time {
	var next *time.Time

	for _, booking := range in.bookings {
		if booking.Status != bookingModel.StatusConfirmed {
			continue
		}

		checkIn := dateOf(booking.CheckInDate)
		if !checkIn.After(in.today) {
			continue
		}

		if next == nil || checkIn.Before(*next) {
			next = &checkIn
		}
	}

	return next
}

func isUpcoming(b bookingModel.Booking) bool {
	return b.Status == bookingModel.StatusPending || b.Status == bookingModel.StatusConfirmed
}

func dateOf(t time.Time) time.Time {
	return timezone.DateOnly(t)
}

func filter(bookings []bookingModel.Booking, keep func(bookingModel.Booking) bool) []bookingModel.Booking {
	var out []bookingModel.Booking

	for _, booking := range bookings {
		if keep(booking) {
			out = append(out, booking)
		}
	}

	return out
}

func occupantOf(b bookingModel.Booking) *model.Occupant {
	return &model.Occupant{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		BookingStatus: b.Status,
		GuestName:     b.GuestName,
		CheckInDate:   dateOf(b.CheckInDate),
		CheckOutDate:  dateOf(b.CheckOutDate),
	}
}

func ambiguityWarning(room roomModel.Room, name model.Rule, matches []bookingModel.Booking) model.IntegrityWarning {
	ids := make([]string, 0, len(matches))
	for _, booking := range matches {
		ids = append(ids, booking.ID)
	}

	return model.IntegrityWarning{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		Rule:       name,
		BookingIDs: ids,
		Message: fmt.Sprintf("room %s has %d overlapping bookings for rule %s, using booking %s",
			room.RoomNumber, len(matches), name, ids[0]),
	}
}
