package resolver

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	bookingModel "pms/internal/domains/booking/model"
	"pms/internal/domains/occupancy/model"
	"pms/shared/timezone"
)

// DetectLateCheckouts reports occupied rooms whose occupant passed the scheduled checkout date.
// Hours late are counted from midnight of the checkout date in asOf's location and floored.
// The result is ordered by hours late descending, then room number.
func DetectLateCheckouts(resolutions []model.Resolution, asOf time.Time) []model.LateCheckout {
	today := timezone.DateOnly(asOf)
	late := make([]model.LateCheckout, 0)

	for _, res := range resolutions {
		if res.Status != model.StatusOccupied || res.Occupant == nil {
			continue
		}

		checkOut := res.Occupant.CheckOutDate
		if !timezone.DateOnly(checkOut).Before(today) {
			continue
		}

		elapsed := asOf.Sub(timezone.Midnight(checkOut, asOf.Location()))

		late = append(late, model.LateCheckout{
			RoomID:       res.RoomID,
			RoomNumber:   res.RoomNumber,
			BookingID:    res.Occupant.BookingID,
			GuestName:    res.Occupant.GuestName,
			CheckOutDate: checkOut,
			HoursLate:    int(math.Floor(elapsed.Hours())),
		})
	}

	slices.SortFunc(late, func(a, b model.LateCheckout) int {
		if a.HoursLate != b.HoursLate {
			return cmp.Compare(b.HoursLate, a.HoursLate)
		}

		return strings.Compare(a.RoomNumber, b.RoomNumber)
	})

	return late
}

// DetectNoShows reports pending or confirmed bookings whose arrival date passed while the
// stay is still running. Ordered by check-in date, then room number.
func DetectNoShows(bookings []bookingModel.Booking, asOf time.Time) []model.NoShow {
	today := timezone.DateOnly(asOf)
	noShows := make([]model.NoShow, 0)

	for _, booking := range bookings {
		if !isUpcoming(booking) {
			continue
		}

		checkIn := timezone.DateOnly(booking.CheckInDate)
		checkOut := timezone.DateOnly(booking.CheckOutDate)

		if !checkIn.Before(today) || !today.Before(checkOut) {
			continue
		}

		noShows = append(noShows, model.NoShow{
			RoomID:       booking.RoomID,
			RoomNumber:   booking.RoomNumber,
			BookingID:    booking.ID,
			GuestName:    booking.GuestName,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			DaysOverdue:  timezone.DaysBetween(checkIn, today),
		})
	}

	slices.SortFunc(noShows, func(a, b model.NoShow) int {
		if c := a.CheckInDate.Compare(b.CheckInDate); c != 0 {
			return c
		}

		return strings.Compare(a.RoomNumber, b.RoomNumber)
	})

	return noShows
}

// CollectWarnings flattens integrity warnings of all resolutions.
func CollectWarnings(resolutions []model.Resolution) []model.IntegrityWarning {
	warnings := make([]model.IntegrityWarning, 0)

	for _, res := range resolutions {
		warnings = append(warnings, res.Warnings...)
	}

	return warnings
}

// Summarize counts resolutions per status.
func Summarize(resolutions []model.Resolution) model.Snapshot {
	var snapshot model.Snapshot

	for _, res := range resolutions {
		snapshot.Add(res.Status)
	}

	return snapshot
}
