package service

import (
	"cmp"
	"slices"
	"time"

	bookingModel "pms/internal/domains/booking/model"
	"pms/internal/domains/nightaudit/model"
	occupancyModel "pms/internal/domains/occupancy/model"
	"pms/shared/timezone"

	"github.com/shopspring/decimal"
)

// IsEligibleForPosting is the single eligibility rule used by preview and run. A booking
// overlaps date when it is in house that night or departs that day.
func IsEligibleForPosting(booking bookingModel.Booking, date time.Time) bool {
	if booking.Status == bookingModel.StatusCancelled || booking.IsPosted() {
		return false
	}

	day := timezone.DateOnly(date)

	return !timezone.DateOnly(booking.CheckInDate).After(day) && !timezone.DateOnly(booking.CheckOutDate).Before(day)
}

// PostingAmount is the revenue recognised when the booking is posted on date. The whole
// stay is recognised once; a booking first posted on its departure day carries no revenue.
func PostingAmount(booking bookingModel.Booking, date time.Time) decimal.Decimal {
	day := timezone.DateOnly(date)

	if !timezone.DateOnly(booking.CheckInDate).After(day) && day.Before(timezone.DateOnly(booking.CheckOutDate)) {
		return booking.TotalAmount
	}

	return decimal.Zero
}

func filterEligible(bookings []bookingModel.Booking, date time.Time) []bookingModel.Booking {
	eligible := make([]bookingModel.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if IsEligibleForPosting(booking, date) {
			eligible = append(eligible, booking)
		}
	}

	return eligible
}

// breakdownBy groups amounts by category, ordered by category name.
func breakdownBy(bookings []bookingModel.Booking, category func(bookingModel.Booking) *string, amount func(bookingModel.Booking) decimal.Decimal) model.Breakdown {
	groups := map[string]*model.BreakdownItem{}

	for _, booking := range bookings {
		name := model.CategoryOf(category(booking))

		item, ok := groups[name]
		if !ok {
			item = &model.BreakdownItem{Category: name, Amount: decimal.Zero}
			groups[name] = item
		}

		item.Count++
		item.Amount = item.Amount.Add(amount(booking))
	}

	breakdown := make(model.Breakdown, 0, len(groups))
	for _, item := range groups {
		breakdown = append(breakdown, *item)
	}

	slices.SortFunc(breakdown, func(a, b model.BreakdownItem) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return breakdown
}

func paymentMethodOf(booking bookingModel.Booking) *string {
	return booking.PaymentMethod
}

func sourceOf(booking bookingModel.Booking) *string {
	return booking.Source
}

// compose fills the aggregates of run from the bookings it posts and the room snapshot.
func compose(run *model.NightAuditRun, bookings []bookingModel.Booking, snapshot occupancyModel.Snapshot) {
	day := timezone.DateOnly(run.AuditDate)
	amount := func(booking bookingModel.Booking) decimal.Decimal {
		return PostingAmount(booking, day)
	}

	run.TotalBookingsPosted = len(bookings)
	run.TotalCheckins = 0
	run.TotalCheckouts = 0
	run.TotalRevenue = decimal.Zero

	for _, booking := range bookings {
		if timezone.DateOnly(booking.CheckInDate).Equal(day) {
			run.TotalCheckins++
		}

		if timezone.DateOnly(booking.CheckOutDate).Equal(day) {
			run.TotalCheckouts++
		}

		run.TotalRevenue = run.TotalRevenue.Add(amount(booking))
	}

	run.PaymentMethodBreakdown = breakdownBy(bookings, paymentMethodOf, amount)
	run.BookingChannelBreakdown = breakdownBy(bookings, sourceOf, amount)

	applySnapshot(run, snapshot)
}

func applySnapshot(run *model.NightAuditRun, snapshot occupancyModel.Snapshot) {
	run.OccupancyRate = snapshot.OccupancyRate()
	run.RoomsTotal = snapshot.Total
	run.RoomsAvailable = snapshot.Available
	run.RoomsOccupied = snapshot.Occupied
	run.RoomsReserved = snapshot.Reserved
	run.RoomsCleaning = snapshot.Cleaning
	run.RoomsMaintenance = snapshot.Maintenance
	run.RoomsDirty = snapshot.Dirty
	run.RoomsOutOfOrder = snapshot.OutOfOrder
}

// postedAmountOf reads back what a run actually recorded on the booking.
func postedAmountOf(booking bookingModel.Booking) decimal.Decimal {
	if booking.PostedAmount.Valid {
		return booking.PostedAmount.Decimal
	}

	return decimal.Zero
}
