package dto

import (
	"net/http"
	"strconv"
	"strings"

	bookingModel "pms/internal/domains/booking/model"
	"pms/internal/domains/nightaudit/model"
	"pms/shared"
	"pms/shared/constant"
	"pms/shared/failure"
	"pms/shared/timezone"
)

type RunRequest struct {
	AuditDate string  `json:"audit_date" validate:"required,calendardate"`
	Notes     *string `json:"notes"      validate:"omitempty,max=1000"`
}

// ListQuery is the paging and status filter of the run listing.
type ListQuery struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
}

// FromRequest reads page, page_size and status. Values that are present but invalid are
// rejected, page_size above maxPageSize is clamped.
func (q *ListQuery) FromRequest(r *http.Request, defaultPageSize, maxPageSize int) error {
	params := r.URL.Query()

	q.Page = constant.DefaultValuePage
	q.PageSize = defaultPageSize
	q.Status = model.StatusCompleted

	if page := params.Get(constant.RequestParamPage); page != "" {
		value, err := strconv.Atoi(page)
		if err != nil || value < 1 {
			return failure.InvalidPageParam
		}

		q.Page = value
	}

	if pageSize := params.Get(constant.RequestParamPageSize); pageSize != "" {
		value, err := strconv.Atoi(pageSize)
		if err != nil || value < 1 {
			return failure.InvalidPageSizeParam
		}

		q.PageSize = min(value, maxPageSize)
	}

	if status := strings.ToLower(params.Get(constant.RequestParamStatus)); status != "" {
		if status != model.StatusCompleted && status != model.StatusFailed {
			return failure.BadRequestFromString("status must be one of completed failed")
		}

		q.Status = status
	}

	return nil
}

type BreakdownItemResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Amount   string `json:"amount"`
}

func fromBreakdown(breakdown model.Breakdown) []BreakdownItemResponse {
	items := make([]BreakdownItemResponse, len(breakdown))
	for i, item := range breakdown {
		items[i] = BreakdownItemResponse{
			Category: item.Category,
			Count:    item.Count,
			Amount:   item.Amount.StringFixed(constant.MoneyDecimals),
		}
	}

	return items
}

type RoomSnapshotResponse struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Reserved    int `json:"reserved"`
	Cleaning    int `json:"cleaning"`
	Maintenance int `json:"maintenance"`
	Dirty       int `json:"dirty"`
	OutOfOrder  int `json:"out_of_order"`
}

type RunResponse struct {
	ID                      string                  `json:"id"`
	AuditDate               string                  `json:"audit_date"`
	RunAt                   string                  `json:"run_at"`
	RunBy                   string                  `json:"run_by"`
	Status                  string                  `json:"status"`
	TotalBookingsPosted     int                     `json:"total_bookings_posted"`
	TotalCheckins           int                     `json:"total_checkins"`
	TotalCheckouts          int                     `json:"total_checkouts"`
	TotalRevenue            string                  `json:"total_revenue"`
	OccupancyRate           string                  `json:"occupancy_rate"`
	Rooms                   RoomSnapshotResponse    `json:"rooms"`
	PaymentMethodBreakdown  []BreakdownItemResponse `json:"payment_method_breakdown"`
	BookingChannelBreakdown []BreakdownItemResponse `json:"booking_channel_breakdown"`
	Notes                   *string                 `json:"notes"`
	ErrorMessage            *string                 `json:"error_message,omitempty"`
}

func (r *RunResponse) FromModel(m model.NightAuditRun) {
	r.ID = m.ID
	r.AuditDate = timezone.FormatDate(m.AuditDate)
	r.RunAt = timezone.Format(m.RunAt, constant.DateFormat)
	r.RunBy = m.RunBy
	r.Status = m.Status
	r.TotalBookingsPosted = m.TotalBookingsPosted
	r.TotalCheckins = m.TotalCheckins
	r.TotalCheckouts = m.TotalCheckouts
	r.TotalRevenue = m.TotalRevenue.StringFixed(constant.MoneyDecimals)
	r.OccupancyRate = m.OccupancyRate.StringFixed(constant.MoneyDecimals)
	r.Rooms = RoomSnapshotResponse{
		Total:       m.RoomsTotal,
		Available:   m.RoomsAvailable,
		Occupied:    m.RoomsOccupied,
		Reserved:    m.RoomsReserved,
		Cleaning:    m.RoomsCleaning,
		Maintenance: m.RoomsMaintenance,
		Dirty:       m.RoomsDirty,
		OutOfOrder:  m.RoomsOutOfOrder,
	}
	r.PaymentMethodBreakdown = fromBreakdown(m.PaymentMethodBreakdown)
	r.BookingChannelBreakdown = fromBreakdown(m.BookingChannelBreakdown)
	r.Notes = m.Notes
	r.ErrorMessage = m.ErrorMessage
}

type ListRunsResponse struct {
	Runs      []RunResponse `json:"runs"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (l *ListRunsResponse) FromModels(models []model.NightAuditRun, totalData int, query ListQuery) {
	l.Page = query.Page
	l.PageSize = query.PageSize
	l.TotalData = totalData
	l.TotalPage = shared.CalculateTotalPage(totalData, query.PageSize)

	l.Runs = make([]RunResponse, len(models))
	for i, m := range models {
		l.Runs[i].FromModel(m)
	}
}

type PreviewResponse struct {
	AuditDate               string                  `json:"audit_date"`
	CanRun                  bool                    `json:"can_run"`
	AlreadyRun              bool                    `json:"already_run"`
	ExistingRunID           *string                 `json:"existing_run_id"`
	TotalUnposted           int                     `json:"total_unposted"`
	EstimatedCheckins       int                     `json:"estimated_checkins"`
	EstimatedCheckouts      int                     `json:"estimated_checkouts"`
	EstimatedRevenue        string                  `json:"estimated_revenue"`
	OccupancyRate           string                  `json:"occupancy_rate"`
	Rooms                   RoomSnapshotResponse    `json:"rooms"`
	PaymentMethodBreakdown  []BreakdownItemResponse `json:"payment_method_breakdown"`
	BookingChannelBreakdown []BreakdownItemResponse `json:"booking_channel_breakdown"`
}

// FromModel fills the preview from the run the audit would write. CanRun only reflects the
// duplicate check, the service narrows it further.
func (p *PreviewResponse) FromModel(m model.NightAuditRun, existing *model.NightAuditRun) {
	var run RunResponse
	run.FromModel(m)

	p.AuditDate = run.AuditDate
	p.AlreadyRun = existing != nil
	p.CanRun = existing == nil
	p.TotalUnposted = run.TotalBookingsPosted
	p.EstimatedCheckins = run.TotalCheckins
	p.EstimatedCheckouts = run.TotalCheckouts
	p.EstimatedRevenue = run.TotalRevenue
	p.OccupancyRate = run.OccupancyRate
	p.Rooms = run.Rooms
	p.PaymentMethodBreakdown = run.PaymentMethodBreakdown
	p.BookingChannelBreakdown = run.BookingChannelBreakdown

	if existing != nil {
		p.ExistingRunID = &existing.ID
	}
}

type PostedBookingResponse struct {
	ID            string  `json:"id"`
	BookingNumber string  `json:"booking_number"`
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	GuestName     string  `json:"guest_name"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Nights        int     `json:"nights"`
	Status        string  `json:"status"`
	TotalAmount   string  `json:"total_amount"`
	PostedAmount  *string `json:"posted_amount"`
	PaymentMethod string  `json:"payment_method"`
	Source        string  `json:"source"`
}

func (p *PostedBookingResponse) FromModel(m bookingModel.Booking) {
	p.ID = m.ID
	p.BookingNumber = m.BookingNumber
	p.RoomID = m.RoomID
	p.RoomNumber = m.RoomNumber
	p.RoomType = m.RoomType
	p.GuestName = m.GuestName
	p.CheckInDate = timezone.FormatDate(m.CheckInDate)
	p.CheckOutDate = timezone.FormatDate(m.CheckOutDate)
	p.Nights = m.Nights()
	p.Status = m.Status
	p.TotalAmount = m.TotalAmount.StringFixed(constant.MoneyDecimals)
	p.PaymentMethod = model.CategoryOf(m.PaymentMethod)
	p.Source = model.CategoryOf(m.Source)

	if m.PostedAmount.Valid {
		amount := m.PostedAmount.Decimal.StringFixed(constant.MoneyDecimals)
		p.PostedAmount = &amount
	}
}

type DetailsResponse struct {
	Run      RunResponse             `json:"run"`
	Bookings []PostedBookingResponse `json:"bookings"`
}

func (d *DetailsResponse) FromModels(run model.NightAuditRun, bookings []bookingModel.Booking) {
	d.Run.FromModel(run)

	d.Bookings = make([]PostedBookingResponse, len(bookings))
	for i, booking := range bookings {
		d.Bookings[i].FromModel(booking)
	}
}

type PostingStatusResponse struct {
	BookingID       string  `json:"booking_id"`
	IsPosted        bool    `json:"is_posted"`
	PostedDate      *string `json:"posted_date"`
	NightAuditRunID *string `json:"night_audit_run_id"`
}

func (p *PostingStatusResponse) FromModel(m bookingModel.Booking) {
	p.BookingID = m.ID
	p.IsPosted = m.IsPosted()
	p.PostedDate = timezone.FormatDatePtr(m.PostedDate)
	p.NightAuditRunID = m.NightAuditRunID
}
