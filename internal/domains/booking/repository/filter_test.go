package repository_test

import (
	"pms/internal/domains/booking/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEligibleForPosting(t *testing.T) {
	filter := repository.EligibleForPosting(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.posted_date IS NULL AND bookings.status != :cancelled_status AND bookings.check_in_date <= :audit_date_check_in AND bookings.check_out_date >= :audit_date_check_out)",
		where)
	assert.Equal(t, map[string]any{
		"cancelled_status":     "cancelled",
		"audit_date_check_in":  "2024-03-10",
		"audit_date_check_out": "2024-03-10",
	}, args)
}

func TestActiveAsOf(t *testing.T) {
	asOf := time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)

	t.Run("all rooms", func(t *testing.T) {
		filter := repository.ActiveAsOf(asOf)
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "bookings.status IN (:active_status_0, :active_status_1, :active_status_2)")
		assert.Contains(t, where, "(bookings.status = :in_house_status OR bookings.check_out_date >= :as_of_date)")
		assert.NotContains(t, where, "room_id")
		assert.Equal(t, "2024-03-12", args["as_of_date"])
		assert.Equal(t, "checked_in", args["in_house_status"])
	})

	t.Run("single room", func(t *testing.T) {
		filter := repository.ActiveAsOf(asOf, "room-1")
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "bookings.room_id IN (:room_id_0)")
		assert.Equal(t, "room-1", args["room_id_0"])
	})
}

func TestPostedByRun(t *testing.T) {
	filter := repository.PostedByRun("run-1")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.night_audit_run_id = :night_audit_run_id)", where)
	assert.Equal(t, "run-1", args["night_audit_run_id"])
}
