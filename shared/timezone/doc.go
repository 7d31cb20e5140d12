// Package timezone handles instants and calendar dates for the hotel.
//
// Instants (audit run times, as-of queries) are expressed in the application timezone:
//
//	now := timezone.Now()
//	local := timezone.ToAppTime(someTime)
//	asOf, err := timezone.ParseAsOf("2024-03-10T22:00:00+07:00")
//
// Calendar dates (check-in, check-out, audit date) carry no time of day. They are kept
// as UTC midnight so they compare equal regardless of where they were parsed:
//
//	date, err := timezone.ParseDate("2024-03-10")
//	today := timezone.DateOnly(timezone.Now())
//	start := timezone.Midnight(date, timezone.GetLocation())
//
// The timezone is configured via the APP_TIMEZONE environment variable using IANA names
// such as "Asia/Jakarta" and is initialized when the package is imported.
package timezone
