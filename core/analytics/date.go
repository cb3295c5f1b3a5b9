package analytics

import "time"

// MonthRange returns the inclusive start date and exclusive end date of a
// calendar month in the "2006-01-02" layout used by sale records. The end
// is the first day of the following month; time.Date normalizes month 13
// into January of the next year.
func MonthRange(year int, month time.Month) (start, end string) {
	s := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	e := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return s.Format("2006-01-02"), e.Format("2006-01-02")
}
