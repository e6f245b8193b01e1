package summary

import "time"

// Period keywords accepted by ResolvePeriod.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Range is an inclusive reporting interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod maps a period keyword to its date range relative to now, in
// now's location. Unknown or empty periods resolve to the all-time range.
func ResolvePeriod(period string, now time.Time) Range {
	y, m, d := now.Date()
	loc := now.Location()

	switch period {
	case PeriodToday:
		return Range{
			Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc),
		}
	case PeriodWeek:
		// weeks start on Sunday
		return Range{
			Start: time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc),
			End:   now,
		}
	case PeriodMonth:
		return Range{Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: now}
	case PeriodYear:
		return Range{Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc), End: now}
	default:
		return Range{Start: time.Unix(0, 0).In(loc), End: now}
	}
}
