/*
week.go - Week-based-year fields over the Jalali day-of-year

PURPOSE:
  The week-numbering scheme anchored on the week containing Farvardin 4,
  the analog of ISO-8601's "week containing January 4th". Weeks run
  Saturday through Friday (the Persian week). A week-based year has 52 or
  53 full weeks; the first and last few days of a calendar year may belong
  to the neighboring week-based year.

  Aligned weeks (week 1 always starting on the unit's first day) live on
  Date itself; this file covers only the anchored scheme.

SEE ALSO:
  - date.go:    DayOfWeek and the aligned week fields
  - resolve.go: Week-based resolvable combinations
*/
package jalali

// WeekOfWeekBasedYear returns the week number of d in its week-based year,
// in 1..53.
func WeekOfWeekBasedYear(d Date) int {
	week := weekOrdinal(d)
	switch {
	case week < 1:
		return WeeksInYear(d.year - 1)
	case week > WeeksInYear(d.year):
		return 1
	default:
		return week
	}
}

// WeekBasedYear returns the week-based year of d, which differs from the
// calendar year only near Farvardin 1.
func WeekBasedYear(d Date) int {
	week := weekOrdinal(d)
	switch {
	case week < 1:
		return d.year - 1
	case week > WeeksInYear(d.year):
		return d.year + 1
	default:
		return d.year
	}
}

// WeeksInYear returns 52 or 53: a year has 53 weeks when Farvardin 1 falls
// on the 4th weekday, or on the 3rd in a leap year.
func WeeksInYear(year int) int {
	start := MustNew(year, 1, 1).DayOfWeek()
	if start == 4 || (start == 3 && IsLeapYear(year)) {
		return 53
	}
	return 52
}

// DateOfWeekFields builds the date in week-based year wby, week number week,
// and weekday dow: it locates Farvardin 4 of wby, walks forward (week-1)*7
// days from the start of that week, then adjusts to the requested weekday.
func DateOfWeekFields(wby, week int, dow Weekday) (Date, error) {
	if err := checkYear(int64(wby)); err != nil {
		return Date{}, err
	}
	if week < 1 || week > 53 {
		return Date{}, rangeErr("week-of-week-based-year", int64(week), 1, 53)
	}
	if dow < Shanbeh || dow > Jomeh {
		return Date{}, rangeErr("day-of-week", int64(dow), 1, 7)
	}
	if week == 53 && WeeksInYear(wby) == 52 {
		return Date{}, stateErr("week 53 invalid for week-based year %d (52 weeks)", wby)
	}
	anchor, err := New(wby, 1, 4)
	if err != nil {
		return Date{}, err
	}
	weekStart, err := anchor.PlusDays(-int64(anchor.DayOfWeek() - 1))
	if err != nil {
		return Date{}, err
	}
	return weekStart.PlusDays(int64(week-1)*7 + int64(dow-1))
}

// WithWeekBasedYear moves d into the given week-based year, preserving the
// week number (clamped to the target year's week count) and weekday.
func WithWeekBasedYear(d Date, wby int) (Date, error) {
	week := WeekOfWeekBasedYear(d)
	if max := WeeksInYear(wby); week > max {
		week = max
	}
	return DateOfWeekFields(wby, week, d.DayOfWeek())
}

// weekOrdinal is the raw anchored week number: 0 means the date belongs to
// the last week of the previous week-based year.
func weekOrdinal(d Date) int {
	return (d.DayOfYear() - int(d.DayOfWeek()) + 10) / 7
}
