package format

import (
	"time"

	"github.com/ytget/playerutil/internal/i18n"
)

const secondsPerDay = 24 * 60 * 60

// Formatter produces translated, relative time strings
type Formatter struct {
	loc *i18n.Localizer
	now func() time.Time
}

// NewFormatter creates a formatter using loc for translations
func NewFormatter(loc *i18n.Localizer) *Formatter {
	return &Formatter{loc: loc, now: time.Now}
}

// WordyTime formats seconds as "N days h:mm:ss", omitting the day part when
// it is zero.
func (f *Formatter) WordyTime(seconds uint64) string {
	days := seconds / secondsPerDay
	rest := PrettyTime(int(seconds - days*secondsPerDay))
	if days == 0 {
		return rest
	}
	return f.loc.Plural(i18n.KeyDayCount, int(days)) + " " + rest
}

// WordyTimeNanosec is WordyTime for a nanosecond count
func (f *Formatter) WordyTimeNanosec(nanoseconds uint64) string {
	return f.WordyTime(nanoseconds / uint64(time.Second))
}

// Ago describes a Unix timestamp relative to today: "Today 3:04 PM",
// "Yesterday 3:04 PM", "N days ago" for up to a week, otherwise a short date.
func (f *Formatter) Ago(secondsSinceEpoch int64) string {
	now := f.now()
	then := time.Unix(secondsSinceEpoch, 0).In(now.Location())
	daysAgo := daysBetween(then, now)
	clock := then.Format(f.loc.Text(i18n.KeyShortTimeLayout))

	switch {
	case daysAgo == 0:
		return f.loc.Text(i18n.KeyToday) + " " + clock
	case daysAgo == 1:
		return f.loc.Text(i18n.KeyYesterday) + " " + clock
	case daysAgo <= 7:
		return f.loc.Plural(i18n.KeyDaysAgo, daysAgo)
	}
	return then.Format(f.loc.Text(i18n.KeyShortDateLayout))
}

// PrettyFutureDate describes a calendar date relative to today. Dates in the
// past yield "".
func (f *Formatter) PrettyFutureDate(date time.Time) string {
	delta := daysBetween(f.now(), date)

	switch {
	case delta < 0:
		return ""
	case delta == 0:
		return f.loc.Text(i18n.KeyToday)
	case delta == 1:
		return f.loc.Text(i18n.KeyTomorrow)
	case delta <= 7:
		return f.loc.Plural(i18n.KeyInDays, delta)
	case delta <= 14:
		return f.loc.Text(i18n.KeyNextWeek)
	}
	return f.loc.Plural(i18n.KeyInWeeks, delta/7)
}

// daysBetween counts calendar days from a to b, ignoring the time of day
func daysBetween(a, b time.Time) int {
	loc := a.Location()
	b = b.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
