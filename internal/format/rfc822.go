package format

import (
	"regexp"
	"strconv"
	"time"
)

var rfc822Pattern = regexp.MustCompile(`(\d{1,2}) (\w{3,12}) (\d+) (\d{1,2}):(\d{1,2}):(\d{1,2})`)

var monthNames = map[string]time.Month{
	"Jan": time.January, "January": time.January,
	"Feb": time.February, "February": time.February,
	"Mar": time.March, "March": time.March,
	"Apr": time.April, "April": time.April,
	"May": time.May,
	"Jun": time.June, "June": time.June,
	"Jul": time.July, "July": time.July,
	"Aug": time.August, "August": time.August,
	"Sep": time.September, "September": time.September,
	"Oct": time.October, "October": time.October,
	"Nov": time.November, "November": time.November,
	"Dec": time.December, "December": time.December,
}

// ParseRFC822DateTime extracts "D Mon YYYY HH:MM:SS" from text, as found in
// RSS pubDate values. The weekday and zone are ignored and the result is in
// local time. ok is false when nothing matches, the month name is unknown
// or a component is out of range.
func ParseRFC822DateTime(text string) (t time.Time, ok bool) {
	m := rfc822Pattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	month, known := monthNames[m[2]]
	if !known {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	t = time.Date(year, month, day, hour, minute, second, 0, time.Local)
	// time.Date normalizes overflow such as Feb 30; reject it instead.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
