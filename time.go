package coerce

import (
	"math"
	"strconv"
	"time"
)

// serialEpoch anchors legacy spreadsheet day serials: day zero is 1899-12-30,
// serials count days from there.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serial day bounds, covering plausible calendar years
const (
	minSerialDays = -693593
	maxSerialDays = 2958465
)

// DefaultTimeLayouts returns the layouts Time matches textual input against,
// in order. Matching is exact and locale independent.
func DefaultTimeLayouts() []string {
	return []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 03:04:05 PM",
		"2006/01/02",
		"2006/01/02 15:04:05",
		"2006/01/02 03:04:05 PM",
		"02-01-2006",
		"02-01-2006 15:04:05",
		"02-01-2006 03:04:05 PM",
		"02/01/2006",
		"02/01/2006 15:04:05",
		"02/01/2006 03:04:05 PM",
		time.RFC3339,
	}
}

// Time coerces value into time.Time. A time instance passes through, textual
// input is matched exactly against layouts (the coercer defaults when none are
// supplied), and text matching no layout is read as a fractional day count
// from the 1899-12-30 epoch. Source data routinely mixes human entered dates
// with numeric serials from spreadsheet exports; both resolve here without the
// caller pre-classifying the input.
func (c *Coercer) Time(value interface{}, layouts ...string) (time.Time, bool) {
	switch actual := value.(type) {
	case time.Time:
		return actual, true
	case *time.Time:
		if actual == nil {
			return time.Time{}, false
		}
		return *actual, true
	}
	text, ok := asText(value)
	if !ok || text == "" {
		return time.Time{}, false
	}
	if len(layouts) == 0 {
		layouts = c.timeLayouts
	}
	for _, layout := range layouts {
		if ret, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return ret, true
		}
	}
	return serialTime(text)
}

func serialTime(text string) (time.Time, bool) {
	days, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return time.Time{}, false
	}
	if !(days >= minSerialDays && days <= maxSerialDays) {
		return time.Time{}, false
	}
	whole, frac := math.Modf(days)
	ret := serialEpoch.AddDate(0, 0, int(whole))
	if frac != 0 {
		ret = ret.Add(time.Duration(frac * 24 * float64(time.Hour)))
	}
	return ret, true
}
