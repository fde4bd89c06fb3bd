package types

import "time"

// weekOrder is the canonical display order, Monday first
var weekOrder = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekOrder returns the day-of-week names Monday through Sunday
func WeekOrder() []string {
	days := make([]string, len(weekOrder))
	copy(days, weekOrder)
	return days
}

// DayName returns the English day name of t
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// DayRank returns the position of a day name in the canonical week order.
// Names outside the week sort after Sunday.
func DayRank(day string) int {
	for i, d := range weekOrder {
		if d == day {
			return i
		}
	}
	return len(weekOrder)
}
