package models

import "time"

// Weekday is a day of the week with Monday = 0 and Sunday = 6. This is the
// canonical convention for schedules; convert at the time package boundary.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FromTime converts from the time package's Sunday=0 convention.
func FromTime(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % 7)
}

// ToTime converts back to the time package's Sunday=0 convention.
func (w Weekday) ToTime() time.Weekday {
	return time.Weekday((int(w) + 1) % 7)
}

// Valid reports whether w is in the 0-6 range.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return "invalid"
	}
	return weekdayNames[w]
}
