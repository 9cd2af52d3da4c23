package models

import (
	"sort"
	"strings"
)

// Schedule is the set of weekdays a habit is due on, stored sorted and
// de-duplicated. A valid schedule is never empty; build one with
// NewSchedule or ParseFrequency rather than by literal.
type Schedule []Weekday

// NewSchedule validates and canonicalizes a set of weekdays.
func NewSchedule(days ...Weekday) (Schedule, error) {
	if len(days) == 0 {
		return nil, &InvalidScheduleError{Reason: "schedule must contain at least one weekday"}
	}

	seen := make(map[Weekday]bool, len(days))
	out := make(Schedule, 0, len(days))
	for _, d := range days {
		if !d.Valid() {
			return nil, &InvalidScheduleError{Reason: "weekday out of range 0-6"}
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Daily is the schedule covering all seven weekdays.
func Daily() Schedule {
	return Schedule{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseFrequency normalizes a legacy string frequency. "daily" means every
// weekday. "weekly" without an explicit day is ambiguous and is rejected
// rather than guessed.
func ParseFrequency(freq string) (Schedule, error) {
	switch strings.ToLower(strings.TrimSpace(freq)) {
	case "daily":
		return Daily(), nil
	case "weekly":
		return nil, &InvalidScheduleError{Reason: `frequency "weekly" requires an explicit weekday`}
	default:
		return nil, &InvalidScheduleError{Reason: "unknown frequency: " + freq}
	}
}

// Contains reports whether the schedule includes the given weekday.
func (s Schedule) Contains(d Weekday) bool {
	for _, wd := range s {
		if wd == d {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}

func (s Schedule) String() string {
	if len(s) == 7 {
		return "daily"
	}
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}
