package constants

const (
	// DateFormat is the canonical calendar-date layout used for history
	// keys and CLI date arguments. Dates are time-zone-less.
	DateFormat = "2006-01-02"

	// LabelFormat is the short form shown in the calendar strip ("Mon 2").
	LabelFormat = "Mon 2"

	// WindowRadius is the default number of days shown before and after
	// the anchor date in the calendar strip.
	WindowRadius = 15
)
