package wareki

// Clock arithmetic.
const (
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24

	SecondsPerDay = HoursPerDay * MinutesPerHour * SecondsPerMinute // 86400
	MinutesPerDay = HoursPerDay * MinutesPerHour                    // 1440
)
