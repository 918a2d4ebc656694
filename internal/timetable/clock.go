package timetable

import "regexp"

// clockPattern matches 12-hour clock strings such as "9:05 AM" or "12:30 PM".
// Exactly one space is allowed before the case-sensitive meridiem marker.
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)

// ParseClock converts a 12-hour clock string into minutes since midnight.
// "12:00 AM" maps to 0 and "12:00 PM" maps to 720. The second return value
// reports whether the input was a well-formed clock string with an hour in
// 1-12 and a minute in 00-59; callers receive no partial value on failure.
func ParseClock(value string) (int, bool) {
	match := clockPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}

	hour := atoiDigits(match[1])
	minute := atoiDigits(match[2])
	if hour < 1 || hour > 12 {
		return 0, false
	}
	if minute > 59 {
		return 0, false
	}

	if match[3] == "PM" && hour != 12 {
		hour += 12
	}
	if match[3] == "AM" && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, true
}

// atoiDigits converts a digit-only string captured by clockPattern. The
// pattern guarantees the input is one or two ASCII digits.
func atoiDigits(digits string) int {
	value := 0
	for _, r := range digits {
		value = value*10 + int(r-'0')
	}
	return value
}
