// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package bytesparse

import "time"

// ISO8601Timestamp parses up to the next space as RFC3339 (with or without
// fractional seconds) and returns the instant converted to UTC.
func ISO8601Timestamp(s []byte) (time.Time, []byte, error) {
	content, rest, err := Until(s, ' ')
	if err != nil {
		return time.Time{}, s, err
	}
	ts, perr := time.Parse(time.RFC3339Nano, string(content))
	if perr != nil {
		return time.Time{}, s, newError(KindMissingField, "invalid ISO 8601 timestamp %q", content)
	}
	return ts.UTC(), rest, nil
}

// looseTimestampLength is the fixed width of an RFC3164 "Mmm dd HH:MM:SS"
// timestamp.
const looseTimestampLength = 15

// LooseTimestamp tries ISO 8601 first; on failure it takes exactly 15 bytes
// and parses them as the RFC3164 "%b %d %H:%M:%S" format (e.g.
// "Oct 28 12:34:56"). Since that format lacks a year, the year is inferred
// from now with a wrap rule: a Dec timestamp observed while now is in
// January maps to now.year-1; a Jan timestamp observed while now is in
// December maps to now.year+1; otherwise now.year is used. The
// interpretation happens in local time, then is converted to UTC.
func LooseTimestamp(s []byte, now time.Time) (time.Time, []byte, error) {
	if ts, rest, err := ISO8601Timestamp(s); err == nil {
		return ts, rest, nil
	}

	b, rest, err := Take(s, looseTimestampLength)
	if err != nil {
		return time.Time{}, s, err
	}
	if b[3] != ' ' || b[6] != ' ' || b[9] != ':' || b[12] != ':' {
		return time.Time{}, s, newError(KindMissingField, "timestamp does not match Mmm dd HH:MM:SS format: %q", b)
	}

	mon := parseMonth(b[0], b[1], b[2])
	if mon == -1 {
		return time.Time{}, s, newError(KindMissingField, "unrecognized month in timestamp: %q", b[0:3])
	}
	day := parseDay(b[4], b[5])
	if day < 1 || day > 31 {
		return time.Time{}, s, newError(KindMissingField, "invalid day in timestamp: %q", b[4:6])
	}
	hh := parseDoubleDigit(b[7], b[8])
	if hh < 0 || hh > 23 {
		return time.Time{}, s, newError(KindMissingField, "invalid hour in timestamp: %q", b[7:9])
	}
	mm := parseDoubleDigit(b[10], b[11])
	if mm < 0 || mm > 59 {
		return time.Time{}, s, newError(KindMissingField, "invalid minute in timestamp: %q", b[10:12])
	}
	ss := parseDoubleDigit(b[13], b[14])
	if ss < 0 || ss > 60 { // allow leap seconds
		return time.Time{}, s, newError(KindMissingField, "invalid second in timestamp: %q", b[13:15])
	}

	year := now.Year()
	switch {
	case time.Month(mon) == time.December && now.Month() == time.January:
		year--
	case time.Month(mon) == time.January && now.Month() == time.December:
		year++
	}

	local := time.Date(year, time.Month(mon), day, hh, mm, ss, 0, time.Local)
	return local.UTC(), rest, nil
}

// parseMonth parses three byte inputs representing the abbreviated month
// name and returns the numeric month (1-12), or -1 if unrecognized.
func parseMonth(a, b, c byte) int {
	switch a {
	case 'J':
		if b == 'a' && c == 'n' {
			return 1
		}
		if b == 'u' && c == 'n' {
			return 6
		}
		if b == 'u' && c == 'l' {
			return 7
		}
	case 'F':
		if b == 'e' && c == 'b' {
			return 2
		}
	case 'M':
		if b == 'a' && c == 'r' {
			return 3
		}
		if b == 'a' && c == 'y' {
			return 5
		}
	case 'A':
		if b == 'p' && c == 'r' {
			return 4
		}
		if b == 'u' && c == 'g' {
			return 8
		}
	case 'S':
		if b == 'e' && c == 'p' {
			return 9
		}
	case 'O':
		if b == 'c' && c == 't' {
			return 10
		}
	case 'N':
		if b == 'o' && c == 'v' {
			return 11
		}
	case 'D':
		if b == 'e' && c == 'c' {
			return 12
		}
	}
	return -1
}

// parseDay parses two byte inputs representing a day, space-padded for 1-9
// ("_2" style) or two digits for 10-31. Returns -1 on invalid input.
func parseDay(a, b byte) int {
	if a == ' ' {
		if b < '0' || b > '9' {
			return -1
		}
		return int(b - '0')
	}
	return parseDoubleDigit(a, b)
}

// parseDoubleDigit parses two ASCII digit bytes into a two-digit number.
// Returns -1 if either byte is not a digit.
func parseDoubleDigit(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}
