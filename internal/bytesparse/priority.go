// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package bytesparse

// Priority parses `<NNN>` where the delimited content is 1-3 ASCII digits,
// returning the integer (0-191 valid, 255 max per the grammar's digit-count
// bound; syslogmsg.PriorityFromRaw in the caller never fails on
// out-of-range values).
func Priority(s []byte) (int, []byte, error) {
	content, rest, err := Delimited(s, '<', '>')
	if err != nil {
		return 0, s, err
	}
	if len(content) < 1 || len(content) > 3 {
		return 0, s, newError(KindInvalidPriority, "invalid priority content %q", content)
	}
	n := 0
	for _, b := range content {
		if b < '0' || b > '9' {
			return 0, s, newError(KindInvalidPriority, "invalid priority content %q", content)
		}
		n = n*10 + int(b-'0')
	}
	if n > 255 {
		return 0, s, newError(KindInvalidPriority, "invalid priority content %q", content)
	}
	return n, rest, nil
}
