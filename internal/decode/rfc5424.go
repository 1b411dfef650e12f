// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package decode

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/datalust/seq-input-syslog/internal/bytesparse"
	"github.com/datalust/seq-input-syslog/internal/syslogmsg"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// decodeRFC5424 parses data as RFC5424, rejecting the whole attempt on any
// grammar failure so the caller can fall through to the RFC3164 path.
func decodeRFC5424(data []byte) (syslogmsg.Message, error) {
	var msg syslogmsg.Message

	raw, rest, err := bytesparse.Priority(data)
	if err != nil {
		return msg, err
	}
	msg.Priority = syslogmsg.PriorityFromRaw(raw)

	rest, err = parseVersion(rest)
	if err != nil {
		return msg, err
	}

	ts, rest, err := parseTimestampField(rest)
	if err != nil {
		return msg, err
	}
	msg.Timestamp = ts

	msg.Hostname, _, rest, err = bytesparse.HeaderItem(rest, "hostname")
	if err != nil {
		return msg, err
	}

	msg.AppName, _, rest, err = bytesparse.HeaderItem(rest, "app-name")
	if err != nil {
		return msg, err
	}

	msg.ProcID, _, rest, err = bytesparse.HeaderItem(rest, "proc-id")
	if err != nil {
		return msg, err
	}

	msg.MessageID, _, rest, err = bytesparse.HeaderItem(rest, "message-id")
	if err != nil {
		return msg, err
	}

	sd, rest, err := parseStructuredData(rest)
	if err != nil {
		return msg, err
	}
	msg.StructuredData = sd

	msg.Message = parseMessageText(rest)

	return msg, nil
}

// parseVersion requires the single ASCII character '1' followed by a space.
func parseVersion(s []byte) ([]byte, error) {
	content, rest, err := bytesparse.Until(s, ' ')
	if err != nil {
		return s, err
	}
	if string(content) != "1" {
		return s, bytesparse.NewError(bytesparse.KindBadVersion, "invalid message, version not 1: %q", content)
	}
	return rest[1:], nil
}

// parseTimestampField parses either an ISO 8601 string followed by a space,
// or the NIL "-" followed by a space.
func parseTimestampField(s []byte) (*time.Time, []byte, error) {
	content, rest, err := bytesparse.Until(s, ' ')
	if err != nil {
		return nil, s, err
	}
	if string(content) == "-" {
		return nil, rest[1:], nil
	}
	ts, tsRest, err := bytesparse.ISO8601Timestamp(s)
	if err != nil {
		return nil, s, err
	}
	return &ts, tsRest[1:], nil
}

// parseStructuredData parses either the NIL "-", or one or more
// structured_data_elements concatenated with no separator.
func parseStructuredData(s []byte) ([]syslogmsg.StructuredDataElement, []byte, error) {
	if len(s) > 0 && s[0] == '-' {
		return nil, s[1:], nil
	}

	var elems []syslogmsg.StructuredDataElement
	for len(s) > 0 && s[0] == '[' {
		el, rest, err := bytesparse.StructuredDataElement(s)
		if err != nil {
			return nil, s, err
		}
		elems = append(elems, toSyslogmsgElement(el))
		s = rest
	}
	if len(elems) == 0 {
		return nil, s, bytesparse.NewError(bytesparse.KindMissingField, "missing structured-data")
	}
	return elems, s, nil
}

func toSyslogmsgElement(el bytesparse.SDElement) syslogmsg.StructuredDataElement {
	out := syslogmsg.StructuredDataElement{ID: el.ID}
	for _, p := range el.Params {
		out.Param = append(out.Param, syslogmsg.StructuredDataParam{Name: p.Name, Value: p.Value})
	}
	return out
}

// parseMessageText handles the RFC5424 message payload: if present, it is
// separated from structured data by a single space.
func parseMessageText(s []byte) string {
	if len(s) == 0 {
		return ""
	}
	if s[0] == ' ' {
		s = s[1:]
	}
	return stripBOMAndTrim(s)
}

// stripBOMAndTrim strips a leading UTF-8 BOM, UTF-8-lossy-decodes the
// remainder, and trims trailing whitespace (including '\n'). An empty
// result becomes the empty string, which callers treat as "absent".
func stripBOMAndTrim(s []byte) string {
	if len(s) >= 3 && s[0] == bom[0] && s[1] == bom[1] && s[2] == bom[2] {
		s = s[3:]
	}
	text := decodeUTF8Lossy(s)
	return strings.TrimRight(text, " \t\r\n\v\f")
}

func decodeUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
