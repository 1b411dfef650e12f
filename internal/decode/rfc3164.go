// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package decode

import (
	"time"

	"github.com/datalust/seq-input-syslog/internal/bytesparse"
	"github.com/datalust/seq-input-syslog/internal/syslogmsg"
)

// decodeRFC3164 is the total fallback: best-effort recovery driven by what
// parses. It never fails. The "tag" (app-name and optional proc-id in
// brackets) is deliberately not extracted: real-world adherence to it is
// too weak, and a false extraction would corrupt messages that incidentally
// contain a colon.
func decodeRFC3164(data []byte, now time.Time) syslogmsg.Message {
	msg := syslogmsg.Message{Priority: syslogmsg.DefaultPriority}
	unparsed := data

	if raw, rest, err := bytesparse.Priority(unparsed); err == nil {
		msg.Priority = syslogmsg.PriorityFromRaw(raw)
		unparsed = rest

		if ts, rest, err := bytesparse.LooseTimestamp(unparsed, now); err == nil {
			t := ts
			msg.Timestamp = &t
			unparsed = rest

			if rest, err := bytesparse.Byte(' ')(unparsed); err == nil {
				unparsed = rest

				if hostname, isNil, rest, err := bytesparse.HeaderItem(unparsed, "hostname"); err == nil {
					if !isNil {
						msg.Hostname = hostname
					}
					unparsed = rest
				}
			}
		}
	}

	if len(unparsed) > 0 {
		msg.Message = stripBOMAndTrim(unparsed)
	}

	if msg.Timestamp == nil {
		t := now
		msg.Timestamp = &t
	}

	return msg
}
