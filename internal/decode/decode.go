// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package decode implements the syslog decoder: RFC5424 parsing with a
// total RFC3164 fallback. See Message for the public contract.
package decode

import (
	"time"

	"github.com/datalust/seq-input-syslog/internal/syslogmsg"
)

// Message decodes a single UDP datagram into a syslogmsg.Message. It never
// fails: if RFC5424 parsing fails, it falls back to RFC3164 parsing; if
// RFC3164 parsing cannot even recover a priority, the entire datagram is
// preserved verbatim as the Message field with defaults for everything
// else. now is used to resolve the missing year in RFC3164 timestamps and
// as the timestamp of last resort.
func Message(data []byte, now time.Time) syslogmsg.Message {
	if msg, err := decodeRFC5424(data); err == nil {
		return msg
	}
	return decodeRFC3164(data, now)
}
