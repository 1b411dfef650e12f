// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package syslogmsg

import "time"

// StructuredDataParam is one name/value pair inside a StructuredDataElement.
// Duplicate names are permitted and preserved in insertion order: see
// RFC5424 section 6.3.3, which discourages but does not forbid repeats.
type StructuredDataParam struct {
	Name  string
	Value string
}

// StructuredDataElement is one bracketed `[id name="value" ...]` block.
// Param is empty (nil) for an element with no parameters, such as `[id]`.
type StructuredDataElement struct {
	ID    string
	Param []StructuredDataParam
}

// Message is the canonical parsed form of one syslog datagram. It is
// immutable once returned by the decoder. Its string fields are copies, so
// it holds no reference to the original datagram buffer.
type Message struct {
	Priority       Priority
	Timestamp      *time.Time // nil when absent
	Hostname       string     // empty when absent
	AppName        string     // empty when absent
	ProcID         string     // empty when absent
	MessageID      string     // empty when absent
	StructuredData []StructuredDataElement
	Message        string // empty when absent; UTF-8 lossy, trailing whitespace trimmed
}
