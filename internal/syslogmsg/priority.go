// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package syslogmsg holds the data model shared by the syslog decoder and
// the CLEF encoder: Priority, StructuredDataElement and Message.
package syslogmsg

// Priority is the (facility, severity) pair encoded in the <NNN> prefix of
// every syslog message.
type Priority struct {
	Raw      int
	Facility int
	Severity int
}

// DefaultPriority is used by the RFC3164 fallback path when no <PRI> prefix
// is present: facility user (1), severity notice (5), raw 13.
var DefaultPriority = PriorityFromRaw(13)

// PriorityFromRaw splits a raw priority integer into facility and severity.
// It never fails: values above 191 still split via the arithmetic formulas.
func PriorityFromRaw(raw int) Priority {
	return Priority{
		Raw:      raw,
		Facility: raw / 8,
		Severity: raw % 8,
	}
}

var severityNames = [8]string{
	"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug",
}

// SeverityLabel returns the fixed textual label for the severity. The
// mapping is total: any value outside 0-7 cannot occur since Severity is
// always derived as raw%8, but out-of-range callers still get "debug".
func (p Priority) SeverityLabel() string {
	if p.Severity >= 0 && p.Severity < len(severityNames) {
		return severityNames[p.Severity]
	}
	return "debug"
}

var facilityNames = [24]string{
	"kern", "user", "mail", "daemon", "auth", "syslog", "lpr", "news",
	"uucp", "cron", "authpriv", "ftp", "ntp", "security", "console",
	"solaris-cron", "local0", "local1", "local2", "local3", "local4",
	"local5", "local6", "local7",
}

// FacilityLabel returns the facility name, or "unknown" for facilities
// outside the 24-entry table (e.g. from a raw priority above 191).
func (p Priority) FacilityLabel() string {
	if p.Facility >= 0 && p.Facility < len(facilityNames) {
		return facilityNames[p.Facility]
	}
	return "unknown"
}
