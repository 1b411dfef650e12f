// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package clef projects a decoded syslog message into a Compact Log Event
// Format document and serializes it as a single line of JSON.
package clef

import (
	"time"

	"github.com/datalust/seq-input-syslog/internal/syslogmsg"
)

// reservedHeaderKeys are the top-level keys the syslog header projection
// can occupy. Structured-data elements never displace them: see Project.
var reservedHeaderKeys = map[string]bool{
	"@t": true, "@l": true, "@m": true,
	"facility": true, "hostname": true, "app_name": true,
	"proc_id": true, "message_id": true,
}

// Project builds a CLEF document (a plain JSON-marshalable map) from a
// decoded Message. Conflicting structured-data ids or repeated ids are
// resolved per the precedence policy: the syslog header always wins, and a
// displaced structured-data value is re-emitted under its id prefixed with
// "__", recursing ("__", "____", ...) if that name is itself taken.
func Project(msg syslogmsg.Message) map[string]any {
	doc := make(map[string]any, 8+len(msg.StructuredData))

	if msg.Timestamp != nil {
		doc["@t"] = formatTimestamp(*msg.Timestamp)
	}
	doc["@l"] = msg.Priority.SeverityLabel()
	if msg.Message != "" {
		doc["@m"] = msg.Message
	}
	doc["facility"] = msg.Priority.FacilityLabel()
	if msg.Hostname != "" {
		doc["hostname"] = msg.Hostname
	}
	if msg.AppName != "" {
		doc["app_name"] = msg.AppName
	}
	if msg.ProcID != "" {
		doc["proc_id"] = msg.ProcID
	}
	if msg.MessageID != "" {
		doc["message_id"] = msg.MessageID
	}

	for _, elem := range msg.StructuredData {
		key := placementKey(doc, elem.ID)
		doc[key] = paramsToObject(elem.Param)
	}

	return doc
}

// placementKey finds the key under which a structured-data element's
// object should be placed, evicting a previously-placed structured-data
// element (never a reserved header key) to a "__"-prefixed name if needed.
func placementKey(doc map[string]any, id string) string {
	key := id
	for {
		if _, taken := doc[key]; !taken {
			return key
		}
		if reservedHeaderKeys[key] {
			// The syslog header wins: this element is displaced instead.
			key = "__" + key
			continue
		}
		// Occupied by an earlier structured-data element: the new element
		// wins, so evict the earlier one to a free "__"-prefixed name.
		evicted := doc[key]
		delete(doc, key)
		evictedKey := key
		for {
			evictedKey = "__" + evictedKey
			if _, taken := doc[evictedKey]; !taken && !reservedHeaderKeys[evictedKey] {
				break
			}
		}
		doc[evictedKey] = evicted
		return key
	}
}

// paramsToObject converts a structured-data element's parameters into a
// nested JSON object. Duplicate names are resolved last-write-wins.
func paramsToObject(params []syslogmsg.StructuredDataParam) map[string]string {
	obj := make(map[string]string, len(params))
	for _, p := range params {
		obj[p.Name] = p.Value
	}
	return obj
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
