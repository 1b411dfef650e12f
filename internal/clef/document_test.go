// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package clef

import (
	"testing"
	"time"

	"github.com/datalust/seq-input-syslog/internal/syslogmsg"
)

func TestProject_Basic(t *testing.T) {
	ts := time.Date(2020, 2, 13, 0, 51, 39, 527825000, time.UTC)
	msg := syslogmsg.Message{
		Priority:  syslogmsg.PriorityFromRaw(13),
		Timestamp: &ts,
		Hostname:  "docker-desktop",
		AppName:   "8b1089798cf8",
		ProcID:    "1481",
		Message:   "hello world",
	}

	doc := Project(msg)

	if doc["@t"] != "2020-02-13T00:51:39.527825Z" {
		t.Errorf("unexpected @t: %v", doc["@t"])
	}
	if doc["@l"] != "notice" {
		t.Errorf("unexpected @l: %v", doc["@l"])
	}
	if doc["@m"] != "hello world" {
		t.Errorf("unexpected @m: %v", doc["@m"])
	}
	if doc["facility"] != "user" {
		t.Errorf("unexpected facility: %v", doc["facility"])
	}
	if doc["hostname"] != "docker-desktop" {
		t.Errorf("unexpected hostname: %v", doc["hostname"])
	}
	if doc["app_name"] != "8b1089798cf8" {
		t.Errorf("unexpected app_name: %v", doc["app_name"])
	}
	if doc["proc_id"] != "1481" {
		t.Errorf("unexpected proc_id: %v", doc["proc_id"])
	}
	if _, present := doc["message_id"]; present {
		t.Errorf("expected message_id to be absent, got: %v", doc["message_id"])
	}
}

func TestProject_EmptyMessageOmitsAtM(t *testing.T) {
	doc := Project(syslogmsg.Message{Priority: syslogmsg.DefaultPriority})
	if _, present := doc["@m"]; present {
		t.Errorf("expected @m to be absent for an empty message, got: %v", doc["@m"])
	}
}

func TestProject_StructuredDataElement(t *testing.T) {
	msg := syslogmsg.Message{
		Priority: syslogmsg.DefaultPriority,
		StructuredData: []syslogmsg.StructuredDataElement{
			{ID: "exampleSDID@32473", Param: []syslogmsg.StructuredDataParam{
				{Name: "iut", Value: "3"},
				{Name: "eventSource", Value: "Application"},
			}},
		},
	}

	doc := Project(msg)

	elem, ok := doc["exampleSDID@32473"].(map[string]string)
	if !ok {
		t.Fatalf("expected exampleSDID@32473 to be a nested object, got: %#v", doc["exampleSDID@32473"])
	}
	if elem["iut"] != "3" || elem["eventSource"] != "Application" {
		t.Errorf("unexpected structured-data object: %#v", elem)
	}
}

func TestProject_StructuredDataConflictsWithHeader(t *testing.T) {
	msg := syslogmsg.Message{
		Priority: syslogmsg.DefaultPriority,
		Hostname: "docker-desktop",
		StructuredData: []syslogmsg.StructuredDataElement{
			{ID: "hostname", Param: []syslogmsg.StructuredDataParam{{Name: "alias", Value: "box1"}}},
		},
	}

	doc := Project(msg)

	if doc["hostname"] != "docker-desktop" {
		t.Errorf("header projection must win, got: %v", doc["hostname"])
	}
	elem, ok := doc["__hostname"].(map[string]string)
	if !ok {
		t.Fatalf("expected displaced element at __hostname, got: %#v", doc["__hostname"])
	}
	if elem["alias"] != "box1" {
		t.Errorf("unexpected displaced element contents: %#v", elem)
	}
}

func TestProject_DuplicateStructuredDataID(t *testing.T) {
	msg := syslogmsg.Message{
		Priority: syslogmsg.DefaultPriority,
		StructuredData: []syslogmsg.StructuredDataElement{
			{ID: "dup", Param: []syslogmsg.StructuredDataParam{{Name: "first", Value: "1"}}},
			{ID: "dup", Param: []syslogmsg.StructuredDataParam{{Name: "second", Value: "2"}}},
		},
	}

	doc := Project(msg)

	second, ok := doc["dup"].(map[string]string)
	if !ok || second["second"] != "2" {
		t.Fatalf("expected the second element to occupy dup, got: %#v", doc["dup"])
	}
	first, ok := doc["__dup"].(map[string]string)
	if !ok || first["first"] != "1" {
		t.Fatalf("expected the first element to be displaced to __dup, got: %#v", doc["__dup"])
	}
}

func TestProject_RecursiveDisplacement(t *testing.T) {
	msg := syslogmsg.Message{
		Priority: syslogmsg.DefaultPriority,
		StructuredData: []syslogmsg.StructuredDataElement{
			{ID: "dup", Param: []syslogmsg.StructuredDataParam{{Name: "a", Value: "1"}}},
			{ID: "__dup", Param: []syslogmsg.StructuredDataParam{{Name: "b", Value: "2"}}},
			{ID: "dup", Param: []syslogmsg.StructuredDataParam{{Name: "c", Value: "3"}}},
		},
	}

	doc := Project(msg)

	third, ok := doc["dup"].(map[string]string)
	if !ok || third["c"] != "3" {
		t.Fatalf("expected the last dup element to occupy dup, got: %#v", doc["dup"])
	}
	second, ok := doc["__dup"].(map[string]string)
	if !ok || second["b"] != "2" {
		t.Fatalf("expected the literal __dup element to keep __dup, got: %#v", doc["__dup"])
	}
	first, ok := doc["____dup"].(map[string]string)
	if !ok || first["a"] != "1" {
		t.Fatalf("expected the first dup element to be pushed to ____dup, got: %#v", doc["____dup"])
	}
}

func TestProject_DuplicateParamNameLastWriteWins(t *testing.T) {
	msg := syslogmsg.Message{
		Priority: syslogmsg.DefaultPriority,
		StructuredData: []syslogmsg.StructuredDataElement{
			{ID: "elem", Param: []syslogmsg.StructuredDataParam{
				{Name: "x", Value: "first"},
				{Name: "x", Value: "second"},
			}},
		},
	}

	doc := Project(msg)

	elem := doc["elem"].(map[string]string)
	if elem["x"] != "second" {
		t.Errorf("expected last-write-wins value %q, got %q", "second", elem["x"])
	}
}

func TestProject_NoTimestampOmitsAtT(t *testing.T) {
	doc := Project(syslogmsg.Message{Priority: syslogmsg.DefaultPriority})
	if _, present := doc["@t"]; present {
		t.Errorf("expected @t to be absent when Timestamp is nil, got: %v", doc["@t"])
	}
}
