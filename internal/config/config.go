// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package config holds the daemon's CLI-derived configuration and the
// bind-address parsing rule the shell applies before handing the address
// to the ingestion loop.
package config

import (
	"fmt"
	"strings"
)

// DefaultListen is the bind address used when --listen is not given.
const DefaultListen = "0.0.0.0:514"

// DefaultBufferSize is the per-read UDP buffer size used when
// --buffer-size is not given: the largest UDP payload a standard socket
// will deliver without IP fragmentation headroom.
const DefaultBufferSize = 65527

// DefaultDiagnosticLevel is the minimum level written to the diagnostics
// channel when --diagnostic-level is not given.
const DefaultDiagnosticLevel = "info"

// Config is the fully-resolved set of daemon settings, built from CLI
// flags in cmd/seq-input-syslog.
type Config struct {
	ListenAddr      string
	BufferSize      int
	DiagnosticLevel string
}

// ParseListenAddr strips an optional "udp://" scheme from a bind
// specification, since UDP is the transport's only option and the
// scheme is accepted but never inspected. The result is a bare
// "host:port" suitable for net.ResolveUDPAddr.
func ParseListenAddr(raw string) (string, error) {
	addr := strings.TrimPrefix(raw, "udp://")
	if addr == "" {
		return "", fmt.Errorf("config: empty listen address")
	}
	return addr, nil
}
