// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ingest

import "go.uber.org/atomic"

// Metrics are the four counters the ingestion loop maintains: receive
// outcomes and process (transcode) outcomes. All four are incremented on
// the hot path with no locking.
type Metrics struct {
	ReceiveOK  atomic.Int64
	ReceiveErr atomic.Int64
	ProcessOK  atomic.Int64
	ProcessErr atomic.Int64
}

// Snapshot is a point-in-time copy of Metrics suitable for logging.
type Snapshot struct {
	ReceiveOK  int64
	ReceiveErr int64
	ProcessOK  int64
	ProcessErr int64
}

// Snapshot reads all four counters. It does not freeze them against
// concurrent increments; callers use it for approximate reporting, not
// for exact accounting.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		ReceiveOK:  m.ReceiveOK.Load(),
		ReceiveErr: m.ReceiveErr.Load(),
		ProcessOK:  m.ProcessOK.Load(),
		ProcessErr: m.ProcessErr.Load(),
	}
}
