// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package ingest implements the UDP ingestion loop: bind a socket, decode
// and transcode each datagram, and shut down cleanly on either a
// programmatic close or an OS interrupt. See Loop.
package ingest

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TranscodeFunc processes one received datagram. now is the receipt
// instant, supplied by the loop so the RFC3164 fallback's year-wrap
// heuristic and "timestamp of last resort" behavior are deterministic
// from the caller's perspective. An error is counted as a process
// failure and the datagram is discarded; it never stops the loop.
type TranscodeFunc func(datagram []byte, now time.Time) error

// Loop owns one UDP socket for its entire lifetime. It is not reusable
// across two calls to Run.
type Loop struct {
	addr       string
	bufferSize int
	transcode  TranscodeFunc
	logger     *zap.Logger
	metrics    Metrics
	state      stateBox

	mu   sync.Mutex
	conn *net.UDPConn

	closeCh   chan struct{}
	closeOnce sync.Once

	shutdownOnce sync.Once
}

// New builds a Loop bound to addr (a "host:port" string; the caller
// resolves any "udp://" prefix before calling New) with the given
// per-read buffer size. transcode is invoked once per received datagram.
func New(addr string, bufferSize int, transcode TranscodeFunc, logger *zap.Logger) *Loop {
	return &Loop{
		addr:       addr,
		bufferSize: bufferSize,
		transcode:  transcode,
		logger:     logger,
		closeCh:    make(chan struct{}),
	}
}

// State reports the loop's current lifecycle state.
func (l *Loop) State() State { return l.state.get() }

// Metrics returns a snapshot of the four receive/process counters.
func (l *Loop) Metrics() Snapshot { return l.metrics.Snapshot() }

// LocalAddr returns the bound socket address. It is only meaningful once
// Run has reached the Listening state.
func (l *Loop) LocalAddr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr()
}

// Close requests a programmatic shutdown. It is idempotent and safe to
// call before Run has bound the socket, in which case shutdown happens
// immediately after binding.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.closeCh) })
}

// Run binds the socket and processes datagrams until ctx is canceled or
// Close is called, then returns nil. It returns a non-nil error only for
// a startup failure (bad address, permission denied): no per-datagram
// failure ever causes Run to return.
func (l *Loop) Run(ctx context.Context) error {
	l.state.set(Initializing)

	udpAddr, err := net.ResolveUDPAddr("udp", l.addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()

	l.state.set(Listening)
	l.logger.Info("ingestion loop listening", zap.Stringer("addr", conn.LocalAddr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-l.closeCh:
		}
		l.initiateShutdown(conn)
		return nil
	})
	g.Go(func() error {
		return l.receiveLoop(conn)
	})

	// errgroup.WithContext cancels gctx as soon as any goroutine returns a
	// non-nil error; none of ours ever do, so Wait only reports a startup
	// problem from receiveLoop's perspective, which never happens either -
	// it always returns nil once the socket is closed.
	err = g.Wait()
	l.state.set(Stopped)
	snap := l.metrics.Snapshot()
	l.logger.Info("ingestion loop stopped",
		zap.Int64("receive_ok", snap.ReceiveOK),
		zap.Int64("receive_err", snap.ReceiveErr),
		zap.Int64("process_ok", snap.ProcessOK),
		zap.Int64("process_err", snap.ProcessErr),
	)
	return err
}

// initiateShutdown moves the loop into Draining and closes the socket,
// which unblocks the in-flight ReadFromUDP in receiveLoop. It runs at
// most once per Loop.
func (l *Loop) initiateShutdown(conn *net.UDPConn) {
	l.shutdownOnce.Do(func() {
		l.state.set(Draining)
		conn.Close()
	})
}

// receiveLoop is the hot path: receive, decode+transcode inline, repeat.
// There is no queue between receipt and transcode, so a slow transcode
// applies natural backpressure through the kernel's UDP receive buffer.
func (l *Loop) receiveLoop(conn *net.UDPConn) error {
	buf := make([]byte, l.bufferSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.metrics.ReceiveErr.Inc()
			l.logger.Warn("udp receive error", zap.Error(err))
			continue
		}
		l.metrics.ReceiveOK.Inc()

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		if err := l.transcode(datagram, time.Now().UTC()); err != nil {
			l.metrics.ProcessErr.Inc()
			l.logger.Warn("transcode error", zap.Error(err))
			continue
		}
		l.metrics.ProcessOK.Inc()
	}
}
