// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoop_ReceivesAndTranscodes(t *testing.T) {
	var mu sync.Mutex
	var received []string

	transcode := func(datagram []byte, now time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, string(datagram))
		return nil
	}

	loop := New("127.0.0.1:0", 65527, transcode, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	waitForState(t, loop, Listening)

	conn, err := net.Dial("udp", loop.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %s", err)
	}
	if _, err := conn.Write([]byte("hello world")); err != nil {
		t.Fatalf("write: %s", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(received)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for datagram to be transcoded")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %s", err)
	}

	if loop.State() != Stopped {
		t.Errorf("expected state Stopped, got %s", loop.State())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0] != "hello world" {
		t.Errorf("unexpected received datagrams: %#v", received)
	}
}

func TestLoop_TranscodeErrorIsCountedAndDiscarded(t *testing.T) {
	transcode := func(datagram []byte, now time.Time) error {
		return errTranscode
	}

	loop := New("127.0.0.1:0", 65527, transcode, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	waitForState(t, loop, Listening)

	conn, err := net.Dial("udp", loop.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %s", err)
	}
	conn.Write([]byte("bad"))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for loop.Metrics().ProcessErr == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for a process error to be counted")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done

	snap := loop.Metrics()
	if snap.ProcessErr != 1 || snap.ProcessOK != 0 {
		t.Errorf("unexpected metrics: %#v", snap)
	}
}

func TestLoop_CloseTriggersShutdown(t *testing.T) {
	loop := New("127.0.0.1:0", 65527, func([]byte, time.Time) error { return nil }, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	waitForState(t, loop, Listening)
	loop.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %s", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Run to return after Close")
	}
	if loop.State() != Stopped {
		t.Errorf("expected state Stopped, got %s", loop.State())
	}
}

func TestLoop_BadAddressFailsFast(t *testing.T) {
	loop := New("not-an-address", 65527, func([]byte, time.Time) error { return nil }, zap.NewNop())
	if err := loop.Run(context.Background()); err == nil {
		t.Error("expected a startup error for an unresolvable address")
	}
}

var errTranscode = transcodeError("synthetic transcode failure")

type transcodeError string

func (e transcodeError) Error() string { return string(e) }

func waitForState(t *testing.T, loop *Loop, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for loop.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state %s, currently %s", want, loop.State())
		}
		time.Sleep(time.Millisecond)
	}
}
