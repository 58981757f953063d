// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// fakeConn is an in-memory Connection. A respond callback maps each
// written frame to the bytes the "board" sends back; deliver injects
// unsolicited bytes, e.g. a late response from a previous exchange.
type fakeConn struct {
	mu      sync.Mutex
	writes  [][]byte
	respond func(frame []byte) []byte

	rx   chan []byte
	done chan struct{}
	once sync.Once
}

func newFakeConn(respond func(frame []byte) []byte) *fakeConn {
	return &fakeConn{
		respond: respond,
		rx:      make(chan []byte, 64),
		done:    make(chan struct{}),
	}
}

func (f *fakeConn) Read(p []byte) (int, error) {
	select {
	case b := <-f.rx:
		return copy(p, b), nil
	case <-f.done:
		return 0, io.EOF
	}
}

func (f *fakeConn) Write(p []byte) (int, error) {
	select {
	case <-f.done:
		return 0, errors.New("write on closed connection")
	default:
	}

	frame := append([]byte(nil), p...)
	f.mu.Lock()
	f.writes = append(f.writes, frame)
	f.mu.Unlock()

	if f.respond != nil {
		if resp := f.respond(frame); len(resp) > 0 {
			f.rx <- resp
		}
	}
	return len(p), nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}

func (f *fakeConn) deliver(b []byte) {
	f.rx <- append([]byte(nil), b...)
}

func (f *fakeConn) written() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.writes))
	copy(out, f.writes)
	return out
}

// newTestExchanger shortens the poll budget so timeout tests stay fast.
func newTestExchanger(conn Connection) *exchanger {
	e := newExchanger(conn)
	e.interval = time.Millisecond
	e.attempts = 20
	return e
}

func TestExchangeCollectsExpectedLength(t *testing.T) {
	conn := newFakeConn(func(frame []byte) []byte {
		if frame[0] == byte(CmdReadID) {
			return []byte{VendorID, ProductID, 0x03}
		}
		return nil
	})
	e := newTestExchanger(conn)
	defer e.close()

	resp, err := e.exchange(CmdReadID, nil, IDResponseSize)
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !bytes.Equal(resp, []byte{VendorID, ProductID, 0x03}) {
		t.Errorf("response = % X", resp)
	}

	writes := conn.written()
	if len(writes) != 1 || !bytes.Equal(writes[0], []byte{byte(CmdReadID)}) {
		t.Errorf("written frames = % X, want single READ_ID", writes)
	}
}

func TestExchangeFramePayload(t *testing.T) {
	conn := newFakeConn(nil)
	e := newTestExchanger(conn)
	defer e.close()

	if _, err := e.exchange(CmdWriteFanDuty, []byte{3, 80}, 0); err != nil {
		t.Fatalf("exchange failed: %v", err)
	}

	writes := conn.written()
	if len(writes) != 1 || !bytes.Equal(writes[0], []byte{byte(CmdWriteFanDuty), 3, 80}) {
		t.Errorf("written frames = % X", writes)
	}
}

func TestExchangeTimeoutBound(t *testing.T) {
	conn := newFakeConn(nil) // never responds
	e := newTestExchanger(conn)
	defer e.close()

	budget := time.Duration(e.attempts) * e.interval

	start := time.Now()
	_, err := e.exchange(CmdReadSensorValues, nil, SensorPayloadSize)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed < budget {
		t.Errorf("timed out after %v, before the %v budget", elapsed, budget)
	}
	if elapsed > 10*budget {
		t.Errorf("timed out after %v, far beyond the %v budget", elapsed, budget)
	}
}

func TestExchangeBufferIsolation(t *testing.T) {
	conn := newFakeConn(func(frame []byte) []byte {
		if frame[0] == byte(CmdReadID) {
			return []byte{VendorID, ProductID, 0x01}
		}
		return nil
	})
	e := newTestExchanger(conn)
	defer e.close()

	// Stale bytes from a previous exchange arrive before the next send.
	conn.deliver([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	waitBuffered(t, e, 4)

	resp, err := e.exchange(CmdReadID, nil, IDResponseSize)
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !bytes.Equal(resp, []byte{VendorID, ProductID, 0x01}) {
		t.Errorf("response contaminated by stale bytes: % X", resp)
	}
}

func TestExchangeTruncatesOverDelivery(t *testing.T) {
	conn := newFakeConn(func(frame []byte) []byte {
		// Board answers with trailing garbage beyond the expected length.
		return []byte{0x01, 0x02, 0x03, 0x99, 0x99}
	})
	e := newTestExchanger(conn)
	defer e.close()

	resp, err := e.exchange(CmdReadID, nil, 3)
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !bytes.Equal(resp, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("response = % X, want first 3 bytes only", resp)
	}
}

func TestExchangeRawWritesBarePayload(t *testing.T) {
	conn := newFakeConn(nil)
	e := newTestExchanger(conn)
	defer e.close()

	payload := []byte{0x10, 0x20, 0x30}
	if _, err := e.exchangeRaw(payload, 0); err != nil {
		t.Fatalf("exchangeRaw failed: %v", err)
	}

	writes := conn.written()
	if len(writes) != 1 || !bytes.Equal(writes[0], payload) {
		t.Errorf("written frames = % X, want bare payload", writes)
	}
}

func TestExchangeWriteFault(t *testing.T) {
	conn := newFakeConn(nil)
	conn.Close()
	e := newExchanger(conn)

	if _, err := e.exchange(CmdNop, nil, 0); err == nil {
		t.Error("exchange on closed connection succeeded")
	}
}

// waitBuffered blocks until the reader goroutine has absorbed n bytes.
func waitBuffered(t *testing.T, e *exchanger, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for e.buffered() < n {
		if time.Now().After(deadline) {
			t.Fatalf("buffered() = %d, want %d", e.buffered(), n)
		}
		time.Sleep(time.Millisecond)
	}
}
