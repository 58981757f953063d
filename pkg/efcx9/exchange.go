// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Connection is the byte-stream transport the driver talks through. It has
// no protocol knowledge; serial and WebSocket implementations live in the
// CLI layer, and tests supply in-memory fakes.
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// exchanger owns the shared receive buffer for one connection and runs the
// request/response cycle every operation is built on.
//
// The stream carries no delimiters or length prefixes, so the only reliable
// termination signal is "expected byte count reached" within a deadline.
// Exchanges are strictly sequential: the buffer is cleared before each send
// so a late byte from one command can never be attributed to the next.
type exchanger struct {
	conn Connection

	mu sync.Mutex // guards rx
	rx []byte

	opMu sync.Mutex // serializes exchanges

	interval time.Duration
	attempts int

	wg sync.WaitGroup
}

func newExchanger(conn Connection) *exchanger {
	e := &exchanger{
		conn:     conn,
		interval: pollInterval,
		attempts: pollAttempts,
	}
	e.wg.Add(1)
	go e.readLoop()
	return e
}

// readLoop appends arriving bytes to the shared buffer. It exits when the
// connection is closed (Read returns an error).
func (e *exchanger) readLoop() {
	defer e.wg.Done()
	buf := make([]byte, 256)
	for {
		n, err := e.conn.Read(buf)
		if n > 0 {
			e.mu.Lock()
			e.rx = append(e.rx, buf[:n]...)
			e.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// close tears down the connection and waits for the read loop to drain.
func (e *exchanger) close() error {
	err := e.conn.Close()
	e.wg.Wait()
	return err
}

func (e *exchanger) buffered() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rx)
}

// take removes and returns exactly n buffered bytes. Anything beyond n is
// stale over-delivery and is discarded with the next exchange's clear.
func (e *exchanger) take(n int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]byte, n)
	copy(out, e.rx[:n])
	e.rx = e.rx[:0]
	return out
}

func (e *exchanger) clear() {
	e.mu.Lock()
	e.rx = e.rx[:0]
	e.mu.Unlock()
}

// exchange writes [cmd][payload...] and collects exactly respLen response
// bytes, polling the buffer until they arrive or the attempt budget runs
// out. respLen may be zero for commands that are not acknowledged.
func (e *exchanger) exchange(cmd Command, payload []byte, respLen int) ([]byte, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.clear()

	frame := make([]byte, 0, 1+len(payload))
	frame = append(frame, byte(cmd))
	frame = append(frame, payload...)
	if _, err := e.conn.Write(frame); err != nil {
		return nil, fmt.Errorf("write command 0x%02X: %w", byte(cmd), err)
	}

	if respLen == 0 {
		return nil, nil
	}

	for i := 0; i < e.attempts; i++ {
		time.Sleep(e.interval)
		if e.buffered() >= respLen {
			return e.take(respLen), nil
		}
	}
	return nil, fmt.Errorf("command 0x%02X: %w", byte(cmd), ErrTimeout)
}

// exchangeRaw writes a bare payload with no opcode, for transfers the
// protocol splits into a header command followed by the data itself
// (config writes, framebuffer uploads).
func (e *exchanger) exchangeRaw(payload []byte, respLen int) ([]byte, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.clear()

	if _, err := e.conn.Write(payload); err != nil {
		return nil, fmt.Errorf("write payload: %w", err)
	}

	if respLen == 0 {
		return nil, nil
	}

	for i := 0; i < e.attempts; i++ {
		time.Sleep(e.interval)
		if e.buffered() >= respLen {
			return e.take(respLen), nil
		}
	}
	return nil, fmt.Errorf("payload transfer: %w", ErrTimeout)
}
