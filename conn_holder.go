package statsd

/*

Copyright (c) 2017 Andrey Smirnov

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"sync"
	"time"
)

type connState int

const (
	connEmpty connState = iota
	connDialing
	connActive
	connClosed
)

func (s connState) String() string {
	switch s {
	case connEmpty:
		return "empty"
	case connDialing:
		return "dialing"
	case connActive:
		return "active"
	case connClosed:
		return "closed"
	}

	return "unknown"
}

// connHolder keeps single connection of the client
//
// current is nil when empty or closed, pending while dialing and resolved with
// a connection when active.
type connHolder struct {
	cfg    ConnectionConfig
	stats  *clientStats
	logger SomeLogger

	lock    sync.Mutex
	state   connState
	current *ConnFuture
}

func newConnHolder(cfg ConnectionConfig, stats *clientStats, logger SomeLogger) *connHolder {
	return &connHolder{
		cfg:    cfg,
		stats:  stats,
		logger: logger,
	}
}

// get returns active connection, in-flight dial or starts new dial
func (h *connHolder) get() *ConnFuture {
	h.lock.Lock()
	defer h.lock.Unlock()

	switch h.state {
	case connActive, connDialing:
		return h.current
	case connClosed:
		return FailedConn(&ConnectionError{Addr: h.cfg.Address(), Err: ErrClientClosed})
	}

	f := newConnFuture()
	h.state = connDialing
	h.current = f
	h.stats.dials.Inc()

	go h.dial(f, h.cfg.Dialer.Dial(h.cfg))

	return f
}

// dial waits for pending dial and moves holder to the next state before completing f
func (h *connHolder) dial(f, pending *ConnFuture) {
	conn, err := h.await(pending)

	h.lock.Lock()
	if h.current == f {
		if err != nil {
			h.state = connEmpty
			h.current = nil
		} else {
			h.state = connActive
			h.logger.Infof("[STATSD] Connected to %s", h.cfg.Address())
		}
	} else if err == nil {
		// holder was closed while dialing
		_ = conn.Close()
		conn, err = nil, &ConnectionError{Addr: h.cfg.Address(), Err: ErrClientClosed}
	}
	h.lock.Unlock()

	f.resolve(conn, err)
}

// await bounds pending dial with the connection timeout
func (h *connHolder) await(pending *ConnFuture) (Conn, error) {
	addr := h.cfg.Address()

	if pending == nil {
		return nil, &ConnectionError{Addr: addr, Err: ErrNilConnection}
	}

	timer := time.NewTimer(h.cfg.ConnectionTimeout)
	defer timer.Stop()

	select {
	case <-pending.Done():
		conn, err := pending.Result()
		if err != nil {
			return nil, asConnectionError(addr, err)
		}

		if conn == nil {
			return nil, &ConnectionError{Addr: addr, Err: ErrNilConnection}
		}

		return conn, nil
	case <-timer.C:
		go func() {
			if conn, err := pending.Result(); err == nil && conn != nil {
				_ = conn.Close()
			}
		}()

		return nil, &ConnectionError{Addr: addr, Err: ErrDialTimeout}
	}
}

// invalidate drops the connection obtained via f
//
// Nothing happens if holder already moved on to another connection.
func (h *connHolder) invalidate(f *ConnFuture) {
	h.lock.Lock()
	if h.current != f || h.state != connActive {
		h.lock.Unlock()
		return
	}

	h.state = connEmpty
	h.current = nil
	h.lock.Unlock()

	conn, _ := f.Result()
	if err := conn.Close(); err != nil {
		h.logger.Debugf("[STATSD] Error closing connection to %s: %s", h.cfg.Address(), err)
	}
}

// close drops the connection and refuses all further dials
func (h *connHolder) close() error {
	h.lock.Lock()
	state, current := h.state, h.current
	h.state = connClosed
	h.current = nil
	h.lock.Unlock()

	if state != connActive {
		return nil
	}

	conn, _ := current.Result()

	return conn.Close()
}
