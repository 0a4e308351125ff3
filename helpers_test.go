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
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var (
	errClosedChannel  = errors.New("I/O on closed channel")
	errRejectedWrite  = errors.New("write rejected")
	errConnectRefused = errors.New("connection refused")
)

// memConn is in-memory channel recording every write
type memConn struct {
	lock   sync.Mutex
	writes []string
	closes int

	// accept is the number of writes to accept before rejecting, negative accepts all
	accept int
}

func newMemConn() *memConn {
	return &memConn{accept: -1}
}

// newFailingConn returns channel which rejects every write
func newFailingConn() *memConn {
	return &memConn{accept: 0}
}

func (c *memConn) Write(p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closes > 0 {
		return 0, errClosedChannel
	}

	if c.accept >= 0 && len(c.writes) >= c.accept {
		return 0, errRejectedWrite
	}

	c.writes = append(c.writes, string(p))

	return len(p), nil
}

func (c *memConn) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.closes++

	return nil
}

func (c *memConn) Writes() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.writes...)
}

func (c *memConn) Closed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.closes > 0
}

// countingDialer calls dial with sequence number of the call (starting with 1)
func countingDialer(calls *atomic.Int64, dial func(n int64) *ConnFuture) DialerFunc {
	return func(ConnectionConfig) *ConnFuture {
		return dial(calls.Inc())
	}
}

// gatedDialer holds every dial until release is closed
type gatedDialer struct {
	calls   atomic.Int64
	release chan struct{}
	conn    Conn
}

func newGatedDialer(conn Conn) *gatedDialer {
	return &gatedDialer{release: make(chan struct{}), conn: conn}
}

func (d *gatedDialer) Dial(ConnectionConfig) *ConnFuture {
	d.calls.Inc()

	return GoConn(func() (Conn, error) {
		<-d.release
		return d.conn, nil
	})
}

func testLogger(t *testing.T) SomeLogger {
	return zaptest.NewLogger(t).Sugar()
}

func nopLogger() SomeLogger {
	return zap.NewNop().Sugar()
}

// closedPort returns localhost address nothing listens on
func closedPort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	return port
}
