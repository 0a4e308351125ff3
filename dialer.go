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
	"net"

	"github.com/pkg/errors"
)

// Conn is an open, writable endpoint of the statsd server
//
// net.Conn satisfies this interface.
type Conn interface {
	Write(p []byte) (n int, err error)
	Close() error
}

// Dialer establishes connections to the statsd server
//
// Dial should not block: it returns ConnFuture which completes later.
// Dialer is called with the client's lock held, so it should never call back
// into the client.
type Dialer interface {
	Dial(cfg ConnectionConfig) *ConnFuture
}

// DialerFunc is an adapter to use ordinary functions as Dialer
type DialerFunc func(cfg ConnectionConfig) *ConnFuture

// Dial calls f(cfg)
func (f DialerFunc) Dial(cfg ConnectionConfig) *ConnFuture {
	return f(cfg)
}

// NetDialer dials real sockets with the net package
type NetDialer struct {
	// Network is "tcp" or "udp" (or any other network supported by net.Dial)
	Network string
}

// Dial resolves and connects to cfg.Address() in a separate goroutine
func (d NetDialer) Dial(cfg ConnectionConfig) *ConnFuture {
	addr := cfg.Address()
	dialer := net.Dialer{Timeout: cfg.ConnectionTimeout}

	return GoConn(func() (Conn, error) {
		conn, err := dialer.Dial(d.Network, addr)
		if err != nil {
			return nil, &ConnectionError{Addr: addr, Err: errors.Wrapf(err, "dial %s", d.Network)}
		}

		return conn, nil
	})
}
