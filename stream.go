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
	"io"
	"time"
)

// StreamClient delivers lines over connection-oriented transport (TCP)
//
// Lines delivered over the same connection keep their order (with single send loop).
type StreamClient struct {
	*client
}

var _ Client = (*StreamClient)(nil)

// NewStreamClient creates new TCP statsd client and starts background delivery
//
// Connection is not established until the first line is delivered or
// GetConnection is called.
func NewStreamClient(cfg ConnectionConfig, options ...Option) (*StreamClient, error) {
	c, err := newClient(cfg, streamTransport{}, options)
	if err != nil {
		return nil, err
	}

	return &StreamClient{c}, nil
}

type streamTransport struct{}

func (streamTransport) network() string {
	return "tcp"
}

func (streamTransport) write(conn Conn, buf []byte, options *ClientOptions) error {
	setWriteDeadline(conn, options.WriteTimeout)

	n, err := conn.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}

	return err
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// setWriteDeadline sets deadline if conn supports it, e.g. for net.Conn
func setWriteDeadline(conn Conn, timeout time.Duration) {
	if timeout <= 0 {
		return
	}

	if d, ok := conn.(writeDeadliner); ok {
		_ = d.SetWriteDeadline(time.Now().Add(timeout))
	}
}
