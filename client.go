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
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Transport names accepted by New
const (
	TransportStream   = "tcp"
	TransportDatagram = "udp"
)

// Pusher accepts formatted metric lines
//
// Push never blocks and never fails: lines which can't be delivered are dropped.
type Pusher interface {
	Push(line string)
}

// Client is implemented by StreamClient and DatagramClient
type Client interface {
	Pusher

	// GetConnection returns client connection, dialing it if necessary
	//
	// Failure is reported as *ConnectionError.
	GetConnection() *ConnFuture

	// Stats returns snapshot of client counters
	Stats() Stats

	// Close delivers pending lines and closes the connection
	Close() error
}

// New creates statsd client for transport ("tcp"/"stream" or "udp"/"datagram")
func New(transport string, cfg ConnectionConfig, options ...Option) (Client, error) {
	switch strings.ToLower(transport) {
	case TransportStream, "stream":
		return NewStreamClient(cfg, options...)
	case TransportDatagram, "datagram":
		return NewDatagramClient(cfg, options...)
	}

	return nil, errors.Errorf("statsd: unsupported transport %q", transport)
}

// transport defines how lines are written to the connection
type transport interface {
	network() string
	write(conn Conn, buf []byte, options *ClientOptions) error
}

// client is the common part of StreamClient and DatagramClient
type client struct {
	cfg       ConnectionConfig
	options   ClientOptions
	transport transport

	conns *connHolder
	stats clientStats

	sendQueue chan string
	closeLock sync.RWMutex
	closed    bool

	// drainAborted is set when the server became unreachable while closing
	drainAborted atomic.Bool

	shutdown   chan struct{}
	shutdownWg sync.WaitGroup
}

func newClient(cfg ConnectionConfig, t transport, options []Option) (*client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &client{
		cfg:       cfg.withDefaults(t.network()),
		options:   defaultOptions(),
		transport: t,
		shutdown:  make(chan struct{}),
	}

	for _, option := range options {
		option(&c.options)
	}

	if c.options.Logger == nil {
		c.options.Logger = newDefaultLogger()
	}

	if c.options.SendLoopCount < 1 {
		c.options.SendLoopCount = 1
	}

	if c.options.SendQueueCapacity < 0 {
		c.options.SendQueueCapacity = 0
	}

	c.conns = newConnHolder(c.cfg, &c.stats, c.options.Logger)
	c.sendQueue = make(chan string, c.options.SendQueueCapacity)

	for i := 0; i < c.options.SendLoopCount; i++ {
		c.shutdownWg.Add(1)
		go c.sendLoop()
	}

	if c.options.ReportInterval > 0 {
		c.shutdownWg.Add(1)
		go c.reportLoop()
	}

	return c, nil
}

// Push queues line for delivery, '\n' is appended by the client
//
// Empty lines and lines with embedded '\n' are dropped.
func (c *client) Push(line string) {
	if line == "" || strings.IndexByte(line, '\n') != -1 {
		c.options.Logger.Debugf("[STATSD] Dropping malformed line %q", line)
		c.stats.addLost()
		return
	}

	c.closeLock.RLock()
	defer c.closeLock.RUnlock()

	if c.closed {
		c.stats.addLost()
		return
	}

	select {
	case c.sendQueue <- line:
	default:
		// queue is full, we lost the line
		c.stats.addLost()
	}
}

// GetConnection returns client connection, dialing it if necessary
//
// Failure is reported as *ConnectionError.
func (c *client) GetConnection() *ConnFuture {
	return c.conns.get()
}

// Stats returns snapshot of client counters
func (c *client) Stats() Stats {
	return c.stats.snapshot()
}

// Close stops the client
//
// Lines already queued are delivered (each with full retry budget) before
// the connection is closed, unless the server turns out to be unreachable:
// then the rest of the queue is dropped. Lines pushed after Close are lost.
func (c *client) Close() error {
	c.closeLock.Lock()
	if c.closed {
		c.closeLock.Unlock()
		return nil
	}

	c.closed = true
	close(c.sendQueue)
	close(c.shutdown)
	c.closeLock.Unlock()

	c.shutdownWg.Wait()

	if lost := c.stats.lostPeriod.Swap(0); lost > 0 {
		c.options.Logger.Warnf("[STATSD] %d lines lost", lost)
	}

	return c.conns.close()
}
