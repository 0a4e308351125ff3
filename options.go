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
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default settings
const (
	DefaultSendQueueCapacity = 1024
	DefaultSendLoopCount     = 1
	DefaultReportInterval    = time.Minute
	DefaultWriteTimeout      = time.Second
	DefaultMaxPacketSize     = 1432
)

// ClientOptions are statsd client settings
type ClientOptions struct {
	// Logger is used to report connection and write failures
	//
	// Default logger is zap production logger writing to stderr
	Logger SomeLogger

	// SendQueueCapacity is the number of lines waiting for delivery
	//
	// When the queue is full, new lines are dropped and counted as lost
	SendQueueCapacity int

	// SendLoopCount is the number of goroutines delivering lines
	//
	// With more than one loop, lines could be delivered out of order
	SendLoopCount int

	// ReportInterval instructs client to report number of lost lines
	// each interval, zero disables reporting
	ReportInterval time.Duration

	// WriteTimeout bounds each write when connection supports write deadlines,
	// zero disables deadlines
	WriteTimeout time.Duration

	// MaxPacketSize limits the size of datagram, larger lines are dropped
	//
	// Stream transport ignores this setting
	MaxPacketSize int

	// NewBackOff builds delay policy between attempts of a single line
	//
	// Attempt budget comes from ConnectionConfig.MaxReconnectAttempts,
	// policy should only decide on delays
	NewBackOff func() backoff.BackOff
}

// Option is type for option transport
type Option func(c *ClientOptions)

func defaultOptions() ClientOptions {
	return ClientOptions{
		SendQueueCapacity: DefaultSendQueueCapacity,
		SendLoopCount:     DefaultSendLoopCount,
		ReportInterval:    DefaultReportInterval,
		WriteTimeout:      DefaultWriteTimeout,
		MaxPacketSize:     DefaultMaxPacketSize,
		NewBackOff:        func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}
}

// Logger is used by statsd client to report errors and lost lines
//
// If not set, zap production logger is used.
func Logger(logger SomeLogger) Option {
	return func(c *ClientOptions) {
		c.Logger = logger
	}
}

// SendQueueCapacity controls length of the queue of lines waiting for delivery
func SendQueueCapacity(capacity int) Option {
	return func(c *ClientOptions) {
		c.SendQueueCapacity = capacity
	}
}

// SendLoopCount controls number of goroutines delivering lines
//
// Connection is shared by all the loops.
func SendLoopCount(count int) Option {
	return func(c *ClientOptions) {
		c.SendLoopCount = count
	}
}

// ReportInterval instructs client to report number of lost lines
// each interval, zero disables reporting
func ReportInterval(interval time.Duration) Option {
	return func(c *ClientOptions) {
		c.ReportInterval = interval
	}
}

// WriteTimeout sets deadline for each write, zero disables deadlines
func WriteTimeout(timeout time.Duration) Option {
	return func(c *ClientOptions) {
		c.WriteTimeout = timeout
	}
}

// MaxPacketSize control maximum datagram size
//
// Lines which don't fit into a datagram are dropped without retries.
func MaxPacketSize(packetSize int) Option {
	return func(c *ClientOptions) {
		c.MaxPacketSize = packetSize
	}
}

// ReconnectBackOff enables exponential delays between attempts of a single line
//
// By default attempts follow each other immediately.
func ReconnectBackOff(initial, max time.Duration) Option {
	return func(c *ClientOptions) {
		c.NewBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = max
			b.MaxElapsedTime = 0

			return b
		}
	}
}

// RetryPolicy sets delay policy between attempts of a single line
//
// newBackOff is called for every line, so stateful policies are not shared
// between deliveries.
func RetryPolicy(newBackOff func() backoff.BackOff) Option {
	return func(c *ClientOptions) {
		c.NewBackOff = newBackOff
	}
}
