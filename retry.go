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
	"time"

	"github.com/cenkalti/backoff/v4"
)

// deliver writes single line to the connection
//
// Every failed attempt, either to connect or to write, drops the connection
// and consumes one attempt out of MaxReconnectAttempts+1. Once the budget is
// exhausted the line is abandoned. Errors never leave deliver.
//
// While the client is closing, a line abandoned because the server can't be
// reached stops the drain: lines still queued are counted as lost.
func (c *client) deliver(line string) {
	if c.drainAborted.Load() {
		// server went unreachable during shutdown, don't wait for it any longer
		c.stats.addLost()
		return
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	maxAttempts := c.cfg.MaxReconnectAttempts + 1
	attempt := 0

	op := func() error {
		attempt++

		pending := c.conns.get()

		conn, err := pending.Result()
		if err != nil {
			c.stats.connectFailures.Inc()
			c.conns.invalidate(pending)
			c.options.Logger.Warnf("[STATSD] Error connecting to server (attempt %d/%d): %s", attempt, maxAttempts, err)

			return err
		}

		if err = c.transport.write(conn, buf, &c.options); err != nil {
			err = &WriteError{Addr: c.cfg.Address(), Err: err}

			// nothing was sent, connection is still fine
			if errors.Is(err, ErrPacketTooLarge) {
				return backoff.Permanent(err)
			}

			c.stats.writeFailures.Inc()
			c.conns.invalidate(pending)
			c.options.Logger.Warnf("[STATSD] Error writing to socket (attempt %d/%d): %s", attempt, maxAttempts, err)

			return err
		}

		return nil
	}

	policy := backoff.WithMaxRetries(c.options.NewBackOff(), uint64(c.cfg.MaxReconnectAttempts))

	err := backoff.RetryNotify(op, policy, func(err error, delay time.Duration) {
		if delay > 0 {
			c.options.Logger.Debugf("[STATSD] Retrying in %s", delay)
		}
	})
	if err != nil {
		c.stats.abandoned.Inc()
		c.options.Logger.Errorf("[STATSD] Dropping line after %d attempt(s): %s", attempt, err)

		var connErr *ConnectionError
		if c.shuttingDown() && errors.As(err, &connErr) && !c.drainAborted.Swap(true) {
			c.options.Logger.Warnf("[STATSD] Server unreachable during shutdown, dropping queued lines")
		}

		return
	}

	c.stats.delivered.Inc()

	if attempt > 1 {
		c.options.Logger.Debugf("[STATSD] Line delivered after %d attempts", attempt)
	}
}

// shuttingDown reports whether Close was called
func (c *client) shuttingDown() bool {
	select {
	case <-c.shutdown:
		return true
	default:
		return false
	}
}
