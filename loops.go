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

import "time"

// sendLoop delivers queued lines until the queue is closed
func (c *client) sendLoop() {
	defer c.shutdownWg.Done()

	for line := range c.sendQueue {
		c.deliver(line)
	}
}

// reportLoop reports periodically number of lines lost
func (c *client) reportLoop() {
	defer c.shutdownWg.Done()

	reportTicker := time.NewTicker(c.options.ReportInterval)
	defer reportTicker.Stop()

	for {
		select {
		case <-c.shutdown:
			return
		case <-reportTicker.C:
			lostPeriod := c.stats.lostPeriod.Swap(0)
			if lostPeriod > 0 {
				c.options.Logger.Warnf("[STATSD] %d lines lost (overflow)", lostPeriod)
			}
		}
	}
}
