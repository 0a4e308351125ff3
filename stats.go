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

import "go.uber.org/atomic"

// Stats is a snapshot of client counters
type Stats struct {
	// Dials is the number of connection attempts
	Dials int64
	// ConnectFailures is the number of failed connection attempts
	ConnectFailures int64
	// WriteFailures is the number of writes rejected by the connection
	WriteFailures int64
	// Delivered is the number of lines written to the connection
	Delivered int64
	// Abandoned is the number of lines dropped after exhausting retry budget
	Abandoned int64
	// Lost is the number of lines dropped before delivery was attempted
	// (full queue, closed client or malformed line)
	Lost int64
}

type clientStats struct {
	dials           atomic.Int64
	connectFailures atomic.Int64
	writeFailures   atomic.Int64
	delivered       atomic.Int64
	abandoned       atomic.Int64
	lost            atomic.Int64

	lostPeriod atomic.Int64
}

func (s *clientStats) addLost() {
	s.lost.Inc()
	s.lostPeriod.Inc()
}

func (s *clientStats) snapshot() Stats {
	return Stats{
		Dials:           s.dials.Load(),
		ConnectFailures: s.connectFailures.Load(),
		WriteFailures:   s.writeFailures.Load(),
		Delivered:       s.delivered.Load(),
		Abandoned:       s.abandoned.Load(),
		Lost:            s.lost.Load(),
	}
}
