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

import "io"

// DatagramClient delivers lines over connectionless transport (UDP)
//
// Each line is sent as a separate datagram. "Connecting" only binds local
// socket, so most failures show up on write (e.g. ICMP port unreachable
// reported on the next write).
type DatagramClient struct {
	*client
}

var _ Client = (*DatagramClient)(nil)

// NewDatagramClient creates new UDP statsd client and starts background delivery
func NewDatagramClient(cfg ConnectionConfig, options ...Option) (*DatagramClient, error) {
	c, err := newClient(cfg, datagramTransport{}, options)
	if err != nil {
		return nil, err
	}

	return &DatagramClient{c}, nil
}

type datagramTransport struct{}

func (datagramTransport) network() string {
	return "udp"
}

func (datagramTransport) write(conn Conn, buf []byte, options *ClientOptions) error {
	if options.MaxPacketSize > 0 && len(buf) > options.MaxPacketSize {
		return ErrPacketTooLarge
	}

	setWriteDeadline(conn, options.WriteTimeout)

	n, err := conn.Write(buf)
	if err == nil && n < len(buf) {
		// datagram was truncated
		err = io.ErrShortWrite
	}

	return err
}
