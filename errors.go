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
	"fmt"
)

// Sentinel errors reported through ConnectionError and WriteError
var (
	ErrDialTimeout    = errors.New("dial timed out")
	ErrClientClosed   = errors.New("client is closed")
	ErrPacketTooLarge = errors.New("line exceeds max packet size")
	ErrNilConnection  = errors.New("dialer returned no connection")
)

// ConnectionError is reported when connection to statsd server can't be established
//
// Refused connections, dial timeouts and unresolved hosts all end up here.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error connecting to %s: %s", e.Addr, e.Err)
}

// Unwrap returns the underlying dial error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WriteError is reported when an open connection rejects a write
type WriteError struct {
	Addr string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing to %s: %s", e.Addr, e.Err)
}

// Unwrap returns the underlying write error
func (e *WriteError) Unwrap() error {
	return e.Err
}

// asConnectionError makes sure err is reported as *ConnectionError for addr
func asConnectionError(addr string, err error) error {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return err
	}

	return &ConnectionError{Addr: addr, Err: err}
}
