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
	"context"
	"sync"
)

// ConnFuture is a pending result of a dial
//
// Any number of goroutines could wait on the same ConnFuture, result is
// available to all of them once Done() is closed.
type ConnFuture struct {
	done chan struct{}
	once sync.Once

	conn Conn
	err  error
}

func newConnFuture() *ConnFuture {
	return &ConnFuture{done: make(chan struct{})}
}

// ResolvedConn returns completed ConnFuture holding conn
func ResolvedConn(conn Conn) *ConnFuture {
	f := newConnFuture()
	f.resolve(conn, nil)

	return f
}

// FailedConn returns completed ConnFuture holding err
func FailedConn(err error) *ConnFuture {
	f := newConnFuture()
	f.resolve(nil, err)

	return f
}

// GoConn runs dial in a separate goroutine and returns ConnFuture for its result
func GoConn(dial func() (Conn, error)) *ConnFuture {
	f := newConnFuture()

	go func() {
		f.resolve(dial())
	}()

	return f
}

// resolve completes the future, only the first call has any effect
func (f *ConnFuture) resolve(conn Conn, err error) {
	f.once.Do(func() {
		f.conn, f.err = conn, err
		close(f.done)
	})
}

// Done is closed when the result is available
func (f *ConnFuture) Done() <-chan struct{} {
	return f.done
}

// Result waits for the dial to complete and returns its result
func (f *ConnFuture) Result() (Conn, error) {
	<-f.done

	return f.conn, f.err
}

// Wait is like Result, but gives up when ctx is done
func (f *ConnFuture) Wait(ctx context.Context) (Conn, error) {
	select {
	case <-f.done:
		return f.conn, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
