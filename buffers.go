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

const defaultLineBufferSize = 128

// bufPool recycles buffers used to format metric lines
type bufPool chan []byte

func newBufPool(capacity int) bufPool {
	return make(bufPool, capacity)
}

// get takes buffer from the pool or allocates new one
func (p bufPool) get() []byte {
	select {
	case buf := <-p:
		return buf[0:0]
	default:
		return make([]byte, 0, defaultLineBufferSize)
	}
}

// put returns buffer to the pool
func (p bufPool) put(buf []byte) {
	select {
	case p <- buf:
	default:
		// pool is full, let GC handle the buf
	}
}
