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
	"math/rand"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPusher keeps every pushed line
type recordingPusher struct {
	lock  sync.Mutex
	lines []string
}

func (p *recordingPusher) Push(line string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.lines = append(p.lines, line)
}

func (p *recordingPusher) take() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	lines := p.lines
	p.lines = nil

	return lines
}

func TestMetrics(t *testing.T) {
	pusher := &recordingPusher{}

	metrics := NewMetrics(pusher, MetricPrefix("foo."))
	metricsTagged := NewMetrics(pusher, TagStyle(TagFormatDatadog),
		DefaultTags(StringTag("host", "example.com"), Int64Tag("weight", 38)))

	compareOutput := func(actions func(), expected []string) func(*testing.T) {
		return func(t *testing.T) {
			actions()

			assert.Equal(t, expected, pusher.take())
		}
	}

	t.Run("Incr", compareOutput(
		func() { metrics.Incr("req.count", 30) },
		[]string{"foo.req.count:30|c"}))

	t.Run("IncrZero", compareOutput(
		func() { metrics.Incr("req.count", 0) },
		nil))

	t.Run("IncrTaggedInflux", compareOutput(
		func() { metrics.Incr("req.count", 30, StringTag("app", "service"), IntTag("port", 80)) },
		[]string{"foo.req.count,app=service,port=80:30|c"}))

	t.Run("IncrTaggedDatadog", compareOutput(
		func() { metricsTagged.Incr("req.count", 30, StringTag("app", "service"), IntTag("port", 80)) },
		[]string{"req.count:30|c|#host:example.com,weight:38,app:service,port:80"}))

	t.Run("Decr", compareOutput(
		func() { metrics.Decr("req.count", 30) },
		[]string{"foo.req.count:-30|c"}))

	t.Run("FIncr", compareOutput(
		func() { metrics.FIncr("req.count", 0.3) },
		[]string{"foo.req.count:0.3|c"}))

	t.Run("FDecr", compareOutput(
		func() { metrics.FDecr("req.count", 0.3) },
		[]string{"foo.req.count:-0.3|c"}))

	t.Run("Timing", compareOutput(
		func() { metrics.Timing("req.duration", 100) },
		[]string{"foo.req.duration:100|ms"}))

	t.Run("TimingTaggedDatadog", compareOutput(
		func() { metricsTagged.Timing("req.duration", 100, StringTag("app", "service"), IntTag("port", 80)) },
		[]string{"req.duration:100|ms|#host:example.com,weight:38,app:service,port:80"}))

	t.Run("PrecisionTiming", compareOutput(
		func() { metrics.PrecisionTiming("req.duration", 157356*time.Microsecond) },
		[]string{"foo.req.duration:157.356|ms"}))

	t.Run("PrecisionTimingTaggedInflux", compareOutput(
		func() {
			metrics.PrecisionTiming("req.duration", 157356*time.Microsecond, StringTag("app", "service"), IntTag("port", 80))
		},
		[]string{"foo.req.duration,app=service,port=80:157.356|ms"}))

	t.Run("Gauge", compareOutput(
		func() { metrics.Gauge("req.clients", 33); metrics.Gauge("req.clients", -533) },
		[]string{"foo.req.clients:33|g", "foo.req.clients:0|g", "foo.req.clients:-533|g"}))

	t.Run("GaugeTaggedInflux", compareOutput(
		func() {
			metrics.Gauge("req.clients", 33, StringTag("app", "service"), IntTag("port", 80))
			metrics.Gauge("req.clients", -533, StringTag("app", "service"), IntTag("port", 80))
		},
		[]string{
			"foo.req.clients,app=service,port=80:33|g",
			"foo.req.clients,app=service,port=80:0|g",
			"foo.req.clients,app=service,port=80:-533|g",
		}))

	t.Run("GaugeDelta", compareOutput(
		func() { metrics.GaugeDelta("req.clients", 33); metrics.GaugeDelta("req.clients", -533) },
		[]string{"foo.req.clients:+33|g", "foo.req.clients:-533|g"}))

	t.Run("GaugeDeltaTaggedDatadog", compareOutput(
		func() { metricsTagged.GaugeDelta("req.clients", 33); metricsTagged.GaugeDelta("req.clients", -533) },
		[]string{"req.clients:+33|g|#host:example.com,weight:38", "req.clients:-533|g|#host:example.com,weight:38"}))

	t.Run("FGauge", compareOutput(
		func() { metrics.FGauge("req.clients", 33.5); metrics.FGauge("req.clients", -533.3) },
		[]string{"foo.req.clients:33.5|g", "foo.req.clients:0|g", "foo.req.clients:-533.3|g"}))

	t.Run("FGaugeDelta", compareOutput(
		func() { metrics.FGaugeDelta("req.clients", 33.5); metrics.FGaugeDelta("req.clients", -533.3) },
		[]string{"foo.req.clients:+33.5|g", "foo.req.clients:-533.3|g"}))

	t.Run("FGaugeDeltaTaggedDatadog", compareOutput(
		func() { metricsTagged.FGaugeDelta("req.clients", 33.5); metricsTagged.FGaugeDelta("req.clients", -533.3) },
		[]string{"req.clients:+33.5|g|#host:example.com,weight:38", "req.clients:-533.3|g|#host:example.com,weight:38"}))

	t.Run("SetAdd", compareOutput(
		func() { metrics.SetAdd("req.user", "bob") },
		[]string{"foo.req.user:bob|s"}))

	t.Run("SetAddTaggedInflux", compareOutput(
		func() { metrics.SetAdd("req.user", "bob", StringTag("app", "service"), IntTag("port", 80)) },
		[]string{"foo.req.user,app=service,port=80:bob|s"}))

	t.Run("SetAddTaggedDatadog", compareOutput(
		func() { metricsTagged.SetAdd("req.user", "bob", StringTag("app", "service"), IntTag("port", 80)) },
		[]string{"req.user:bob|s|#host:example.com,weight:38,app:service,port:80"}))
}

func TestClones(t *testing.T) {
	pusher := &recordingPusher{}

	metrics := NewMetrics(pusher, MetricPrefix("foo."))
	metrics2 := metrics.CloneWithPrefix("bar.")
	metrics3 := metrics2.CloneWithPrefixExtension("blah.")

	metrics.Incr("req.count", 30)
	metrics2.Incr("req.count", 30)
	metrics3.Incr("req.count", 30)

	assert.Equal(t, []string{
		"foo.req.count:30|c",
		"bar.req.count:30|c",
		"bar.blah.req.count:30|c",
	}, pusher.take())
}

func TestMetricsOverStreamClient(t *testing.T) {
	listener, received := setupTCPListener(t)
	defer listener.Close() //nolint:errcheck

	client, err := NewStreamClient(ConnectionConfig{
		Host: "127.0.0.1",
		Port: listener.Addr().(*net.TCPAddr).Port,
	}, SendLoopCount(3), SendQueueCapacity(100000), Logger(testLogger(t)))
	require.NoError(t, err)

	metrics := NewMetrics(client, MetricPrefix("foo."))

	const (
		workers = 20
		count   = 500
	)

	var (
		wg       sync.WaitGroup
		expected int64
		lock     sync.Mutex
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			var sum int64

			for j := 0; j < count; j++ {
				increment := rand.Int63n(1000) + 1
				sum += increment

				metrics.Incr("some.counter", increment)
			}

			lock.Lock()
			expected += sum
			lock.Unlock()
		}()
	}

	wg.Wait()
	require.NoError(t, client.Close())
	require.Zero(t, client.Stats().Lost)

	var total int64

	for i := 0; i < workers*count; i++ {
		select {
		case line := <-received:
			require.True(t, strings.HasPrefix(line, "foo.some.counter:"), line)
			require.True(t, strings.HasSuffix(line, "|c"), line)

			value, err := strconv.ParseInt(line[len("foo.some.counter:"):len(line)-2], 10, 64)
			require.NoError(t, err)

			total += value
		case <-time.After(5 * time.Second):
			t.Fatalf("timeout waiting for line %d", i)
		}
	}

	assert.Equal(t, expected, total)
}
