/*
Package statsd implements a resilient statsd client with lazy connections and bounded retries.

Metric lines are emitted as plain text, one line per write, terminated by '\n', over either
a stream (TCP) or a datagram (UDP) transport. Delivery is fire-and-forget: pushing a line
never blocks the caller and never returns an error.

Architecture is the following:

 * line is put on the bounded send queue, if the queue is full line is dropped and counted as lost
 * send loops pick lines from the queue and deliver them one by one
 * connection is established lazily on first delivery and reused by later ones, concurrent
   deliveries share a single in-flight dial
 * any connection or write failure drops the connection and consumes one attempt of the
   line's retry budget (5 retries by default, 6 attempts overall), after that line is abandoned
 * each dial is bounded by the connection timeout
 * connection construction is pluggable via Dialer, so tests can inject in-memory channels

Usage

Initialize client with connection configuration and options, one client per application
is usually enough:

    client, err := statsd.NewStreamClient(statsd.ConnectionConfig{Host: "localhost", Port: 8125},
        statsd.SendLoopCount(2),
        statsd.ReconnectBackOff(10*time.Millisecond, time.Second))

Push already formatted lines, or wrap the client with Metrics to format them:

    client.Push("requests.http:1|c")

    metrics := statsd.NewMetrics(client, statsd.MetricPrefix("web."))
    metrics.PrecisionTiming("requests.route.api.latency", time.Since(start))

Shutdown client during application shutdown to deliver all the pending lines:

    client.Close()

Tagging

Metrics could be tagged to support aggregation on TSDB side. InfluxDB, Datadog, Graphite
and Okmeter formats are supported:

    metrics := statsd.NewMetrics(client,
        statsd.TagStyle(statsd.TagFormatDatadog),
        statsd.DefaultTags(statsd.StringTag("app", "billing")))

    metrics.Incr("request", 1,
        statsd.StringTag("protocol", "http"), statsd.IntTag("port", 80))
*/
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
