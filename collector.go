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

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is anything which reports client Stats, e.g. StreamClient
type StatsSource interface {
	Stats() Stats
}

// StatsCollector exposes client counters as Prometheus metrics
//
//	reg.MustRegister(statsd.NewStatsCollector(client, prometheus.Labels{"transport": "tcp"}))
type StatsCollector struct {
	source StatsSource

	dials           *prometheus.Desc
	connectFailures *prometheus.Desc
	writeFailures   *prometheus.Desc
	delivered       *prometheus.Desc
	abandoned       *prometheus.Desc
	lost            *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector creates collector reading counters from source
func NewStatsCollector(source StatsSource, constLabels prometheus.Labels) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("statsd", "client", name), help, nil, constLabels)
	}

	return &StatsCollector{
		source:          source,
		dials:           desc("dials_total", "Total number of connection attempts to the statsd server."),
		connectFailures: desc("connect_failures_total", "Total number of failed connection attempts."),
		writeFailures:   desc("write_failures_total", "Total number of writes rejected by the connection."),
		delivered:       desc("lines_delivered_total", "Total number of metric lines written to the connection."),
		abandoned:       desc("lines_abandoned_total", "Total number of metric lines dropped after exhausting retries."),
		lost:            desc("lines_lost_total", "Total number of metric lines dropped before delivery."),
	}
}

// Describe implements prometheus.Collector
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.dials
	ch <- c.connectFailures
	ch <- c.writeFailures
	ch <- c.delivered
	ch <- c.abandoned
	ch <- c.lost
}

// Collect implements prometheus.Collector
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.dials, prometheus.CounterValue, float64(stats.Dials))
	ch <- prometheus.MustNewConstMetric(c.connectFailures, prometheus.CounterValue, float64(stats.ConnectFailures))
	ch <- prometheus.MustNewConstMetric(c.writeFailures, prometheus.CounterValue, float64(stats.WriteFailures))
	ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(stats.Delivered))
	ch <- prometheus.MustNewConstMetric(c.abandoned, prometheus.CounterValue, float64(stats.Abandoned))
	ch <- prometheus.MustNewConstMetric(c.lost, prometheus.CounterValue, float64(stats.Lost))
}
