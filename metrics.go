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
	"strconv"
	"time"
)

// DefaultBufPoolCapacity is the number of formatting buffers kept by Metrics
const DefaultBufPoolCapacity = 20

// MetricsOptions are settings of metric formatting
type MetricsOptions struct {
	// MetricPrefix is metricPrefix to prepend to every metric being sent
	//
	// If not set defaults to empty string
	MetricPrefix string

	// TagFormat controls formatting of tags, defaults to TagFormatInfluxDB
	TagFormat *TagFormat

	// DefaultTags is a list of tags to be applied to every metric
	DefaultTags []Tag
}

// MetricsOption is type for metrics formatting options
type MetricsOption func(o *MetricsOptions)

// MetricPrefix is prefix to prepend to every metric being sent
//
// Usually metrics are prefixed with app name, e.g. `app.`.
func MetricPrefix(prefix string) MetricsOption {
	return func(o *MetricsOptions) {
		o.MetricPrefix = prefix
	}
}

// TagStyle controls formatting of StatsD tags
//
// If tags are not used, no need to configure tag style.
func TagStyle(style *TagFormat) MetricsOption {
	return func(o *MetricsOptions) {
		o.TagFormat = style
	}
}

// DefaultTags defines a list of tags to be applied to every metric
func DefaultTags(tags ...Tag) MetricsOption {
	return func(o *MetricsOptions) {
		o.DefaultTags = tags
	}
}

// Metrics formats counters, gauges, timers and sets into statsd lines
// and pushes them to the client
type Metrics struct {
	pusher  Pusher
	options MetricsOptions
	bufPool bufPool
}

// NewMetrics creates Metrics on top of pusher (usually StreamClient or DatagramClient)
func NewMetrics(pusher Pusher, options ...MetricsOption) *Metrics {
	m := &Metrics{
		pusher: pusher,
		options: MetricsOptions{
			TagFormat: TagFormatInfluxDB,
		},
		bufPool: newBufPool(DefaultBufPoolCapacity),
	}

	for _, option := range options {
		option(&m.options)
	}

	if m.options.TagFormat == nil {
		m.options.TagFormat = TagFormatInfluxDB
	}

	return m
}

// CloneWithPrefix returns a clone of the original Metrics with different metricPrefix
//
// Clone shares the client with the original.
func (m *Metrics) CloneWithPrefix(prefix string) *Metrics {
	clone := *m
	clone.options.MetricPrefix = prefix

	return &clone
}

// CloneWithPrefixExtension returns a clone of the original Metrics with metricPrefix extended
//
// New prefix is the concatenation of the original prefix and the extension.
func (m *Metrics) CloneWithPrefixExtension(extension string) *Metrics {
	return m.CloneWithPrefix(m.options.MetricPrefix + extension)
}

// formatTags appends default and per-call tags to the buffer
func (m *Metrics) formatTags(buf []byte, tags []Tag) []byte {
	style := m.options.TagFormat

	if len(m.options.DefaultTags)+len(tags) == 0 {
		return buf
	}

	buf = append(buf, style.FirstSeparator...)

	for i, tag := range m.options.DefaultTags {
		buf = tag.Append(buf, style)

		if i != len(m.options.DefaultTags)-1 || len(tags) > 0 {
			buf = append(buf, style.OtherSeparator)
		}
	}

	for i, tag := range tags {
		buf = tag.Append(buf, style)

		if i != len(tags)-1 {
			buf = append(buf, style.OtherSeparator)
		}
	}

	return buf
}

// begin starts new line with prefix, name and (optionally) tags
func (m *Metrics) begin(stat string, tags []Tag) []byte {
	buf := m.bufPool.get()

	buf = append(buf, m.options.MetricPrefix...)
	buf = append(buf, stat...)

	if m.options.TagFormat.Placement == TagPlacementName {
		buf = m.formatTags(buf, tags)
	}

	return append(buf, ':')
}

// finish appends metric type and (optionally) tags, and pushes the line
func (m *Metrics) finish(buf []byte, metricType string, tags []Tag) {
	buf = append(buf, '|')
	buf = append(buf, metricType...)

	if m.options.TagFormat.Placement == TagPlacementSuffix {
		buf = m.formatTags(buf, tags)
	}

	m.pusher.Push(string(buf))
	m.bufPool.put(buf)
}

// Incr increments a counter metric
//
// Often used to note a particular event
func (m *Metrics) Incr(stat string, count int64, tags ...Tag) {
	if count != 0 {
		buf := m.begin(stat, tags)
		buf = strconv.AppendInt(buf, count, 10)
		m.finish(buf, "c", tags)
	}
}

// Decr decrements a counter metric
//
// Often used to note a particular event
func (m *Metrics) Decr(stat string, count int64, tags ...Tag) {
	m.Incr(stat, -count, tags...)
}

// FIncr increments a float counter metric
func (m *Metrics) FIncr(stat string, count float64, tags ...Tag) {
	if count != 0 {
		buf := m.begin(stat, tags)
		buf = strconv.AppendFloat(buf, count, 'f', -1, 64)
		m.finish(buf, "c", tags)
	}
}

// FDecr decrements a float counter metric
func (m *Metrics) FDecr(stat string, count float64, tags ...Tag) {
	m.FIncr(stat, -count, tags...)
}

// Timing tracks a duration event, the time delta must be given in milliseconds
func (m *Metrics) Timing(stat string, delta int64, tags ...Tag) {
	buf := m.begin(stat, tags)
	buf = strconv.AppendInt(buf, delta, 10)
	m.finish(buf, "ms", tags)
}

// PrecisionTiming track a duration event, the time delta has to be a duration
func (m *Metrics) PrecisionTiming(stat string, delta time.Duration, tags ...Tag) {
	buf := m.begin(stat, tags)
	buf = strconv.AppendFloat(buf, float64(delta)/float64(time.Millisecond), 'f', -1, 64)
	m.finish(buf, "ms", tags)
}

func (m *Metrics) igauge(stat string, sign []byte, value int64, tags []Tag) {
	buf := m.begin(stat, tags)
	buf = append(buf, sign...)
	buf = strconv.AppendInt(buf, value, 10)
	m.finish(buf, "g", tags)
}

// Gauge sets or updates constant value for the interval
//
// Gauges are a constant data type. They are not subject to averaging,
// and they don’t change unless you change them. Due to the underlying
// protocol, you can't explicitly set a gauge to a negative number without
// first setting it to zero, so negative value is sent as two lines.
func (m *Metrics) Gauge(stat string, value int64, tags ...Tag) {
	if value < 0 {
		m.igauge(stat, nil, 0, tags)
	}

	m.igauge(stat, nil, value, tags)
}

// GaugeDelta sends a change for a gauge
func (m *Metrics) GaugeDelta(stat string, value int64, tags ...Tag) {
	// Gauge Deltas are always sent with a leading '+' or '-'. The '-' takes care of itself but the '+' must added by hand
	if value < 0 {
		m.igauge(stat, nil, value, tags)
	} else {
		m.igauge(stat, []byte{'+'}, value, tags)
	}
}

func (m *Metrics) fgauge(stat string, sign []byte, value float64, tags []Tag) {
	buf := m.begin(stat, tags)
	buf = append(buf, sign...)
	buf = strconv.AppendFloat(buf, value, 'f', -1, 64)
	m.finish(buf, "g", tags)
}

// FGauge sends a floating point value for a gauge
func (m *Metrics) FGauge(stat string, value float64, tags ...Tag) {
	if value < 0 {
		m.igauge(stat, nil, 0, tags)
	}

	m.fgauge(stat, nil, value, tags)
}

// FGaugeDelta sends a floating point change for a gauge
func (m *Metrics) FGaugeDelta(stat string, value float64, tags ...Tag) {
	if value < 0 {
		m.fgauge(stat, nil, value, tags)
	} else {
		m.fgauge(stat, []byte{'+'}, value, tags)
	}
}

// SetAdd adds unique element to a set
func (m *Metrics) SetAdd(stat string, value string, tags ...Tag) {
	buf := m.begin(stat, tags)
	buf = append(buf, value...)
	m.finish(buf, "s", tags)
}
