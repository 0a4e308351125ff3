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

import "strconv"

// Tag placement constants
const (
	TagPlacementName = iota
	TagPlacementSuffix
)

// TagFormat controls tag formatting style
type TagFormat struct {
	// FirstSeparator is put before first tag
	FirstSeparator string
	// Placement specifies part of the line tags are put in: right after metric name or after metric type
	Placement byte
	// OtherSeparator separates 2nd and subsequent tags from each other
	OtherSeparator byte
	// KeyValueSeparator separates tag name and tag value
	KeyValueSeparator []byte
}

// Tag formats supported out of the box
var (
	// TagFormatInfluxDB is format for InfluxDB StatsD telegraf plugin
	//
	// Example: Counter "foo.bar" with tags "app=service,port=80": "foo.bar,app=service,port=80:1|c"
	TagFormatInfluxDB = &TagFormat{
		Placement:         TagPlacementName,
		FirstSeparator:    ",",
		OtherSeparator:    ',',
		KeyValueSeparator: []byte{'='},
	}

	// TagFormatDatadog is format for DogStatsD (Datadog Agent)
	//
	// Example: Counter "foo.bar" with tags "app:service,port:80": "foo.bar:1|c|#app:service,port:80"
	TagFormatDatadog = &TagFormat{
		Placement:         TagPlacementSuffix,
		FirstSeparator:    "|#",
		OtherSeparator:    ',',
		KeyValueSeparator: []byte{':'},
	}

	// TagFormatGraphite is format for Graphite
	//
	// Example: Counter "foo.bar" with tags "app=service;port=80": "foo.bar;app=service;port=80:1|c"
	TagFormatGraphite = &TagFormat{
		Placement:         TagPlacementName,
		FirstSeparator:    ";",
		OtherSeparator:    ';',
		KeyValueSeparator: []byte{'='},
	}

	// TagFormatOkmeter is format for Okmeter agent
	//
	// Example: Counter "foo.bar" with tags "app=service": "foo.bar.app_is_service:1|c"
	TagFormatOkmeter = &TagFormat{
		Placement:         TagPlacementName,
		FirstSeparator:    ".",
		OtherSeparator:    '.',
		KeyValueSeparator: []byte("_is_"),
	}
)

const (
	typeString = iota
	typeInt64
)

// Tag is metric-specific tag
type Tag struct {
	name     string
	strValue string
	intValue int64
	typ      byte
}

// Append formats tag and appends it to the buffer
func (tag Tag) Append(buf []byte, style *TagFormat) []byte {
	buf = append(buf, tag.name...)
	buf = append(buf, style.KeyValueSeparator...)

	switch tag.typ {
	case typeString:
		buf = append(buf, tag.strValue...)
	case typeInt64:
		buf = strconv.AppendInt(buf, tag.intValue, 10)
	}

	return buf
}

// StringTag creates Tag with string value
func StringTag(name, value string) Tag {
	return Tag{name: name, strValue: value, typ: typeString}
}

// IntTag creates Tag with integer value
func IntTag(name string, value int) Tag {
	return Tag{name: name, intValue: int64(value), typ: typeInt64}
}

// Int64Tag creates Tag with integer value
func Int64Tag(name string, value int64) Tag {
	return Tag{name: name, intValue: value, typ: typeInt64}
}
