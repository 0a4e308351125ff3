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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "statsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
transport: tcp
host: statsd.local
port: 9125
connection_timeout: 500ms
max_reconnect_attempts: 3
prefix: web.
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "tcp", cfg.Transport)
	assert.Equal(t, "web.", cfg.Prefix)
	assert.Equal(t, "statsd.local", cfg.Host)
	assert.Equal(t, 9125, cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.ConnectionTimeout)
	assert.Equal(t, 3, cfg.MaxReconnectAttempts)
	assert.Nil(t, cfg.Dialer)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "host: localhost\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTransport, cfg.Transport)

	full := cfg.ConnectionConfig.withDefaults("udp")
	assert.Equal(t, DefaultPort, full.Port)
	assert.Equal(t, DefaultConnectionTimeout, full.ConnectionTimeout)
	assert.Equal(t, DefaultMaxReconnectAttempts, full.MaxReconnectAttempts)
	assert.Equal(t, NetDialer{Network: "udp"}, full.Dialer)
	assert.Equal(t, "localhost:8125", full.Address())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	_, err = LoadConfig(writeConfig(t, "connection_timeout: forever\n"))
	assert.Error(t, err)
}

func TestConnectionConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		cfg   ConnectionConfig
		valid bool
	}{
		{"Minimal", ConnectionConfig{Host: "localhost"}, true},
		{"NoRetries", ConnectionConfig{Host: "localhost", MaxReconnectAttempts: -1}, true},
		{"NoHost", ConnectionConfig{Port: 8125}, false},
		{"BadPort", ConnectionConfig{Host: "localhost", Port: 70000}, false},
		{"NegativeTimeout", ConnectionConfig{Host: "localhost", ConnectionTimeout: -time.Second}, false},
	} {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConnectionConfigRetryBudget(t *testing.T) {
	assert.Equal(t, 5, ConnectionConfig{Host: "h"}.withDefaults("tcp").MaxReconnectAttempts)
	assert.Equal(t, 2, ConnectionConfig{Host: "h", MaxReconnectAttempts: 2}.withDefaults("tcp").MaxReconnectAttempts)
	assert.Equal(t, 0, ConnectionConfig{Host: "h", MaxReconnectAttempts: -1}.withDefaults("tcp").MaxReconnectAttempts)
}

func TestConnectionConfigIPv6Address(t *testing.T) {
	assert.Equal(t, "[::1]:8125", ConnectionConfig{Host: "::1", Port: 8125}.Address())
}
