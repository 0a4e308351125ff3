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
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default connection settings
const (
	DefaultPort                 = 8125
	DefaultConnectionTimeout    = 5 * time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultTransport            = TransportDatagram
)

// ConnectionConfig describes how to reach statsd server
//
// Config is copied into the client on construction and never changes afterwards.
type ConnectionConfig struct {
	// Host is required
	Host string `yaml:"host"`
	// Port defaults to DefaultPort
	Port int `yaml:"port"`
	// ConnectionTimeout bounds every single dial, defaults to DefaultConnectionTimeout
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	// MaxReconnectAttempts is the number of attempts made after the first one has failed,
	// zero means DefaultMaxReconnectAttempts, negative value disables retries
	MaxReconnectAttempts int `yaml:"max_reconnect_attempts"`
	// Dialer defaults to NetDialer for the client's transport
	Dialer Dialer `yaml:"-"`
}

// Address returns "host:port" of statsd server
func (cfg ConnectionConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Validate checks that config could be used to connect
func (cfg ConnectionConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("statsd: host is required")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.Errorf("statsd: invalid port %d", cfg.Port)
	}

	if cfg.ConnectionTimeout < 0 {
		return errors.Errorf("statsd: invalid connection timeout %s", cfg.ConnectionTimeout)
	}

	return nil
}

// withDefaults fills in zero fields, network is used for default Dialer
func (cfg ConnectionConfig) withDefaults(network string) ConnectionConfig {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	if cfg.ConnectionTimeout == 0 {
		cfg.ConnectionTimeout = DefaultConnectionTimeout
	}

	if cfg.MaxReconnectAttempts == 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	} else if cfg.MaxReconnectAttempts < 0 {
		cfg.MaxReconnectAttempts = 0
	}

	if cfg.Dialer == nil {
		cfg.Dialer = NetDialer{Network: network}
	}

	return cfg
}

// FileConfig is the layout of YAML configuration file
//
//	transport: tcp
//	host: statsd.local
//	port: 8125
//	connection_timeout: 500ms
//	max_reconnect_attempts: 3
//	prefix: web.
type FileConfig struct {
	Transport        string `yaml:"transport"`
	Prefix           string `yaml:"prefix"`
	ConnectionConfig `yaml:",inline"`
}

// LoadConfig reads YAML configuration from path
//
// Missing transport is set to DefaultTransport, other defaults are applied
// when the client is created.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}

	if cfg.Transport == "" {
		cfg.Transport = DefaultTransport
	}

	return cfg, nil
}
