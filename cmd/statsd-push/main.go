// Command statsd-push reads metric lines from stdin and delivers them to statsd server.
//
//	echo "requests:1|c" | statsd-push --transport tcp --host localhost --port 8125
package main

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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxmetrics/go-statsd"
)

type pushParams struct {
	configPath string
	transport  string
	host       string
	port       int
	timeout    time.Duration
	retries    int
	prefix     string
	queue      int
}

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var params pushParams

	cmd := &cobra.Command{
		Use:          "statsd-push",
		Short:        "Pushes metric lines from stdin to statsd server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, &params, in, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.configPath, "config", "c", "", "path to YAML configuration file")
	flags.StringVarP(&params.transport, "transport", "t", statsd.DefaultTransport, "transport: tcp or udp")
	flags.StringVar(&params.host, "host", "localhost", "statsd server host")
	flags.IntVarP(&params.port, "port", "p", statsd.DefaultPort, "statsd server port")
	flags.DurationVar(&params.timeout, "timeout", statsd.DefaultConnectionTimeout, "connection timeout")
	flags.IntVar(&params.retries, "retries", statsd.DefaultMaxReconnectAttempts, "retries per line after the first attempt, 0 uses the default (5), negative disables retries")
	flags.StringVar(&params.prefix, "prefix", "", "prefix prepended to every line")
	flags.IntVar(&params.queue, "queue", 65536, "number of lines waiting for delivery")

	return cmd
}

// resolveConfig merges configuration file with flags, explicitly set flags win
func resolveConfig(cmd *cobra.Command, params *pushParams) (statsd.FileConfig, error) {
	cfg := statsd.FileConfig{
		Transport: params.transport,
		Prefix:    params.prefix,
		ConnectionConfig: statsd.ConnectionConfig{
			Host:                 params.host,
			Port:                 params.port,
			ConnectionTimeout:    params.timeout,
			MaxReconnectAttempts: params.retries,
		},
	}

	if params.configPath == "" {
		return cfg, nil
	}

	fileCfg, err := statsd.LoadConfig(params.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("transport") {
		fileCfg.Transport = params.transport
	}
	if flags.Changed("prefix") {
		fileCfg.Prefix = params.prefix
	}
	if flags.Changed("host") || fileCfg.Host == "" {
		fileCfg.Host = params.host
	}
	if flags.Changed("port") {
		fileCfg.Port = params.port
	}
	if flags.Changed("timeout") {
		fileCfg.ConnectionTimeout = params.timeout
	}
	if flags.Changed("retries") {
		fileCfg.MaxReconnectAttempts = params.retries
	}

	return fileCfg, nil
}

func runPush(cmd *cobra.Command, params *pushParams, in io.Reader, out io.Writer) error {
	cfg, err := resolveConfig(cmd, params)
	if err != nil {
		return err
	}

	client, err := statsd.New(cfg.Transport, cfg.ConnectionConfig, statsd.SendQueueCapacity(params.queue))
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		client.Push(cfg.Prefix + line)
	}

	scanErr := scanner.Err()

	if err = client.Close(); err != nil {
		return err
	}

	stats := client.Stats()
	fmt.Fprintf(out, "delivered=%d abandoned=%d lost=%d\n", stats.Delivered, stats.Abandoned, stats.Lost)

	return scanErr
}
