// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// uartbridge attaches a development host to the Bonsai console UART through
// a serial adapter: stdin is pumped to the board and board output to stdout.
// Metrics are served while the bridge runs.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tarm/serial"
	"golang.org/x/sync/errgroup"

	"github.com/bonsai-soc/firmware/config"
	"github.com/bonsai-soc/firmware/pkg/logger"
	"github.com/bonsai-soc/firmware/pkg/metric"
)

var (
	dev         = flag.String("d", config.DefaultConfig.ConsoleDevice, "Serial device connected to the board console")
	baud        = flag.Int("b", config.DefaultConfig.ConsoleBaud, "Serial bitrate")
	metricsAddr = flag.String("metrics", config.DefaultConfig.MetricsAddr, "Address to serve /metrics on")
	log         = logger.LogContainer.GetSimpleLogger()

	bridgedBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bonsai",
		Subsystem: "bridge",
		Name:      "bytes",
		Help:      "Bytes moved across the console bridge per direction",
	}, []string{"direction"})
)

func init() {
	prometheus.MustRegister(bridgedBytes)
}

func main() {
	flag.Parse()

	s, err := serial.OpenPort(&serial.Config{Name: *dev, Baud: *baud})
	if err != nil {
		log.Fatalf("serial.OpenPort: %v", err)
	}

	go func() {
		if err := metric.Serve(*metricsAddr); err != nil {
			log.Errorf("metrics: %v", err)
		}
	}()

	log.Infof("Bridging %s at %d baud (version %s)", *dev, *baud, config.DefaultConfig.Version.Version)

	// The bridge stays attached to board output after stdin closes; only a
	// serial error ends it.
	var g errgroup.Group
	g.Go(func() error { return pump("tx", s, os.Stdin) })
	g.Go(func() error { return pump("rx", os.Stdout, s) })
	if err := g.Wait(); err != nil {
		log.Fatalf("bridge: %v", err)
	}
}

func pump(direction string, w io.Writer, r io.Reader) error {
	buf := make([]byte, 128)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return fmt.Errorf("%s write: %v", direction, werr)
			}
			bridgedBytes.WithLabelValues(direction).Add(float64(n))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s read: %v", direction, err)
		}
	}
}
