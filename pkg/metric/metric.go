// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric exposes the process metrics over HTTP. Counters themselves
// are declared in the packages they measure.
package metric

import (
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartMetrics adds the metrics handler to a http.ServeMux
func StartMetrics(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}

// Serve listens on addr and serves the metrics endpoint until the server
// fails.
func Serve(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen: %v", err)
	}
	mux := http.NewServeMux()
	StartMetrics(mux)
	return http.Serve(l, mux)
}
