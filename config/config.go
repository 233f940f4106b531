// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

type Version struct {
	Version string
	GitHash string
}

type Config struct {
	// ConsoleDevice is the host-side tty a serial adapter presents when
	// plugged into the board's console header.
	ConsoleDevice string
	// ConsoleBaud must match the fixed clock divider in the UART RTL;
	// there is no rate negotiation on the wire.
	ConsoleBaud int
	// MetricsAddr is where long-running commands expose /metrics.
	MetricsAddr string
	Version     Version
}

var DefaultConfig = &Config{
	ConsoleDevice: "/dev/ttyUSB0",
	ConsoleBaud:   115200,
	MetricsAddr:   "[::]:9372",
	Version: Version{
		Version: "0.1.0",
		GitHash: "",
	},
}
