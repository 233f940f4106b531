// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stdio layers character and line semantics over the platform's
// console UART. A Console resolves its UART handle exactly once, at
// construction; everything else reads that handle. The string operations
// speak the firmware's C string conventions: Puts stops at a NUL byte and
// Gets produces NUL-terminated lines.
package stdio

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bonsai-soc/firmware/pkg/mmio"
	"github.com/bonsai-soc/firmware/pkg/platform"
	"github.com/bonsai-soc/firmware/pkg/uart"
)

// ErrNoBuffer is returned by Gets when the destination cannot even hold the
// NUL terminator.
var ErrNoBuffer = errors.New("stdio: line buffer must hold at least one byte")

var (
	txBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonsai",
		Subsystem: "stdio",
		Name:      "tx_bytes",
		Help:      "Bytes transmitted through the console",
	})
	rxBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonsai",
		Subsystem: "stdio",
		Name:      "rx_bytes",
		Help:      "Bytes received through the console",
	})
	lineOverflows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonsai",
		Subsystem: "stdio",
		Name:      "line_overflows",
		Help:      "Lines that exceeded the reader's buffer before a newline arrived",
	})
)

func init() {
	prometheus.MustRegister(txBytes)
	prometheus.MustRegister(rxBytes)
	prometheus.MustRegister(lineOverflows)
}

// Console is a character stream over one UART. Construct it with NewConsole;
// using a zero Console is a contract violation and panics.
type Console struct {
	uart *uart.UART
}

// NewConsole resolves the console UART from the platform binding. Resolution
// is idempotent: every console built from the same binding and provider
// drives the same register block.
func NewConsole(p platform.Platform, mem mmio.Provider) *Console {
	return &Console{uart: uart.New(mem, p.ConsoleUart())}
}

func (c *Console) handle() *uart.UART {
	if c.uart == nil {
		panic("stdio: console used before NewConsole")
	}
	return c.uart
}

// Putc transmits one byte, blocking until the UART accepts it.
func (c *Console) Putc(b byte) {
	c.handle().Send(b)
	txBytes.Inc()
}

// Puts transmits s in order, stopping before the first NUL byte, or after
// the whole string if it has none. An empty string is a no-op. Puts returns
// the number of bytes transmitted and blocks until all of them were.
func (c *Console) Puts(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			break
		}
		c.Putc(s[i])
		n++
	}
	return n
}

// Getc blocks until a byte arrives and returns it.
func (c *Console) Getc() byte {
	b := c.handle().Recv()
	rxBytes.Inc()
	return b
}

// Gets reads a line into buf. On a newline the newline is consumed, replaced
// by a NUL terminator, and Gets returns true. If len(buf)-1 bytes arrive
// without a newline, buf is NUL-terminated at that point and Gets returns
// false; the rest of the line, including its newline, stays in the stream
// for the next call. buf always holds valid NUL-terminated data on return.
func (c *Console) Gets(buf []byte) (bool, error) {
	if len(buf) == 0 {
		return false, ErrNoBuffer
	}
	var i int
	for i = 0; i < len(buf)-1; i++ {
		buf[i] = c.Getc()
		if buf[i] == '\n' {
			buf[i] = 0
			return true, nil
		}
	}
	buf[i] = 0
	lineOverflows.Inc()
	return false, nil
}
