// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hello writes a greeting to the Bonsai console UART. It is the smallest
// possible exercise of the whole I/O stack: platform binding, register
// provider, driver, console.
package main

import (
	"flag"
	"os"

	"github.com/bonsai-soc/firmware/pkg/logger"
	"github.com/bonsai-soc/firmware/pkg/mmio"
	"github.com/bonsai-soc/firmware/pkg/platform"
	"github.com/bonsai-soc/firmware/pkg/sim"
	"github.com/bonsai-soc/firmware/pkg/stdio"
)

var (
	useSim = flag.Bool("sim", false, "Drive a simulated register block emitting to stdout instead of /dev/mem")
	log    = logger.LogContainer.GetSimpleLogger()
)

func main() {
	flag.Parse()

	p := platform.Bonsai()
	var mem mmio.Provider
	if *useSim {
		mem = sim.NewUART(p.ConsoleUart(), os.Stdout)
	} else {
		mem = mmio.OpenDevMem()
	}
	defer mem.Close()

	c := stdio.NewConsole(p, mem)
	n := c.Puts("Hello, World!\n\x00")
	log.Infof("Sent %d bytes to the console UART", n)
}
