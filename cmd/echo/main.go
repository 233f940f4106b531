// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// echo reads newline-terminated lines from the console UART and writes them
// back. Lines that do not fit the buffer come back in bounded chunks, each
// flagged as truncated, which is the console line reader's overflow contract
// made visible.
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
	useSim = flag.Bool("sim", false, "Drive a simulated register block on stdin/stdout instead of /dev/mem")
	log    = logger.LogContainer.GetSimpleLogger()
)

func main() {
	flag.Parse()

	p := platform.Bonsai()
	var mem mmio.Provider
	if *useSim {
		u := sim.NewUART(p.ConsoleUart(), os.Stdout)
		go feedFromStdin(u)
		mem = u
	} else {
		mem = mmio.OpenDevMem()
	}
	defer mem.Close()

	c := stdio.NewConsole(p, mem)
	line := make([]byte, 64)
	for {
		ok, err := c.Gets(line)
		if err != nil {
			log.Fatalf("console read: %v", err)
		}
		if !ok {
			c.Puts("[truncated] \x00")
		}
		c.Puts(string(line))
		c.Putc('\n')
	}
}

func feedFromStdin(u *sim.UART) {
	buf := make([]byte, 128)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			u.Push(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
