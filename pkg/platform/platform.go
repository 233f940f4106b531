// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform binds logical peripheral roles to physical addresses.
// The binding is resolved at compile time from the SoC memory map; there is
// no discovery and nothing here ever changes at runtime.
package platform

// Bonsai SoC memory map.
const (
	// Uart0Base is the register block of the UART wired to the console
	// header. The address comes from the bus arbiter configuration in the
	// RTL; the core guarantees it is backed by a live peripheral.
	Uart0Base uintptr = 0x01000000
)

// Platform describes peripheral placement for one board.
type Platform interface {
	// ConsoleUart returns the base address of the UART designated as the
	// platform's primary text I/O channel.
	ConsoleUart() uintptr
}

type bonsai struct{}

func (bonsai) ConsoleUart() uintptr {
	return Uart0Base
}

// Bonsai returns the descriptor for the Bonsai SoC. The descriptor is
// immutable; resolving it any number of times yields the same addresses.
func Bonsai() Platform {
	return bonsai{}
}
