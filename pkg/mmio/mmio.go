// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmio is the seam between peripheral drivers and the physical
// address space. Drivers take a Provider plus a base address and never touch
// memory directly; on the SoC the provider is backed by /dev/mem, in tests
// by an expectation fake or by the behavioral model in pkg/sim.
//
// Every read goes through the provider on every call. Peripheral registers
// change asynchronously to the program, so no value observed through a
// Provider may be cached.
package mmio

// Provider gives 32-bit access to a physical address. The Must prefix is
// literal: implementations panic instead of returning errors, since a failed
// register access leaves no sane way to continue.
type Provider interface {
	MustRead32(uintptr) uint32
	MustWrite32(uintptr, uint32)
	Close()
}
