// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim provides a behavioral model of the Bonsai UART register block.
// It implements mmio.Provider, so the unmodified driver stack runs hosted
// against a register-accurate peripheral that is fed and drained from
// software instead of from pins.
package sim

import (
	"fmt"
	"io"
	"sync"
)

// Register offsets, mirroring the hardware block.
const (
	regRxValid uintptr = 0x00
	regRxData  uintptr = 0x04
	regTxFull  uintptr = 0x08
	regTxData  uintptr = 0x0c
)

// UART models one register block at a fixed base address. Transmitted bytes
// go to an io.Writer; received bytes come from a queue fed with Push. The
// transmit path is never full unless forced with SetTxFull, matching the
// behavioral emulator in the RTL project.
//
// The model is mutex-guarded: Push and SetTxFull may be called from a
// goroutine other than the one polling the registers.
type UART struct {
	base uintptr

	mu     sync.Mutex
	rx     []byte
	txFull bool
	loop   bool
	out    io.Writer
}

// NewUART models the register block at base, emitting transmitted bytes to
// out. A nil out discards them.
func NewUART(base uintptr, out io.Writer) *UART {
	return &UART{base: base, out: out}
}

// NewLoopback models a register block whose transmit path feeds its own
// receive queue.
func NewLoopback(base uintptr) *UART {
	return &UART{base: base, loop: true}
}

// Push appends bytes to the receive queue.
func (u *UART) Push(b []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rx = append(u.rx, b...)
}

// SetTxFull forces the TX_FULL bit, for exercising full and drop paths.
func (u *UART) SetTxFull(full bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.txFull = full
}

// Pending returns the number of unread bytes in the receive queue.
func (u *UART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx)
}

func (u *UART) MustRead32(addr uintptr) uint32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch addr {
	case u.base + regRxValid:
		if len(u.rx) > 0 {
			return 1
		}
		return 0
	case u.base + regRxData:
		// Real hardware would hand back whatever is latched; the model
		// treats it as a driver bug, since the protocol is to test
		// RX_VALID first.
		if len(u.rx) == 0 {
			panic(fmt.Sprintf("sim: RX_DATA read with empty receive queue @ %08x", addr))
		}
		b := u.rx[0]
		u.rx = u.rx[1:]
		return uint32(b)
	case u.base + regTxFull:
		if u.txFull {
			return 1
		}
		return 0
	case u.base + regTxData:
		panic(fmt.Sprintf("sim: read of write-only TX_DATA @ %08x", addr))
	}
	panic(fmt.Sprintf("sim: read outside the UART register block @ %08x", addr))
}

func (u *UART) MustWrite32(addr uintptr, v uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch addr {
	case u.base + regTxData:
		b := byte(v & 0xff)
		if u.loop {
			u.rx = append(u.rx, b)
			return
		}
		if u.out != nil {
			if _, err := u.out.Write([]byte{b}); err != nil {
				panic(err)
			}
		}
		return
	case u.base + regRxValid, u.base + regRxData, u.base + regTxFull:
		panic(fmt.Sprintf("sim: write to read-only register @ %08x", addr))
	}
	panic(fmt.Sprintf("sim: write outside the UART register block @ %08x", addr))
}

func (u *UART) Close() {
}
