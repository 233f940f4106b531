// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uart drives the Bonsai UART TX/RX peripheral.
//
// Register map (32-bit registers):
//
//	| offset | name     | RW | description            |
//	| ------ | -------- | -- | ---------------------- |
//	| 0x00   | RX_VALID | RO | bit[0] = RX data valid |
//	| 0x04   | RX_DATA  | RO | RX data in bits [7:0]  |
//	| 0x08   | TX_FULL  | RO | bit[0] = TX full       |
//	| 0x0C   | TX_DATA  | WO | TX data in bits [7:0]  |
//
// The peripheral has no fault reporting; the two status bits are the whole
// contract. There is no interrupt line either, so everything here is polled.
package uart

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bonsai-soc/firmware/pkg/mmio"
)

// Register offsets from the peripheral base address.
const (
	regRxValid uintptr = 0x00
	regRxData  uintptr = 0x04
	regTxFull  uintptr = 0x08
	regTxData  uintptr = 0x0c
)

const (
	// Bit 0 is the only defined bit of RX_VALID and TX_FULL. The remaining
	// bits are reserved and must not gate anything.
	statusBit uint32 = 1 << 0
	// The registers are a bus word wide but carry one byte. Bits above
	// [7:0] are undefined and must never leak into the byte stream.
	dataMask uint32 = 0xff
)

var txDropped = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "bonsai",
	Subsystem: "uart",
	Name:      "tx_dropped_bytes",
	Help:      "Bytes discarded by non-blocking sends because the TX path was full",
})

func init() {
	prometheus.MustRegister(txDropped)
}

// UART is one register block. It holds no state beyond its location; all
// observable state lives in the hardware registers.
type UART struct {
	mem  mmio.Provider
	base uintptr
}

func New(mem mmio.Provider, base uintptr) *UART {
	return &UART{mem, base}
}

// TxFull reports whether the transmit path cannot accept another byte.
func (u *UART) TxFull() bool {
	return u.mem.MustRead32(u.base+regTxFull)&statusBit != 0
}

// SendNonblock writes b into the transmit path if there is room. When the
// path is full the byte is dropped and SendNonblock returns false.
func (u *UART) SendNonblock(b byte) bool {
	if u.TxFull() {
		txDropped.Inc()
		return false
	}
	u.mem.MustWrite32(u.base+regTxData, uint32(b))
	return true
}

// Send writes b into the transmit path, spinning on TX_FULL until there is
// room. The wait is unbounded: a stalled consumer stalls the caller forever.
// That is the right trade on the bare platform, which has nothing to yield
// to; callers on a real OS that need a bound should use SendContext.
func (u *UART) Send(b byte) {
	for u.TxFull() {
	}
	u.mem.MustWrite32(u.base+regTxData, uint32(b))
}

// SendContext is Send with the spin replaced by a jittered backoff poll that
// gives up when ctx is done. The byte is not sent if an error is returned.
func (u *UART) SendContext(ctx context.Context, b byte) error {
	p := pollBackoff()
	for u.TxFull() {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Duration()):
		}
	}
	u.mem.MustWrite32(u.base+regTxData, uint32(b))
	return nil
}

// RxValid reports whether a received byte is waiting in RX_DATA.
func (u *UART) RxValid() bool {
	return u.mem.MustRead32(u.base+regRxValid)&statusBit != 0
}

// Recv spins on RX_VALID until a byte is available and returns it, masked to
// bits [7:0]. The wait is unbounded, same as Send.
func (u *UART) Recv() byte {
	for !u.RxValid() {
	}
	return byte(u.mem.MustRead32(u.base+regRxData) & dataMask)
}

// RecvNonblock returns the waiting byte, if any. RX_DATA is not touched
// unless RX_VALID is set, so an empty poll never disturbs peripheral state.
func (u *UART) RecvNonblock() (byte, bool) {
	if !u.RxValid() {
		return 0, false
	}
	return byte(u.mem.MustRead32(u.base+regRxData) & dataMask), true
}

// RecvContext is Recv with a bounded wait.
func (u *UART) RecvContext(ctx context.Context) (byte, error) {
	p := pollBackoff()
	for !u.RxValid() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(p.Duration()):
		}
	}
	return byte(u.mem.MustRead32(u.base+regRxData) & dataMask), nil
}

func pollBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    10 * time.Microsecond,
		Max:    time.Millisecond,
		Factor: 2,
		Jitter: true,
	}
}
