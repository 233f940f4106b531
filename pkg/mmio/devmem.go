// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

type devMem struct {
	mf *os.File
}

// OpenDevMem returns a Provider backed by /dev/mem. It panics if the device
// cannot be opened, which on the SoC means the kernel was built without it
// or the caller lacks privileges.
func OpenDevMem() Provider {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0600)
	if err != nil {
		panic(err)
	}
	return &devMem{f}
}

// Mapping and unmapping around every access is slow, but the console UART
// moves bytes, not buffers. Revisit if a peripheral with real bandwidth ever
// lands behind this provider.
func (m *devMem) mapPage(address uintptr, prot int) ([]byte, uintptr) {
	ps := uintptr(unix.Getpagesize())
	page := address & ^(ps - 1)
	mem, err := unix.Mmap(int(m.mf.Fd()), int64(page), int(ps), prot, unix.MAP_SHARED)
	if err != nil {
		panic(err)
	}
	return mem, address - page
}

func (m *devMem) MustRead32(address uintptr) uint32 {
	mem, offset := m.mapPage(address, unix.PROT_READ)
	v := *(*uint32)(unsafe.Pointer(&mem[offset]))
	if err := unix.Munmap(mem); err != nil {
		panic(err)
	}
	return v
}

func (m *devMem) MustWrite32(address uintptr, data uint32) {
	mem, offset := m.mapPage(address, unix.PROT_WRITE)
	*(*uint32)(unsafe.Pointer(&mem[offset])) = data
	if err := unix.Munmap(mem); err != nil {
		panic(err)
	}
}

func (m *devMem) Close() {
	m.mf.Close()
}
