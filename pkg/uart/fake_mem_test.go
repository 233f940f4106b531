// Copyright 2026 the bonsai-soc Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uart

import (
	"fmt"
	"testing"
)

// fakeMem is a strict expectation-based mmio.Provider: every register access
// must match the next queued operation, in order. Accesses with nothing
// queued fail the test, which is what pins down properties like "RX_DATA is
// never read while RX_VALID is clear".
type op struct {
	write   bool
	address uintptr
	data    uint32
}

type fakeMem struct {
	t   *testing.T
	ops []op
}

func opstr(o *op) string {
	k := "read"
	if o.write {
		k = "write"
	}
	return fmt.Sprintf("{%s @ %08x = %08x}", k, o.address, o.data)
}

func (m *fakeMem) MustRead32(a uintptr) uint32 {
	if len(m.ops) == 0 {
		m.t.Fatalf("Unexpected read on %08x", a)
	}
	o := m.ops[0]
	m.ops = m.ops[1:]
	if o.write || o.address != a {
		m.t.Errorf("Expected %s, got read on %08x", opstr(&o), a)
	}
	return o.data
}

func (m *fakeMem) MustWrite32(a uintptr, d uint32) {
	if len(m.ops) == 0 {
		m.t.Fatalf("Unexpected write of %08x on %08x", d, a)
	}
	o := m.ops[0]
	m.ops = m.ops[1:]
	if !o.write || o.address != a || o.data != d {
		m.t.Errorf("Expected %s, got write of %08x on %08x", opstr(&o), d, a)
	}
}

func (m *fakeMem) ExpectWrite32(a uintptr, d uint32) {
	m.ops = append(m.ops, op{true, a, d})
}

func (m *fakeMem) FakeRead32(a uintptr, d uint32) {
	m.ops = append(m.ops, op{false, a, d})
}

// Done fails the test if queued operations never happened.
func (m *fakeMem) Done() {
	if len(m.ops) != 0 {
		m.t.Errorf("%d expected operations never happened, next %s", len(m.ops), opstr(&m.ops[0]))
	}
}

func (m *fakeMem) Close() {
}

func fakeMemory(t *testing.T) *fakeMem {
	return &fakeMem{t, make([]op, 0)}
}
