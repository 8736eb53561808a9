// Package bus implements the NES system bus: a fixed-size address space of
// per-address read/write handler slots, plus the open-bus floating latch.
//
// The outer Read/Write path never branches on the address: every slot is
// pre-bound to a handler (a default RAM/ROM handler, or a component-owned
// closure) at construction or mapper bank-switch time, and Read/Write simply
// indexes the slot and calls it. This is the core performance decision of
// the engine: reconfiguring the bus is O(range) at bind time, never O(1)
// per access with a branch.
package bus

import "fmt"

// ReadFunc services a bus read. It returns the byte that should land on the
// data lines for that address.
type ReadFunc func(addr uint16) uint8

// WriteFunc services a bus write.
type WriteFunc func(addr uint16, val uint8)

// slot is the sole point of polymorphism on the bus: every address has
// exactly one read handler and one write handler bound to it.
type slot struct {
	read  ReadFunc
	write WriteFunc
}

// Bus is a fixed-capacity address space shared by the CPU (64 KiB) or the
// PPU (16 KiB). It owns a backing byte array for the default RAM/ROM
// handlers and the single open-bus floating latch.
type Bus struct {
	slots   []slot
	backing []uint8
	float   uint8
}

// New creates a Bus of the given size, with every slot bound to the default
// backing-storage read/write handler (no mirroring until a component
// rebinds the slot).
func New(size int) *Bus {
	b := &Bus{
		slots:   make([]slot, size),
		backing: make([]uint8, size),
	}
	b.ResetAnalog()
	return b
}

// Size returns the bus's address space size in bytes.
func (b *Bus) Size() int { return len(b.slots) }

// ResetToKnown reinitializes every slot to the default handler and zeroes
// the backing storage and the floating latch. Used on a hard reset.
func (b *Bus) ResetToKnown() {
	b.ResetAnalog()
	for i := range b.backing {
		b.backing[i] = 0
	}
	b.float = 0
}

// ResetAnalog rebinds every slot to the default backing-storage handler but
// leaves the backing storage's contents untouched (an "analog" reset, where
// previous RAM contents linger as real hardware's does).
func (b *Bus) ResetAnalog() {
	for i := range b.slots {
		addr := uint16(i)
		b.slots[i] = slot{
			read:  b.stdRead(addr),
			write: b.stdWrite(addr),
		}
	}
}

// stdRead returns the default read handler for an address: read the backing
// byte at that exact offset.
func (b *Bus) stdRead(addr uint16) ReadFunc {
	return func(uint16) uint8 { return b.backing[addr] }
}

// stdWrite returns the default write handler for an address.
func (b *Bus) stdWrite(addr uint16) WriteFunc {
	return func(_ uint16, val uint8) { b.backing[addr] = val }
}

// NoRead models an open-bus region: the read leaves the floating latch
// untouched by returning it back.
func NoRead(b *Bus) ReadFunc {
	return func(uint16) uint8 { return b.float }
}

// NoWrite models an open-bus region: the write is silently dropped.
func NoWrite() WriteFunc {
	return func(uint16, uint8) {}
}

// Read invokes the slot's read handler, latches the result as the new
// floating bus value, and returns it. Every read always produces a byte;
// open-bus addresses return the latch via NoRead.
func (b *Bus) Read(addr uint16) uint8 {
	v := b.slots[addr].read(addr)
	b.float = v
	return v
}

// Write invokes the slot's write handler. Writes never touch the floating
// latch directly (only reads do, per spec).
func (b *Bus) Write(addr uint16, val uint8) {
	b.slots[addr].write(addr, val)
}

// SetRead rebinds a single slot's read handler. Out-of-range addresses are
// no-ops (defensive; mirrors the source's bounds-checked SetReadFunc).
func (b *Bus) SetRead(addr uint16, fn ReadFunc) {
	if int(addr) >= len(b.slots) {
		return
	}
	b.slots[addr].read = fn
}

// SetWrite rebinds a single slot's write handler.
func (b *Bus) SetWrite(addr uint16, fn WriteFunc) {
	if int(addr) >= len(b.slots) {
		return
	}
	b.slots[addr].write = fn
}

// SetReadRange rebinds every address in [lo, hi) to fn.
func (b *Bus) SetReadRange(lo, hi uint32, fn ReadFunc) {
	for a := lo; a < hi; a++ {
		b.SetRead(uint16(a), fn)
	}
}

// SetWriteRange rebinds every address in [lo, hi) to fn.
func (b *Bus) SetWriteRange(lo, hi uint32, fn WriteFunc) {
	for a := lo; a < hi; a++ {
		b.SetWrite(uint16(a), fn)
	}
}

// Trampoline preserves the handler that was in place before a wrapping
// handler was installed, so the wrapper can chain to it. The original
// reference must remain reachable for as long as the slot points at the
// wrapper — holding the *Trampoline alive is sufficient, since the wrapper
// closure captures it directly.
type Trampoline struct {
	OriginalRead  ReadFunc
	OriginalWrite WriteFunc
}

// InstallReadTrampoline atomically replaces addr's read handler. wrap is
// called once with the previous handler and must return the new one (which
// may call the original to chain, or ignore it to fully replace).
func (b *Bus) InstallReadTrampoline(addr uint16, wrap func(original ReadFunc) ReadFunc) *Trampoline {
	orig := b.slots[addr].read
	b.slots[addr].read = wrap(orig)
	return &Trampoline{OriginalRead: orig}
}

// InstallWriteTrampoline atomically replaces addr's write handler.
func (b *Bus) InstallWriteTrampoline(addr uint16, wrap func(original WriteFunc) WriteFunc) *Trampoline {
	orig := b.slots[addr].write
	b.slots[addr].write = wrap(orig)
	return &Trampoline{OriginalWrite: orig}
}

// CopyToMemory bulk-loads the backing storage directly (used by ROM image
// load); it never invokes slot handlers.
func (b *Bus) CopyToMemory(src []uint8, addr uint16) {
	n := copy(b.backing[addr:], src)
	if n < len(src) {
		panic(fmt.Sprintf("bus: CopyToMemory overruns backing store at %#04x (%d bytes, %d available)", addr, len(src), len(b.backing)-int(addr)))
	}
}

// Peek reads the backing storage directly for debugger use: it never
// invokes handlers and never updates the floating latch.
func (b *Bus) Peek(addr uint16) uint8 {
	return b.backing[addr]
}

// PeekRange returns a copy of the backing storage in [lo, hi), for
// debugger/save-state use.
func (b *Bus) PeekRange(lo, hi uint16) []uint8 {
	out := make([]uint8, hi-lo)
	copy(out, b.backing[lo:hi])
	return out
}

// SetFloat forces the floating latch's value. Used only by JAM/stall paths.
func (b *Bus) SetFloat(val uint8) { b.float = val }

// GetFloat returns the current open-bus floating latch value.
func (b *Bus) GetFloat() uint8 { return b.float }
