// Package savestate implements the versioned binary save-state record of
// spec.md §6: a snapshot of CPU registers, PPU/APU state, the scheduler's
// clock counters, work RAM, and opaque per-mapper state, encoded with
// encoding/gob, the idiomatic Go choice for versioned structured
// persistence (see DESIGN.md).
package savestate

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/rng999/gones/internal/apu"
	"github.com/rng999/gones/internal/cpu"
	"github.com/rng999/gones/internal/ppu"
	"github.com/rng999/gones/internal/scheduler"
)

// CurrentVersion is bumped whenever Record's shape changes incompatibly.
const CurrentVersion = 1

// ErrVersion is returned by Decode when the record's version is not
// CurrentVersion, per spec.md §7's SaveStateVersion error kind: "refuse
// load" rather than attempt a lossy upgrade.
var ErrVersion = errors.New("savestate: unsupported version")

// Record is the complete persisted state of a running console.
type Record struct {
	Version uint32
	Region  uint8

	CPU       cpu.State
	PPU       ppu.State
	APU       apu.State
	Scheduler scheduler.State

	// WorkRAM is the CPU's internal $0000-$07FF. PRG-RAM and nametable
	// RAM are carried inside the mapper state instead, since they belong
	// to the cartridge, not the CPU's own address space.
	WorkRAM []byte

	// MapperState is the opaque, per-mapper blob produced by
	// cartridge.StateSaver.SaveState, per spec.md §6's
	// "mapper_state (opaque-per-mapper)".
	MapperState []byte

	// BusFloat is the CPU bus's open-bus latch value (spec.md §6's
	// bus_floating field).
	BusFloat uint8
}

// Encode writes r to w as a gob stream prefixed by nothing extra; Version
// lives inside Record itself so Decode can check it before trusting the
// rest of the payload.
func Encode(w io.Writer, r Record) error {
	r.Version = CurrentVersion
	return gob.NewEncoder(w).Encode(r)
}

// Decode reads a Record from r and rejects it outright if its version
// does not match CurrentVersion.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	if err := gob.NewDecoder(r).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("savestate: decode: %w", err)
	}
	if rec.Version != CurrentVersion {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrVersion, rec.Version, CurrentVersion)
	}
	return rec, nil
}

// Marshal is a convenience wrapper returning the encoded bytes directly,
// for hosts that persist to a single file rather than streaming.
func Marshal(r Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal is Decode's byte-slice counterpart.
func Unmarshal(data []byte) (Record, error) {
	return Decode(bytes.NewReader(data))
}
