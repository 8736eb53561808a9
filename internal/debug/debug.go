// Package debug provides the core's only diagnostic surface: a gated trace
// sink for ad hoc progress logging, and a go-spew-backed state-dump hook
// for deep component introspection. Neither is on a cycle-accurate hot
// path; both are no-ops unless a host explicitly enables them.
package debug

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Tracer is a gated fmt.Fprintf sink, the idiom this corpus reaches for in
// place of a structured-logging dependency (no example repo imports one).
// The zero value discards everything, so an unconfigured Tracer costs
// nothing on the hot path.
type Tracer struct {
	Out     io.Writer
	Enabled bool
}

// NewTracer constructs a Tracer writing to out when enabled is true.
func NewTracer(out io.Writer, enabled bool) *Tracer {
	if out == nil {
		out = io.Discard
	}
	return &Tracer{Out: out, Enabled: enabled}
}

// Tracef writes a formatted trace line if the tracer is enabled.
func (t *Tracer) Tracef(format string, args ...any) {
	if t == nil || !t.Enabled {
		return
	}
	fmt.Fprintf(t.Out, format+"\n", args...)
}

// Dump returns a deep, field-by-field rendering of v (including unexported
// fields, via spew's reflection) suitable for attaching to a bug report or
// printing from a debugger REPL. It is read-only: nothing in this package
// ever mutates the value passed to it.
func Dump(v ...any) string {
	return spew.Sdump(v...)
}

// Snapshot bundles references to the pieces of the running system a host
// debugger typically wants to inspect together, so a single Dump call
// prints CPU, PPU, and APU state in one block.
type Snapshot struct {
	CPU any
	PPU any
	APU any
}

func (s Snapshot) String() string {
	return Dump(s.CPU, s.PPU, s.APU)
}
