// Package console wires the CPU, PPU, APU, cartridge, scheduler, and
// input ports into a single runnable system on top of a bus-slot +
// scheduler design, rather than a monolithic memory/bus object.
package console

import (
	"flag"
	"fmt"

	"github.com/rng999/gones/internal/cartridge"
	"github.com/rng999/gones/internal/cpu"
	"github.com/rng999/gones/internal/scheduler"
)

// Config holds the handful of decisions SPEC_FULL.md §A.4 leaves to a
// host: region, the CPU's unstable-opcode magic constant, whether to run
// headless, and where save states live. Deliberately small: a host
// frontend owns its own window/input preferences, and only passes the
// core the settings that change core behavior.
type Config struct {
	ROMPath       string
	Region        cartridge.Region
	MagicConstant uint8
	SaveStatePath string
	DebugTrace    bool
	Headless      bool
}

// ParseFlags builds a Config from args using the stdlib flag package, the
// same CLI idiom every example repo in the pack uses (none reaches for
// cobra/viper).
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("gones", flag.ContinueOnError)
	rom := fs.String("rom", "", "path to an iNES ROM image")
	region := fs.String("region", "ntsc", "TV region: ntsc, pal, or dendy")
	magic := fs.Uint("unstable-magic", 0xFF, "magic constant ORed into unstable-opcode results (0xFF normal, 0xEE verify mode)")
	statePath := fs.String("savestate", "", "path to load/save state from")
	trace := fs.Bool("trace", false, "enable internal/debug trace output to stderr")
	headless := fs.Bool("headless", false, "run frame-dump automation instead of opening a window")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		ROMPath:       *rom,
		MagicConstant: uint8(*magic),
		SaveStatePath: *statePath,
		DebugTrace:    *trace,
		Headless:      *headless,
	}
	switch *region {
	case "ntsc":
		cfg.Region = cartridge.RegionNTSC
	case "pal":
		cfg.Region = cartridge.RegionPAL
	case "dendy":
		cfg.Region = cartridge.RegionDendy
	default:
		return nil, fmt.Errorf("console: unknown region %q", *region)
	}
	return cfg, nil
}

// cpuConfig converts the host's magic-constant choice into cpu.Config.
func (c *Config) cpuConfig() cpu.Config {
	return cpu.Config{MagicConstant: c.MagicConstant}
}

// schedulerRegion maps the cartridge region to the scheduler's own Region
// type (kept distinct per-package, see internal/scheduler's doc comment).
func schedulerRegion(r cartridge.Region) scheduler.Region {
	switch r {
	case cartridge.RegionPAL:
		return scheduler.PAL
	case cartridge.RegionDendy:
		return scheduler.Dendy
	default:
		return scheduler.NTSC
	}
}
