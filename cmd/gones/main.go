// Package main implements the gones NES emulator executable.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rng999/gones/internal/console"
	"github.com/rng999/gones/internal/graphics"
	"github.com/rng999/gones/internal/input"
	"github.com/rng999/gones/internal/savestate"
	"github.com/rng999/gones/internal/version"
)

func main() {
	cfg, err := console.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("gones: %v", err)
	}

	if cfg.ROMPath == "" {
		printUsage()
		os.Exit(1)
	}

	romData, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		log.Fatalf("gones: reading ROM: %v", err)
	}

	sys, err := console.New(cfg, romData)
	if err != nil {
		log.Fatalf("gones: %v", err)
	}

	if cfg.SaveStatePath != "" {
		if data, err := os.ReadFile(cfg.SaveStatePath); err == nil {
			rec, err := savestate.Unmarshal(data)
			if err != nil {
				log.Fatalf("gones: loading save state: %v", err)
			}
			if err := sys.LoadState(rec); err != nil {
				log.Fatalf("gones: restoring save state: %v", err)
			}
			fmt.Printf("gones: restored save state from %s\n", cfg.SaveStatePath)
		}
	}

	setupGracefulShutdown(sys, cfg)

	backendType := graphics.BackendEbitengine
	if cfg.Headless {
		backendType = graphics.BackendHeadless
	}

	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		log.Fatalf("gones: creating graphics backend: %v", err)
	}
	if err := backend.Initialize(graphics.Config{
		WindowTitle:  "gones",
		WindowWidth:  512,
		WindowHeight: 480,
		VSync:        true,
		Filter:       "nearest",
	}); err != nil {
		log.Fatalf("gones: initializing graphics backend: %v", err)
	}
	defer backend.Cleanup()

	window, err := backend.CreateWindow("gones", 512, 480)
	if err != nil {
		log.Fatalf("gones: creating window: %v", err)
	}
	defer window.Cleanup()

	sys.APU.PushSample = func(sample float32) { window.PushAudioSample(sample) }

	if backend.IsHeadless() {
		runHeadless(sys, window)
		return
	}

	runGUI(sys, window)
}

// runGUI drives the emulator from an ebiten-style real-time game loop:
// each Update call advances the system by the wall-clock delta, and input
// events are translated into controller button state.
func runGUI(sys *console.System, window graphics.Window) {
	ebWindow, ok := graphics.AsEbitengineWindow(window)
	if !ok {
		log.Fatalf("gones: GUI mode requires the ebiten backend")
	}

	ebWindow.SetEmulatorUpdateFunc(func() error {
		for _, ev := range window.PollEvents() {
			applyInputEvent(sys, ev)
		}

		sys.Advance(wallNow())

		frameBuffer := [256 * 240]uint32{}
		copy(frameBuffer[:], sys.PPU.FrameBuffer)
		return window.RenderFrame(frameBuffer)
	})

	fmt.Println("gones: starting")
	if err := ebWindow.Run(); err != nil {
		log.Fatalf("gones: GUI run failed: %v", err)
	}
}

// runHeadless advances a fixed number of frames for ROM-automation and
// CI use, rendering through the headless backend's frame dumps.
func runHeadless(sys *console.System, window graphics.Window) {
	const targetFrames = 120
	for frame := 0; frame < targetFrames; frame++ {
		sys.RunFrame()

		frameBuffer := [256 * 240]uint32{}
		copy(frameBuffer[:], sys.PPU.FrameBuffer)
		if err := window.RenderFrame(frameBuffer); err != nil {
			log.Printf("gones: render frame %d: %v", frame, err)
		}
	}
	fmt.Println("gones: headless run complete")
}

// applyInputEvent maps a host InputEvent to the appropriate controller's
// button state; Button2* events address controller 2.
func applyInputEvent(sys *console.System, ev graphics.InputEvent) {
	if ev.Type != graphics.InputEventTypeButton {
		return
	}
	if button, ok := player1Button(ev.Button); ok {
		sys.Input.Controller1.SetButton(button, ev.Pressed)
		return
	}
	if button, ok := player2Button(ev.Button); ok {
		sys.Input.Controller2.SetButton(button, ev.Pressed)
	}
}

func player1Button(b graphics.Button) (input.Button, bool) {
	switch b {
	case graphics.ButtonA:
		return input.ButtonA, true
	case graphics.ButtonB:
		return input.ButtonB, true
	case graphics.ButtonSelect:
		return input.ButtonSelect, true
	case graphics.ButtonStart:
		return input.ButtonStart, true
	case graphics.ButtonUp:
		return input.ButtonUp, true
	case graphics.ButtonDown:
		return input.ButtonDown, true
	case graphics.ButtonLeft:
		return input.ButtonLeft, true
	case graphics.ButtonRight:
		return input.ButtonRight, true
	default:
		return 0, false
	}
}

func player2Button(b graphics.Button) (input.Button, bool) {
	switch b {
	case graphics.Button2A:
		return input.ButtonA, true
	case graphics.Button2B:
		return input.ButtonB, true
	case graphics.Button2Select:
		return input.ButtonSelect, true
	case graphics.Button2Start:
		return input.ButtonStart, true
	case graphics.Button2Up:
		return input.ButtonUp, true
	case graphics.Button2Down:
		return input.ButtonDown, true
	case graphics.Button2Left:
		return input.ButtonLeft, true
	case graphics.Button2Right:
		return input.ButtonRight, true
	default:
		return 0, false
	}
}

func wallNow() time.Time {
	return time.Now()
}

// setupGracefulShutdown writes a save state to cfg.SaveStatePath (if set)
// on SIGINT/SIGTERM before exiting.
func setupGracefulShutdown(sys *console.System, cfg *console.Config) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		if cfg.SaveStatePath != "" {
			if data, err := savestate.Marshal(sys.SaveState()); err == nil {
				_ = os.WriteFile(cfg.SaveStatePath, data, 0o644)
				fmt.Printf("gones: wrote save state to %s\n", cfg.SaveStatePath)
			}
		}
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("gones - a cycle-accurate NES emulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gones -rom <file> [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -rom <path>             path to an iNES ROM image (required)")
	fmt.Println("  -region <ntsc|pal|dendy> TV region (default ntsc)")
	fmt.Println("  -savestate <path>       path to load/save state from")
	fmt.Println("  -headless               run frame-dump automation instead of the GUI")
	fmt.Println("  -trace                  enable internal trace output to stderr")
	fmt.Println()
	fmt.Println("gones version:", version.Version)
}
