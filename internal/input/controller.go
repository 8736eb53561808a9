// Package input implements controller handling for the NES.
package input

import (
	"os"

	"github.com/rng999/gones/internal/debug"
)

// Button represents NES controller buttons
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Convenience aliases for shorter names used by host frontends.
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Controller represents a single NES controller's shift-register state.
type Controller struct {
	buttons uint8

	shiftRegister uint8
	strobe        bool

	buttonSnapshot uint8
	bitPosition    uint8 // which bit the next Read returns; 0-7 for buttons, 8+ has bit 0 clear

	readCount  uint64
	writeCount uint64
	trace      *debug.Tracer
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{trace: debug.NewTracer(os.Stderr, false)}
}

// SetButton sets the state of a button.
func (c *Controller) SetButton(button Button, pressed bool) {
	old := c.buttons
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
	c.trace.Tracef("input: SetButton button=%d pressed=%t buttons=%#02x->%#02x", uint8(button), pressed, old, c.buttons)
}

// SetButtons sets all button states at once, in NES order: A, B, Select,
// Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	old := c.buttons
	c.buttons = 0
	bits := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(bits[i])
		}
	}
	c.trace.Tracef("input: SetButtons buttons=%#02x->%#02x", old, c.buttons)
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// Write handles writes to the controller strobe register ($4016).
func (c *Controller) Write(value uint8) {
	c.writeCount++
	wasStrobe := c.strobe
	c.strobe = (value & 1) != 0

	switch {
	case c.strobe:
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttons
		c.bitPosition = 0
		c.trace.Tracef("input: strobe on buttons=%#02x", c.buttons)
	case wasStrobe:
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttonSnapshot
		c.bitPosition = 0
		c.trace.Tracef("input: strobe off snapshot=%#02x", c.buttonSnapshot)
	}
}

// Read handles reads from the controller data line ($4016/$4017). Button
// bits shift out LSB-first (button A first) in bit 0, and bit 6 is always
// set, so the 9th and later reads return 0x40.
func (c *Controller) Read() uint8 {
	c.readCount++

	if c.strobe {
		// Strobe held high: every read returns button A as latched by the
		// strobe write.
		c.bitPosition = 0
		return c.buttonSnapshot&1 | 0x40
	}

	if c.bitPosition >= 8 {
		c.bitPosition++
		return 0x40
	}

	result := c.shiftRegister & 1
	c.shiftRegister >>= 1
	c.bitPosition++
	return result | 0x40
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.buttonSnapshot = 0
	c.bitPosition = 0
	c.readCount = 0
	c.writeCount = 0
}

// EnableDebug toggles trace output for this controller to stderr.
func (c *Controller) EnableDebug(enable bool) {
	c.trace.Enabled = enable
}

// GetBitPosition returns the current bit position (for testing)
func (c *Controller) GetBitPosition() uint8 {
	return c.bitPosition
}

// InputState represents the state of both controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// EnableDebug enables trace output for both controllers
func (is *InputState) EnableDebug(enable bool) {
	is.Controller1.EnableDebug(enable)
	is.Controller2.EnableDebug(enable)
}

// SetButtons1 sets all button states for controller 1
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// Read reads from a controller port ($4016 or $4017).
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		// Bit 6 set is open-bus behavior real NES hardware exhibits on this port.
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write writes to the shared controller strobe register ($4016); both
// controllers latch from the same strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
