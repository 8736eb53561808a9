package graphics

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TerminalBackend implements the Backend interface for terminal-based rendering
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow implements the Window interface for terminal rendering,
// driven by a bubbletea program: RenderFrame pushes frameMsg into the
// program, and keystrokes the program's Update receives are buffered onto
// events for PollEvents to drain.
type TerminalWindow struct {
	title   string
	width   int
	height  int
	running bool

	program *tea.Program
	events  *eventQueue
	done    chan struct{}
}

// NewTerminalBackend creates a new terminal graphics backend
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

// Initialize initializes the terminal backend
func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a terminal "window" and starts its bubbletea program
// on a background goroutine.
func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	events := &eventQueue{}
	program := tea.NewProgram(terminalModel{title: title, events: events})

	w := &TerminalWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
		program: program,
		events:  events,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(w.done)
		program.Run()
	}()

	return w, nil
}

// Cleanup releases all terminal resources
func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns false (terminal has basic output)
func (b *TerminalBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *TerminalBackend) GetName() string {
	return "Terminal"
}

// eventQueue buffers InputEvents the bubbletea program's Update collects
// from key messages, for PollEvents (called from the emulator's own update
// loop, not bubbletea's) to drain.
type eventQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

func (q *eventQueue) push(ev InputEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// pushTap queues a press immediately followed by a release: the terminal
// has no key-up message, so every keystroke is treated as one controller tap.
func (q *eventQueue) pushTap(b Button) {
	q.mu.Lock()
	q.events = append(q.events,
		InputEvent{Type: InputEventTypeButton, Button: b, Pressed: true},
		InputEvent{Type: InputEventTypeButton, Button: b, Pressed: false},
	)
	q.mu.Unlock()
}

func (q *eventQueue) drain() []InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// frameMsg carries one rendered NES frame into the bubbletea program.
type frameMsg [256 * 240]uint32

// terminalModel is the bubbletea model backing TerminalWindow.
type terminalModel struct {
	title  string
	frame  [256 * 240]uint32
	events *eventQueue
}

func (m terminalModel) Init() tea.Cmd {
	return nil
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.events.push(InputEvent{Type: InputEventTypeQuit})
			return m, tea.Quit
		case "w":
			m.events.pushTap(ButtonUp)
		case "a":
			m.events.pushTap(ButtonLeft)
		case "s":
			m.events.pushTap(ButtonDown)
		case "d":
			m.events.pushTap(ButtonRight)
		case "j":
			m.events.pushTap(ButtonB)
		case "k":
			m.events.pushTap(ButtonA)
		case "enter":
			m.events.pushTap(ButtonStart)
		case " ":
			m.events.pushTap(ButtonSelect)
		}
	}
	return m, nil
}

// View renders every 8th scanline and every 4th pixel as a block character,
// the same downsample the prior plain-ASCII renderer used, wrapped in a
// lipgloss border with the window title.
func (m terminalModel) View() string {
	var rows []string
	for y := 0; y < 240; y += 8 {
		var row strings.Builder
		for x := 0; x < 256; x += 4 {
			if m.frame[y*256+x] == 0x000000 {
				row.WriteByte(' ')
			} else {
				row.WriteRune('█')
			}
		}
		rows = append(rows, row.String())
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.title, strings.Join(rows, "\n")))
}

// TerminalWindow implementation

// SetTitle sets the window title
func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *TerminalWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true once the bubbletea program has quit
func (w *TerminalWindow) ShouldClose() bool {
	select {
	case <-w.done:
		return true
	default:
		return !w.running
	}
}

// SwapBuffers does nothing for terminal; bubbletea repaints on its own
func (w *TerminalWindow) SwapBuffers() {}

// PollEvents drains the key events the bubbletea program has buffered
func (w *TerminalWindow) PollEvents() []InputEvent {
	return w.events.drain()
}

// RenderFrame pushes the frame buffer into the running bubbletea program
func (w *TerminalWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	w.program.Send(frameMsg(frameBuffer))
	return nil
}

// PushAudioSample is a no-op: the terminal backend has no audio sink.
func (w *TerminalWindow) PushAudioSample(sample float32) {}

// Cleanup stops the bubbletea program and waits for it to exit
func (w *TerminalWindow) Cleanup() error {
	w.running = false
	w.program.Quit()
	<-w.done
	return nil
}
