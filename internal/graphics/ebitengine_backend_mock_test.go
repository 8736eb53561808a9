// Package graphics provides tests for the Ebitengine backend without requiring a display
package graphics

import (
	"errors"
	"testing"
)

// MockEbitengineBackend simulates the behavior of EbitengineBackend for testing rendering failures
type MockEbitengineBackend struct {
	initialized     bool
	config          Config
	createWindowErr error
	game           *MockGame
}

type MockGame struct {
	frameBuffer     [256 * 240]uint32
	updateCalled    bool
	renderCalled    bool
	emulatorUpdate  func() error
}

type MockWindow struct {
	backend     *MockEbitengineBackend
	shouldClose bool
	game        *MockGame
	renderError error
}

func (m *MockEbitengineBackend) Initialize(config Config) error {
	if m.initialized {
		return errors.New("backend already initialized")
	}
	m.config = config
	m.initialized = true
	return nil
}

func (m *MockEbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !m.initialized {
		return nil, errors.New("backend not initialized")
	}
	if m.createWindowErr != nil {
		return nil, m.createWindowErr
	}
	
	game := &MockGame{}
	m.game = game
	
	return &MockWindow{
		backend: m,
		game:    game,
	}, nil
}

func (m *MockEbitengineBackend) Cleanup() error {
	m.initialized = false
	return nil
}

func (m *MockEbitengineBackend) IsHeadless() bool {
	return m.config.Headless
}

func (m *MockEbitengineBackend) GetName() string {
	return "MockEbitengine"
}

func (w *MockWindow) SetTitle(title string) {}

func (w *MockWindow) GetSize() (width, height int) {
	return 800, 600
}

func (w *MockWindow) ShouldClose() bool {
	return w.shouldClose
}

func (w *MockWindow) SwapBuffers() {}

func (w *MockWindow) PollEvents() []InputEvent {
	return nil
}

func (w *MockWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	if w.renderError != nil {
		return w.renderError
	}
	if w.game == nil {
		return errors.New("game not initialized")
	}
	
	w.game.frameBuffer = frameBuffer
	w.game.renderCalled = true
	return nil
}

func (w *MockWindow) PushAudioSample(sample float32) {}

func (w *MockWindow) Cleanup() error {
	w.shouldClose = true
	return nil
}

func (g *MockGame) Update() error {
	g.updateCalled = true
	if g.emulatorUpdate != nil {
		return g.emulatorUpdate()
	}
	return nil
}

// TestRenderingPipeline_MockBackend_FailsWithoutRenderCalls tests rendering pipeline failure scenarios
func TestRenderingPipeline_MockBackend_FailsWithoutRenderCalls(t *testing.T) {
	backend := &MockEbitengineBackend{}
	
	// Test 1: Backend not initialized
	_, err := backend.CreateWindow("Test", 800, 600)
	if err == nil {
		t.Fatal("Expected error when creating window on uninitialized backend")
	}
	
	// Test 2: Initialize backend
	config := Config{
		WindowTitle: "Test",
		Headless:    false,
	}
	err = backend.Initialize(config)
	if err != nil {
		t.Fatalf("Backend initialization failed: %v", err)
	}
	
	// Test 3: Create window
	window, err := backend.CreateWindow("Test", 800, 600)
	if err != nil {
		t.Fatalf("Window creation failed: %v", err)
	}
	
	mockWindow := window.(*MockWindow)
	
	// Test 4: Verify no render has been called yet
	if mockWindow.game.renderCalled {
		t.Error("Render should not have been called yet")
	}
	
	// Test 5: Attempt to render frame
	var frameBuffer [256 * 240]uint32
	for i := 0; i < len(frameBuffer); i++ {
		frameBuffer[i] = 0xFF0000FF // Blue (0x??RRGGBB)
	}
	
	err = window.RenderFrame(frameBuffer)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	
	// Test 6: Verify render was called
	if !mockWindow.game.renderCalled {
		t.Error("RenderFrame should have been called")
	}
	
	// Test 7: Verify frame buffer was transferred
	for i := 0; i < 10; i++ {
		expected := frameBuffer[i]
		actual := mockWindow.game.frameBuffer[i]
		if actual != expected {
			t.Errorf("Frame buffer pixel %d: expected 0x%08X, got 0x%08X", i, expected, actual)
		}
	}
}

// TestRenderingPipeline_MockBackend_FailsWithoutEmulatorUpdate tests emulator update failures
func TestRenderingPipeline_MockBackend_FailsWithoutEmulatorUpdate(t *testing.T) {
	backend := &MockEbitengineBackend{}
	
	config := Config{WindowTitle: "Test"}
	err := backend.Initialize(config)
	if err != nil {
		t.Fatalf("Backend initialization failed: %v", err)
	}
	
	window, err := backend.CreateWindow("Test", 800, 600)
	if err != nil {
		t.Fatalf("Window creation failed: %v", err)
	}
	
	mockWindow := window.(*MockWindow)
	
	// Test 1: Update without emulator function (should work)
	err = mockWindow.game.Update()
	if err != nil {
		t.Fatalf("Game update without emulator function should not fail: %v", err)
	}
	
	if !mockWindow.game.updateCalled {
		t.Error("Game update should have been called")
	}
	
	// Test 2: Set emulator update function that fails
	updateCallCount := 0
	mockWindow.game.emulatorUpdate = func() error {
		updateCallCount++
		return errors.New("emulator update failed")
	}
	
	// MockGame.Update passes the emulator's error back to the caller
	err = mockWindow.game.Update()
	if err == nil {
		t.Error("Expected emulator update error to be propagated")
	}
	
	if updateCallCount != 1 {
		t.Errorf("Expected emulator update to be called once, got %d", updateCallCount)
	}
}

// TestRenderingPipeline_MockBackend_FailsWithBrokenWindow tests broken window scenarios
func TestRenderingPipeline_MockBackend_FailsWithBrokenWindow(t *testing.T) {
	// Test with window that has no game
	brokenWindow := &MockWindow{
		game: nil,
	}
	
	var frameBuffer [256 * 240]uint32
	err := brokenWindow.RenderFrame(frameBuffer)
	if err == nil {
		t.Fatal("Expected error when rendering with nil game")
	}
	
	expectedError := "game not initialized"
	if err.Error() != expectedError {
		t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
	}
}

// TestRenderingPipeline_MockBackend_FrameBufferIntegrity tests frame buffer transfer integrity
func TestRenderingPipeline_MockBackend_FrameBufferIntegrity(t *testing.T) {
	backend := &MockEbitengineBackend{}
	
	config := Config{WindowTitle: "Test"}
	err := backend.Initialize(config)
	if err != nil {
		t.Fatalf("Backend initialization failed: %v", err)
	}
	
	window, err := backend.CreateWindow("Test", 800, 600)
	if err != nil {
		t.Fatalf("Window creation failed: %v", err)
	}
	
	mockWindow := window.(*MockWindow)
	
	// Test multiple frame renders with different patterns
	testPatterns := []uint32{
		0xFF0000FF, // Blue (0x??RRGGBB)
		0x00FF00FF, // Magenta
		0x0000FFFF, // Cyan
		0xFFFFFFFF, // White
		0x000000FF, // Blue
	}
	
	for i, pattern := range testPatterns {
		var frameBuffer [256 * 240]uint32
		for j := 0; j < len(frameBuffer); j++ {
			frameBuffer[j] = pattern
		}
		
		err = window.RenderFrame(frameBuffer)
		if err != nil {
			t.Fatalf("Frame %d render failed: %v", i, err)
		}
		
		// Verify frame buffer contains the correct pattern
		for j := 0; j < 100; j++ { // Check first 100 pixels
			if mockWindow.game.frameBuffer[j] != pattern {
				t.Errorf("Frame %d pixel %d: expected 0x%08X, got 0x%08X", 
					i, j, pattern, mockWindow.game.frameBuffer[j])
			}
		}
	}
}

// TestRenderingPipeline_MockBackend_ErrorHandling tests various error conditions
func TestRenderingPipeline_MockBackend_ErrorHandling(t *testing.T) {
	backend := &MockEbitengineBackend{}
	
	// Test creating window with error
	backend.createWindowErr = errors.New("window creation failed")
	
	config := Config{WindowTitle: "Test"}
	err := backend.Initialize(config)
	if err != nil {
		t.Fatalf("Backend initialization failed: %v", err)
	}
	
	_, err = backend.CreateWindow("Test", 800, 600)
	if err == nil {
		t.Fatal("Expected window creation to fail")
	}
	
	// Reset error and create successful window
	backend.createWindowErr = nil
	window, err := backend.CreateWindow("Test", 800, 600)
	if err != nil {
		t.Fatalf("Window creation failed: %v", err)
	}
	
	// Test rendering with error
	mockWindow := window.(*MockWindow)
	mockWindow.renderError = errors.New("render failed")
	
	var frameBuffer [256 * 240]uint32
	err = window.RenderFrame(frameBuffer)
	if err == nil {
		t.Fatal("Expected render to fail")
	}
	
	if err.Error() != "render failed" {
		t.Errorf("Expected error 'render failed', got '%s'", err.Error())
	}
}

// TestRenderingPipeline_VerifyRenderRequirements tests the specific requirements for proper rendering
func TestRenderingPipeline_VerifyRenderRequirements(t *testing.T) {
	// This test defines the exact requirements that must be met for proper rendering
	
	t.Run("Requirement1_BackendMustBeInitialized", func(t *testing.T) {
		backend := &MockEbitengineBackend{}
		
		// Attempt to create window without initialization should fail
		_, err := backend.CreateWindow("Test", 800, 600)
		if err == nil {
			t.Fatal("Creating window without backend initialization should fail")
		}
	})
	
	t.Run("Requirement2_WindowMustBeCreated", func(t *testing.T) {
		backend := &MockEbitengineBackend{}
		config := Config{WindowTitle: "Test"}
		
		err := backend.Initialize(config)
		if err != nil {
			t.Fatalf("Backend initialization failed: %v", err)
		}
		
		// Window creation should succeed after initialization
		window, err := backend.CreateWindow("Test", 800, 600)
		if err != nil {
			t.Fatalf("Window creation should succeed after backend initialization: %v", err)
		}
		
		if window == nil {
			t.Fatal("Window should not be nil")
		}
	})
	
	t.Run("Requirement3_RenderFrameMustBeCalled", func(t *testing.T) {
		backend := &MockEbitengineBackend{}
		config := Config{WindowTitle: "Test"}
		
		err := backend.Initialize(config)
		if err != nil {
			t.Fatalf("Backend initialization failed: %v", err)
		}
		
		window, err := backend.CreateWindow("Test", 800, 600)
		if err != nil {
			t.Fatalf("Window creation failed: %v", err)
		}
		
		mockWindow := window.(*MockWindow)
		
		// Before calling RenderFrame, renderCalled should be false
		if mockWindow.game.renderCalled {
			t.Error("renderCalled should be false before calling RenderFrame")
		}
		
		// Call RenderFrame
		var frameBuffer [256 * 240]uint32
		err = window.RenderFrame(frameBuffer)
		if err != nil {
			t.Fatalf("RenderFrame failed: %v", err)
		}
		
		// After calling RenderFrame, renderCalled should be true
		if !mockWindow.game.renderCalled {
			t.Error("renderCalled should be true after calling RenderFrame")
		}
	})
	
	t.Run("Requirement4_FrameBufferMustBeTransferred", func(t *testing.T) {
		backend := &MockEbitengineBackend{}
		config := Config{WindowTitle: "Test"}
		
		err := backend.Initialize(config)
		if err != nil {
			t.Fatalf("Backend initialization failed: %v", err)
		}
		
		window, err := backend.CreateWindow("Test", 800, 600)
		if err != nil {
			t.Fatalf("Window creation failed: %v", err)
		}
		
		mockWindow := window.(*MockWindow)
		
		// Create unique frame buffer
		var frameBuffer [256 * 240]uint32
		for i := 0; i < len(frameBuffer); i++ {
			frameBuffer[i] = uint32(i) + 0xFF000000 // Unique pattern
		}
		
		// Render frame
		err = window.RenderFrame(frameBuffer)
		if err != nil {
			t.Fatalf("RenderFrame failed: %v", err)
		}
		
		// Verify frame buffer was transferred correctly
		for i := 0; i < len(frameBuffer); i++ {
			expected := frameBuffer[i]
			actual := mockWindow.game.frameBuffer[i]
			if actual != expected {
				t.Errorf("Frame buffer transfer failed at pixel %d: expected 0x%08X, got 0x%08X", 
					i, expected, actual)
				// Only show first few errors
				if i > 5 {
					break
				}
			}
		}
	})
	
	t.Run("Requirement5_EmulatorUpdateMustBeIntegrated", func(t *testing.T) {
		backend := &MockEbitengineBackend{}
		config := Config{WindowTitle: "Test"}
		
		err := backend.Initialize(config)
		if err != nil {
			t.Fatalf("Backend initialization failed: %v", err)
		}
		
		window, err := backend.CreateWindow("Test", 800, 600)
		if err != nil {
			t.Fatalf("Window creation failed: %v", err)
		}
		
		mockWindow := window.(*MockWindow)
		
		// Set up emulator update function
		updateCalled := false
		mockWindow.game.emulatorUpdate = func() error {
			updateCalled = true
			return nil
		}
		
		// Call game update
		err = mockWindow.game.Update()
		if err != nil {
			t.Fatalf("Game update failed: %v", err)
		}
		
		// Verify emulator update was called
		if !updateCalled {
			t.Error("Emulator update function should have been called during game update")
		}
	})
}