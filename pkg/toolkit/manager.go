// Package toolkit hosts the tool registry: named controllers that a
// host application can look up by tool name.
package toolkit

import "sync"

// Tool is anything registrable with the manager. The time slider
// controller registers under "TimeSlider".
type Tool interface {
	// ToolName returns the tool's stable registration name.
	ToolName() string
}

// Manager is a thread-safe registry of tools keyed by tool name.
type Manager struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		tools: make(map[string]Tool),
	}
}

// Add registers a tool under its own name, replacing any previous
// registration with the same name.
func (m *Manager) Add(t Tool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools[t.ToolName()] = t
}

// Find retrieves a tool by name.
func (m *Manager) Find(name string) (Tool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tools[name]
	return t, ok
}

// Remove unregisters a tool by name.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tools, name)
}

// Has checks whether a tool is registered.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tools[name]
	return ok
}

// Names returns the registered tool names.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tools))
	for name := range m.tools {
		names = append(names, name)
	}
	return names
}

// Clear removes every registration.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = make(map[string]Tool)
}
