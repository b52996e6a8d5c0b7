package ui

import "sync"

// MockTerminal records everything written to it. It is safe for concurrent
// use, status updates usually arrive from a reporter goroutine.
type MockTerminal struct {
	mu     sync.Mutex
	Output []string
	Errors []string
	Status []string
}

var _ Terminal = &MockTerminal{}

func (m *MockTerminal) Print(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Output = append(m.Output, line)
}

func (m *MockTerminal) Error(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, line)
}

func (m *MockTerminal) SetStatus(lines []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Status = append([]string{}, lines...)
}

func (m *MockTerminal) CanUpdateStatus() bool {
	return true
}

// Lines returns copies of the printed lines and the current status.
func (m *MockTerminal) Lines() (output, status []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.Output...), append([]string{}, m.Status...)
}
