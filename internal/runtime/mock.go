package runtime

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
)

// MockRuntime is a mock implementation of Runtime for testing
type MockRuntime struct {
	mu sync.RWMutex

	// Containers tracks the state of mock containers
	Containers map[string]*Info

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Containers: make(map[string]*Info),
		Errors:     make(map[string]error),
		CallLog:    make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddContainer adds a container to the mock
func (m *MockRuntime) AddContainer(name string, status Status, addrs ...netip.Addr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers[name] = &Info{
		Name:      name,
		Status:    status,
		Addresses: addrs,
	}
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// Create creates a new container
func (m *MockRuntime) Create(ctx context.Context, name string, opts CreateOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create", name, opts)

	if err := m.Errors["Create"]; err != nil {
		return err
	}
	if _, exists := m.Containers[name]; exists {
		return fmt.Errorf("container %s already exists", name)
	}
	m.Containers[name] = &Info{Name: name, Status: StatusStopped}
	return nil
}

// Start starts an existing container
func (m *MockRuntime) Start(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", name)

	if err := m.Errors["Start"]; err != nil {
		return err
	}
	info, exists := m.Containers[name]
	if !exists {
		return fmt.Errorf("container %s does not exist", name)
	}
	info.Status = StatusRunning
	return nil
}

// Stop stops a running container
func (m *MockRuntime) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err := m.Errors["Stop"]; err != nil {
		return err
	}
	info, exists := m.Containers[name]
	if !exists {
		return fmt.Errorf("container %s does not exist", name)
	}
	info.Status = StatusStopped
	return nil
}

// Destroy removes a container
func (m *MockRuntime) Destroy(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Destroy", name)

	if err := m.Errors["Destroy"]; err != nil {
		return err
	}
	delete(m.Containers, name)
	return nil
}

// State returns the current status of a container
func (m *MockRuntime) State(ctx context.Context, name string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.Errors["State"]; err != nil {
		return StatusUnknown, err
	}
	info, exists := m.Containers[name]
	if !exists {
		return StatusNotFound, nil
	}
	return info.Status, nil
}

// Addresses returns the container's IP addresses
func (m *MockRuntime) Addresses(ctx context.Context, name string) ([]netip.Addr, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.Errors["Addresses"]; err != nil {
		return nil, err
	}
	info, exists := m.Containers[name]
	if !exists {
		return nil, fmt.Errorf("container %s does not exist", name)
	}
	return info.Addresses, nil
}

// List returns the names of all containers
func (m *MockRuntime) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.Errors["List"]; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.Containers))
	for name := range m.Containers {
		names = append(names, name)
	}
	return names, nil
}

var _ Runtime = (*MockRuntime)(nil)
