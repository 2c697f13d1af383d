package testing

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aristath/resourceplan/internal/modules/capacity"
)

// MockResourceProvider is an in-memory implementation of capacity.ResourceProvider for testing
type MockResourceProvider struct {
	mu          sync.RWMutex
	resources   []capacity.Resource
	allocations []capacity.Allocation
	err         error
	calls       int
}

// NewMockResourceProvider creates a new mock provider
func NewMockResourceProvider() *MockResourceProvider {
	return &MockResourceProvider{}
}

// SetResources sets the resources to return (active and inactive)
func (m *MockResourceProvider) SetResources(resources []capacity.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = resources
}

// SetAllocations sets the allocations to return
func (m *MockResourceProvider) SetAllocations(allocations []capacity.Allocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations = allocations
}

// SetError makes every subsequent call fail with err
func (m *MockResourceProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of provider calls made so far
func (m *MockResourceProvider) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *MockResourceProvider) enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

// ListActiveResources returns active resources ordered by id
func (m *MockResourceProvider) ListActiveResources() ([]capacity.Resource, error) {
	if err := m.enter(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []capacity.Resource
	for _, r := range m.resources {
		if r.Active {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetResourceByID returns a resource regardless of its active flag
func (m *MockResourceProvider) GetResourceByID(id string) (*capacity.Resource, error) {
	if err := m.enter(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.resources {
		if r.ID == id {
			res := r
			return &res, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", capacity.ErrResourceNotFound, id)
}

// ListActiveAllocations returns active allocations belonging to active resources
func (m *MockResourceProvider) ListActiveAllocations() ([]capacity.Allocation, error) {
	if err := m.enter(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := make(map[string]bool, len(m.resources))
	for _, r := range m.resources {
		active[r.ID] = r.Active
	}

	var result []capacity.Allocation
	for _, a := range m.allocations {
		if a.IsActive() && active[a.ResourceID] {
			result = append(result, a)
		}
	}
	return result, nil
}

// ListActiveAllocationsForResource returns the active allocations of one resource
func (m *MockResourceProvider) ListActiveAllocationsForResource(resourceID string) ([]capacity.Allocation, error) {
	if err := m.enter(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []capacity.Allocation
	for _, a := range m.allocations {
		if a.IsActive() && a.ResourceID == resourceID {
			result = append(result, a)
		}
	}
	return result, nil
}

var _ capacity.ResourceProvider = (*MockResourceProvider)(nil)
