package roster

import (
	"github.com/aristath/resourceplan/internal/modules/capacity"
)

// Store composes the resource and allocation repositories into the
// read interface consumed by the capacity engine
type Store struct {
	resources   *ResourceRepository
	allocations *AllocationRepository
}

var _ capacity.ResourceProvider = (*Store)(nil)

// NewStore creates a new planning store
func NewStore(resources *ResourceRepository, allocations *AllocationRepository) *Store {
	return &Store{
		resources:   resources,
		allocations: allocations,
	}
}

// ListActiveResources returns all active resources
func (s *Store) ListActiveResources() ([]capacity.Resource, error) {
	return s.resources.ListActiveResources()
}

// GetResourceByID returns one resource or an error wrapping capacity.ErrResourceNotFound
func (s *Store) GetResourceByID(id string) (*capacity.Resource, error) {
	return s.resources.GetResourceByID(id)
}

// ListActiveAllocations returns the active allocations of active resources
func (s *Store) ListActiveAllocations() ([]capacity.Allocation, error) {
	return s.allocations.ListActiveAllocations()
}

// ListActiveAllocationsForResource returns the active allocations of one resource
func (s *Store) ListActiveAllocationsForResource(resourceID string) ([]capacity.Allocation, error) {
	return s.allocations.ListActiveAllocationsForResource(resourceID)
}
