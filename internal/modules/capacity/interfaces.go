package capacity

// ResourceProvider is the read-only view of the planning store consumed by the engine.
// GetResourceByID must return an error wrapping ErrResourceNotFound for unknown ids;
// any other error is treated as the store being unavailable.
type ResourceProvider interface {
	ListActiveResources() ([]Resource, error)
	GetResourceByID(id string) (*Resource, error)
	ListActiveAllocations() ([]Allocation, error)
	ListActiveAllocationsForResource(resourceID string) ([]Allocation, error)
}
