package capacity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ServiceConfig holds the categorization policy.
type ServiceConfig struct {
	Thresholds Thresholds
	Awareness  AwarenessPolicy
}

// Service computes alerts and breakdowns from a ResourceProvider snapshot.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	provider   ResourceProvider
	clock      Clock
	thresholds Thresholds
	awareness  AwarenessPolicy
	log        zerolog.Logger
}

// NewService creates a capacity service. A nil clock means the system clock.
func NewService(provider ResourceProvider, clock Clock, cfg ServiceConfig, log zerolog.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Awareness == "" {
		cfg.Awareness = AwarenessAuto
	}
	return &Service{
		provider:   provider,
		clock:      clock,
		thresholds: cfg.Thresholds,
		awareness:  cfg.Awareness,
		log:        log.With().Str("service", "capacity").Logger(),
	}
}

// Thresholds returns the active categorization policy.
func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// AwarenessPolicy returns the active current-date awareness policy.
func (s *Service) AwarenessPolicy() AwarenessPolicy {
	return s.awareness
}

// AlertsQuery selects the period and resources of an alerts computation.
type AlertsQuery struct {
	StartDate      string
	EndDate        string
	Department     string
	ForwardLooking bool
}

// BreakdownQuery selects the period and bucket size of a breakdown.
type BreakdownQuery struct {
	StartDate      string
	EndDate        string
	PeriodType     string
	ForwardLooking bool
}

func (s *Service) resolve(startDate, endDate string, forwardLooking bool) (Period, error) {
	return ResolvePeriod(startDate, endDate, ResolveOptions{
		Now:            s.clock.Now(),
		Awareness:      s.awareness,
		ForwardLooking: forwardLooking,
	})
}

// ComputeAlerts classifies every active resource for the requested period.
func (s *Service) ComputeAlerts(q AlertsQuery) (*AlertsResponse, error) {
	period, err := s.resolve(q.StartDate, q.EndDate, q.ForwardLooking)
	if err != nil {
		return nil, err
	}

	resources, err := s.provider.ListActiveResources()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list active resources")
		return nil, fmt.Errorf("%w: list active resources: %w", ErrUpstreamUnavailable, err)
	}

	allocations, err := s.provider.ListActiveAllocations()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list active allocations")
		return nil, fmt.Errorf("%w: list active allocations: %w", ErrUpstreamUnavailable, err)
	}

	weeks := period.WeekIDs()
	usage := AggregateAllocations(allocations, weeks)
	department := strings.TrimSpace(q.Department)

	var entries, conflicts []AlertResource
	for _, r := range resources {
		if !r.Active {
			continue
		}
		if department != "" && !strings.EqualFold(strings.TrimSpace(r.Department), department) {
			continue
		}

		u := usage[r.ID]
		entry := s.classify(r, u, period.WeekCount())
		entries = append(entries, entry)

		if u.HasConflict() {
			tagged := entry
			tagged.ProjectIDs = u.ProjectIDs
			tagged.MaxConcurrentProjects = u.MaxConcurrentProjects
			conflicts = append(conflicts, tagged)
		}
	}

	resp := AssembleAlerts(entries, conflicts, period, s.thresholds)

	s.log.Debug().
		Str("start", resp.Period.StartDate).
		Str("end", resp.Period.EndDate).
		Int("weeks", resp.Period.WeekCount).
		Bool("adjusted", resp.Period.Adjusted).
		Int("resources", resp.Summary.ResourceCount).
		Int("total_alerts", resp.Summary.TotalAlerts).
		Msg("Computed capacity alerts")

	return resp, nil
}

func (s *Service) classify(r Resource, u *ResourceUsage, weekCount int) AlertResource {
	allocated := u.Allocated()
	capacity := PeriodCapacity(r, weekCount)
	c := Categorize(allocated, capacity, EffectiveWeeklyCapacity(r), s.thresholds)

	return AlertResource{
		ID:                 r.ID,
		Name:               r.Name,
		Role:               r.Role,
		Department:         r.Department,
		AllocatedHours:     round(allocated, 2),
		CapacityHours:      round(capacity, 2),
		UtilizationPercent: c.UtilizationPercent,
		Saturated:          c.Saturated,
		Category:           c.Category,
	}
}

// ResourceBreakdown returns the bucketed utilization of a single resource.
func (s *Service) ResourceBreakdown(resourceID string, q BreakdownQuery) (*Breakdown, error) {
	bucket, err := ParseBucketType(q.PeriodType)
	if err != nil {
		return nil, err
	}

	period, err := s.resolve(q.StartDate, q.EndDate, q.ForwardLooking)
	if err != nil {
		return nil, err
	}

	resource, err := s.provider.GetResourceByID(resourceID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, err
		}
		s.log.Error().Err(err).Str("resource_id", resourceID).Msg("Failed to get resource")
		return nil, fmt.Errorf("%w: get resource %s: %w", ErrUpstreamUnavailable, resourceID, err)
	}
	if resource == nil {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, resourceID)
	}

	allocations, err := s.provider.ListActiveAllocationsForResource(resourceID)
	if err != nil {
		s.log.Error().Err(err).Str("resource_id", resourceID).Msg("Failed to list resource allocations")
		return nil, fmt.Errorf("%w: list allocations for %s: %w", ErrUpstreamUnavailable, resourceID, err)
	}

	usage := AggregateForResource(resourceID, allocations, period.WeekIDs())
	return BuildBreakdown(*resource, usage, period, bucket), nil
}
