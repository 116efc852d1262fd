package allocation

import (
	"context"
	"fmt"

	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
	log "github.com/sirupsen/logrus"
)

// SettingsReader resolves the week start day configured for a company. The
// company service implements it; the indirection keeps this package off the
// company package's full surface.
type SettingsReader interface {
	WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error)
}

type Service interface {
	// Fetch returns the WeekKey to hours map for one identity over a span of
	// periodWeeks buckets starting at the week containing dateInput.
	Fetch(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, periodWeeks int) (map[string]float64, error)
	// FetchSymmetric is Fetch over a span reaching weeksBack buckets before
	// and weeksForward after the week containing dateInput.
	FetchSymmetric(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, weeksBack, weeksForward int) (map[string]float64, error)
	// Save normalizes dateInput to its WeekKey and writes hours for that
	// bucket, updating in place when the bucket already has a row. Saving
	// zero hours persists an explicit zero; it does not delete.
	Save(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, hours float64) (string, error)
	// Delete normalizes dateInput and removes that bucket's row. Absent rows
	// are a no-op.
	Delete(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string) (string, error)
	// ListForProject returns all allocations of a project over the span, for
	// the planning grid.
	ListForProject(ctx context.Context, projectId int, dateInput string, periodWeeks int) ([]Allocation, error)
	// Track opens a live tracker for one identity: it subscribes to the
	// change feed first, then loads the snapshot, so no concurrent write in
	// the gap is lost. The caller must Close the tracker.
	Track(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, periodWeeks int) (*Tracker, error)
}

type ServiceImpl struct {
	repo     Repository
	settings SettingsReader
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, settings SettingsReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, settings: settings, eventBus: eventBus}
}

// identityAndWeekStart resolves the tenant scope and its configured week
// start for the current request.
func (s *ServiceImpl) identityAndWeekStart(ctx context.Context, projectId, resourceId int, kind resource.Kind) (Identity, allocweek.WeekStartDay, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Identity{}, "", err
	}
	ws, err := s.settings.WeekStartDay(ctx, companyId)
	if err != nil {
		return Identity{}, "", fmt.Errorf("failed to resolve week start day: %w", err)
	}
	identity := Identity{
		CompanyId:    companyId,
		ProjectId:    projectId,
		ResourceId:   resourceId,
		ResourceKind: kind,
	}
	return identity, ws, nil
}

func (s *ServiceImpl) Fetch(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, periodWeeks int) (map[string]float64, error) {
	identity, ws, err := s.identityAndWeekStart(ctx, projectId, resourceId, kind)
	if err != nil {
		return nil, err
	}
	startKey, endKey, err := allocweek.QueryRange(dateInput, periodWeeks, ws)
	if err != nil {
		return nil, err
	}
	hours, err := s.repo.WeekHours(ctx, identity, startKey, endKey)
	if err != nil {
		log.Errorf("failed to fetch allocations for project %d resource %d: %v", projectId, resourceId, err)
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	return hours, nil
}

func (s *ServiceImpl) FetchSymmetric(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, weeksBack, weeksForward int) (map[string]float64, error) {
	identity, ws, err := s.identityAndWeekStart(ctx, projectId, resourceId, kind)
	if err != nil {
		return nil, err
	}
	startKey, endKey, err := allocweek.QueryRangeSymmetric(dateInput, weeksBack, weeksForward, ws)
	if err != nil {
		return nil, err
	}
	hours, err := s.repo.WeekHours(ctx, identity, startKey, endKey)
	if err != nil {
		log.Errorf("failed to fetch allocations for project %d resource %d: %v", projectId, resourceId, err)
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	return hours, nil
}

func (s *ServiceImpl) Save(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, hours float64) (string, error) {
	if hours < 0 {
		return "", fmt.Errorf("hours must not be negative")
	}
	identity, ws, err := s.identityAndWeekStart(ctx, projectId, resourceId, kind)
	if err != nil {
		return "", err
	}
	weekKey, err := allocweek.NormalizeKeyToWeekStart(dateInput, ws)
	if err != nil {
		return "", err
	}
	allocweek.AssertIsWeekStart(weekKey, ws, "allocation save")

	saved, err := s.repo.Upsert(ctx, Allocation{
		CompanyId:    identity.CompanyId,
		ProjectId:    identity.ProjectId,
		ResourceId:   identity.ResourceId,
		ResourceKind: identity.ResourceKind,
		WeekKey:      weekKey,
		Hours:        hours,
	})
	if err != nil {
		log.Errorf("failed to save allocation %s for project %d resource %d: %v", weekKey, projectId, resourceId, err)
		return "", fmt.Errorf("failed to save allocation: %w", err)
	}

	s.publishChange(ctx, identity, saved.WeekKey, &saved.Hours)
	return saved.WeekKey, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string) (string, error) {
	identity, ws, err := s.identityAndWeekStart(ctx, projectId, resourceId, kind)
	if err != nil {
		return "", err
	}
	weekKey, err := allocweek.NormalizeKeyToWeekStart(dateInput, ws)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, identity, weekKey); err != nil {
		log.Errorf("failed to delete allocation %s for project %d resource %d: %v", weekKey, projectId, resourceId, err)
		return "", fmt.Errorf("failed to delete allocation: %w", err)
	}

	s.publishChange(ctx, identity, weekKey, nil)
	return weekKey, nil
}

func (s *ServiceImpl) ListForProject(ctx context.Context, projectId int, dateInput string, periodWeeks int) ([]Allocation, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	ws, err := s.settings.WeekStartDay(ctx, companyId)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve week start day: %w", err)
	}
	startKey, endKey, err := allocweek.QueryRange(dateInput, periodWeeks, ws)
	if err != nil {
		return nil, err
	}
	allocations, err := s.repo.ListForProject(ctx, companyId, projectId, startKey, endKey)
	if err != nil {
		log.Errorf("failed to list allocations for project %d: %v", projectId, err)
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

func (s *ServiceImpl) Track(ctx context.Context, projectId, resourceId int, kind resource.Kind, dateInput string, periodWeeks int) (*Tracker, error) {
	identity, ws, err := s.identityAndWeekStart(ctx, projectId, resourceId, kind)
	if err != nil {
		return nil, err
	}
	startKey, endKey, err := allocweek.QueryRange(dateInput, periodWeeks, ws)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(s.eventBus, identity)
	if err := tracker.Load(ctx, func(ctx context.Context) (map[string]float64, error) {
		return s.repo.WeekHours(ctx, identity, startKey, endKey)
	}); err != nil {
		tracker.Close()
		return nil, fmt.Errorf("failed to load allocation tracker: %w", err)
	}
	return tracker, nil
}

// publishChange emits the confirmed write on the change feed. Publish errors
// only mean some consumer failed to apply the event; the write itself stands,
// so they are logged and not surfaced.
func (s *ServiceImpl) publishChange(ctx context.Context, identity Identity, weekKey string, hours *float64) {
	event := event_bus.NewEvent(ctx, event_bus.TopicAllocationChanged, event_bus.AllocationChanged{
		CompanyID:    identity.CompanyId,
		ProjectID:    identity.ProjectId,
		ResourceID:   identity.ResourceId,
		ResourceKind: string(identity.ResourceKind),
		WeekKey:      weekKey,
		Hours:        hours,
	})
	if err := s.eventBus.Publish(event); err != nil {
		log.Errorf("failed to publish allocation change for week %s: %v", weekKey, err)
	}
}
