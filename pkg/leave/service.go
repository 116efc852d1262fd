package leave

import (
	"context"
	"fmt"

	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	log "github.com/sirupsen/logrus"
)

// SettingsReader resolves the week start day configured for a company.
type SettingsReader interface {
	WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error)
}

type Service interface {
	ListForResource(ctx context.Context, resourceId int, dateInput string, periodWeeks int) ([]LeaveEntry, error)
	// Save books hours of leave for the week containing dateInput, updating
	// in place when the bucket already has an entry for that leave type.
	Save(ctx context.Context, resourceId, leaveTypeId int, dateInput string, hours float64) (LeaveEntry, error)
	Delete(ctx context.Context, resourceId, leaveTypeId int, dateInput string) (string, error)
}

type ServiceImpl struct {
	repo     Repository
	settings SettingsReader
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, settings SettingsReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, settings: settings, eventBus: eventBus}
}

func (s *ServiceImpl) ListForResource(ctx context.Context, resourceId int, dateInput string, periodWeeks int) ([]LeaveEntry, error) {
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
	entries, err := s.repo.ListForResource(ctx, companyId, resourceId, startKey, endKey)
	if err != nil {
		log.Errorf("failed to list leave for resource %d: %v", resourceId, err)
		return nil, fmt.Errorf("failed to list leave entries: %w", err)
	}
	return entries, nil
}

func (s *ServiceImpl) Save(ctx context.Context, resourceId, leaveTypeId int, dateInput string, hours float64) (LeaveEntry, error) {
	if hours < 0 {
		return LeaveEntry{}, fmt.Errorf("hours must not be negative")
	}
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return LeaveEntry{}, err
	}
	ws, err := s.settings.WeekStartDay(ctx, companyId)
	if err != nil {
		return LeaveEntry{}, fmt.Errorf("failed to resolve week start day: %w", err)
	}
	weekKey, err := allocweek.NormalizeKeyToWeekStart(dateInput, ws)
	if err != nil {
		return LeaveEntry{}, err
	}
	allocweek.AssertIsWeekStart(weekKey, ws, "leave save")

	saved, err := s.repo.Upsert(ctx, LeaveEntry{
		CompanyId:   companyId,
		ResourceId:  resourceId,
		LeaveTypeId: leaveTypeId,
		WeekKey:     weekKey,
		Hours:       hours,
	})
	if err != nil {
		log.Errorf("failed to save leave %s for resource %d: %v", weekKey, resourceId, err)
		return LeaveEntry{}, fmt.Errorf("failed to save leave entry: %w", err)
	}

	s.publishChange(ctx, saved, &saved.Hours)
	return saved, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, resourceId, leaveTypeId int, dateInput string) (string, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return "", err
	}
	ws, err := s.settings.WeekStartDay(ctx, companyId)
	if err != nil {
		return "", fmt.Errorf("failed to resolve week start day: %w", err)
	}
	weekKey, err := allocweek.NormalizeKeyToWeekStart(dateInput, ws)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, companyId, resourceId, leaveTypeId, weekKey); err != nil {
		log.Errorf("failed to delete leave %s for resource %d: %v", weekKey, resourceId, err)
		return "", fmt.Errorf("failed to delete leave entry: %w", err)
	}

	s.publishChange(ctx, LeaveEntry{
		CompanyId:   companyId,
		ResourceId:  resourceId,
		LeaveTypeId: leaveTypeId,
		WeekKey:     weekKey,
	}, nil)
	return weekKey, nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, entry LeaveEntry, hours *float64) {
	event := event_bus.NewEvent(ctx, event_bus.TopicLeaveChanged, event_bus.LeaveChanged{
		CompanyID:   entry.CompanyId,
		ResourceID:  entry.ResourceId,
		LeaveTypeID: entry.LeaveTypeId,
		WeekKey:     entry.WeekKey,
		Hours:       hours,
	})
	if err := s.eventBus.Publish(event); err != nil {
		log.Errorf("failed to publish leave change for week %s: %v", entry.WeekKey, err)
	}
}
