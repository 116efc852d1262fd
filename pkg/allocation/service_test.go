package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCompany = company.Company{
	Id:           7,
	Uid:          uuid.NewString(),
	Name:         "Studio North",
	WeekStartDay: allocweek.WeekStartMonday,
}

var ctx = company.WithCompany(context.Background(), testCompany)

var repoStub = NewRepositoryStub()
var settingsStub = NewSettingsReaderStub(allocweek.WeekStartMonday)

func setup(t *testing.T) (Service, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(repoStub, settingsStub, bus)
	return service, bus, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
		settingsStub.StartDay = allocweek.WeekStartMonday
		settingsStub.Err = nil
	}
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("normalizes the input date to the company week start", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		weekKey, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-07", 16)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", weekKey)

		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-07", 1)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"2026-01-05": 16}, hours)
	})

	t.Run("respects a non-monday company configuration", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		settingsStub.StartDay = allocweek.WeekStartSunday

		weekKey, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-07", 8)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-04", weekKey)
	})

	t.Run("saving the same bucket twice updates in place", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)
		// A different day of the same week addresses the same row.
		_, err = service.Save(ctx, 1, 2, resource.KindActive, "2026-01-09", 24)
		require.NoError(t, err)

		assert.Equal(t, 1, repoStub.RowCount())
		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-05", 1)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"2026-01-05": 24}, hours)
	})

	t.Run("zero hours persists an explicit zero instead of deleting", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)
		_, err = service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 0)
		require.NoError(t, err)

		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-05", 1)
		require.NoError(t, err)
		value, ok := hours["2026-01-05"]
		require.True(t, ok, "zero-hour bucket must still exist")
		assert.Equal(t, float64(0), value)
	})

	t.Run("rejects negative hours", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", -1)
		assert.Error(t, err)
		assert.Equal(t, 0, repoStub.RowCount())
	})

	t.Run("publishes a change event after a confirmed save", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		var received []event_bus.AllocationChanged
		unsub := event_bus.SubscribeTyped[event_bus.AllocationChanged](bus, event_bus.TopicAllocationChanged,
			func(e event_bus.EventT[event_bus.AllocationChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		defer unsub()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-07", 16)
		require.NoError(t, err)

		require.Len(t, received, 1)
		assert.Equal(t, "2026-01-05", received[0].WeekKey)
		require.NotNil(t, received[0].Hours)
		assert.Equal(t, float64(16), *received[0].Hours)
		assert.Equal(t, testCompany.Id, received[0].CompanyID)
	})

	t.Run("a failed save publishes nothing and stores nothing", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()
		repoStub.FailNext = errors.New("connection reset")

		events := 0
		unsub := bus.Subscribe(event_bus.TopicAllocationChanged, func(event_bus.Event) error {
			events++
			return nil
		})
		defer unsub()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		assert.Error(t, err)
		assert.Equal(t, 0, events)
		assert.Equal(t, 0, repoStub.RowCount())
	})

	t.Run("propagates a malformed date", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "not-a-date", 16)
		assert.Error(t, err)
	})

	t.Run("requires a company in context", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(context.Background(), 1, 2, resource.KindActive, "2026-01-05", 16)
		assert.ErrorIs(t, err, company.ErrNoCompany)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the bucket and publishes a deletion event", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)

		var received []event_bus.AllocationChanged
		unsub := event_bus.SubscribeTyped[event_bus.AllocationChanged](bus, event_bus.TopicAllocationChanged,
			func(e event_bus.EventT[event_bus.AllocationChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		defer unsub()

		weekKey, err := service.Delete(ctx, 1, 2, resource.KindActive, "2026-01-08")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", weekKey)
		assert.Equal(t, 0, repoStub.RowCount())

		require.Len(t, received, 1)
		assert.Nil(t, received[0].Hours, "deletion event carries nil hours")
	})

	t.Run("deleting an absent bucket is a no-op", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Delete(ctx, 1, 2, resource.KindActive, "2026-01-05")
		assert.NoError(t, err)
	})
}

func TestServiceImpl_Fetch(t *testing.T) {
	t.Run("absent buckets are missing from the map, not errors", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)
		_, err = service.Save(ctx, 1, 2, resource.KindActive, "2026-01-19", 8)
		require.NoError(t, err)

		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-07", 4)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"2026-01-05": 16, "2026-01-19": 8}, hours)
	})

	t.Run("the span is bounded by the query range", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)
		_, err = service.Save(ctx, 1, 2, resource.KindActive, "2026-03-30", 8)
		require.NoError(t, err)

		// 12 weeks from 2026-01-05 end at 2026-03-23; the later row is out.
		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-07", 12)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"2026-01-05": 16}, hours)
	})

	t.Run("different identities never see each other's buckets", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
		require.NoError(t, err)
		_, err = service.Save(ctx, 1, 3, resource.KindActive, "2026-01-05", 4)
		require.NoError(t, err)
		_, err = service.Save(ctx, 1, 2, resource.KindPreRegistered, "2026-01-05", 2)
		require.NoError(t, err)

		hours, err := service.Fetch(ctx, 1, 2, resource.KindActive, "2026-01-05", 1)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"2026-01-05": 16}, hours)
	})
}

func TestServiceImpl_FetchSymmetric(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()

	_, err := service.Save(ctx, 1, 2, resource.KindActive, "2025-12-22", 8)
	require.NoError(t, err)
	_, err = service.Save(ctx, 1, 2, resource.KindActive, "2026-01-12", 16)
	require.NoError(t, err)

	hours, err := service.FetchSymmetric(ctx, 1, 2, resource.KindActive, "2026-01-07", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2025-12-22": 8, "2026-01-12": 16}, hours)
}

func TestServiceImpl_ListForProject(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()

	_, err := service.Save(ctx, 1, 2, resource.KindActive, "2026-01-05", 16)
	require.NoError(t, err)
	_, err = service.Save(ctx, 1, 3, resource.KindPreRegistered, "2026-01-12", 8)
	require.NoError(t, err)
	_, err = service.Save(ctx, 9, 2, resource.KindActive, "2026-01-05", 40)
	require.NoError(t, err)

	allocations, err := service.ListForProject(ctx, 1, "2026-01-05", 12)
	require.NoError(t, err)
	assert.Len(t, allocations, 2)
	for _, a := range allocations {
		assert.Equal(t, 1, a.ProjectId)
		assert.True(t, allocweek.IsValidWeekKey(a.WeekKey, allocweek.WeekStartMonday))
	}
}
