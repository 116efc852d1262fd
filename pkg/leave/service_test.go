package leave

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
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
var settingsStub = &settingsReaderStub{startDay: allocweek.WeekStartMonday}

type settingsReaderStub struct {
	startDay allocweek.WeekStartDay
	err      error
}

func (s *settingsReaderStub) WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error) {
	return s.startDay, s.err
}

func setup(t *testing.T) (Service, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(repoStub, settingsStub, bus)
	return service, bus, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
		settingsStub.startDay = allocweek.WeekStartMonday
		settingsStub.err = nil
	}
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("normalizes the input date to the company week start", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		saved, err := service.Save(ctx, 2, 3, "2026-01-07", 8)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", saved.WeekKey)
		assert.Equal(t, testCompany.Id, saved.CompanyId)
	})

	t.Run("saving the same bucket twice updates in place", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 2, 3, "2026-01-05", 8)
		require.NoError(t, err)
		_, err = service.Save(ctx, 2, 3, "2026-01-09", 16)
		require.NoError(t, err)

		assert.Equal(t, 1, repoStub.RowCount())
		entries, err := service.ListForResource(ctx, 2, "2026-01-05", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 16.0, entries[0].Hours)
	})

	t.Run("different leave types in the same week stay separate", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 2, 3, "2026-01-05", 8)
		require.NoError(t, err)
		_, err = service.Save(ctx, 2, 4, "2026-01-05", 16)
		require.NoError(t, err)

		entries, err := service.ListForResource(ctx, 2, "2026-01-05", 1)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("rejects negative hours", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 2, 3, "2026-01-05", -1)
		assert.Error(t, err)
	})

	t.Run("publishes a change event after a successful save", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		var received []event_bus.LeaveChanged
		event_bus.SubscribeTyped[event_bus.LeaveChanged](bus, event_bus.TopicLeaveChanged,
			func(e event_bus.EventT[event_bus.LeaveChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		saved, err := service.Save(ctx, 2, 3, "2026-01-07", 8)
		require.NoError(t, err)

		require.Len(t, received, 1)
		assert.Equal(t, saved.WeekKey, received[0].WeekKey)
		require.NotNil(t, received[0].Hours)
		assert.Equal(t, 8.0, *received[0].Hours)
	})

	t.Run("publishes nothing when the save fails", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()
		repoStub.FailNext = errors.New("connection reset")

		var received []event_bus.LeaveChanged
		event_bus.SubscribeTyped[event_bus.LeaveChanged](bus, event_bus.TopicLeaveChanged,
			func(e event_bus.EventT[event_bus.LeaveChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		_, err := service.Save(ctx, 2, 3, "2026-01-07", 8)
		assert.Error(t, err)
		assert.Empty(t, received)
	})

	t.Run("requires a company in the context", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(context.Background(), 2, 3, "2026-01-05", 8)
		assert.ErrorIs(t, err, company.ErrNoCompany)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the entry and publishes a nil-hours event", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 2, 3, "2026-01-05", 8)
		require.NoError(t, err)

		var received []event_bus.LeaveChanged
		event_bus.SubscribeTyped[event_bus.LeaveChanged](bus, event_bus.TopicLeaveChanged,
			func(e event_bus.EventT[event_bus.LeaveChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		weekKey, err := service.Delete(ctx, 2, 3, "2026-01-08")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", weekKey)
		assert.Equal(t, 0, repoStub.RowCount())

		require.Len(t, received, 1)
		assert.Nil(t, received[0].Hours)
	})
}

func TestServiceImpl_ListForResource(t *testing.T) {
	t.Run("only returns entries inside the requested span", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, 2, 3, "2026-01-05", 8)
		require.NoError(t, err)
		_, err = service.Save(ctx, 2, 3, "2026-02-02", 16)
		require.NoError(t, err)

		entries, err := service.ListForResource(ctx, 2, "2026-01-05", 2)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "2026-01-05", entries[0].WeekKey)
	})
}
