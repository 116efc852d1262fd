package company

import (
	"context"
	"testing"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewRepositoryStub()

func setup(t *testing.T) (Service, func()) {
	service := NewService(repoStub)
	return service, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns a uid and keeps the requested week start day", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		created, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartSunday)
		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, allocweek.WeekStartSunday, created.WeekStartDay)
	})

	t.Run("falls back to monday when no week start day is given", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		created, err := service.Create(context.Background(), "Studio North", "")
		require.NoError(t, err)
		assert.Equal(t, allocweek.WeekStartMonday, created.WeekStartDay)
	})
}

func TestServiceImpl_UpdateWeekStartDay(t *testing.T) {
	t.Run("updates the current company", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		created, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartMonday)
		require.NoError(t, err)
		ctx := WithCompany(context.Background(), created)

		updated, err := service.UpdateWeekStartDay(ctx, allocweek.WeekStartSaturday)
		require.NoError(t, err)
		assert.Equal(t, allocweek.WeekStartSaturday, updated.WeekStartDay)

		stored, err := service.WeekStartDay(context.Background(), created.Id)
		require.NoError(t, err)
		assert.Equal(t, allocweek.WeekStartSaturday, stored)
	})

	t.Run("rejects an unsupported day", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		created, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartMonday)
		require.NoError(t, err)
		ctx := WithCompany(context.Background(), created)

		_, err = service.UpdateWeekStartDay(ctx, "wednesday")
		assert.Error(t, err)
	})

	t.Run("requires a company in the context", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.UpdateWeekStartDay(context.Background(), allocweek.WeekStartSunday)
		assert.ErrorIs(t, err, ErrNoCompany)
	})
}

func TestServiceImpl_WeekStartDay(t *testing.T) {
	t.Run("uses the context company without a repository lookup", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		// Never stored; only reachable through the context fast path.
		ctx := WithCompany(context.Background(), Company{Id: 99, WeekStartDay: allocweek.WeekStartSunday})

		ws, err := service.WeekStartDay(ctx, 99)
		require.NoError(t, err)
		assert.Equal(t, allocweek.WeekStartSunday, ws)
	})

	t.Run("falls back to the repository for other companies", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		created, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartSaturday)
		require.NoError(t, err)

		ws, err := service.WeekStartDay(context.Background(), created.Id)
		require.NoError(t, err)
		assert.Equal(t, allocweek.WeekStartSaturday, ws)
	})

	t.Run("reports an unknown company", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.WeekStartDay(context.Background(), 404)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestServiceImpl_ReferenceData(t *testing.T) {
	t.Run("scopes reference data to the current company", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		first, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartMonday)
		require.NoError(t, err)
		second, err := service.Create(context.Background(), "Studio South", allocweek.WeekStartMonday)
		require.NoError(t, err)
		firstCtx := WithCompany(context.Background(), first)
		secondCtx := WithCompany(context.Background(), second)

		_, err = service.CreateRole(firstCtx, "Architect")
		require.NoError(t, err)
		_, err = service.CreateRole(secondCtx, "Engineer")
		require.NoError(t, err)

		roles, err := service.ListRoles(firstCtx)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, "Architect", roles[0].Name)
	})

	t.Run("creates and deletes leave types", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()
		created, err := service.Create(context.Background(), "Studio North", allocweek.WeekStartMonday)
		require.NoError(t, err)
		ctx := WithCompany(context.Background(), created)

		lt, err := service.CreateLeaveType(ctx, "Annual Leave")
		require.NoError(t, err)
		require.NoError(t, service.DeleteLeaveType(ctx, lt.Id))

		types, err := service.ListLeaveTypes(ctx)
		require.NoError(t, err)
		assert.Empty(t, types)
	})

	t.Run("requires a company in the context", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.ListRoles(context.Background())
		assert.ErrorIs(t, err, ErrNoCompany)
	})
}
