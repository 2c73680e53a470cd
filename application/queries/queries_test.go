package queries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forzeit/application/ports"
	"forzeit/application/queries/bus"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	"forzeit/domain/core/valueobjects"
	domainservices "forzeit/domain/services"
	"forzeit/infrastructure/cache"
	"forzeit/infrastructure/persistence/memory"
	pkgerrors "forzeit/pkg/errors"
)

func newTestStore() *memory.Store {
	data := &memory.Dataset{
		Users: []*entities.User{{ID: "u1"}, {ID: "u2"}},
		Weeks: []*entities.Week{{ID: "w2-1", UserID: "u2", StartISO: "2025-08-25"}},
		Cards: []*entities.Card{
			{ID: "c1", UserID: "u1", WeekID: "w1", Title: "a", Status: valueobjects.CardStatusDone, Minutes: 20},
		},
		Sessions: []*entities.Session{
			{ID: "s1", UserID: "u1", StartedAt: "2025-01-06T09:00:00Z", EndedAt: "2025-01-06T09:45:30Z"},
			{ID: "s2", UserID: "u1", StartedAt: "2025-01-07T10:00:00Z", EndedAt: "2025-01-07T09:00:00Z"},
		},
	}
	// 60 consecutive weeks for u1, w1 being the oldest
	first := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		data.Weeks = append(data.Weeks, &entities.Week{
			ID:       fmt.Sprintf("w%d", i+1),
			UserID:   "u1",
			StartISO: first.AddDate(0, 0, 7*i).Format(time.DateOnly),
		})
	}
	return memory.NewStore(data, zap.NewNop())
}

func newBus(t *testing.T, store *memory.Store) *bus.QueryBus {
	t.Helper()

	engine := domainservices.NewInsightsEngine(zap.NewNop())
	insights := services.NewInsightsService(
		store, store, store,
		cache.NewInsightsCache(cache.New[ports.InsightsKey, entities.AvaInsights]()),
		engine, 0, nil, zap.NewNop(),
	)

	b := bus.NewQueryBus(bus.LoggingMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(GetWeekQuery{}, bus.Handler[GetWeekQuery, *entities.Week](NewGetWeekHandler(store))))
	require.NoError(t, b.Register(ListWeeksQuery{}, bus.Handler[ListWeeksQuery, *ListWeeksResult](NewListWeeksHandler(store))))
	require.NoError(t, b.Register(GetInsightsQuery{}, bus.Handler[GetInsightsQuery, *services.InsightsResult](NewGetInsightsHandler(insights))))
	require.NoError(t, b.Register(ListWeekSessionsQuery{}, bus.Handler[ListWeekSessionsQuery, []SessionDTO](NewListWeekSessionsHandler(store, store, engine))))
	return b
}

func TestGetWeek(t *testing.T) {
	b := newBus(t, newTestStore())
	ctx := context.Background()

	result, err := b.Ask(ctx, GetWeekQuery{WeekID: "w1", Principal: &ports.Principal{ID: "u1"}})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", result.(*entities.Week).StartISO)

	_, err = b.Ask(ctx, GetWeekQuery{WeekID: "w1", Principal: &ports.Principal{ID: "u2"}})
	assert.True(t, pkgerrors.IsForbidden(err))

	_, err = b.Ask(ctx, GetWeekQuery{WeekID: "w1"})
	assert.True(t, pkgerrors.IsUnauthenticated(err))

	_, err = b.Ask(ctx, GetWeekQuery{WeekID: "nope"})
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = b.Ask(ctx, GetWeekQuery{})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestListWeeks_Clamping(t *testing.T) {
	b := newBus(t, newTestStore())
	ctx := context.Background()
	owner := &ports.Principal{ID: "u1"}

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLen    int
		wantLimit  int
		wantOffset int
	}{
		{name: "default", wantLen: 10, wantLimit: 10},
		{name: "explicit", limit: 5, offset: 2, wantLen: 5, wantLimit: 5, wantOffset: 2},
		{name: "capped at 50", limit: 100, wantLen: 50, wantLimit: 50},
		{name: "negative limit", limit: -1, wantLen: 10, wantLimit: 10},
		{name: "negative offset", limit: 3, offset: -4, wantLen: 3, wantLimit: 3},
		{name: "tail", limit: 50, offset: 55, wantLen: 5, wantLimit: 50, wantOffset: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := b.Ask(ctx, ListWeeksQuery{UserID: "u1", Limit: tt.limit, Offset: tt.offset, Principal: owner})
			require.NoError(t, err)

			page := result.(*ListWeeksResult)
			assert.Len(t, page.Weeks, tt.wantLen)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}

	_, err := b.Ask(ctx, ListWeeksQuery{UserID: "u1", Principal: &ports.Principal{ID: "u2"}})
	assert.True(t, pkgerrors.IsForbidden(err))
}

func TestListWeeks_NewestFirst(t *testing.T) {
	b := newBus(t, newTestStore())

	result, err := b.Ask(context.Background(), ListWeeksQuery{UserID: "u1", Limit: 50, Principal: &ports.Principal{ID: "u1"}})
	require.NoError(t, err)

	weeks := result.(*ListWeeksResult).Weeks
	for i := 1; i < len(weeks); i++ {
		assert.GreaterOrEqual(t, weeks[i-1].StartISO, weeks[i].StartISO)
	}
}

func TestListWeekSessions_UsesSharedDurationPolicy(t *testing.T) {
	b := newBus(t, newTestStore())

	result, err := b.Ask(context.Background(), ListWeekSessionsQuery{WeekID: "w1", Principal: &ports.Principal{ID: "u1"}})
	require.NoError(t, err)

	sessions := result.([]SessionDTO)
	require.Len(t, sessions, 2)
	assert.Equal(t, 45, sessions[0].DurationMinutes)
	assert.Equal(t, 0, sessions[1].DurationMinutes, "end before start counts as zero")

	_, err = b.Ask(context.Background(), ListWeekSessionsQuery{WeekID: "w1", Principal: &ports.Principal{ID: "u2"}})
	assert.True(t, pkgerrors.IsForbidden(err))
}

func TestGetInsights_ThroughBus(t *testing.T) {
	b := newBus(t, newTestStore())
	ctx := context.Background()
	owner := &ports.Principal{ID: "u1"}

	result, err := b.Ask(ctx, GetInsightsQuery{WeekID: "w1", Principal: owner})
	require.NoError(t, err)

	first := result.(*services.InsightsResult)
	assert.Equal(t, services.CacheMiss, first.Cache)
	// 1 done card and 45 tracked minutes: 10 + 3.75
	assert.Equal(t, 14, first.Insights.FocusScore)

	result, err = b.Ask(ctx, GetInsightsQuery{WeekID: "w1", Principal: owner})
	require.NoError(t, err)
	assert.Equal(t, services.CacheHit, result.(*services.InsightsResult).Cache)
}

func TestQueryBus_Errors(t *testing.T) {
	b := bus.NewQueryBus()

	_, err := b.Ask(context.Background(), GetWeekQuery{WeekID: "w1"})
	assert.ErrorIs(t, err, bus.ErrHandlerNotFound)

	handler := bus.Handler[GetWeekQuery, *entities.Week](NewGetWeekHandler(newTestStore()))
	require.NoError(t, b.Register(GetWeekQuery{}, handler))
	assert.Error(t, b.Register(GetWeekQuery{}, handler))
}
