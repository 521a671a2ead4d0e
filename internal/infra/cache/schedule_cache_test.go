package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

type countingStore struct {
	resolves int
	saves    int
	deletes  int
}

func (s *countingStore) ResolveWeekSchedule(context.Context, uint, uint) (*schedule.WeekSchedule, error) {
	s.resolves++
	w := schedule.DefaultWeekSchedule()
	return &w, nil
}

func (s *countingStore) GetShopWeek(context.Context, uint) (*schedule.WeekSchedule, error) {
	w := schedule.DefaultWeekSchedule()
	return &w, nil
}

func (s *countingStore) SaveBarberWeek(context.Context, uint, uint, schedule.WeekSchedule) error {
	s.saves++
	return nil
}

func (s *countingStore) SaveShopWeek(context.Context, uint, schedule.WeekSchedule) error {
	s.saves++
	return nil
}

func (s *countingStore) DeleteBarberWeek(context.Context, uint, uint) error {
	s.deletes++
	return nil
}

func TestScheduleKeys(t *testing.T) {
	assert.Equal(t, "schedule:3:12", scheduleKey(3, 12))
	assert.Equal(t, "schedule:3:*", shopPattern(3))
}

func TestNilClientPassesThrough(t *testing.T) {
	store := &countingStore{}
	c := NewScheduleCache(store, nil, 0, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		week, err := c.ResolveWeekSchedule(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, schedule.DefaultWeekSchedule(), *week)
	}
	assert.Equal(t, 3, store.resolves)

	require.NoError(t, c.SaveBarberWeek(ctx, 1, 2, schedule.DefaultWeekSchedule()))
	require.NoError(t, c.SaveShopWeek(ctx, 1, schedule.DefaultWeekSchedule()))
	require.NoError(t, c.DeleteBarberWeek(ctx, 1, 2))
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, 1, store.deletes)
}

func TestUnreachableRedisFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	store := &countingStore{}
	c := NewScheduleCache(store, client, time.Minute, zap.NewNop(), nil)
	ctx := context.Background()

	week, err := c.ResolveWeekSchedule(ctx, 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, week)
	assert.Equal(t, 1, store.resolves)

	require.NoError(t, c.SaveShopWeek(ctx, 1, schedule.DefaultWeekSchedule()))
	assert.Equal(t, 1, store.saves)
}

func TestNewRedisDisabled(t *testing.T) {
	client, err := NewRedis(config.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
