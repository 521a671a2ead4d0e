package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

const defaultScheduleTTL = 10 * time.Minute

// ScheduleCache guarda a grade semanal resolvida no Redis. Falha do Redis
// nunca impede a consulta: o store de baixo responde.
type ScheduleCache struct {
	next    schedule.Store
	client  *redis.Client
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewScheduleCache(
	next schedule.Store,
	client *redis.Client,
	ttl time.Duration,
	log *zap.Logger,
	m *metrics.Metrics,
) *ScheduleCache {
	if ttl <= 0 {
		ttl = defaultScheduleTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ScheduleCache{next: next, client: client, ttl: ttl, log: log, metrics: m}
}

func scheduleKey(barbershopID, barberID uint) string {
	return fmt.Sprintf("schedule:%d:%d", barbershopID, barberID)
}

func shopPattern(barbershopID uint) string {
	return fmt.Sprintf("schedule:%d:*", barbershopID)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (c *ScheduleCache) ResolveWeekSchedule(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*schedule.WeekSchedule, error) {

	if c.client == nil {
		return c.next.ResolveWeekSchedule(ctx, barbershopID, barberID)
	}

	key := scheduleKey(barbershopID, barberID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var week schedule.WeekSchedule
		if jsonErr := json.Unmarshal(raw, &week); jsonErr == nil {
			c.metrics.ObserveCache(true)
			return &week, nil
		}
		c.log.Warn("discarding unreadable cached schedule", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
	}

	c.metrics.ObserveCache(false)

	week, err := c.next.ResolveWeekSchedule(ctx, barbershopID, barberID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(week); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return week, nil
}

func (c *ScheduleCache) GetShopWeek(ctx context.Context, barbershopID uint) (*schedule.WeekSchedule, error) {
	return c.next.GetShopWeek(ctx, barbershopID)
}

// --------------------------------------------------
// Write (invalida depois de gravar)
// --------------------------------------------------

func (c *ScheduleCache) SaveBarberWeek(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	week schedule.WeekSchedule,
) error {

	if err := c.next.SaveBarberWeek(ctx, barbershopID, barberID, week); err != nil {
		return err
	}
	c.invalidate(ctx, scheduleKey(barbershopID, barberID))
	return nil
}

func (c *ScheduleCache) SaveShopWeek(
	ctx context.Context,
	barbershopID uint,
	week schedule.WeekSchedule,
) error {

	if err := c.next.SaveShopWeek(ctx, barbershopID, week); err != nil {
		return err
	}
	c.invalidateShop(ctx, barbershopID)
	return nil
}

func (c *ScheduleCache) DeleteBarberWeek(ctx context.Context, barbershopID, barberID uint) error {
	if err := c.next.DeleteBarberWeek(ctx, barbershopID, barberID); err != nil {
		return err
	}
	c.invalidate(ctx, scheduleKey(barbershopID, barberID))
	return nil
}

func (c *ScheduleCache) invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("schedule cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateShop apaga as grades de todos os barbeiros da barbearia,
// já que todas herdam o padrão.
func (c *ScheduleCache) invalidateShop(ctx context.Context, barbershopID uint) {
	if c.client == nil {
		return
	}

	pattern := shopPattern(barbershopID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.invalidate(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("schedule cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

var _ schedule.Store = (*ScheduleCache)(nil)
