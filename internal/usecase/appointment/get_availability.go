package appointment

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo        domain.Repository
	schedules   schedule.Store
	metrics     *metrics.Metrics
	log         *zap.Logger
	concurrency int
	now         func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	schedules schedule.Store,
	m *metrics.Metrics,
	log *zap.Logger,
	concurrency int,
) *GetAvailability {
	if log == nil {
		log = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &GetAvailability{
		repo:        repo,
		schedules:   schedules,
		metrics:     m,
		log:         log,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr("load barbershop", err)
	}

	loc := timezone.Location(shop.Timezone)
	now := uc.now().In(loc)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	barbers, err := uc.barbers(ctx, in)
	if err != nil {
		return nil, err
	}

	out := &domain.Availability{
		Date:    date.Format("2006-01-02"),
		Barbers: make([]domain.BarberSlots, len(barbers)),
		Merged:  []string{},
	}

	if !withinHorizon(shop, date, now) {
		for i, b := range barbers {
			out.Barbers[i] = domain.BarberSlots{BarberID: b.ID, Name: b.Name, Slots: []string{}}
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, b := range barbers {
		g.Go(func() error {
			slots, err := uc.slotsFor(gctx, shop.ID, b.ID, date, now, loc)
			if err != nil {
				uc.metrics.ObserveAvailability(metrics.ResultLookupError, 0)
				uc.log.Warn("availability lookup failed",
					zap.Uint("barbershop_id", shop.ID),
					zap.Uint("barber_id", b.ID),
					zap.String("date", out.Date),
					zap.Error(err),
				)
				return err
			}

			uc.metrics.ObserveAvailability(metrics.ResultOK, len(slots))
			out.Barbers[i] = domain.BarberSlots{BarberID: b.ID, Name: b.Name, Slots: slots}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Merged = mergeSlots(out.Barbers)
	return out, nil
}

func (uc *GetAvailability) barbers(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]models.User, error) {

	if in.BarberID != 0 {
		barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return []models.User{*barber}, nil
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr("list barbers", err)
	}
	return barbers, nil
}

func (uc *GetAvailability) slotsFor(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
	now time.Time,
	loc *time.Location,
) ([]string, error) {

	week, err := uc.schedules.ResolveWeekSchedule(ctx, barbershopID, barberID)
	if err != nil {
		return nil, lookupErr("resolve schedule", err)
	}

	appointments, err := uc.repo.ListActiveAppointmentsForDay(
		ctx,
		barberID,
		date,
		date.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, lookupErr("list appointments", err)
	}

	return schedule.GenerateSlots(date, week, now, takenSet(appointments, loc)), nil
}

// withinHorizon: nada antes de hoje, nem além de MaxAdvanceDays (0 = sem limite).
func withinHorizon(shop *models.Barbershop, date, now time.Time) bool {
	today := timezone.StartOfDay(now)
	if date.Before(today) {
		return false
	}
	if shop.MaxAdvanceDays > 0 && date.After(today.AddDate(0, 0, shop.MaxAdvanceDays)) {
		return false
	}
	return true
}

// earliestStart é o primeiro instante reservável respeitando a
// antecedência mínima da barbearia (padrão 120 min).
func earliestStart(shop *models.Barbershop, now time.Time) time.Time {
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}
	return now.Add(time.Duration(minAdvance) * time.Minute)
}

func takenSet(appointments []models.Appointment, loc *time.Location) schedule.TakenSet {
	taken := make(schedule.TakenSet, len(appointments))
	for _, ap := range appointments {
		taken.Add(ap.StartTime.In(loc).Format("15:04"))
	}
	return taken
}

func mergeSlots(barbers []domain.BarberSlots) []string {
	merged := []string{}
	for _, b := range barbers {
		merged = append(merged, b.Slots...)
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}
