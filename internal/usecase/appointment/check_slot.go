package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	ReasonOutsideSchedule = "outside_schedule"
	ReasonTooSoon         = "too_soon"
	ReasonTaken           = "taken"
)

type SlotCheck struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// CheckSlot responde se um horário específico ainda pode ser reservado.
type CheckSlot struct {
	repo      domain.Repository
	schedules schedule.Store
	now       func() time.Time
}

func NewCheckSlot(repo domain.Repository, schedules schedule.Store) *CheckSlot {
	return &CheckSlot{repo: repo, schedules: schedules, now: time.Now}
}

func (uc *CheckSlot) Execute(ctx context.Context, in domain.SlotCheckInput) (*SlotCheck, error) {
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr("load barbershop", err)
	}

	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil || len(in.Time) != 5 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	week, err := uc.schedules.ResolveWeekSchedule(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, lookupErr("resolve schedule", err)
	}

	now := uc.now().In(loc)
	date := timezone.StartOfDay(start)

	if !withinHorizon(shop, date, now) || !schedule.IsSlotAllowed(date, week, now, nil, in.Time) {
		return &SlotCheck{Reason: ReasonOutsideSchedule}, nil
	}
	if start.Before(earliestStart(shop, now)) {
		return &SlotCheck{Reason: ReasonTooSoon}, nil
	}

	taken, err := uc.repo.IsSlotTaken(ctx, in.BarberID, start)
	if err != nil {
		return nil, lookupErr("check slot", err)
	}
	if taken {
		return &SlotCheck{Reason: ReasonTaken}, nil
	}

	return &SlotCheck{Available: true}, nil
}
