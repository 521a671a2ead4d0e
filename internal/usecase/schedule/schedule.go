package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// ErrInvalidSchedule envolve qualquer falha de validação de uma semana.
var ErrInvalidSchedule = errors.New("invalid_schedule")

// Manager lê e grava as grades semanais (por barbeiro e padrão da barbearia).
type Manager struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewManager(store domain.Store, audit *audit.Dispatcher) *Manager {
	return &Manager{store: store, audit: audit}
}

// BarberWeek devolve a grade efetiva do barbeiro, já com o fallback aplicado.
func (m *Manager) BarberWeek(ctx context.Context, barbershopID, barberID uint) (*domain.WeekSchedule, error) {
	return m.store.ResolveWeekSchedule(ctx, barbershopID, barberID)
}

func (m *Manager) ShopWeek(ctx context.Context, barbershopID uint) (*domain.WeekSchedule, error) {
	return m.store.GetShopWeek(ctx, barbershopID)
}

func (m *Manager) UpdateBarberWeek(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	actorID uint,
	week domain.WeekSchedule,
) error {

	if err := week.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	if err := m.store.SaveBarberWeek(ctx, barbershopID, barberID, week); err != nil {
		return err
	}

	m.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorID,
		Action:       "working_hours_updated",
		Entity:       "barber",
		EntityID:     &barberID,
	})
	return nil
}

func (m *Manager) UpdateShopWeek(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	week domain.WeekSchedule,
) error {

	if err := week.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	if err := m.store.SaveShopWeek(ctx, barbershopID, week); err != nil {
		return err
	}

	m.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorID,
		Action:       "shop_working_hours_updated",
		Entity:       "barbershop",
		EntityID:     &barbershopID,
	})
	return nil
}

// SeedBarber copia o padrão da barbearia para um barbeiro recém-criado.
func (m *Manager) SeedBarber(ctx context.Context, barbershopID, barberID uint) error {
	week, err := m.store.GetShopWeek(ctx, barbershopID)
	if err != nil {
		return err
	}
	return m.store.SaveBarberWeek(ctx, barbershopID, barberID, *week)
}

// SeedShop grava a semana padrão para uma barbearia nova.
func (m *Manager) SeedShop(ctx context.Context, barbershopID uint) error {
	return m.store.SaveShopWeek(ctx, barbershopID, domain.DefaultWeekSchedule())
}

func (m *Manager) RemoveBarber(ctx context.Context, barbershopID, barberID uint) error {
	return m.store.DeleteBarberWeek(ctx, barbershopID, barberID)
}
