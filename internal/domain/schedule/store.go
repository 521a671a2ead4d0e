package schedule

import "context"

// Store é a fronteira de persistência dos expedientes.
type Store interface {
	// ResolveWeekSchedule devolve o expediente mais específico para
	// (barbearia, barbeiro): dia do barbeiro, senão padrão da barbearia,
	// senão DefaultWeekSchedule.
	ResolveWeekSchedule(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*WeekSchedule, error)

	GetShopWeek(
		ctx context.Context,
		barbershopID uint,
	) (*WeekSchedule, error)

	SaveBarberWeek(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		week WeekSchedule,
	) error

	SaveShopWeek(
		ctx context.Context,
		barbershopID uint,
		week WeekSchedule,
	) error

	DeleteBarberWeek(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) error
}
