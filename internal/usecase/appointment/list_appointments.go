package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListAppointments lista a agenda de um barbeiro por dia ou por mês,
// sempre no fuso da barbearia.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	return uc.period(ctx, barbershopID, barberID, func(loc *time.Location) (time.Time, time.Time) {
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	})
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	year int,
	month time.Month,
) ([]dto.AppointmentListDTO, error) {

	return uc.period(ctx, barbershopID, barberID, func(loc *time.Location) (time.Time, time.Time) {
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	})
}

func (uc *ListAppointments) period(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bounds func(*time.Location) (time.Time, time.Time),
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, lookupErr("load barbershop", err)
	}

	loc := timezone.Location(shop.Timezone)
	start, end := bounds(loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, lookupErr("list appointments", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime.In(loc),
			EndTime:     ap.EndTime.In(loc),
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ClientPhone: ap.Client.Phone,
			ProductName: ap.BarberProduct.Name,
		})
	}

	return out, nil
}
