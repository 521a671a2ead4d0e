package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var errDB = errors.New("connection refused")

type fakeRepo struct {
	mu sync.Mutex

	shop     *models.Barbershop
	shopErr  error
	barbers  []models.User
	listErr  error
	products map[uint]*models.BarberProduct

	appointments []models.Appointment
	dayErr       error
	takenErr     error
	createErr    error

	created []*models.Appointment
	updated []*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Barbershop{
			ID:                1,
			Name:              "Navalha",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 60,
			MaxAdvanceDays:    30,
		},
		barbers: []models.User{
			{ID: 10, BarbershopID: 1, Name: "Ana", Active: true},
			{ID: 11, BarbershopID: 1, Name: "Bruno", Active: true},
		},
		products: map[uint]*models.BarberProduct{
			5: {ID: 5, BarbershopID: 1, Name: "Corte", DurationMin: 30, Active: true},
			6: {ID: 6, BarbershopID: 1, Name: "Barba + corte", DurationMin: 90, Active: true},
			7: {ID: 7, BarbershopID: 1, Name: "Antigo", DurationMin: 30, Active: false},
		},
	}
}

func (r *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if r.shopErr != nil {
		return nil, r.shopErr
	}
	return r.shop, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, shopID, barberID uint) (*models.User, error) {
	for _, b := range r.barbers {
		if b.ID == barberID && b.BarbershopID == shopID {
			return &b, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) ListActiveBarbers(_ context.Context, _ uint) ([]models.User, error) {
	return r.barbers, r.listErr
}

func (r *fakeRepo) GetProduct(_ context.Context, _ uint, productID uint) (*models.BarberProduct, error) {
	if p, ok := r.products[productID]; ok {
		return p, nil
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 99, BarbershopID: shopID, Name: name, Phone: phone, Email: email}, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appointments {
		if existing.BarberID == ap.BarberID &&
			existing.StartTime.Before(ap.EndTime) && existing.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	ap.ID = uint(100 + len(r.created))
	r.created = append(r.created, ap)
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointmentForBarber(_ context.Context, id, barberID uint) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == id && r.appointments[i].BarberID == barberID {
			return &r.appointments[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.updated = append(r.updated, ap)
	return nil
}

func (r *fakeRepo) ListActiveAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	if r.dayErr != nil {
		return nil, r.dayErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsSlotTaken(_ context.Context, barberID uint, start time.Time) (bool, error) {
	if r.takenErr != nil {
		return false, r.takenErr
	}
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.StartTime.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// fakeStore devolve a semana padrão, com sobrescritas por barbeiro.
type fakeStore struct {
	weeks map[uint]schedule.WeekSchedule
	err   error
}

func (s *fakeStore) ResolveWeekSchedule(_ context.Context, _ uint, barberID uint) (*schedule.WeekSchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	if w, ok := s.weeks[barberID]; ok {
		return &w, nil
	}
	w := schedule.DefaultWeekSchedule()
	return &w, nil
}

func (s *fakeStore) GetShopWeek(context.Context, uint) (*schedule.WeekSchedule, error) {
	w := schedule.DefaultWeekSchedule()
	return &w, s.err
}

func (s *fakeStore) SaveBarberWeek(context.Context, uint, uint, schedule.WeekSchedule) error {
	return s.err
}

func (s *fakeStore) SaveShopWeek(context.Context, uint, schedule.WeekSchedule) error { return s.err }

func (s *fakeStore) DeleteBarberWeek(context.Context, uint, uint) error { return s.err }

var saoPaulo, _ = time.LoadLocation("America/Sao_Paulo")

// sábado, 17/10/2026 às 10:10 em São Paulo
func fixedNow() time.Time {
	return time.Date(2026, 10, 17, 10, 10, 0, 0, saoPaulo)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, saoPaulo)
}
