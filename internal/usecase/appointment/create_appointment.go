package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const defaultMinAdvanceMinutes = 120

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductID uint

	Date  string
	Time  string
	Notes string

	// ActorID é o usuário do painel que criou; nil = agendamento público
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	schedules schedule.Store
	audit     *audit.Dispatcher
	now       func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	schedules schedule.Store,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		schedules: schedules,
		audit:     audit,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Barbearia e barbeiro
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr("load barbershop", err)
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	// --------------------------------------------------
	// Data / hora no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil || len(in.Time) != 5 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	date := timezone.StartOfDay(start)

	// --------------------------------------------------
	// Antecedência mínima / máxima
	// --------------------------------------------------
	now := uc.now().In(loc)
	if start.Before(earliestStart(shop, now)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}
	if !withinHorizon(shop, date, now) {
		return nil, httperr.ErrBusiness(httperr.CodeTooFar)
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil || !product.Active {
		return nil, httperr.ErrBusiness(httperr.CodeProductNotFound)
	}

	end := start.Add(time.Duration(product.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Grade do barbeiro: horário precisa ser um slot gerado e o
	// serviço inteiro precisa caber no expediente, fora do almoço
	// --------------------------------------------------
	week, err := uc.schedules.ResolveWeekSchedule(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, lookupErr("resolve schedule", err)
	}

	if !schedule.IsSlotAllowed(date, week, now, nil, in.Time) ||
		!schedule.FitsWorkingWindow(date, week, in.Time, product.DurationMin) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		strings.TrimSpace(in.ClientName),
		strings.TrimSpace(in.ClientPhone),
		strings.TrimSpace(in.ClientEmail),
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Criação (conflito verificado dentro da transação)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		ClientID:        client.ID,
		BarberProductID: product.ID,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"barber_id": in.BarberID,
			"start":     start.Format(time.RFC3339),
		},
	})

	return ap, nil
}
