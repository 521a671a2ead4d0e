package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// transition é uma ação de domínio (Confirm, Cancel, Complete).
type transition func(ap *models.Appointment, now time.Time) error

// ChangeStatus aplica uma transição num agendamento do próprio barbeiro.
type ChangeStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	apply  transition
	action string
	now    func() time.Time
}

func newChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	apply transition,
	action string,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		apply:  apply,
		action: action,
		now:    time.Now,
	}
}

func NewConfirmAppointment(repo domain.Repository, audit *audit.Dispatcher) *ChangeStatus {
	return newChangeStatus(repo, audit, domain.Confirm, "appointment_confirmed")
}

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher) *ChangeStatus {
	return newChangeStatus(repo, audit, domain.Cancel, "appointment_cancelled")
}

func NewCompleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *ChangeStatus {
	return newChangeStatus(repo, audit, domain.Complete, "appointment_completed")
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, lookupErr("load barbershop", err)
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil || ap.BarbershopID != barbershopID {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	now := uc.now().In(timezone.Location(shop.Timezone))
	if err := uc.apply(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       uc.action,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
