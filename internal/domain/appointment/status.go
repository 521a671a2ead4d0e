package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses ocupam horário na agenda do barbeiro.
var ActiveStatuses = []string{
	string(StatusScheduled),
	string(StatusConfirmed),
}

func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// CanConfirm: só agendamentos ainda não confirmados
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
