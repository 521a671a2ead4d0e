package httperr

import "errors"

// Códigos de regra de negócio devolvidos pelos use cases.
const (
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeTooSoon             = "too_soon"
	CodeTooFar              = "too_far"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeProductNotFound     = "product_not_found"
	CodeBarberNotFound      = "barber_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeTimeConflict        = "time_conflict"
	CodeInvalidState        = "invalid_state"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Is compara pelo código, então errors.Is(err, ErrBusiness(CodeTimeConflict)) funciona.
func (e BusinessError) Is(target error) bool {
	t, ok := target.(BusinessError)
	return ok && t.Code == e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	return errors.Is(err, BusinessError{Code: code})
}
