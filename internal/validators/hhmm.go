package validators

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

var registerOnce sync.Once

// Register instala as regras customizadas no validator do gin.
// Pode ser chamado mais de uma vez (main e testes).
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = v.RegisterValidation("hhmm", hhmm)
	})
	return err
}

// hhmm aceita "HH:MM" com dois dígitos (00:00 a 23:59).
func hhmm(fl validator.FieldLevel) bool {
	return IsHHMM(fl.Field().String())
}

func IsHHMM(s string) bool {
	_, err := schedule.ParseHM(s)
	return err == nil
}
