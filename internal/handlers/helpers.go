package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// --------------------------------------------------
// Contexto autenticado
// --------------------------------------------------

func authIDs(c *gin.Context) (userID uint, barbershopID uint) {
	return c.GetUint(middleware.ContextUserID), c.GetUint(middleware.ContextBarbershopID)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func parseDateInShop(shop *models.Barbershop, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, timezone.Location(shop.Timezone))
}

// --------------------------------------------------
// Erros de use case → HTTP
// --------------------------------------------------

type businessStatus struct {
	status  int
	message string
}

var businessErrors = map[string]businessStatus{
	httperr.CodeInvalidDateOrTime:   {http.StatusBadRequest, "Data ou hora inválida."},
	httperr.CodeTooSoon:             {http.StatusBadRequest, "Horário exige mais antecedência."},
	httperr.CodeTooFar:              {http.StatusBadRequest, "Data além do limite de agendamento."},
	httperr.CodeOutsideWorkingHours: {http.StatusBadRequest, "Fora do horário de atendimento."},
	httperr.CodeProductNotFound:     {http.StatusBadRequest, "Serviço não encontrado."},
	httperr.CodeBarberNotFound:      {http.StatusNotFound, "Barbeiro não encontrado."},
	httperr.CodeAppointmentNotFound: {http.StatusNotFound, "Agendamento não encontrado."},
	httperr.CodeTimeConflict:        {http.StatusConflict, "Conflito de horário."},
	httperr.CodeInvalidState:        {http.StatusConflict, "Ação não permitida no estado atual do agendamento."},
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ucAppointment.ErrLookup) {
		httperr.Unavailable(c, "lookup_failed", "Não foi possível consultar a agenda agora. Tente novamente.")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		if s, ok := businessErrors[be.Code]; ok {
			httperr.Write(c, s.status, be.Code, s.message)
			return
		}
		httperr.BadRequest(c, be.Code, "Requisição inválida.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Erro interno.")
}

func writeBindError(c *gin.Context, err error) {
	httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Dados inválidos.", err.Error())
}
