package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type scheduleManager interface {
	BarberWeek(ctx context.Context, barbershopID, barberID uint) (*schedule.WeekSchedule, error)
	ShopWeek(ctx context.Context, barbershopID uint) (*schedule.WeekSchedule, error)
	UpdateBarberWeek(ctx context.Context, barbershopID, barberID, actorID uint, week schedule.WeekSchedule) error
	UpdateShopWeek(ctx context.Context, barbershopID, actorID uint, week schedule.WeekSchedule) error
}

type barberLookup interface {
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error)
}

type WorkingHoursHandler struct {
	schedules scheduleManager
	barbers   barberLookup
}

func NewWorkingHoursHandler(schedules scheduleManager, barbers barberLookup) *WorkingHoursHandler {
	return &WorkingHoursHandler{schedules: schedules, barbers: barbers}
}

const defaultStepMinutes = 30

type WorkingDayConfig struct {
	Weekday     *int   `json:"weekday,omitempty" binding:"omitempty,min=0,max=6"`
	Day         string `json:"day,omitempty"`
	IsWorking   bool   `json:"is_working"`
	StartTime   string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime     string `json:"end_time" binding:"omitempty,hhmm"`
	LunchStart  string `json:"lunch_start" binding:"omitempty,hhmm"`
	LunchEnd    string `json:"lunch_end" binding:"omitempty,hhmm"`
	StepMinutes int    `json:"step_minutes" binding:"min=0,max=240"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,len=7,dive"`
}

type WorkingHoursResponse struct {
	Days []WorkingDayConfig `json:"days"`
}

// --------------------------------------------------
// Conversão request <-> domínio
// --------------------------------------------------

// dayOf aceita "weekday" (0 = domingo) ou "day" ("monday"...); com os dois, precisam bater.
func dayOf(d WorkingDayConfig) (time.Weekday, error) {
	switch {
	case d.Day != "":
		wd, err := schedule.ParseWeekdayKey(d.Day)
		if err != nil {
			return 0, err
		}
		if d.Weekday != nil && *d.Weekday != int(wd) {
			return 0, fmt.Errorf("weekday %d does not match day %q", *d.Weekday, d.Day)
		}
		return wd, nil
	case d.Weekday != nil:
		return time.Weekday(*d.Weekday), nil
	default:
		return 0, errors.New("weekday or day is required")
	}
}

func toWeek(days []WorkingDayConfig) (schedule.WeekSchedule, error) {
	var week schedule.WeekSchedule
	var seen [7]bool

	for _, d := range days {
		wd, err := dayOf(d)
		if err != nil {
			return week, err
		}
		if seen[wd] {
			return week, fmt.Errorf("weekday %d repeated", wd)
		}
		seen[wd] = true

		step := d.StepMinutes
		if step == 0 {
			step = defaultStepMinutes
		}

		week.Set(wd, schedule.DaySchedule{
			IsWorking:   d.IsWorking,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			LunchStart:  d.LunchStart,
			LunchEnd:    d.LunchEnd,
			StepMinutes: step,
		})
	}
	return week, nil
}

func fromWeek(week *schedule.WeekSchedule) WorkingHoursResponse {
	out := WorkingHoursResponse{Days: make([]WorkingDayConfig, 0, 7)}
	for i, d := range week {
		weekday := i
		out.Days = append(out.Days, WorkingDayConfig{
			Weekday:     &weekday,
			Day:         schedule.WeekdayKey(time.Weekday(i)),
			IsWorking:   d.IsWorking,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			LunchStart:  d.LunchStart,
			LunchEnd:    d.LunchEnd,
			StepMinutes: d.StepMinutes,
		})
	}
	return out
}

func bindWeek(c *gin.Context) (schedule.WeekSchedule, bool) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_schedule", "Horários inválidos.", err.Error())
		return schedule.WeekSchedule{}, false
	}

	week, err := toWeek(req.Days)
	if err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_schedule", "Horários inválidos.", err.Error())
		return week, false
	}
	return week, true
}

func writeScheduleError(c *gin.Context, err error) {
	if errors.Is(err, ucSchedule.ErrInvalidSchedule) {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_schedule", "Horários inválidos.", err.Error())
		return
	}
	_ = c.Error(err)
	httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
}

// --------------------------------------------------
// Próprio barbeiro
// --------------------------------------------------

func (h *WorkingHoursHandler) GetMine(c *gin.Context) {
	userID, barbershopID := authIDs(c)
	h.getBarber(c, barbershopID, userID)
}

func (h *WorkingHoursHandler) UpdateMine(c *gin.Context) {
	userID, barbershopID := authIDs(c)
	h.updateBarber(c, barbershopID, userID, userID)
}

// --------------------------------------------------
// Dono gerenciando um barbeiro
// --------------------------------------------------

func (h *WorkingHoursHandler) GetBarber(c *gin.Context) {
	_, barbershopID := authIDs(c)

	barberID, ok := h.barberParam(c, barbershopID)
	if !ok {
		return
	}
	h.getBarber(c, barbershopID, barberID)
}

func (h *WorkingHoursHandler) UpdateBarber(c *gin.Context) {
	userID, barbershopID := authIDs(c)

	barberID, ok := h.barberParam(c, barbershopID)
	if !ok {
		return
	}
	h.updateBarber(c, barbershopID, barberID, userID)
}

func (h *WorkingHoursHandler) barberParam(c *gin.Context, barbershopID uint) (uint, bool) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := h.barbers.GetBarber(c.Request.Context(), barbershopID, barberID); err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return 0, false
	}
	return barberID, true
}

func (h *WorkingHoursHandler) getBarber(c *gin.Context, barbershopID, barberID uint) {
	week, err := h.schedules.BarberWeek(c.Request.Context(), barbershopID, barberID)
	if err != nil {
		httperr.Unavailable(c, "lookup_failed", "Não foi possível carregar os horários.")
		return
	}
	c.JSON(http.StatusOK, fromWeek(week))
}

func (h *WorkingHoursHandler) updateBarber(c *gin.Context, barbershopID, barberID, actorID uint) {
	week, ok := bindWeek(c)
	if !ok {
		return
	}

	if err := h.schedules.UpdateBarberWeek(c.Request.Context(), barbershopID, barberID, actorID, week); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWeek(&week))
}

// --------------------------------------------------
// Padrão da barbearia
// --------------------------------------------------

func (h *WorkingHoursHandler) GetShop(c *gin.Context) {
	_, barbershopID := authIDs(c)

	week, err := h.schedules.ShopWeek(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.Unavailable(c, "lookup_failed", "Não foi possível carregar os horários.")
		return
	}
	c.JSON(http.StatusOK, fromWeek(week))
}

func (h *WorkingHoursHandler) UpdateShop(c *gin.Context) {
	userID, barbershopID := authIDs(c)

	week, ok := bindWeek(c)
	if !ok {
		return
	}

	if err := h.schedules.UpdateShopWeek(c.Request.Context(), barbershopID, userID, week); err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWeek(&week))
}
