package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// DEPENDÊNCIAS
// ======================================================

type statusChanger interface {
	Execute(ctx context.Context, barbershopID, barberID, appointmentID uint) (*models.Appointment, error)
}

type appointmentLister interface {
	ByDate(ctx context.Context, barbershopID, barberID uint, date time.Time) ([]dto.AppointmentListDTO, error)
	ByMonth(ctx context.Context, barbershopID, barberID uint, year int, month time.Month) ([]dto.AppointmentListDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   appointmentCreator
	confirm  statusChanger
	cancel   statusChanger
	complete statusChanger
	list     appointmentLister
}

func NewAppointmentHandler(
	create appointmentCreator,
	confirm statusChanger,
	cancel statusChanger,
	complete statusChanger,
	list appointmentLister,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE (barbeiro agenda para si mesmo)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, barbershopID := authIDs(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorID:      &barberID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, barbershopID := authIDs(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.list.ByDate(c.Request.Context(), barbershopID, barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, barbershopID := authIDs(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.list.ByMonth(c.Request.Context(), barbershopID, barberID, year, time.Month(month))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// CONFIRM / CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.changeStatus(c, h.confirm) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.changeStatus(c, h.cancel) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.changeStatus(c, h.complete) }

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc statusChanger) {
	barberID, barbershopID := authIDs(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
