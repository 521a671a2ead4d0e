package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// DEPENDÊNCIAS
////////////////////////////////////////////////////////

type shopResolver interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.User, error)
}

type availabilityService interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) (*domain.Availability, error)
}

type slotChecker interface {
	Execute(ctx context.Context, in domain.SlotCheckInput) (*ucAppointment.SlotCheck, error)
}

type appointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	shops        shopResolver
	availability availabilityService
	slots        slotChecker
	create       appointmentCreator
}

func NewPublicHandler(
	db *gorm.DB,
	shops shopResolver,
	availability availabilityService,
	slots slotChecker,
	create appointmentCreator,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		shops:        shops,
		availability: availability,
		slots:        slots,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required"`      // YYYY-MM-DD
	Time        string `json:"time" binding:"required,hhmm"` // HH:MM
	Notes       string `json:"notes" binding:"max=255"`
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	shop, err := h.shops.GetBarbershopBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// PRODUCTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ? AND active = ?", shop.ID, true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   products,
	})
}

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	barbers, err := h.shops.ListActiveBarbers(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.Unavailable(c, "lookup_failed", "Não foi possível listar os barbeiros.")
		return
	}

	out := make([]dto.BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, dto.BarberDTO{ID: b.ID, Name: b.Name, PhotoURL: b.PhotoURL})
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability: sem barber_id devolve todos os barbeiros e a união dos horários.
func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(id)
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		Date:         date,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// SLOT CHECK
////////////////////////////////////////////////////////

func (h *PublicHandler) CheckSlot(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	out, err := h.slots.Execute(c.Request.Context(), domain.SlotCheckInput{
		BarbershopID: shop.ID,
		BarberID:     uint(barberID),
		Date:         c.Query("date"),
		Time:         c.Query("time"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
