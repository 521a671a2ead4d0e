package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BarberProductHandler cuida dos serviços oferecidos (corte, barba...).
type BarberProductHandler struct {
	db *gorm.DB
}

func NewBarberProductHandler(db *gorm.DB) *BarberProductHandler {
	return &BarberProductHandler{db: db}
}

// --------- Requests ---------

type CreateBarberProductRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	DurationMin int     `json:"duration_min" binding:"required,min=5,max=480"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category" binding:"max=50"`
}

type UpdateBarberProductRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=5,max=480"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,max=50"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberProductHandler) List(c *gin.Context) {
	_, barbershopID := authIDs(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	active := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch active {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
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

	httpresp.List(c, products)
}

func (h *BarberProductHandler) Create(c *gin.Context) {
	_, barbershopID := authIDs(c)

	var req CreateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	product := models.BarberProduct{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       true,
		Category:     strings.ToLower(req.Category),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, product)
}

func (h *BarberProductHandler) Update(c *gin.Context) {
	_, barbershopID := authIDs(c)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var product models.BarberProduct
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviço.")
		return
	}

	var req UpdateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DurationMin != nil {
		product.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar serviço.")
		return
	}

	httpresp.OK(c, product)
}
