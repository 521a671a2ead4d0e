package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type shopSeeder interface {
	SeedShop(ctx context.Context, barbershopID uint) error
}

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	seeder shopSeeder
	log    *zap.Logger

	// emailDomainOK é trocado nos testes para não depender de DNS
	emailDomainOK func(context.Context, string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, seeder shopSeeder, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		db:            db,
		config:        cfg,
		seeder:        seeder,
		log:           log,
		emailDomainOK: validators.NewEmailDomainChecker(nil).Valid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName    string `json:"barbershop_name" binding:"required"`
	BarbershopSlug    string `json:"barbershop_slug" binding:"required,max=100"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomainOK(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	shop := models.Barbershop{
		Name:    req.BarbershopName,
		Slug:    slug,
		Phone:   req.BarbershopPhone,
		Address: req.BarbershopAddress,
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleOwner,
		Active:       true,
	}

	errSlugTaken := errors.New("slug_already_exists")

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlugTaken
		}

		if err := tx.Create(&shop).Error; err != nil {
			return err
		}
		user.BarbershopID = shop.ID
		return tx.Create(&user).Error
	})

	switch {
	case errors.Is(err, errSlugTaken):
		httperr.Conflict(c, "slug_already_exists", "Endereço da barbearia já está em uso.")
		return
	case httperr.IsConflict(err):
		httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
		return
	case err != nil:
		httperr.Internal(c, "failed_to_register", "Erro ao criar conta.")
		return
	}

	if err := h.seeder.SeedShop(ctx, shop.ID); err != nil {
		h.log.Warn("seed shop schedule failed", zap.Uint("barbershop_id", shop.ID), zap.Error(err))
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, user.ID, shop.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.Created(c, sessionResponse(&user, &shop, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Barbershop").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if !user.Active {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, user.ID, user.BarbershopID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.OK(c, sessionResponse(&user, &user.Barbershop, token))
}

func sessionResponse(user *models.User, shop *models.Barbershop, token string) gin.H {
	out := meResponse(user, shop)
	out["token"] = token
	return out
}
