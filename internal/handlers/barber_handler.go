package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/imaging"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

const maxPhotoBytes = 5 << 20

type barberScheduler interface {
	SeedBarber(ctx context.Context, barbershopID, barberID uint) error
	RemoveBarber(ctx context.Context, barbershopID, barberID uint) error
}

// BarberHandler: equipe da barbearia, gerenciada pelo dono.
type BarberHandler struct {
	db        *gorm.DB
	schedules barberScheduler
	photos    storage.ObjectStore
	audit     *audit.Dispatcher
	log       *zap.Logger
}

func NewBarberHandler(
	db *gorm.DB,
	schedules barberScheduler,
	photos storage.ObjectStore,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *BarberHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BarberHandler{db: db, schedules: schedules, photos: photos, audit: audit, log: log}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"max=20"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	_, barbershopID := authIDs(c)

	var barbers []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	ownerID, barbershopID := authIDs(c)
	ctx := c.Request.Context()

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	barber := models.User{
		BarbershopID: barbershopID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleBarber,
		Active:       true,
	}

	if err := h.db.WithContext(ctx).Create(&barber).Error; err != nil {
		if httperr.IsConflict(err) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	// sem semana própria o barbeiro herda o padrão da barbearia, então
	// falhar aqui não invalida o cadastro
	if err := h.schedules.SeedBarber(ctx, barbershopID, barber.ID); err != nil {
		h.log.Warn("seed barber schedule failed",
			zap.Uint("barbershop_id", barbershopID),
			zap.Uint("barber_id", barber.ID),
			zap.Error(err),
		)
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &ownerID,
		Action:       "barber_created",
		Entity:       "user",
		EntityID:     &barber.ID,
	})

	httpresp.Created(c, barber)
}

func (h *BarberHandler) find(c *gin.Context) (*models.User, bool) {
	_, barbershopID := authIDs(c)

	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}

	var barber models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&barber).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return nil, false
	}
	return &barber, true
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao salvar barbeiro.")
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	ownerID, barbershopID := authIDs(c)
	ctx := c.Request.Context()

	barber, ok := h.find(c)
	if !ok {
		return
	}

	if barber.ID == ownerID {
		httperr.BadRequest(c, "cannot_delete_self", "Não é possível remover o próprio usuário.")
		return
	}

	var active int64
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND status IN ?", barber.ID, domain.ActiveStatuses).
		Count(&active).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}
	if active > 0 {
		httperr.Conflict(c, "barber_has_appointments", "Barbeiro possui agendamentos ativos.")
		return
	}

	// usuário primeiro: se falhar, a grade própria do barbeiro continua intacta
	if err := h.db.WithContext(ctx).Delete(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}

	// linhas órfãs de working_hours não afetam ninguém; só registramos
	if err := h.schedules.RemoveBarber(ctx, barbershopID, barber.ID); err != nil {
		h.log.Warn("remove barber schedule failed",
			zap.Uint("barbershop_id", barbershopID),
			zap.Uint("barber_id", barber.ID),
			zap.Error(err),
		)
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &ownerID,
		Action:       "barber_deleted",
		Entity:       "user",
		EntityID:     &barber.ID,
	})

	httpresp.NoContent(c)
}

// UploadPhoto recebe multipart "photo", converte para WebP e publica no bucket.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Unavailable(c, "storage_disabled", "Upload de fotos não está configurado.")
		return
	}

	barber, ok := h.find(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo photo.")
		return
	}
	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "Foto deve ter no máximo 5MB.")
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível ler a foto.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil || len(raw) > maxPhotoBytes {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível ler a foto.")
		return
	}

	encoded, err := imaging.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "unsupported_image", "Formato de imagem não suportado.")
		return
	}

	url, err := h.photos.Put(
		c.Request.Context(),
		storage.BarberPhotoKey(barber.BarbershopID, barber.ID),
		encoded,
		imaging.ContentType,
	)
	if err != nil {
		h.log.Error("photo upload failed", zap.Uint("barber_id", barber.ID), zap.Error(err))
		httperr.Unavailable(c, "upload_failed", "Falha ao enviar a foto.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao salvar barbeiro.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}
