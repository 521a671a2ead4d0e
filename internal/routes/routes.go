package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Deps são as peças de infraestrutura montadas no main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Redis   *redis.Client       // nil = cache de agenda desligado
	Photos  storage.ObjectStore // nil = upload de fotos desligado
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	schedules := cache.NewScheduleCache(
		infraRepo.NewScheduleGormRepository(d.DB, d.Log),
		d.Redis,
		d.Config.Redis.ScheduleTTL,
		d.Log,
		d.Metrics,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	scheduleManager := ucSchedule.NewManager(schedules, d.Audit)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		schedules,
		d.Metrics,
		d.Log,
		d.Config.AvailabilityConcurrency,
	)
	checkSlotUC := ucAppointment.NewCheckSlot(appointmentRepo, schedules)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, schedules, d.Audit)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, scheduleManager, d.Log)
	meHandler := handlers.NewMeHandler(d.DB)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB)
	barberHandler := handlers.NewBarberHandler(d.DB, scheduleManager, d.Photos, d.Audit, d.Log)
	barberProductHandler := handlers.NewBarberProductHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(scheduleManager, appointmentRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
	)

	publicHandler := handlers.NewPublicHandler(
		d.DB,
		appointmentRepo,
		getAvailabilityUC,
		checkSlotUC,
		createAppointmentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("/products", publicHandler.ListProducts)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/availability/check", publicHandler.CheckSlot)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/products", barberProductHandler.List)

			secured.GET("/working-hours", workingHoursHandler.GetMine)
			secured.PUT("/working-hours", workingHoursHandler.UpdateMine)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// SÓ DONO
			// ------------------------------
			owner := secured.Group("")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)
				owner.GET("/barbershop/working-hours", workingHoursHandler.GetShop)
				owner.PUT("/barbershop/working-hours", workingHoursHandler.UpdateShop)

				owner.POST("/products", barberProductHandler.Create)
				owner.PATCH("/products/:id", barberProductHandler.Update)

				owner.GET("/barbers", barberHandler.List)
				owner.POST("/barbers", barberHandler.Create)
				owner.PATCH("/barbers/:id", barberHandler.Update)
				owner.DELETE("/barbers/:id", barberHandler.Delete)
				owner.POST("/barbers/:id/photo", barberHandler.UploadPhoto)
				owner.GET("/barbers/:id/working-hours", workingHoursHandler.GetBarber)
				owner.PUT("/barbers/:id/working-hours", workingHoursHandler.UpdateBarber)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
