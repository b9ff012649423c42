package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/audit"
	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	"github.com/SalonTurnosDev/turnos-api/internal/config"
	"github.com/SalonTurnosDev/turnos-api/internal/handlers"
	infraRepo "github.com/SalonTurnosDev/turnos-api/internal/infra/repository"
	"github.com/SalonTurnosDev/turnos-api/internal/middleware"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	ucTurno "github.com/SalonTurnosDev/turnos-api/internal/usecase/turno"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, c cache.Cache) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	turnoRepo := infraRepo.NewTurnoGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — TURNOS
	// ======================================================
	createTurnoUC := ucTurno.NewCreateTurno(turnoRepo, auditDispatcher, c)
	transitionTurnoUC := ucTurno.NewTransitionTurno(turnoRepo, auditDispatcher, c)
	updateNotasUC := ucTurno.NewUpdateNotas(turnoRepo)
	getAvailabilityUC := ucTurno.NewGetAvailability(turnoRepo, c)
	listByDateUC := ucTurno.NewListTurnosByDate(turnoRepo)
	listByMonthUC := ucTurno.NewListTurnosByMonth(turnoRepo)
	listClienteUC := ucTurno.NewListTurnosForCliente(turnoRepo)
	getScheduleUC := ucTurno.NewGetSchedule(turnoRepo)
	setScheduleUC := ucTurno.NewSetSchedule(turnoRepo, auditDispatcher, c)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)
	servicioHandler := handlers.NewServicioHandler(db)
	empleadoHandler := handlers.NewEmpleadoHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(getScheduleUC, setScheduleUC)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)

	turnoHandler := handlers.NewTurnoHandler(
		createTurnoUC,
		transitionTurnoUC,
		updateNotasUC,
		listByDateUC,
		listByMonthUC,
		listClienteUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (wizard de reservas)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", servicioHandler.ListPublic)
			publicAPI.GET("/employees", empleadoHandler.ListPublic)
			publicAPI.GET("/availability", availabilityHandler.Get)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/register-client", authHandler.RegisterCliente)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/turnos", turnoHandler.ListMine)

			secured.GET("/availability", availabilityHandler.Get)

			owner := secured.Group("/")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.GET("/me/salon", salonHandler.Get)
				owner.PATCH("/me/salon", salonHandler.Update)

				owner.GET("/services", servicioHandler.List)
				owner.POST("/services", servicioHandler.Create)
				owner.PATCH("/services/:id", servicioHandler.Update)

				owner.POST("/employees", empleadoHandler.Create)
				owner.PATCH("/employees/:id", empleadoHandler.Update)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			staff := secured.Group("/")
			staff.Use(middleware.RequireStaff())
			{
				staff.GET("/employees", empleadoHandler.List)

				staff.GET("/turnos", turnoHandler.ListByDate)
				staff.GET("/turnos/month", turnoHandler.ListByMonth)
			}

			// agenda: owner sobre cualquiera, empleado sobre la propia
			secured.GET("/employees/:id/schedule", scheduleHandler.Get)
			secured.PUT("/employees/:id/schedule", scheduleHandler.Update)

			// ------------------------------
			// TURNOS
			// ------------------------------
			secured.POST("/turnos", turnoHandler.Create)
			secured.PATCH("/turnos/:id", turnoHandler.Patch)
		}
	}
}
