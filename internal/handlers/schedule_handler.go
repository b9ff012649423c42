package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/middleware"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	ucTurno "github.com/SalonTurnosDev/turnos-api/internal/usecase/turno"
)

type ScheduleHandler struct {
	getUC *ucTurno.GetSchedule
	setUC *ucTurno.SetSchedule
}

func NewScheduleHandler(
	getUC *ucTurno.GetSchedule,
	setUC *ucTurno.SetSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		getUC: getUC,
		setUC: setUC,
	}
}

type ScheduleEntryConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type ScheduleUpdateRequest struct {
	Entries []ScheduleEntryConfig `json:"entries" binding:"required"`
}

// Solo el owner edita agendas ajenas; el empleado, la propia.
func canManageSchedule(c *gin.Context, empleadoID uint) bool {
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if role == models.RoleOwner {
		return true
	}
	return role == models.RoleEmpleado && userID == empleadoID
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	empleadoID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "empleado_invalido", "Empleado inválido.")
		return
	}

	if !canManageSchedule(c, empleadoID) {
		httperr.Write(c, http.StatusForbidden, "rol_sin_permiso", "Sin permiso sobre esta agenda.")
		return
	}

	var weekday *int
	if w := c.Query("weekday"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 || n > 6 {
			httperr.BadRequest(c, "weekday_invalido", "Día de semana inválido.")
			return
		}
		weekday = &n
	}

	entries, err := h.getUC.Execute(c.Request.Context(), empleadoID, weekday)
	if err != nil {
		if httperr.WriteBusiness(c, err, "Empleado no encontrado.") {
			return
		}
		httperr.Internal(c, "failed_to_get_schedule", "Error al obtener la agenda.")
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	empleadoID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "empleado_invalido", "Empleado inválido.")
		return
	}

	if !canManageSchedule(c, empleadoID) {
		httperr.Write(c, http.StatusForbidden, "rol_sin_permiso", "Sin permiso sobre esta agenda.")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	entries := make([]models.ScheduleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, models.ScheduleEntry{
			EmpleadoID: empleadoID,
			Weekday:    e.Weekday,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Active:     e.Active,
		})
	}

	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	stored, err := h.setUC.Execute(c.Request.Context(), empleadoID, entries, actorID, actorRole)
	if err != nil {
		if httperr.WriteBusiness(c, err, "Agenda inválida.") {
			return
		}
		httperr.Internal(c, "failed_to_save_schedule", "Error al guardar la agenda.")
		return
	}

	c.JSON(http.StatusOK, stored)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
