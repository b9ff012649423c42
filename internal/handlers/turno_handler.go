package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/middleware"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	ucTurno "github.com/SalonTurnosDev/turnos-api/internal/usecase/turno"
)

// ======================================================
// HANDLER
// ======================================================

type TurnoHandler struct {
	createUC      *ucTurno.CreateTurno
	transitionUC  *ucTurno.TransitionTurno
	notasUC       *ucTurno.UpdateNotas
	listByDateUC  *ucTurno.ListTurnosByDate
	listByMonthUC *ucTurno.ListTurnosByMonth
	listClienteUC *ucTurno.ListTurnosForCliente
}

func NewTurnoHandler(
	createUC *ucTurno.CreateTurno,
	transitionUC *ucTurno.TransitionTurno,
	notasUC *ucTurno.UpdateNotas,
	listByDateUC *ucTurno.ListTurnosByDate,
	listByMonthUC *ucTurno.ListTurnosByMonth,
	listClienteUC *ucTurno.ListTurnosForCliente,
) *TurnoHandler {
	return &TurnoHandler{
		createUC:      createUC,
		transitionUC:  transitionUC,
		notasUC:       notasUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		listClienteUC: listClienteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTurnoRequest struct {
	// Solo empleado/owner pueden reservar a nombre de otro cliente
	ClienteID uint `json:"cliente_id"`

	EmpleadoID uint `json:"empleado_id" binding:"required"`
	ServicioID uint `json:"servicio_id" binding:"required"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	Notas string `json:"notas"`
}

type PatchTurnoRequest struct {
	Status string `json:"status"`
	Notas  string `json:"notas"`
}

// ======================================================
// CREATE
// ======================================================

func (h *TurnoHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateTurnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	clienteID := req.ClienteID
	if actorRole == models.RoleCliente {
		clienteID = actorID
	}
	if clienteID == 0 {
		httperr.BadRequest(c, "cliente_requerido", "Falta el cliente del turno.")
		return
	}

	turno, err := h.createUC.Execute(c.Request.Context(), ucTurno.CreateTurnoInput{
		ClienteID:    clienteID,
		EmpleadoID:   req.EmpleadoID,
		ServicioID:   req.ServicioID,
		Date:         req.Date,
		Time:         req.Time,
		NotasCliente: req.Notas,
		ActorID:      actorID,
		ActorRole:    actorRole,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err, "No se pudo crear el turno.") {
			return
		}
		httperr.Internal(c, "failed_to_create_turno", "Error al crear el turno.")
		return
	}

	c.JSON(http.StatusCreated, turno)
}

// ======================================================
// PATCH (transición de estado y/o notas)
// ======================================================

func (h *TurnoHandler) Patch(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	turnoID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "turno_invalido", "Turno inválido.")
		return
	}

	var req PatchTurnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	// Sin status, el patch solo toca notas (permitido aun en estado terminal)
	if req.Status == "" {
		if req.Notas == "" {
			httperr.BadRequest(c, "patch_vacio", "Nada para actualizar.")
			return
		}

		turno, err := h.notasUC.Execute(c.Request.Context(), turnoID, actorID, actorRole, req.Notas)
		if err != nil {
			if httperr.WriteBusiness(c, err, "No se pudieron actualizar las notas.") {
				return
			}
			httperr.Internal(c, "failed_to_update_turno", "Error al actualizar el turno.")
			return
		}

		c.JSON(http.StatusOK, turno)
		return
	}

	turno, err := h.transitionUC.Execute(c.Request.Context(), ucTurno.TransitionTurnoInput{
		TurnoID:   turnoID,
		NewStatus: req.Status,
		Notas:     req.Notas,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err, "Transición rechazada.") {
			return
		}
		httperr.Internal(c, "failed_to_update_turno", "Error al actualizar el turno.")
		return
	}

	c.JSON(http.StatusOK, turno)
}

// ======================================================
// LISTADOS
// ======================================================

func (h *TurnoHandler) ListByDate(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}

	empleadoID := actorID
	if actorRole == models.RoleOwner {
		if e := c.Query("employee"); e != "" {
			n, err := strconv.ParseUint(e, 10, 64)
			if err != nil {
				httperr.BadRequest(c, "empleado_invalido", "Empleado inválido.")
				return
			}
			empleadoID = uint(n)
		}
	}

	turnos, err := h.listByDateUC.Execute(c.Request.Context(), empleadoID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_turnos", "Error al listar turnos.")
		return
	}

	c.JSON(http.StatusOK, turnos)
}

func (h *TurnoHandler) ListByMonth(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "anio_invalido", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "mes_invalido", "Mes inválido.")
		return
	}

	empleadoID := actorID
	if actorRole == models.RoleOwner {
		if e := c.Query("employee"); e != "" {
			n, err := strconv.ParseUint(e, 10, 64)
			if err != nil {
				httperr.BadRequest(c, "empleado_invalido", "Empleado inválido.")
				return
			}
			empleadoID = uint(n)
		}
	}

	turnos, err := h.listByMonthUC.Execute(c.Request.Context(), empleadoID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_turnos", "Error al listar turnos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"month":  month,
		"turnos": turnos,
	})
}

func (h *TurnoHandler) ListMine(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	turnos, err := h.listClienteUC.Execute(c.Request.Context(), actorID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_turnos", "Error al listar turnos.")
		return
	}

	c.JSON(http.StatusOK, turnos)
}
