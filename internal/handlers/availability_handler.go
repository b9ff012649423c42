package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	ucTurno "github.com/SalonTurnosDev/turnos-api/internal/usecase/turno"
)

type AvailabilityHandler struct {
	uc *ucTurno.GetAvailability
}

func NewAvailabilityHandler(uc *ucTurno.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// GET /availability?employee={id}&service={id}&date=YYYY-MM-DD
func (h *AvailabilityHandler) Get(c *gin.Context) {
	empStr := c.Query("employee")
	servStr := c.Query("service")
	dateStr := c.Query("date")

	if empStr == "" || servStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Empleado, servicio y fecha son obligatorios.")
		return
	}

	empleadoID, err := strconv.ParseUint(empStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "empleado_invalido", "Empleado inválido.")
		return
	}

	servicioID, err := strconv.ParseUint(servStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "servicio_invalido", "Servicio inválido.")
		return
	}

	result, err := h.uc.Execute(c.Request.Context(), ucTurno.AvailabilityInput{
		EmpleadoID: uint(empleadoID),
		ServicioID: uint(servicioID),
		Date:       dateStr,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err, "No se pudo calcular la disponibilidad.") {
			return
		}
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	c.JSON(http.StatusOK, result)
}
