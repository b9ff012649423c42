package turno

import (
	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// ===============================
// Estados del turno
// ===============================

type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmado Status = "confirmado"
	StatusCompletado Status = "completado"
	StatusCancelado  Status = "cancelado"
	StatusNoAsistio  Status = "no_asistio"
)

func InitialStatus() Status {
	return StatusPendiente
}

func IsValid(s Status) bool {
	switch s {
	case StatusPendiente, StatusConfirmado, StatusCompletado, StatusCancelado, StatusNoAsistio:
		return true
	}
	return false
}

// Estados terminales: no admiten más transiciones.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompletado, StatusCancelado, StatusNoAsistio:
		return true
	}
	return false
}

// Blocks indica si un turno en este estado ocupa su franja horaria.
// cancelado y no_asistio liberan el horario; completado lo ocupó históricamente.
func Blocks(s Status) bool {
	return s != StatusCancelado && s != StatusNoAsistio
}

// BlockingStatuses, en el orden del ciclo de vida. Útil para armar cláusulas SQL.
func BlockingStatuses() []string {
	return []string{
		string(StatusPendiente),
		string(StatusConfirmado),
		string(StatusCompletado),
	}
}

// ===============================
// Transiciones legales
// ===============================

var transitions = map[Status][]Status{
	StatusPendiente:  {StatusConfirmado, StatusCancelado},
	StatusConfirmado: {StatusCancelado, StatusCompletado, StatusNoAsistio},
}

// CanTransition valida la arista del ciclo de vida, sin mirar roles.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrConflict("transicion_invalida", 0)
}

// AllowedForRole valida que el rol del actor pueda disparar la transición.
// Cancelar está abierto a cualquiera de las partes; confirmar, completar y
// marcar ausencia son acciones de empleado/owner.
func AllowedForRole(to Status, role string) error {
	switch to {
	case StatusCancelado:
		return nil
	case StatusConfirmado, StatusCompletado, StatusNoAsistio:
		if role == models.RoleEmpleado || role == models.RoleOwner {
			return nil
		}
		return httperr.ErrForbidden("rol_sin_permiso")
	}
	return httperr.ErrConflict("transicion_invalida", 0)
}
