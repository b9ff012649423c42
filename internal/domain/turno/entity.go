package turno

import (
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// ===============================
// Acciones de dominio
// ===============================

// ApplyTransition muta el turno hacia el nuevo estado si la arista es legal.
// Guarda el estado anterior y el timestamp de la transición para que la
// política externa de crédito por cancelación pueda evaluar la antelación.
func ApplyTransition(t *models.Turno, to Status, now time.Time) error {
	current := Status(t.Status)

	if err := CanTransition(current, to); err != nil {
		return err
	}

	t.StatusAnterior = t.Status
	t.Status = string(to)

	switch to {
	case StatusConfirmado:
		t.ConfirmadoAt = &now
	case StatusCancelado:
		t.CanceladoAt = &now
	case StatusCompletado:
		t.CompletadoAt = &now
	case StatusNoAsistio:
		t.NoAsistioAt = &now
	}

	return nil
}
