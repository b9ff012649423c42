package turno

import (
	"context"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// Los campos de notas siguen siendo editables aun con el turno en estado
// terminal; es la única mutación permitida después del cierre.
type UpdateNotas struct {
	repo domain.Repository
}

func NewUpdateNotas(repo domain.Repository) *UpdateNotas {
	return &UpdateNotas{repo: repo}
}

func (uc *UpdateNotas) Execute(
	ctx context.Context,
	turnoID uint,
	actorID uint,
	actorRole string,
	notas string,
) (*models.Turno, error) {

	current, err := uc.repo.GetTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnership(current, actorID, actorRole); err != nil {
		return nil, err
	}

	return uc.repo.TransitionTurno(ctx, turnoID, func(t *models.Turno) error {
		applyNotas(t, actorRole, notas)
		return nil
	})
}
