package turno

import (
	"context"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

// Lista vacía significa que el empleado no trabaja ese día.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	empleadoID uint,
	weekday *int,
) ([]models.ScheduleEntry, error) {

	if _, err := uc.repo.GetEmpleado(ctx, empleadoID); err != nil {
		return nil, err
	}

	return uc.repo.GetScheduleEntries(ctx, empleadoID, weekday)
}
