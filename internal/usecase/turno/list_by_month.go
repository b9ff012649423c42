package turno

import (
	"context"
	"time"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

type ListTurnosByMonth struct {
	repo domain.Repository
}

func NewListTurnosByMonth(repo domain.Repository) *ListTurnosByMonth {
	return &ListTurnosByMonth{repo: repo}
}

func (uc *ListTurnosByMonth) Execute(
	ctx context.Context,
	empleadoID uint,
	year int,
	month int,
) ([]TurnoListDTO, error) {

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	turnos, err := uc.repo.ListTurnosForPeriod(ctx, empleadoID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]TurnoListDTO, 0, len(turnos))
	for _, t := range turnos {
		out = append(out, TurnoListDTO{
			ID:           t.ID,
			StartTime:    t.StartTime,
			EndTime:      t.EndTime,
			Status:       t.Status,
			ClienteName:  t.Cliente.Name,
			ServicioName: t.Servicio.Name,
			PrecioFinal:  t.PrecioFinal,
		})
	}

	return out, nil
}
