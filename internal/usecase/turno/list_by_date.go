package turno

import (
	"context"
	"time"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

type TurnoListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	ClienteName  string    `json:"cliente_name"`
	ServicioName string    `json:"servicio_name"`
	PrecioFinal  float64   `json:"precio_final"`
}

type ListTurnosByDate struct {
	repo domain.Repository
}

func NewListTurnosByDate(repo domain.Repository) *ListTurnosByDate {
	return &ListTurnosByDate{repo: repo}
}

func (uc *ListTurnosByDate) Execute(
	ctx context.Context,
	empleadoID uint,
	date time.Time,
) ([]TurnoListDTO, error) {

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

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
