package turno

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

type AvailabilityInput struct {
	EmpleadoID uint
	ServicioID uint
	Date       string // YYYY-MM-DD
}

type GetAvailability struct {
	repo  domain.Repository
	cache cache.Cache
}

func NewGetAvailability(repo domain.Repository, c cache.Cache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (domain.Availability, error) {

	var out domain.Availability

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return out, err
	}

	loc := timezone.Location(salon.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return out, httperr.ErrValidation("fecha_invalida", "date")
	}

	servicio, err := uc.repo.GetServicio(ctx, in.ServicioID)
	if err != nil {
		return out, err
	}
	if !servicio.Active {
		return out, httperr.ErrValidation("servicio_inactivo", "servicio_id")
	}

	if _, err := uc.repo.GetEmpleado(ctx, in.EmpleadoID); err != nil {
		return out, err
	}

	key := availabilityKey(in.EmpleadoID, in.Date, in.ServicioID)
	if raw, hit, err := uc.cache.Get(ctx, key); err == nil && hit {
		if json.Unmarshal(raw, &out) == nil {
			return out, nil
		}
	}

	weekday := domain.WeekdayIndex(date)
	entries, err := uc.repo.GetScheduleEntries(ctx, in.EmpleadoID, &weekday)
	if err != nil {
		return out, err
	}

	dayEnd := date.Add(24 * time.Hour)
	turnos, err := uc.repo.ListTurnosBloqueantes(ctx, in.EmpleadoID, date, dayEnd)
	if err != nil {
		return out, err
	}

	busy := make([]domain.Interval, 0, len(turnos))
	for _, t := range turnos {
		busy = append(busy, domain.Interval{Start: t.StartTime, End: t.EndTime})
	}

	out = domain.ComputeSlots(domain.SlotQuery{
		Date:           date,
		Now:            timezone.NowIn(salon.Timezone),
		Entries:        entries,
		Busy:           busy,
		DurationMin:    servicio.DurationMin,
		GranularityMin: salon.SlotGranularityMin,
		MinAdvanceMin:  salon.MinAdvanceMin,
	})

	if raw, err := json.Marshal(out); err == nil {
		_ = uc.cache.Set(ctx, key, raw, availabilityTTL)
	}

	return out, nil
}
