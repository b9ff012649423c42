package turno

import (
	"context"
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/audit"
	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateTurnoInput struct {
	ClienteID  uint
	EmpleadoID uint
	ServicioID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	NotasCliente string

	ActorID   uint
	ActorRole string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Cache
}

func NewCreateTurno(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	c cache.Cache,
) *CreateTurno {
	return &CreateTurno{
		repo:  repo,
		audit: auditDispatcher,
		cache: c,
	}
}

func (uc *CreateTurno) Execute(
	ctx context.Context,
	in CreateTurnoInput,
) (*models.Turno, error) {

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrValidation("fecha_u_hora_invalida", "date")
	}

	// Antelación mínima: sin hold del lado del wizard, el create es la
	// validación autoritativa.
	minAdvance := salon.MinAdvanceMin
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrValidation("anticipacion_insuficiente", "start_time")
	}

	servicio, err := uc.repo.GetServicio(ctx, in.ServicioID)
	if err != nil {
		return nil, err
	}
	if !servicio.Active {
		return nil, httperr.ErrValidation("servicio_inactivo", "servicio_id")
	}

	empleado, err := uc.repo.GetEmpleado(ctx, in.EmpleadoID)
	if err != nil {
		return nil, err
	}
	if !empleado.Active {
		return nil, httperr.ErrValidation("empleado_inactivo", "empleado_id")
	}

	if _, err := uc.repo.GetUser(ctx, in.ClienteID); err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(servicio.DurationMin) * time.Minute)

	weekday := domain.WeekdayIndex(start)
	entries, err := uc.repo.GetScheduleEntries(ctx, in.EmpleadoID, &weekday)
	if err != nil {
		return nil, err
	}

	if !domain.WithinSchedule(entries, start, end) {
		return nil, httperr.ErrValidation("fuera_de_horario", "start_time")
	}

	t := &models.Turno{
		ClienteID:    in.ClienteID,
		EmpleadoID:   in.EmpleadoID,
		ServicioID:   servicio.ID,
		StartTime:    start,
		EndTime:      end,
		DurationMin:  servicio.DurationMin,
		PrecioFinal:  servicio.Price,
		Status:       string(domain.InitialStatus()),
		NotasCliente: in.NotasCliente,
	}

	// El chequeo de conflicto vive dentro del repo, atómico con el insert
	if err := uc.repo.CreateTurno(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TurnoID:   &t.ID,
		ActorID:   &in.ActorID,
		ActorRole: in.ActorRole,
		Action:    "turno_creado",
		NewStatus: t.Status,
	})

	// cache best-effort: el TTL corto corrige cualquier falla de invalidación
	_ = uc.cache.DeletePrefix(ctx, availabilityDayPrefix(in.EmpleadoID, in.Date))

	return t, nil
}
