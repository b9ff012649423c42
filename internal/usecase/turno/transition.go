package turno

import (
	"context"

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

type TransitionTurnoInput struct {
	TurnoID   uint
	NewStatus string
	Notas     string

	ActorID   uint
	ActorRole string
}

// ======================================================
// USE CASE
// ======================================================

type TransitionTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Cache
}

func NewTransitionTurno(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	c cache.Cache,
) *TransitionTurno {
	return &TransitionTurno{
		repo:  repo,
		audit: auditDispatcher,
		cache: c,
	}
}

func (uc *TransitionTurno) Execute(
	ctx context.Context,
	in TransitionTurnoInput,
) (*models.Turno, error) {

	to := domain.Status(in.NewStatus)
	if !domain.IsValid(to) {
		return nil, httperr.ErrValidation("status_invalido", "status")
	}

	salon, err := uc.repo.GetSalon(ctx)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.GetTurno(ctx, in.TurnoID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnership(current, in.ActorID, in.ActorRole); err != nil {
		return nil, err
	}

	if err := domain.AllowedForRole(to, in.ActorRole); err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)
	oldStatus := current.Status

	// La relectura dentro de la transacción resuelve carreras por
	// last-write-wins: el perdedor encuentra el estado del ganador.
	updated, err := uc.repo.TransitionTurno(ctx, in.TurnoID, func(t *models.Turno) error {
		if err := domain.ApplyTransition(t, to, now); err != nil {
			return err
		}
		applyNotas(t, in.ActorRole, in.Notas)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TurnoID:   &updated.ID,
		ActorID:   &in.ActorID,
		ActorRole: in.ActorRole,
		Action:    "turno_" + string(to),
		OldStatus: oldStatus,
		NewStatus: updated.Status,
	})

	loc := timezone.Location(salon.Timezone)
	day := updated.StartTime.In(loc).Format("2006-01-02")
	_ = uc.cache.DeletePrefix(ctx, availabilityDayPrefix(updated.EmpleadoID, day))

	return updated, nil
}

func checkOwnership(t *models.Turno, actorID uint, actorRole string) error {
	switch actorRole {
	case models.RoleCliente:
		if t.ClienteID != actorID {
			return httperr.ErrForbidden("turno_ajeno")
		}
	case models.RoleEmpleado:
		if t.EmpleadoID != actorID {
			return httperr.ErrForbidden("turno_ajeno")
		}
	case models.RoleOwner:
		// el owner opera sobre cualquier turno
	default:
		return httperr.ErrForbidden("rol_sin_permiso")
	}
	return nil
}

func applyNotas(t *models.Turno, actorRole string, notas string) {
	if notas == "" {
		return
	}
	if actorRole == models.RoleCliente {
		t.NotasCliente = notas
		return
	}
	t.NotasEmpleado = notas
}
