package turno

import (
	"context"

	"github.com/SalonTurnosDev/turnos-api/internal/audit"
	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// Reemplazo masivo de la agenda semanal de un empleado
// (delete-all-then-insert, transaccional e idempotente).
type SetSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Cache
}

func NewSetSchedule(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	c cache.Cache,
) *SetSchedule {
	return &SetSchedule{
		repo:  repo,
		audit: auditDispatcher,
		cache: c,
	}
}

func (uc *SetSchedule) Execute(
	ctx context.Context,
	empleadoID uint,
	entries []models.ScheduleEntry,
	actorID uint,
	actorRole string,
) ([]models.ScheduleEntry, error) {

	if _, err := uc.repo.GetEmpleado(ctx, empleadoID); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntries(entries); err != nil {
		return nil, err
	}

	stored, err := uc.repo.ReplaceSchedule(ctx, empleadoID, entries)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: actorRole,
		Action:    "agenda_reemplazada",
		Metadata:  map[string]any{"empleado_id": empleadoID, "franjas": len(stored)},
	})

	_ = uc.cache.DeletePrefix(ctx, availabilityEmpPrefix(empleadoID))

	return stored, nil
}
