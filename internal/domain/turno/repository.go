package turno

import (
	"context"
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type Repository interface {
	// -------- Salón --------
	GetSalon(ctx context.Context) (*models.Salon, error)

	// -------- Servicio --------
	GetServicio(ctx context.Context, id uint) (*models.Servicio, error)

	// -------- Usuarios --------
	GetEmpleado(ctx context.Context, id uint) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// -------- Agenda semanal --------
	GetScheduleEntries(
		ctx context.Context,
		empleadoID uint,
		weekday *int,
	) ([]models.ScheduleEntry, error)

	ReplaceSchedule(
		ctx context.Context,
		empleadoID uint,
		entries []models.ScheduleEntry,
	) ([]models.ScheduleEntry, error)

	// -------- Turnos (creación atómica: chequeo + insert) --------
	CreateTurno(ctx context.Context, t *models.Turno) error

	GetTurno(ctx context.Context, id uint) (*models.Turno, error)

	// TransitionTurno relee el turno dentro de la transacción de update, de
	// modo que transiciones concurrentes resuelvan last-write-wins: el
	// perdedor ve el estado terminal del ganador y falla la arista.
	TransitionTurno(
		ctx context.Context,
		id uint,
		apply func(*models.Turno) error,
	) (*models.Turno, error)

	// -------- Lecturas --------
	ListTurnosBloqueantes(
		ctx context.Context,
		empleadoID uint,
		start time.Time,
		end time.Time,
	) ([]models.Turno, error)

	ListTurnosForPeriod(
		ctx context.Context,
		empleadoID uint,
		start time.Time,
		end time.Time,
	) ([]models.Turno, error)

	ListTurnosForCliente(
		ctx context.Context,
		clienteID uint,
	) ([]models.Turno, error)
}
