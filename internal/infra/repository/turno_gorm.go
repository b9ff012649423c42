package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// SQLSTATE de violación de constraint de exclusión en postgres
const pgExclusionViolation = "23P01"

type TurnoGormRepository struct {
	db *gorm.DB

	// Serializa chequeo+insert por empleado dentro del proceso. En despliegue
	// multi-proceso el backstop es la constraint de exclusión en postgres.
	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex
}

func NewTurnoGormRepository(db *gorm.DB) *TurnoGormRepository {
	return &TurnoGormRepository{
		db:    db,
		locks: make(map[uint]*sync.Mutex),
	}
}

func (r *TurnoGormRepository) lockFor(empleadoID uint) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	mu, ok := r.locks[empleadoID]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[empleadoID] = mu
	}
	return mu
}

// --------------------------------------------------
// Salón
// --------------------------------------------------

func (r *TurnoGormRepository) GetSalon(ctx context.Context) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("salon_no_configurado")
		}
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Servicio
// --------------------------------------------------

func (r *TurnoGormRepository) GetServicio(
	ctx context.Context,
	id uint,
) (*models.Servicio, error) {

	var servicio models.Servicio
	if err := r.db.WithContext(ctx).First(&servicio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("servicio_no_encontrado")
		}
		return nil, err
	}
	return &servicio, nil
}

// --------------------------------------------------
// Usuarios
// --------------------------------------------------

func (r *TurnoGormRepository) GetEmpleado(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleEmpleado).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("empleado_no_encontrado")
		}
		return nil, err
	}
	return &user, nil
}

func (r *TurnoGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("usuario_no_encontrado")
		}
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Agenda semanal
// --------------------------------------------------

func (r *TurnoGormRepository) GetScheduleEntries(
	ctx context.Context,
	empleadoID uint,
	weekday *int,
) ([]models.ScheduleEntry, error) {

	q := r.db.WithContext(ctx).Where("empleado_id = ?", empleadoID)
	if weekday != nil {
		q = q.Where("weekday = ?", *weekday)
	}

	var entries []models.ScheduleEntry
	if err := q.
		Order("weekday ASC, start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *TurnoGormRepository) ReplaceSchedule(
	ctx context.Context,
	empleadoID uint,
	entries []models.ScheduleEntry,
) ([]models.ScheduleEntry, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("empleado_id = ?", empleadoID).
			Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		for i := range entries {
			entries[i].ID = 0
			entries[i].EmpleadoID = empleadoID
		}

		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetScheduleEntries(ctx, empleadoID, nil)
}

// --------------------------------------------------
// Turnos
// --------------------------------------------------

// CreateTurno ejecuta el chequeo de superposición y el insert como una unidad:
// dos creates concurrentes para el mismo empleado no pueden intercalarse.
func (r *TurnoGormRepository) CreateTurno(
	ctx context.Context,
	t *models.Turno,
) error {

	mu := r.lockFor(t.EmpleadoID)
	mu.Lock()
	defer mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflict models.Turno
		err := tx.
			Where(
				"empleado_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				t.EmpleadoID,
				domain.BlockingStatuses(),
				t.EndTime,
				t.StartTime,
			).
			Order("start_time ASC").
			First(&conflict).Error

		if err == nil {
			return httperr.ErrConflict("horario_ocupado", conflict.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(t).Error
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return httperr.ErrConflict("horario_ocupado", 0)
		}
		return err
	}

	return nil
}

func (r *TurnoGormRepository) GetTurno(
	ctx context.Context,
	id uint,
) (*models.Turno, error) {

	var t models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Empleado").
		Preload("Servicio").
		First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("turno_no_encontrado")
		}
		return nil, err
	}

	return &t, nil
}

func (r *TurnoGormRepository) TransitionTurno(
	ctx context.Context,
	id uint,
	apply func(*models.Turno) error,
) (*models.Turno, error) {

	var updated models.Turno

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Turno
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("turno_no_encontrado")
			}
			return err
		}

		if err := apply(&t); err != nil {
			return err
		}

		if err := tx.Save(&t).Error; err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// --------------------------------------------------
// Lecturas
// --------------------------------------------------

func (r *TurnoGormRepository) ListTurnosBloqueantes(
	ctx context.Context,
	empleadoID uint,
	start time.Time,
	end time.Time,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"empleado_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			empleadoID,
			domain.BlockingStatuses(),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

func (r *TurnoGormRepository) ListTurnosForPeriod(
	ctx context.Context,
	empleadoID uint,
	start time.Time,
	end time.Time,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Servicio").
		Where(
			"empleado_id = ? AND start_time >= ? AND start_time < ?",
			empleadoID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

func (r *TurnoGormRepository) ListTurnosForCliente(
	ctx context.Context,
	clienteID uint,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Empleado").
		Preload("Servicio").
		Where("cliente_id = ?", clienteID).
		Order("start_time DESC").
		Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

// Compile-time check
var _ domain.Repository = (*TurnoGormRepository)(nil)
