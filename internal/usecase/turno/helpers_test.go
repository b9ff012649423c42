package turno

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SalonTurnosDev/turnos-api/internal/audit"
	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	dbpkg "github.com/SalonTurnosDev/turnos-api/internal/db"
	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	infraRepo "github.com/SalonTurnosDev/turnos-api/internal/infra/repository"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

const testTZ = "America/Argentina/Buenos_Aires"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

type fixture struct {
	db    *gorm.DB
	repo  domain.Repository
	cache cache.Cache
	audit *audit.Dispatcher

	salon    models.Salon
	empleado models.User
	cliente  models.User
	servicio models.Servicio
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	f := &fixture{
		db:    db,
		repo:  infraRepo.NewTurnoGormRepository(db),
		cache: cache.NewNoop(),
		audit: audit.NewDispatcher(audit.New(db)),
	}

	f.salon = models.Salon{
		Name:               "Salon Test",
		Timezone:           testTZ,
		SlotGranularityMin: 30,
		MinAdvanceMin:      60,
		CancelNoticeMin:    120,
	}
	require.NoError(t, db.Create(&f.salon).Error)

	f.empleado = models.User{
		Name:         "Ana",
		Email:        "ana@salon.test",
		PasswordHash: "x",
		Role:         models.RoleEmpleado,
		Active:       true,
	}
	require.NoError(t, db.Create(&f.empleado).Error)

	f.cliente = models.User{
		Name:         "Carla",
		Email:        "carla@cliente.test",
		PasswordHash: "x",
		Role:         models.RoleCliente,
		Active:       true,
	}
	require.NoError(t, db.Create(&f.cliente).Error)

	f.servicio = models.Servicio{
		Name:        "Corte",
		Category:    "peluqueria",
		DurationMin: 60,
		Price:       5000,
		Active:      true,
	}
	require.NoError(t, db.Create(&f.servicio).Error)

	return f
}

// fullWeekSchedule habilita los 7 días 09:00-17:00 para el empleado.
func (f *fixture) fullWeekSchedule(t *testing.T) {
	t.Helper()
	for d := 0; d < 7; d++ {
		require.NoError(t, f.db.Create(&models.ScheduleEntry{
			EmpleadoID: f.empleado.ID,
			Weekday:    d,
			StartTime:  "09:00",
			EndTime:    "17:00",
			Active:     true,
		}).Error)
	}
}

// futureDate devuelve una fecha al menos daysAhead días adelante, como string
// YYYY-MM-DD en el timezone del salón.
func futureDate(daysAhead int) string {
	loc := timezone.Location(testTZ)
	return time.Now().In(loc).AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func (f *fixture) createUC() *CreateTurno {
	return NewCreateTurno(f.repo, f.audit, f.cache)
}

func (f *fixture) transitionUC() *TransitionTurno {
	return NewTransitionTurno(f.repo, f.audit, f.cache)
}

func (f *fixture) availabilityUC() *GetAvailability {
	return NewGetAvailability(f.repo, f.cache)
}
