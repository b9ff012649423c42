package turno

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

func TestAvailabilityExcludesBookedSlot(t *testing.T) {
	f := newFixture(t)
	f.fullWeekSchedule(t)
	ctx := context.Background()

	date := futureDate(7)

	_, err := f.createUC().Execute(ctx, CreateTurnoInput{
		ClienteID:  f.cliente.ID,
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       date,
		Time:       "10:00",
		ActorID:    f.cliente.ID,
		ActorRole:  models.RoleCliente,
	})
	require.NoError(t, err)

	out, err := f.availabilityUC().Execute(ctx, AvailabilityInput{
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       date,
	})
	require.NoError(t, err)
	require.True(t, out.Available)

	assert.NotContains(t, out.Slots, "09:30")
	assert.NotContains(t, out.Slots, "10:00")
	assert.NotContains(t, out.Slots, "10:30")
	assert.Contains(t, out.Slots, "11:00")
}

// Todo slot ofrecido por disponibilidad tiene que ser aceptado por el create.
// Cada reserva invalida los slots vecinos, así que se reconsulta por ronda.
func TestAvailabilitySlotsAreBookable(t *testing.T) {
	f := newFixture(t)
	f.fullWeekSchedule(t)
	ctx := context.Background()

	date := futureDate(7)

	availUC := f.availabilityUC()
	createUC := f.createUC()

	for round := 0; round < 5; round++ {
		out, err := availUC.Execute(ctx, AvailabilityInput{
			EmpleadoID: f.empleado.ID,
			ServicioID: f.servicio.ID,
			Date:       date,
		})
		require.NoError(t, err)
		require.True(t, out.Available)
		require.NotEmpty(t, out.Slots)

		_, err = createUC.Execute(ctx, CreateTurnoInput{
			ClienteID:  f.cliente.ID,
			EmpleadoID: f.empleado.ID,
			ServicioID: f.servicio.ID,
			Date:       date,
			Time:       out.Slots[0],
			ActorID:    f.cliente.ID,
			ActorRole:  models.RoleCliente,
		})
		assert.NoError(t, err, "slot %s", out.Slots[0])
	}
}

func TestAvailabilityCacheInvalidatedOnCreate(t *testing.T) {
	mr := miniredis.RunT(t)

	f := newFixture(t)
	f.cache = cache.NewRedis(mr.Addr(), "", 0)
	f.fullWeekSchedule(t)
	ctx := context.Background()

	date := futureDate(7)

	before, err := f.availabilityUC().Execute(ctx, AvailabilityInput{
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       date,
	})
	require.NoError(t, err)
	require.Contains(t, before.Slots, "10:00")

	_, err = f.createUC().Execute(ctx, CreateTurnoInput{
		ClienteID:  f.cliente.ID,
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       date,
		Time:       "10:00",
		ActorID:    f.cliente.ID,
		ActorRole:  models.RoleCliente,
	})
	require.NoError(t, err)

	// el create invalida el día: la próxima lectura no ve el snapshot viejo
	after, err := f.availabilityUC().Execute(ctx, AvailabilityInput{
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       date,
	})
	require.NoError(t, err)
	assert.NotContains(t, after.Slots, "10:00")
}

func TestAvailabilityInvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.availabilityUC().Execute(context.Background(), AvailabilityInput{
		EmpleadoID: f.empleado.ID,
		ServicioID: f.servicio.ID,
		Date:       "02-02-2026",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "fecha_invalida"))
}
