package turno

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

func TestCanTransitionLegalEdges(t *testing.T) {
	legal := []struct {
		from Status
		to   Status
	}{
		{StatusPendiente, StatusConfirmado},
		{StatusPendiente, StatusCancelado},
		{StatusConfirmado, StatusCancelado},
		{StatusConfirmado, StatusCompletado},
		{StatusConfirmado, StatusNoAsistio},
	}

	for _, tc := range legal {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

// Cierre de la máquina de estados: toda arista no enumerada se rechaza.
func TestCanTransitionClosure(t *testing.T) {
	all := []Status{StatusPendiente, StatusConfirmado, StatusCompletado, StatusCancelado, StatusNoAsistio}

	legal := map[Status]map[Status]bool{
		StatusPendiente:  {StatusConfirmado: true, StatusCancelado: true},
		StatusConfirmado: {StatusCancelado: true, StatusCompletado: true, StatusNoAsistio: true},
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if legal[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			assert.True(t, httperr.IsBusiness(err, "transicion_invalida"))
			assert.True(t, httperr.IsKind(err, httperr.KindConflict))
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, IsTerminal(StatusPendiente))
	assert.False(t, IsTerminal(StatusConfirmado))
	assert.True(t, IsTerminal(StatusCompletado))
	assert.True(t, IsTerminal(StatusCancelado))
	assert.True(t, IsTerminal(StatusNoAsistio))
}

func TestBlocks(t *testing.T) {
	// cancelado y no_asistio liberan la franja; completado la ocupó
	assert.True(t, Blocks(StatusPendiente))
	assert.True(t, Blocks(StatusConfirmado))
	assert.True(t, Blocks(StatusCompletado))
	assert.False(t, Blocks(StatusCancelado))
	assert.False(t, Blocks(StatusNoAsistio))
}

func TestAllowedForRole(t *testing.T) {
	// cancelar: cualquiera de las partes
	assert.NoError(t, AllowedForRole(StatusCancelado, models.RoleCliente))
	assert.NoError(t, AllowedForRole(StatusCancelado, models.RoleEmpleado))
	assert.NoError(t, AllowedForRole(StatusCancelado, models.RoleOwner))

	// confirmar / completar / no_asistio: solo staff
	for _, to := range []Status{StatusConfirmado, StatusCompletado, StatusNoAsistio} {
		assert.NoError(t, AllowedForRole(to, models.RoleEmpleado))
		assert.NoError(t, AllowedForRole(to, models.RoleOwner))

		err := AllowedForRole(to, models.RoleCliente)
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
	}
}

func TestApplyTransitionRecordsPriorStatus(t *testing.T) {
	now := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	turno := &models.Turno{Status: string(StatusConfirmado)}
	require.NoError(t, ApplyTransition(turno, StatusCancelado, now))

	assert.Equal(t, string(StatusCancelado), turno.Status)
	assert.Equal(t, string(StatusConfirmado), turno.StatusAnterior)
	require.NotNil(t, turno.CanceladoAt)
	assert.Equal(t, now, *turno.CanceladoAt)
}

func TestApplyTransitionRejectsTerminal(t *testing.T) {
	now := time.Now()

	turno := &models.Turno{Status: string(StatusCompletado)}
	err := ApplyTransition(turno, StatusCancelado, now)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "transicion_invalida"))
	// el turno queda intacto
	assert.Equal(t, string(StatusCompletado), turno.Status)
	assert.Nil(t, turno.CanceladoAt)
}
