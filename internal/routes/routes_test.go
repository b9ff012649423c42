package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SalonTurnosDev/turnos-api/internal/cache"
	"github.com/SalonTurnosDev/turnos-api/internal/config"
	dbpkg "github.com/SalonTurnosDev/turnos-api/internal/db"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB

	empleado models.User
	servicio models.Servicio
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	a := &testAPI{db: db}

	require.NoError(t, db.Create(&models.Salon{
		Name:               "Salon Test",
		Timezone:           timezone.DefaultTimezone,
		SlotGranularityMin: 30,
		MinAdvanceMin:      60,
		CancelNoticeMin:    120,
	}).Error)

	a.empleado = models.User{
		Name:         "Ana",
		Email:        "ana@salon.test",
		PasswordHash: "x",
		Role:         models.RoleEmpleado,
		Active:       true,
	}
	require.NoError(t, db.Create(&a.empleado).Error)

	a.servicio = models.Servicio{
		Name:        "Corte",
		Category:    "peluqueria",
		DurationMin: 60,
		Price:       5000,
		Active:      true,
	}
	require.NoError(t, db.Create(&a.servicio).Error)

	for d := 0; d < 7; d++ {
		require.NoError(t, db.Create(&models.ScheduleEntry{
			EmpleadoID: a.empleado.ID,
			Weekday:    d,
			StartTime:  "09:00",
			EndTime:    "17:00",
			Active:     true,
		}).Error)
	}

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		DefaultTimezone: timezone.DefaultTimezone,
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, cache.NewNoop())
	a.router = r
	return a
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) registerCliente(t *testing.T, email string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register-client", "", gin.H{
		"name":     "Carla",
		"email":    email,
		"password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func bookingDate() string {
	loc := timezone.Location(timezone.DefaultTimezone)
	return time.Now().In(loc).AddDate(0, 0, 7).Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	a := newTestAPI(t)
	token := a.registerCliente(t, "carla@cliente.test")

	date := bookingDate()

	// disponibilidad pública antes de reservar
	w := a.do(t, http.MethodGet,
		fmt.Sprintf("/api/public/availability?employee=%d&service=%d&date=%s", a.empleado.ID, a.servicio.ID, date),
		"", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var avail struct {
		Available bool     `json:"available"`
		Slots     []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	require.True(t, avail.Available)
	assert.Contains(t, avail.Slots, "10:00")

	// reserva
	w = a.do(t, http.MethodPost, "/api/turnos", token, gin.H{
		"empleado_id": a.empleado.ID,
		"servicio_id": a.servicio.ID,
		"date":        date,
		"time":        "10:00",
		"notas":       "primera vez",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var turno models.Turno
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turno))
	assert.Equal(t, "pendiente", turno.Status)
	assert.Equal(t, a.servicio.Price, turno.PrecioFinal)

	// la franja desaparece de la disponibilidad
	w = a.do(t, http.MethodGet,
		fmt.Sprintf("/api/public/availability?employee=%d&service=%d&date=%s", a.empleado.ID, a.servicio.ID, date),
		"", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.NotContains(t, avail.Slots, "10:00")
}

func TestBookingConflictReturns409(t *testing.T) {
	a := newTestAPI(t)
	token := a.registerCliente(t, "carla@cliente.test")

	date := bookingDate()

	body := gin.H{
		"empleado_id": a.empleado.ID,
		"servicio_id": a.servicio.ID,
		"date":        date,
		"time":        "10:00",
	}

	w := a.do(t, http.MethodPost, "/api/turnos", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/turnos", token, body)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var resp struct {
		Code       string `json:"error_code"`
		ConflictID uint   `json:"conflict_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "horario_ocupado", resp.Code)
	assert.NotZero(t, resp.ConflictID)
}

func TestClienteCannotConfirmOwnTurno(t *testing.T) {
	a := newTestAPI(t)
	token := a.registerCliente(t, "carla@cliente.test")

	w := a.do(t, http.MethodPost, "/api/turnos", token, gin.H{
		"empleado_id": a.empleado.ID,
		"servicio_id": a.servicio.ID,
		"date":        bookingDate(),
		"time":        "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var turno models.Turno
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turno))

	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/turnos/%d", turno.ID), token, gin.H{
		"status": "confirmado",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// cancelar sí puede
	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/turnos/%d", turno.ID), token, gin.H{
		"status": "cancelado",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestTurnosRequireAuth(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/turnos", "", gin.H{
		"empleado_id": a.empleado.ID,
		"servicio_id": a.servicio.ID,
		"date":        bookingDate(),
		"time":        "10:00",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffEndpointsForbiddenForCliente(t *testing.T) {
	a := newTestAPI(t)
	token := a.registerCliente(t, "carla@cliente.test")

	w := a.do(t, http.MethodGet, "/api/turnos?date="+bookingDate(), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/audit-logs", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
