package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type EmpleadoHandler struct {
	db *gorm.DB
}

func NewEmpleadoHandler(db *gorm.DB) *EmpleadoHandler {
	return &EmpleadoHandler{db: db}
}

type CreateEmpleadoRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	Especialidad string `json:"especialidad"`
}

type UpdateEmpleadoRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Especialidad *string `json:"especialidad,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// Alta de empleados: acción de owner.
func (h *EmpleadoHandler) Create(c *gin.Context) {
	var req CreateEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		httperr.Write(c, http.StatusConflict, "email_en_uso", "El email ya está registrado.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	empleado := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         models.RoleEmpleado,
		Especialidad: strings.ToLower(req.Especialidad),
		Active:       true,
	}

	if err := h.db.Create(&empleado).Error; err != nil {
		httperr.Internal(c, "failed_to_create_empleado", "No se pudo crear el empleado.")
		return
	}

	c.JSON(http.StatusCreated, empleado)
}

func (h *EmpleadoHandler) List(c *gin.Context) {
	var empleados []models.User
	if err := h.db.
		Where("role = ?", models.RoleEmpleado).
		Order("name ASC").
		Find(&empleados).Error; err != nil {
		httperr.Internal(c, "failed_to_list_empleados", "Error al listar empleados.")
		return
	}

	c.JSON(http.StatusOK, empleados)
}

// ListPublic alimenta el paso 2 del wizard: empleados activos, opcionalmente
// filtrados por la categoría del servicio elegido.
func (h *EmpleadoHandler) ListPublic(c *gin.Context) {
	q := h.db.Where("role = ? AND active = ?", models.RoleEmpleado, true)

	if servicioID := strings.TrimSpace(c.Query("service")); servicioID != "" {
		var servicio models.Servicio
		if err := h.db.First(&servicio, servicioID).Error; err != nil {
			httperr.NotFound(c, "servicio_no_encontrado", "Servicio no encontrado.")
			return
		}
		if servicio.Category != "" {
			q = q.Where("especialidad = ? OR especialidad = ''", servicio.Category)
		}
	}

	var empleados []models.User
	if err := q.Order("name ASC").Find(&empleados).Error; err != nil {
		httperr.Internal(c, "failed_to_list_empleados", "Error al listar empleados.")
		return
	}

	type publicEmpleado struct {
		ID           uint   `json:"id"`
		Name         string `json:"name"`
		Especialidad string `json:"especialidad"`
	}

	out := make([]publicEmpleado, 0, len(empleados))
	for _, e := range empleados {
		out = append(out, publicEmpleado{
			ID:           e.ID,
			Name:         e.Name,
			Especialidad: e.Especialidad,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *EmpleadoHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var empleado models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleEmpleado).
		First(&empleado).Error; err != nil {
		httperr.NotFound(c, "empleado_no_encontrado", "Empleado no encontrado.")
		return
	}

	var req UpdateEmpleadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		empleado.Name = *req.Name
	}
	if req.Phone != nil {
		empleado.Phone = *req.Phone
	}
	if req.Especialidad != nil {
		empleado.Especialidad = strings.ToLower(*req.Especialidad)
	}
	if req.Active != nil {
		empleado.Active = *req.Active
	}

	if err := h.db.Save(&empleado).Error; err != nil {
		httperr.Internal(c, "failed_to_update_empleado", "Error al guardar el empleado.")
		return
	}

	c.JSON(http.StatusOK, empleado)
}
