package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type ServicioHandler struct {
	db *gorm.DB
}

func NewServicioHandler(db *gorm.DB) *ServicioHandler {
	return &ServicioHandler{db: db}
}

// --------- Requests ---------

type CreateServicioRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
}

type UpdateServicioRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// --------- Handlers ---------

func (h *ServicioHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var servicios []models.Servicio
	if err := q.Order("id ASC").Find(&servicios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_servicios"})
		return
	}

	c.JSON(http.StatusOK, servicios)
}

// ListPublic alimenta el paso 1 del wizard: solo servicios activos.
func (h *ServicioHandler) ListPublic(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("active = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var servicios []models.Servicio
	if err := q.Order("id ASC").Find(&servicios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_servicios"})
		return
	}

	c.JSON(http.StatusOK, servicios)
}

func (h *ServicioHandler) Create(c *gin.Context) {
	var req CreateServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	servicio := models.Servicio{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
		Category:    strings.ToLower(req.Category),
	}

	if err := h.db.Create(&servicio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_servicio"})
		return
	}

	c.JSON(http.StatusCreated, servicio)
}

func (h *ServicioHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var servicio models.Servicio
	if err := h.db.First(&servicio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "servicio_no_encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_servicio"})
		return
	}

	var req UpdateServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		servicio.Name = *req.Name
	}
	if req.Description != nil {
		servicio.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duracion_invalida"})
			return
		}
		servicio.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		servicio.Price = *req.Price
	}
	if req.Active != nil {
		servicio.Active = *req.Active
	}
	if req.Category != nil {
		servicio.Category = strings.ToLower(*req.Category)
	}

	if err := h.db.Save(&servicio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_servicio"})
		return
	}

	c.JSON(http.StatusOK, servicio)
}
