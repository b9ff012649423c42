package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
	"github.com/SalonTurnosDev/turnos-api/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

// Granularidad de slots y ventanas de antelación son configuración inyectada,
// editable por el owner, nunca constantes del core.
type UpdateSalonRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`

	Timezone           *string `json:"timezone,omitempty"`
	SlotGranularityMin *int    `json:"slot_granularity_min,omitempty"`
	MinAdvanceMin      *int    `json:"min_advance_min,omitempty"`
	CancelNoticeMin    *int    `json:"cancel_notice_min,omitempty"`
}

func (h *SalonHandler) Get(c *gin.Context) {
	var salon models.Salon
	if err := h.db.First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_no_configurado", "Salón no configurado.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	var salon models.Salon
	if err := h.db.First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_no_configurado", "Salón no configurado.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "timezone_invalido", "Timezone inválido.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if req.SlotGranularityMin != nil {
		if *req.SlotGranularityMin <= 0 {
			httperr.BadRequest(c, "granularidad_invalida", "La granularidad debe ser positiva.")
			return
		}
		salon.SlotGranularityMin = *req.SlotGranularityMin
	}

	if req.MinAdvanceMin != nil {
		if *req.MinAdvanceMin < 0 {
			httperr.BadRequest(c, "antelacion_invalida", "La antelación mínima no puede ser negativa.")
			return
		}
		salon.MinAdvanceMin = *req.MinAdvanceMin
	}

	if req.CancelNoticeMin != nil {
		if *req.CancelNoticeMin < 0 {
			httperr.BadRequest(c, "aviso_invalido", "El aviso de cancelación no puede ser negativo.")
			return
		}
		salon.CancelNoticeMin = *req.CancelNoticeMin
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Error al guardar la configuración.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
