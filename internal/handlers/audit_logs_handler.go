package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/httpresp"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	limit := 100
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	q := h.db.Session(&gorm.Session{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if turnoID := c.Query("turno"); turnoID != "" {
		q = q.Where("turno_id = ?", turnoID)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_audit_logs"})
		return
	}

	httpresp.List(c, logs)
}
