package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		TurnoID:   ev.TurnoID,
		ActorID:   ev.ActorID,
		ActorRole: ev.ActorRole,
		Action:    ev.Action,
		OldStatus: ev.OldStatus,
		NewStatus: ev.NewStatus,
		Metadata:  metaJSON,
	}

	return l.db.Create(&row).Error
}
