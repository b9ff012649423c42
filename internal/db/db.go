package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SalonTurnosDev/turnos-api/internal/config"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	ensureSalon(db, cfg)

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Servicio{},
		&models.ScheduleEntry{},
		&models.Turno{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Backstop multi-proceso contra doble reserva: constraint de exclusión
	// sobre (empleado, rango horario) para estados bloqueantes. Solo postgres.
	if db.Dialector.Name() == "postgres" {
		db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
		db.Exec(`
            ALTER TABLE turnos
            ADD CONSTRAINT turnos_sin_superposicion
            EXCLUDE USING gist (
                empleado_id WITH =,
                tsrange(start_time, end_time) WITH &&
            )
            WHERE (status IN ('pendiente', 'confirmado', 'completado'))
        `)
	}

	return nil
}

// ensureSalon crea la fila única de configuración del salón si falta.
func ensureSalon(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Salon{}).Count(&count)
	if count > 0 {
		return
	}

	salon := models.Salon{
		Name:               "Salon",
		Timezone:           cfg.DefaultTimezone,
		SlotGranularityMin: cfg.DefaultSlotGranularity,
		MinAdvanceMin:      cfg.DefaultMinAdvanceMin,
		CancelNoticeMin:    cfg.DefaultCancelNoticeMin,
	}
	if err := db.Create(&salon).Error; err != nil {
		logrus.Warnf("could not seed salon config: %v", err)
	}
}
