package turno

import (
	"fmt"
	"time"
)

// Claves de cache de disponibilidad. Toda mutación borra por prefijo las
// claves del empleado/día afectado.

const availabilityTTL = 30 * time.Second

func availabilityKey(empleadoID uint, date string, servicioID uint) string {
	return fmt.Sprintf("disponibilidad:%d:%s:%d", empleadoID, date, servicioID)
}

func availabilityDayPrefix(empleadoID uint, date string) string {
	return fmt.Sprintf("disponibilidad:%d:%s:", empleadoID, date)
}

func availabilityEmpPrefix(empleadoID uint) string {
	return fmt.Sprintf("disponibilidad:%d:", empleadoID)
}
