package turno

import (
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// ===============================
// Cálculo de disponibilidad
// ===============================

const (
	ReasonPastDate      = "fecha_pasada"
	ReasonNotWorkingDay = "dia_no_laboral"
)

// Intervalo ocupado por un turno bloqueante, [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

type SlotQuery struct {
	// Medianoche del día consultado, en el timezone del salón.
	Date time.Time
	Now  time.Time

	// Franjas del weekday consultado y turnos bloqueantes de ese día,
	// ordenados por inicio.
	Entries []models.ScheduleEntry
	Busy    []Interval

	DurationMin    int
	GranularityMin int
	MinAdvanceMin  int
}

type Availability struct {
	Available bool     `json:"available"`
	Slots     []string `json:"slots"`
	Reason    string   `json:"reason,omitempty"`
}

// ComputeSlots deriva los horarios reservables restando los turnos existentes
// de la agenda semanal. Es determinística: mismo estado, mismo resultado.
func ComputeSlots(q SlotQuery) Availability {
	loc := q.Date.Location()
	now := q.Now.In(loc)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if q.Date.Before(today) {
		return Availability{Available: false, Slots: []string{}, Reason: ReasonPastDate}
	}

	active := make([]models.ScheduleEntry, 0, len(q.Entries))
	for _, e := range q.Entries {
		if e.Active {
			active = append(active, e)
		}
	}
	if len(active) == 0 {
		return Availability{Available: false, Slots: []string{}, Reason: ReasonNotWorkingDay}
	}

	granularity := q.GranularityMin
	if granularity <= 0 {
		granularity = 30
	}

	minAllowed := now.Add(time.Duration(q.MinAdvanceMin) * time.Minute)
	duration := time.Duration(q.DurationMin) * time.Minute
	step := time.Duration(granularity) * time.Minute

	slots := make([]string, 0)

	for _, e := range active {
		ws, err := ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		we, err := ParseClock(e.EndTime)
		if err != nil {
			continue
		}

		windowStart := q.Date.Add(time.Duration(ws) * time.Minute)
		windowEnd := q.Date.Add(time.Duration(we) * time.Minute)

		// Una franja más corta que el servicio no aporta slots
		busyIdx := 0
		for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(step) {
			slotStart := cur
			slotEnd := cur.Add(duration)

			if slotStart.Before(minAllowed) {
				continue
			}

			// avanza los turnos que ya quedaron atrás
			for busyIdx < len(q.Busy) && !q.Busy[busyIdx].End.After(slotStart) {
				busyIdx++
			}

			conflict := false
			for i := busyIdx; i < len(q.Busy); i++ {
				b := q.Busy[i]
				if !b.Start.Before(slotEnd) {
					break
				}
				if slotStart.Before(b.End) && slotEnd.After(b.Start) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, slotStart.Format("15:04"))
			}
		}
	}

	return Availability{Available: len(slots) > 0, Slots: slots}
}
