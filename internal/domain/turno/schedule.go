package turno

import (
	"fmt"
	"sort"
	"time"

	"github.com/SalonTurnosDev/turnos-api/internal/httperr"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

// ===============================
// Agenda semanal
// ===============================

// WeekdayIndex mapea time.Weekday al índice de agenda: 0=lunes .. 6=domingo.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock convierte "HH:MM" a minutos desde medianoche.
func ParseClock(hm string) (int, error) {
	parsed, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrValidation("hora_invalida", hm)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func ClockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateEntries rechaza franjas con inicio >= fin y franjas superpuestas
// dentro del mismo día. Se valida antes del reemplazo masivo de la agenda.
func ValidateEntries(entries []models.ScheduleEntry) error {
	type span struct {
		start int
		end   int
	}

	byDay := make(map[int][]span)

	for _, e := range entries {
		if e.Weekday < 0 || e.Weekday > 6 {
			return httperr.ErrValidation("weekday_invalido", fmt.Sprintf("weekday_%d", e.Weekday))
		}

		start, err := ParseClock(e.StartTime)
		if err != nil {
			return err
		}
		end, err := ParseClock(e.EndTime)
		if err != nil {
			return err
		}

		if start >= end {
			return httperr.ErrValidation("franja_invalida", fmt.Sprintf("weekday_%d", e.Weekday))
		}

		byDay[e.Weekday] = append(byDay[e.Weekday], span{start: start, end: end})
	}

	for day, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return httperr.ErrValidation("franjas_superpuestas", fmt.Sprintf("weekday_%d", day))
			}
		}
	}

	return nil
}

// WithinSchedule indica si [start, end) cae entero dentro de alguna franja
// activa. Las entries deben ser del weekday de start.
func WithinSchedule(entries []models.ScheduleEntry, start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	// Un turno no cruza medianoche
	if end.Day() != start.Day() {
		return false
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin == 0 {
		endMin = 24 * 60
	}

	for _, e := range entries {
		if !e.Active {
			continue
		}
		ws, err := ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		we, err := ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		if startMin >= ws && endMin <= we {
			return true
		}
	}

	return false
}
