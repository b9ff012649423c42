package audit

import "github.com/sirupsen/logrus"

// Evento informativo emitido en cada create y cada transición de turno.
// Lo consume el subsistema de notificaciones, que queda fuera del core.
type Event struct {
	TurnoID   *uint
	ActorID   *uint
	ActorRole string

	Action    string
	OldStatus string
	NewStatus string

	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			logrus.WithError(err).Warn("audit: no se pudo registrar el evento")
		}
	}
}

// Close drena la cola pendiente y espera al worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// Dispatch es fire-and-forget: con la cola llena se descarta el evento antes
// que bloquear la API.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logrus.WithField("action", ev.Action).Warn("audit: cola llena, evento descartado")
	}
}
