package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Sink persiste um evento de auditoria.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

const defaultBuffer = 100

// Dispatcher entrega eventos em background. Auditoria nunca quebra a API:
// com a fila cheia o evento é descartado e registrado no log.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger, buffer int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, buffer),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Write(context.Background(), ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Uint("barbershop_id", ev.BarbershopID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
			zap.Uint("barbershop_id", ev.BarbershopID),
		)
	}
}

// Close drena a fila e espera o worker terminar. Dispatch depois de Close
// entra em pânico, então chame só no shutdown.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
