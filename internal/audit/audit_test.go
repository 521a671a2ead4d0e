package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	id := uint(7)
	d.Dispatch(Event{BarbershopID: 1, Action: "appointment_created", EntityID: &id})
	d.Dispatch(Event{BarbershopID: 1, Action: "appointment_cancelled"})
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
	assert.Equal(t, &id, sink.events[0].EntityID)
	assert.Equal(t, "appointment_cancelled", sink.events[1].Action)
}

func TestDispatcherLogsSinkErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	sink := &memorySink{err: errors.New("db down")}

	d := NewDispatcher(sink, zap.New(core), 1)
	d.Dispatch(Event{BarbershopID: 2, Action: "barber_created"})
	d.Close()

	require.Equal(t, 1, logs.FilterMessage("audit write failed").Len())
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}
