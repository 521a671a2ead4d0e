package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func repoWithAppointment(status string) *fakeRepo {
	repo := newFakeRepo()
	repo.appointments = []models.Appointment{
		{ID: 3, BarbershopID: 1, BarberID: 10, StartTime: at(19, 9, 0), EndTime: at(19, 9, 30), Status: status},
	}
	return repo
}

func TestConfirmThenComplete(t *testing.T) {
	repo := repoWithAppointment("scheduled")
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, zap.NewNop(), 10)

	confirm := NewConfirmAppointment(repo, d)
	confirm.now = fixedNow

	ap, err := confirm.Execute(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.True(t, ap.ConfirmedAt.Equal(fixedNow()))

	_, err = confirm.Execute(context.Background(), 1, 10, 3)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	ap, err = NewCompleteAppointment(repo, d).Execute(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, "completed", ap.Status)

	d.Close()
	require.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_confirmed", sink.events[0].Action)
	assert.Equal(t, "appointment_completed", sink.events[1].Action)
}

func TestCancel(t *testing.T) {
	repo := repoWithAppointment("confirmed")
	cancel := NewCancelAppointment(repo, nil)

	ap, err := cancel.Execute(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	_, err = cancel.Execute(context.Background(), 1, 10, 3)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestChangeStatusOtherBarber(t *testing.T) {
	repo := repoWithAppointment("scheduled")

	_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), 1, 11, 3)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewCancelAppointment(repo, nil).Execute(context.Background(), 2, 10, 3)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.Empty(t, repo.updated)
}
