package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestConfirmThenComplete(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(InitialStatus())}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCancelConfirmed(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestInvalidTransitions(t *testing.T) {
	now := time.Now()

	cancelled := &models.Appointment{Status: string(StatusCancelled)}
	assert.True(t, httperr.IsBusiness(Cancel(cancelled, now), "invalid_state"))
	assert.True(t, httperr.IsBusiness(Complete(cancelled, now), "invalid_state"))
	assert.True(t, httperr.IsBusiness(Confirm(cancelled, now), "invalid_state"))

	confirmed := &models.Appointment{Status: string(StatusConfirmed)}
	assert.True(t, httperr.IsBusiness(Confirm(confirmed, now), "invalid_state"))
	assert.Nil(t, confirmed.ConfirmedAt)
}

func TestActiveStatuses(t *testing.T) {
	assert.True(t, StatusScheduled.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.ElementsMatch(t, []string{"scheduled", "confirmed"}, ActiveStatuses)
}
