package consultation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsultation(t *testing.T) *Consultation {
	t.Helper()
	c, err := NewConsultation(uuid.New(), uuid.New(), time.Now().Add(48*time.Hour), 30*time.Minute, "Frame fitting")
	require.NoError(t, err)
	return c
}

func TestNewConsultation(t *testing.T) {
	t.Run("creates requested consultation", func(t *testing.T) {
		customerID := uuid.New()
		sellerID := uuid.New()
		scheduledAt := time.Now().Add(24 * time.Hour)

		c, err := NewConsultation(customerID, sellerID, scheduledAt, time.Hour, "Lens options")

		require.NoError(t, err)
		assert.Equal(t, customerID, c.CustomerID)
		assert.Equal(t, sellerID, c.SellerID)
		assert.Equal(t, StatusRequested, c.Status)
		assert.Equal(t, time.Hour, c.Duration)
	})

	t.Run("fails with past scheduled time", func(t *testing.T) {
		_, err := NewConsultation(uuid.New(), uuid.New(), time.Now().Add(-time.Hour), time.Hour, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("fails when customer equals seller", func(t *testing.T) {
		id := uuid.New()
		_, err := NewConsultation(id, id, time.Now().Add(time.Hour), time.Hour, "")

		assert.Error(t, err)
	})

	t.Run("fails with out-of-range duration", func(t *testing.T) {
		_, err := NewConsultation(uuid.New(), uuid.New(), time.Now().Add(time.Hour), time.Minute, "")
		assert.Error(t, err)

		_, err = NewConsultation(uuid.New(), uuid.New(), time.Now().Add(time.Hour), 5*time.Hour, "")
		assert.Error(t, err)
	})
}

func TestConsultation_Lifecycle(t *testing.T) {
	t.Run("confirm then complete", func(t *testing.T) {
		c := newTestConsultation(t)

		require.NoError(t, c.Confirm())
		assert.Equal(t, StatusConfirmed, c.Status)
		assert.NotNil(t, c.ConfirmedAt)

		require.NoError(t, c.Complete())
		assert.Equal(t, StatusCompleted, c.Status)
		assert.NotNil(t, c.CompletedAt)
	})

	t.Run("cannot complete unconfirmed consultation", func(t *testing.T) {
		c := newTestConsultation(t)

		assert.Error(t, c.Complete())
	})

	t.Run("cancel from requested or confirmed", func(t *testing.T) {
		c := newTestConsultation(t)
		require.NoError(t, c.Cancel())
		assert.NotNil(t, c.CancelledAt)

		c2 := newTestConsultation(t)
		require.NoError(t, c2.Confirm())
		require.NoError(t, c2.Cancel())
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		c := newTestConsultation(t)
		require.NoError(t, c.Cancel())

		assert.Error(t, c.Confirm())
		assert.Error(t, c.Complete())
		assert.Error(t, c.Cancel())
	})
}

func TestConsultation_Reschedule(t *testing.T) {
	t.Run("rescheduling a confirmed consultation resets confirmation", func(t *testing.T) {
		c := newTestConsultation(t)
		require.NoError(t, c.Confirm())

		require.NoError(t, c.Reschedule(time.Now().Add(72*time.Hour)))
		assert.Equal(t, StatusRequested, c.Status)
		assert.Nil(t, c.ConfirmedAt)
	})

	t.Run("cannot reschedule finished consultation", func(t *testing.T) {
		c := newTestConsultation(t)
		require.NoError(t, c.Cancel())

		assert.Error(t, c.Reschedule(time.Now().Add(time.Hour)))
	})

	t.Run("cannot reschedule to past", func(t *testing.T) {
		c := newTestConsultation(t)

		assert.Error(t, c.Reschedule(time.Now().Add(-time.Hour)))
	})
}

func TestConsultation_InvolvesUser(t *testing.T) {
	c := newTestConsultation(t)

	assert.True(t, c.InvolvesUser(c.CustomerID))
	assert.True(t, c.InvolvesUser(c.SellerID))
	assert.False(t, c.InvolvesUser(uuid.New()))
}
