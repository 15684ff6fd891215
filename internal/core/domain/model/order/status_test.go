package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should accept every known literal", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(string(s))

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	invalid := []string{"", "NEW", "done", "delivered", " new", "canceled"}
	for _, raw := range invalid {
		t.Run("should reject "+raw, func(t *testing.T) {
			_, err := order.ParseStatus(raw)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.ErrorIs(t, err, order.ErrInvalidStatus)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	testCases := map[order.Status]bool{
		order.New:        false,
		order.Cooking:    false,
		order.Ready:      false,
		order.Delivering: false,
		order.Completed:  true,
		order.Cancelled:  true,
	}

	for status, expected := range testCases {
		t.Run(status.String(), func(t *testing.T) {
			assert.Equal(t, expected, status.IsTerminal())
		})
	}
}

func TestStatus_IsKitchen(t *testing.T) {
	assert.True(t, order.New.IsKitchen())
	assert.True(t, order.Cooking.IsKitchen())
	assert.False(t, order.Ready.IsKitchen())
	assert.False(t, order.Delivering.IsKitchen())
}

func TestParseDeliveryType(t *testing.T) {
	t.Run("should accept pickup and delivery", func(t *testing.T) {
		pickup, err := order.ParseDeliveryType("pickup")
		require.NoError(t, err)
		assert.False(t, pickup.RequiresAddress())

		delivery, err := order.ParseDeliveryType("delivery")
		require.NoError(t, err)
		assert.True(t, delivery.RequiresAddress())
	})

	t.Run("should reject anything else", func(t *testing.T) {
		for _, raw := range []string{"", "Delivery", "courier", "take-away"} {
			_, err := order.ParseDeliveryType(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestPublicCode(t *testing.T) {
	t.Run("should accept # followed by four uppercase alphanumerics", func(t *testing.T) {
		for _, raw := range []string{"#A1B2", "#0000", "#ZZZZ"} {
			c, err := order.NewPublicCode(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, c.String())
		}
	})

	t.Run("should reject malformed codes", func(t *testing.T) {
		for _, raw := range []string{"A1B2", "#a1b2", "#A1B", "#A1B2C", "#A-B2"} {
			_, err := order.NewPublicCode(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := order.NewPublicCode("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSecretCode(t *testing.T) {
	t.Run("should accept url safe tokens", func(t *testing.T) {
		_, err := order.NewSecretCode("Zx_9-aQ3pL0mN8bV7cX6zW")
		require.NoError(t, err)
	})

	t.Run("should reject tokens longer than the lookup cap", func(t *testing.T) {
		long := make([]byte, order.MaxSecretCodeLength+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := order.NewSecretCode(string(long))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject characters outside the url safe alphabet", func(t *testing.T) {
		_, err := order.NewSecretCode("abc/def")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
