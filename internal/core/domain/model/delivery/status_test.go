package delivery_test

import (
	"testing"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Apply(t *testing.T) {
	allStatuses := []delivery.Status{
		delivery.Ready, delivery.Shipped, delivery.Delivered, delivery.Cancelled,
	}
	allTransitions := []delivery.Transition{
		delivery.TransitionStart, delivery.TransitionComplete, delivery.TransitionCancel,
	}

	allowed := map[delivery.Status]map[delivery.Transition]delivery.Status{
		delivery.Ready: {
			delivery.TransitionStart:  delivery.Shipped,
			delivery.TransitionCancel: delivery.Cancelled,
		},
		delivery.Shipped: {
			delivery.TransitionComplete: delivery.Delivered,
		},
	}

	for _, from := range allStatuses {
		for _, tr := range allTransitions {
			want, ok := allowed[from][tr]

			next, err := from.Apply(tr)
			if ok {
				require.NoError(t, err, "%s via %s", from, tr)
				assert.Equal(t, want, next)
			} else {
				require.Error(t, err, "%s via %s must be rejected", from, tr)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, delivery.Unknown, next)
			}
		}
	}
}

func TestStatus_Apply_UnknownStatus(t *testing.T) {
	_, err := delivery.Unknown.Apply(delivery.TransitionStart)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "READY", delivery.Ready.String())
	assert.Equal(t, "SHIPPED", delivery.Shipped.String())
	assert.Equal(t, "DELIVERED", delivery.Delivered.String())
	assert.Equal(t, "CANCELLED", delivery.Cancelled.String())
	assert.Equal(t, "UNKNOWN", delivery.Unknown.String())
	assert.Equal(t, "UNKNOWN", delivery.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips all valid statuses", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.Ready, delivery.Shipped, delivery.Delivered, delivery.Cancelled,
		} {
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		for _, raw := range []string{"", "UNKNOWN", "ready", "IN_TRANSIT"} {
			_, err := delivery.StatusFromString(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input %q", raw)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, delivery.Ready.Validate())
	require.NoError(t, delivery.Cancelled.Validate())
	require.Error(t, delivery.Unknown.Validate())
	require.Error(t, delivery.Status(99).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, delivery.Ready.IsTerminal())
	assert.False(t, delivery.Shipped.IsTerminal())
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
}
