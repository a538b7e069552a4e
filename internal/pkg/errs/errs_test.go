package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("orderId", int64(1001))

	assert.Equal(t, "object not found: 1001", err.Error())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestObjectNotFoundErrorWithCause(t *testing.T) {
	cause := errors.New("row scan failed")
	err := errs.NewObjectNotFoundErrorWithCause("orderId", int64(1001), cause)

	assert.Equal(t, "object not found: param is: orderId, ID is: 1001 (cause: row scan failed)", err.Error())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("orderId", int64(1001))

	assert.Equal(t, "object already exists: 1001", err.Error())
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("address")

	assert.Equal(t, "value is required: address", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("orderId")

	assert.Equal(t, "value is invalid: orderId", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestValueIsInvalidErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("-5 is not a positive identifier")
	err := errs.NewValueIsInvalidErrorWithCause("orderId", cause)

	assert.Equal(t, "value is invalid: orderId (cause: -5 is not a positive identifier)", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("DELIVERED", "CANCEL")

	assert.Equal(t, "invalid status transition: CANCEL is not allowed from DELIVERED", err.Error())
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestErrorMessagesStaySingleLine(t *testing.T) {
	cause := errors.New("first line\nsecond line")
	err := errs.NewValueIsInvalidErrorWithCause("address", cause)

	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrObjectAlreadyExists,
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrInvalidTransition,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.NotErrorIs(t, a, b)
		}
	}
}
