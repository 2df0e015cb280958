package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrapf(ErrExternal, "completion API error (%d)", 500)
	assert.True(t, Is(err, ErrExternal))
	assert.Equal(t, "completion API error (500): external service error", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := Wrap(NewValidationError("company_name", "is required", ""), "run workflow")
	assert.True(t, Is(err, ErrInvalidInput))

	var ve *ValidationError
	assert.True(t, As(err, &ve))
	assert.Equal(t, "company_name", ve.Field)
}

func TestMultiError(t *testing.T) {
	var m MultiError
	assert.Nil(t, m.ToError())

	m.Add(nil)
	m.Add(ErrTimeout)
	assert.Equal(t, ErrTimeout.Error(), m.Error())

	m.Add(ErrUnavailable)
	assert.Contains(t, m.Error(), "multiple errors (2)")
	assert.NotNil(t, m.ToError())
}
