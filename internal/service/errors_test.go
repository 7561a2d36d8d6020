package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("title", "title is required").Add("source", `source must be "ai" or "manual"`)
	assert.True(t, verr.HasErrors())
	// Fields appear in sorted order so the message is stable.
	assert.Equal(t, `validation failed: source: source must be "ai" or "manual"; title: title is required`, verr.Error())
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &PersistenceError{Op: "create recipe", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create recipe")

	var perr *PersistenceError
	assert.True(t, errors.As(error(err), &perr))
}
