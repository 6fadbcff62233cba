package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWrappersUnwrap(t *testing.T) {
	cause := fmt.Errorf("open blob: %w", ErrStorageCorrupt)

	var err error = &FetchError{Err: cause}
	assert.ErrorIs(t, err, ErrStorageCorrupt)
	assert.Equal(t, "fetch achievements: open blob: storage corrupt", err.Error())

	err = &PersistError{Op: "delete", Err: ErrStorageUnavailable}
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, "persist delete: storage unavailable", err.Error())

	var perr *PersistError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &perr))
	assert.Equal(t, "delete", perr.Op)
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError("start", "Start date cannot be after end date")
	verr.Add("start", "ignored second message")
	verr.Add("category", "bad")

	assert.False(t, verr.Empty())
	assert.Equal(t, "Start date cannot be after end date", verr.Field("start"))
	assert.Equal(t, "", verr.Field("end"))
	assert.Equal(t, "validation failed: category: bad; start: Start date cannot be after end date", verr.Error())

	var none *ValidationError
	assert.True(t, none.Empty())
	assert.Equal(t, "", none.Field("start"))
}
